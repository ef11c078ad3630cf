// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is returned by Validate for settings the viewer cannot run with.
var ErrInvalid = errors.New("invalid config")

// Config holds all viewer settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Camera  CameraConfig  `yaml:"camera"`
	Scene   SceneConfig   `yaml:"scene"`
	Shaders ShaderConfig  `yaml:"shaders"`
	Logging LoggingConfig `yaml:"logging"`
	Debug   DebugConfig   `yaml:"debug"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	VSync  bool   `yaml:"vsync"`
}

// CameraConfig holds the starting pose and control tuning.
type CameraConfig struct {
	Position    [3]float32 `yaml:"position"`
	Yaw         float32    `yaml:"yaw"`
	Pitch       float32    `yaml:"pitch"`
	Sensitivity float32    `yaml:"sensitivity"` // degrees per pointer unit
	Speed       float32    `yaml:"speed"`       // units per frame
	FovY        float32    `yaml:"fov"`         // degrees
	Near        float32    `yaml:"near"`
	Far         float32    `yaml:"far"`

	// ScaleByDelta makes Speed mean units per 1/60 s instead of units per
	// frame, so movement no longer depends on frame rate.
	ScaleByDelta bool `yaml:"scale_by_delta"`
}

// SceneConfig describes the single drawable.
type SceneConfig struct {
	ModelPosition [3]float32 `yaml:"model_position"`
	ClearColor    [4]float32 `yaml:"clear_color"`
	Texture       string     `yaml:"texture"` // PNG or TGA; empty uses a checkerboard
}

// ShaderConfig holds shader source locations.
type ShaderConfig struct {
	Vertex    string `yaml:"vertex"`
	Fragment  string `yaml:"fragment"`
	HotReload bool   `yaml:"hot_reload"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	LogFile    string `yaml:"log_file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// DebugConfig holds developer switches.
type DebugConfig struct {
	CPUProfile string `yaml:"cpu_profile"` // output directory, empty disables
}

// Default returns a Config with the stock viewer settings.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "3D World",
			Width:  800,
			Height: 600,
			VSync:  true,
		},
		Camera: CameraConfig{
			Position:    [3]float32{0, 0, 3},
			Yaw:         -90,
			Pitch:       0,
			Sensitivity: 0.1,
			Speed:       0.03,
			FovY:        45,
			Near:        0.1,
			Far:         100,
		},
		Scene: SceneConfig{
			ModelPosition: [3]float32{2, 0, -3},
			ClearColor:    [4]float32{0.5, 0.5, 0.5, 0.5},
		},
		Shaders: ShaderConfig{
			Vertex:   "res/shaders/vertex_shader.glsl",
			Fragment: "res/shaders/fragment_shader.glsl",
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
	}
}

// Validate checks the settings for values the viewer cannot use.
func (c *Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Camera.Sensitivity <= 0:
		return fmt.Errorf("%w: camera sensitivity %v", ErrInvalid, c.Camera.Sensitivity)
	case c.Camera.Speed <= 0:
		return fmt.Errorf("%w: camera speed %v", ErrInvalid, c.Camera.Speed)
	case c.Camera.FovY <= 0 || c.Camera.FovY >= 180:
		return fmt.Errorf("%w: fov %v not in (0, 180)", ErrInvalid, c.Camera.FovY)
	case c.Camera.Near <= 0 || c.Camera.Near >= c.Camera.Far:
		return fmt.Errorf("%w: clip planes near=%v far=%v", ErrInvalid, c.Camera.Near, c.Camera.Far)
	case c.Camera.Pitch < -89 || c.Camera.Pitch > 89:
		return fmt.Errorf("%w: pitch %v not in [-89, 89]", ErrInvalid, c.Camera.Pitch)
	case c.Shaders.Vertex == "" || c.Shaders.Fragment == "":
		return fmt.Errorf("%w: shader paths must be set", ErrInvalid)
	}
	return nil
}
