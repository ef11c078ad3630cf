package config

import "flag"

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging")
	flagWidth       = flag.Int("width", 0, "Window width")
	flagHeight      = flag.Int("height", 0, "Window height")
	flagSensitivity = flag.Float64("sensitivity", 0, "Mouse look sensitivity (degrees per pixel)")
	flagSpeed       = flag.Float64("speed", 0, "Camera speed (units per frame)")
	flagHotReload   = flag.Bool("hot-reload", false, "Recompile shaders when their files change")
	flagCPUProfile  = flag.String("cpuprofile", "", "Write a CPU profile to this directory")
	flagWriteConfig = flag.String("write-config", "", "Write the effective config to this path and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// WriteConfigPath returns the --write-config destination, if any.
func WriteConfigPath() string {
	return *flagWriteConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
	if *flagSensitivity > 0 {
		cfg.Camera.Sensitivity = float32(*flagSensitivity)
	}
	if *flagSpeed > 0 {
		cfg.Camera.Speed = float32(*flagSpeed)
	}
	if *flagHotReload {
		cfg.Shaders.HotReload = true
	}
	if *flagCPUProfile != "" {
		cfg.Debug.CPUProfile = *flagCPUProfile
	}
}
