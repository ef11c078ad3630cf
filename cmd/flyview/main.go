// Package main is the entry point for the flyview quad viewer.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/profile"
	"go.uber.org/zap"

	"github.com/Faultbox/flyview/internal/config"
	"github.com/Faultbox/flyview/internal/logger"
	"github.com/Faultbox/flyview/internal/viewer"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if path := config.WriteConfigPath(); path != "" {
		if err := cfg.SaveTo(path); err != nil {
			fmt.Fprintf(os.Stderr, "Writing config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Config written to %s\n", path)
		return
	}

	logger.Init(logger.Options{
		Level:   cfg.Logging.Level,
		Console: true,
		File: logger.FileConfig{
			Path:       cfg.Logging.LogFile,
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
			MaxAgeDays: cfg.Logging.MaxAgeDays,
			Compress:   true,
		},
	})

	logger.Info("=== flyview ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("viewer error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
	logger.Sync()
}

// run owns every resource so deferred cleanup happens before main exits.
func run(cfg *config.Config) error {
	if dir := cfg.Debug.CPUProfile; dir != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(dir), profile.NoShutdownHook).Stop()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := viewer.NewApp(cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	return app.Run(ctx)
}
