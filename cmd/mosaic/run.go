package main

import (
	"context"
	"fmt"
	"os"
	"runtime/pprof"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/log"

	"github.com/Gaurav-Gosain/mosaic/internal/app"
	"github.com/Gaurav-Gosain/mosaic/internal/config"
	"github.com/Gaurav-Gosain/mosaic/internal/theme"
)

func runDemo() error {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "mosaic",
	})
	if debugMode {
		logger.SetLevel(log.DebugLevel)
	}

	if cpuProfile != "" {
		f, err := os.Create(cpuProfile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil {
				logger.Warn("failed to close CPU profile file", "err", closeErr)
			}
		}()

		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	if err := theme.Initialize(themeName); err != nil {
		return fmt.Errorf("could not initialize theme: %w", err)
	}

	userConfig, err := config.LoadUserConfig()
	if err != nil {
		logger.Warn("failed to load config, using defaults", "err", err)
		userConfig = config.DefaultConfig()
	}

	if debugMode {
		if configPath, err := config.GetConfigPath(); err == nil {
			logger.Debug("configuration", "path", configPath)
		}
	}

	compositor := app.NewCompositor(app.CompositorOptions{
		Config: userConfig,
		Logger: logger,
	})

	p := tea.NewProgram(compositor)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := config.Watch(ctx, func(cfg *config.UserConfig) {
		p.Send(app.ConfigReloadedMsg{Config: cfg})
	}); err != nil {
		logger.Warn("config watch disabled", "err", err)
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}
