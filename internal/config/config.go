// Package config handles the mosaic configuration file: gap sizes, layout
// policies and demo options, stored as TOML under the XDG config directory.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"

	"github.com/Gaurav-Gosain/mosaic/internal/layout"
)

// GapConfig controls the spacing around the tiled area and between windows.
type GapConfig struct {
	// Outer is the gap between the output's usable area and the tree, on
	// all four sides.
	Outer int `toml:"outer"`
	// Inner is the gap around each individual window.
	Inner int `toml:"inner"`
}

// LayoutConfig controls engine policies.
type LayoutConfig struct {
	// MergePolicy selects the output that inherits an unmapped output's
	// tree: "first", "largest" or "none".
	MergePolicy string `toml:"merge_policy"`
	// DefaultOrientation pins the split axis for new windows:
	// "horizontal", "vertical" or "auto" (split along the shorter axis).
	DefaultOrientation string `toml:"default_orientation"`
}

// DemoConfig controls the interactive demo.
type DemoConfig struct {
	// ShowTitles renders window titles in the demo boxes.
	ShowTitles bool `toml:"show_titles"`
}

// UserConfig is the top-level configuration document.
type UserConfig struct {
	Gaps   GapConfig    `toml:"gaps"`
	Layout LayoutConfig `toml:"layout"`
	Demo   DemoConfig   `toml:"demo"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *UserConfig {
	return &UserConfig{
		Gaps: GapConfig{
			Outer: 0,
			Inner: 1,
		},
		Layout: LayoutConfig{
			MergePolicy:        string(layout.MergeFirst),
			DefaultOrientation: "auto",
		},
		Demo: DemoConfig{
			ShowTitles: true,
		},
	}
}

// MergePolicy converts the configured merge policy string, falling back to
// MergeFirst for unknown values.
func (c *UserConfig) MergePolicy() layout.MergePolicy {
	switch layout.MergePolicy(c.Layout.MergePolicy) {
	case layout.MergeFirst, layout.MergeLargest, layout.MergeNone:
		return layout.MergePolicy(c.Layout.MergePolicy)
	default:
		return layout.MergeFirst
	}
}

// InsertOrientation converts the configured default orientation, reporting
// false for "auto" (or anything unrecognized).
func (c *UserConfig) InsertOrientation() (layout.Orientation, bool) {
	switch c.Layout.DefaultOrientation {
	case "horizontal":
		return layout.Horizontal, true
	case "vertical":
		return layout.Vertical, true
	default:
		return layout.Horizontal, false
	}
}

// Validate reports configuration values that cannot be used.
func (c *UserConfig) Validate() error {
	if c.Gaps.Outer < 0 || c.Gaps.Inner < 0 {
		return fmt.Errorf("config: gaps must be non-negative (outer=%d inner=%d)", c.Gaps.Outer, c.Gaps.Inner)
	}
	switch c.Layout.DefaultOrientation {
	case "", "auto", "horizontal", "vertical":
	default:
		return fmt.Errorf("config: unknown default_orientation %q", c.Layout.DefaultOrientation)
	}
	switch layout.MergePolicy(c.Layout.MergePolicy) {
	case layout.MergeFirst, layout.MergeLargest, layout.MergeNone:
		return nil
	default:
		return fmt.Errorf("config: unknown merge_policy %q", c.Layout.MergePolicy)
	}
}

// GetConfigPath returns the path of the configuration file.
func GetConfigPath() (string, error) {
	return xdg.ConfigFile(filepath.Join("mosaic", "config.toml"))
}

// LoadUserConfig loads the configuration file, creating it with defaults if
// it does not exist.
func LoadUserConfig() (*UserConfig, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("could not determine config path: %w", err)
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := WriteConfig(path, cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("could not parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WriteConfig marshals cfg to path.
func WriteConfig(path string, cfg *UserConfig) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("could not marshal config: %w", err)
	}
	header := "# mosaic configuration file\n# Location: " + path + "\n\n"
	if err := os.WriteFile(path, append([]byte(header), data...), 0o644); err != nil {
		return fmt.Errorf("could not write config: %w", err)
	}
	return nil
}

// Watch reloads the configuration whenever the file changes and calls fn
// with the new value, until ctx is done. Parse failures keep the previous
// configuration.
func Watch(ctx context.Context, fn func(*UserConfig)) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("could not create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return fmt.Errorf("could not watch config dir: %w", err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != path || !event.Op.Has(fsnotify.Write|fsnotify.Create) {
					continue
				}
				if cfg, err := LoadUserConfig(); err == nil {
					fn(cfg)
				}
			case <-watcher.Errors:
			}
		}
	}()
	return nil
}
