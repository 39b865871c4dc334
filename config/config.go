// Package config loads aeroswipe settings from an INI file and supplies
// them to the gesture and workspace layers.
package config

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"

	"gopkg.in/ini.v1"
)

const (
	// DefaultSwipeThreshold is the minimum accumulated horizontal travel
	// (in normalized trackpad units) that counts as a deliberate swipe.
	DefaultSwipeThreshold = 0.30

	// DefaultListenAddr is the control API address.
	DefaultListenAddr = "localhost:12800"
)

// Config carries every tunable the daemon reads. Values are resolved once
// at load; the pipeline reads them through the accessor methods.
type Config struct {
	// gesture
	Threshold float64
	Natural   bool

	// workspace
	Wrap     bool
	Skip     bool
	Keyboard bool

	// daemon
	SocketPath      string // aerospace socket override, "" = derive per user
	TouchSocketPath string // touch frame feed socket
	ListenAddr      string
}

// DefaultPath returns ~/.config/aeroswipe/config.ini.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "aeroswipe", "config.ini"), nil
}

// DefaultTouchSocketPath returns the per-user socket the native touch
// helper connects to.
func DefaultTouchSocketPath() (string, error) {
	u, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("failed to resolve current user: %w", err)
	}
	return fmt.Sprintf("/tmp/aeroswipe-%s.touch.sock", u.Username), nil
}

// Load reads the configuration from the standard location. A missing file
// yields the defaults.
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath reads the configuration from path. A missing file yields
// the defaults; a malformed one is an error.
func LoadFromPath(path string) (*Config, error) {
	cfg := defaults()

	file, err := ini.Load(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("%s: failed to load config: %w", path, err)
	}

	gesture := file.Section("gesture")
	cfg.Threshold = gesture.Key("swipe_threshold").MustFloat64(cfg.Threshold)
	if gesture.HasKey("natural_swipe") {
		cfg.Natural = gesture.Key("natural_swipe").MustBool(cfg.Natural)
	}

	ws := file.Section("workspace")
	cfg.Wrap = ws.Key("wrap_around").MustBool(cfg.Wrap)
	cfg.Skip = ws.Key("skip_empty").MustBool(cfg.Skip)
	cfg.Keyboard = ws.Key("keyboard_ordering").MustBool(cfg.Keyboard)

	daemon := file.Section("daemon")
	cfg.SocketPath = daemon.Key("socket").MustString(cfg.SocketPath)
	cfg.TouchSocketPath = daemon.Key("touch_socket").MustString(cfg.TouchSocketPath)
	cfg.ListenAddr = daemon.Key("listen").MustString(cfg.ListenAddr)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Threshold:  DefaultSwipeThreshold,
		Natural:    systemNaturalScroll(),
		Wrap:       true,
		ListenAddr: DefaultListenAddr,
	}
}

func (c *Config) validate() error {
	if c.Threshold <= 0 {
		return fmt.Errorf("swipe_threshold must be positive, got %v", c.Threshold)
	}
	return nil
}

// SwipeThreshold implements gesture.Settings.
func (c *Config) SwipeThreshold() float64 { return c.Threshold }

// NaturalSwipe implements gesture.Settings.
func (c *Config) NaturalSwipe() bool { return c.Natural }

// WrapAround implements workspace.Settings.
func (c *Config) WrapAround() bool { return c.Wrap }

// SkipEmpty implements workspace.Settings.
func (c *Config) SkipEmpty() bool { return c.Skip }

// KeyboardOrdering implements workspace.Settings.
func (c *Config) KeyboardOrdering() bool { return c.Keyboard }
