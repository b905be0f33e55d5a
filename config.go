package wlkit

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds backend settings. Values come from defaults, then the
// optional config file, then functional options, in that order.
type Config struct {
	// TickMillis bounds the blocking poll step of each loop tick, in
	// milliseconds. Liveness is re-checked at least this often even when
	// no event source signals.
	TickMillis int `toml:"tick_millis"`
	// CursorTheme is the XCursor theme name used for SetCursor.
	CursorTheme string `toml:"cursor_theme"`
	// CursorSize is the cursor image size in pixels.
	CursorSize int `toml:"cursor_size"`
}

const configFile = "config.toml"

func defaultConfig() Config {
	return Config{
		TickMillis:  16,
		CursorTheme: "default",
		CursorSize:  24,
	}
}

// tickInterval returns the poll bound as a duration.
func (c Config) tickInterval() time.Duration {
	return time.Duration(c.TickMillis) * time.Millisecond
}

// loadConfig reads the user config file over defaults. A missing file is
// not an error; a malformed one is.
func loadConfig() (Config, error) {
	cfg := defaultConfig()
	path := filepath.Join(configDir(), configFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("wlkit: config %s: %w", path, err)
	}
	return cfg, nil
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "wlkit")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "wlkit"
	}
	return filepath.Join(home, ".config", "wlkit")
}

// Option is a functional option for configuring an Application.
type Option func(*Application) error

// WithTickInterval sets the upper bound on the blocking poll step of each
// loop tick. Default is 16ms. Must be positive; 0 would busy-poll.
func WithTickInterval(d time.Duration) Option {
	return func(a *Application) error {
		if d <= 0 {
			return fmt.Errorf("tick interval must be positive, got %v", d)
		}
		a.cfg.TickMillis = int(d / time.Millisecond)
		if a.cfg.TickMillis == 0 {
			a.cfg.TickMillis = 1
		}
		return nil
	}
}

// WithCursorTheme sets the XCursor theme and size used for SetCursor.
func WithCursorTheme(name string, size int) Option {
	return func(a *Application) error {
		if size < 1 {
			return fmt.Errorf("cursor size must be at least 1, got %d", size)
		}
		a.cfg.CursorTheme = name
		a.cfg.CursorSize = size
		return nil
	}
}

// WithConn supplies the platform connection instead of dialing the Wayland
// display. Used to embed the driver on a custom transport and by tests.
func WithConn(conn Conn) Option {
	return func(a *Application) error {
		a.conn = conn
		return nil
	}
}
