package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"checkers/internal/checkers"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config is the process-level configuration shared by the commands.
type Config struct {
	Addr          string
	WebDir        string
	MobileWebDir  string
	IdleTimeout   time.Duration
	OpenBrowser   bool
	LogLevel      string
	LogPretty     bool
	FirstToMove   checkers.Side
	SearchDepth   int
	SearchTimeout time.Duration
}

// LoadDotEnv loads .env style files into the process environment.
// Missing files are ignored; variables already set are kept.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Flags returns the shared CLI flags. Every flag can also be set from a CHECKERS_* variable.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "addr",
			Usage:   "listen address",
			Value:   ":2888",
			EnvVars: []string{"CHECKERS_ADDR"},
		},
		&cli.StringFlag{
			Name:    "web",
			Usage:   "directory with static web assets (empty disables)",
			EnvVars: []string{"CHECKERS_WEB_DIR"},
		},
		&cli.StringFlag{
			Name:    "mobile-web",
			Usage:   "directory with mobile web assets (defaults to --web)",
			EnvVars: []string{"CHECKERS_MOBILE_WEB_DIR"},
		},
		&cli.DurationFlag{
			Name:    "idle-timeout",
			Usage:   "drop games idle for longer than this (0 keeps them forever)",
			Value:   30 * time.Minute,
			EnvVars: []string{"CHECKERS_IDLE_TIMEOUT"},
		},
		&cli.BoolFlag{
			Name:    "open",
			Usage:   "open the default browser after start",
			EnvVars: []string{"CHECKERS_OPEN_BROWSER"},
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "trace, debug, info, warn, error",
			Value:   "info",
			EnvVars: []string{"CHECKERS_LOG_LEVEL"},
		},
		&cli.BoolFlag{
			Name:    "log-pretty",
			Usage:   "human readable console logs",
			EnvVars: []string{"CHECKERS_LOG_PRETTY"},
		},
		&cli.StringFlag{
			Name:    "first",
			Usage:   "side that moves first: light or dark",
			Value:   "light",
			EnvVars: []string{"CHECKERS_FIRST"},
		},
		&cli.IntFlag{
			Name:    "depth",
			Usage:   "engine search depth",
			Value:   6,
			EnvVars: []string{"CHECKERS_SEARCH_DEPTH"},
		},
		&cli.DurationFlag{
			Name:    "think",
			Usage:   "engine time limit per move",
			Value:   2 * time.Second,
			EnvVars: []string{"CHECKERS_SEARCH_TIMEOUT"},
		},
	}
}

// FromCLI builds a Config from the flags declared by Flags.
func FromCLI(c *cli.Context) (Config, error) {
	side, err := ParseSide(c.String("first"))
	if err != nil {
		return Config{}, err
	}
	cfg := Config{
		Addr:          c.String("addr"),
		WebDir:        c.String("web"),
		MobileWebDir:  c.String("mobile-web"),
		IdleTimeout:   c.Duration("idle-timeout"),
		OpenBrowser:   c.Bool("open"),
		LogLevel:      c.String("log-level"),
		LogPretty:     c.Bool("log-pretty"),
		FirstToMove:   side,
		SearchDepth:   c.Int("depth"),
		SearchTimeout: c.Duration("think"),
	}
	if cfg.SearchDepth <= 0 {
		return Config{}, fmt.Errorf("%w: depth must be positive, got %d", ErrInvalidConfig, cfg.SearchDepth)
	}
	if cfg.IdleTimeout < 0 {
		return Config{}, fmt.Errorf("%w: negative idle timeout %v", ErrInvalidConfig, cfg.IdleTimeout)
	}
	if cfg.SearchTimeout < 0 {
		return Config{}, fmt.Errorf("%w: negative think time %v", ErrInvalidConfig, cfg.SearchTimeout)
	}
	return cfg, nil
}

// Rules returns the rule configuration for new games.
func (c Config) Rules() checkers.Config {
	rules := checkers.DefaultConfig()
	rules.FirstToMove = c.FirstToMove
	return rules
}

func ParseSide(s string) (checkers.Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light", "l", "white", "w":
		return checkers.Light, nil
	case "dark", "d", "black", "b":
		return checkers.Dark, nil
	default:
		return checkers.NoSide, fmt.Errorf("%w: unknown side %q", ErrInvalidConfig, s)
	}
}
