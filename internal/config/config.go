package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/atomicstack/paneldeck/internal/app"
	"github.com/atomicstack/paneldeck/internal/flow"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

// EnvPrefix namespaces the environment variables that mirror every flag:
// --allow-wrap is PANELDECK_ALLOW_WRAP.
const EnvPrefix = "PANELDECK_"

const (
	flagDeck          = "deck"
	flagFlow          = "flow"
	flagAllowWrap     = "allow-wrap"
	flagDefaultWindow = "default-window"
	flagNoAnimation   = "no-animation"
	flagFPS           = "fps"
	flagWatch         = "watch"
	flagWidth         = "width"
	flagHeight        = "height"
	flagTrace         = "trace"
	flagLogFile       = "log-file"
	flagVerbose       = "verbose"
)

const (
	defaultFPS = 60
	maxFPS     = 240
)

// BindFlags registers every runtime flag on fs.
func BindFlags(fs *pflag.FlagSet) {
	fs.String(flagDeck, "", "path to a YAML deck file (empty uses the built-in demo deck)")
	fs.String(flagFlow, "", "navigation policy: stack or carousel (overrides the deck)")
	fs.Bool(flagAllowWrap, false, "wrap around when stepping past either end (overrides the deck)")
	fs.String(flagDefaultWindow, "", "window opened on start (overrides the deck)")
	fs.Bool(flagNoAnimation, false, "apply every transition instantly")
	fs.Int(flagFPS, defaultFPS, "animation frame rate")
	fs.Bool(flagWatch, false, "reload the deck file when it changes")
	fs.Int(flagWidth, 0, "desired viewport width in cells (0 uses terminal width)")
	fs.Int(flagHeight, 0, "desired viewport height in rows (0 uses terminal height)")
	fs.Bool(flagTrace, false, "enable verbose JSON trace logging")
	fs.String(flagLogFile, "", "path to the log file")
	fs.Bool(flagVerbose, false, "show success messages in the status line")
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	fs := pflag.NewFlagSet("paneldeck", pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))
	BindFlags(fs)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return FromFlags(fs, args, environ)
}

// FromFlags layers explicitly set flags over PANELDECK_* environment values
// over flag defaults. fs must already be parsed.
func FromFlags(fs *pflag.FlagSet, args []string, environ []string) (Config, error) {
	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return Config{}, fmt.Errorf("bind flags: %w", err)
	}
	if err := v.MergeConfigMap(envSettings(environ)); err != nil {
		return Config{}, fmt.Errorf("merge environment: %w", err)
	}

	cfg := Config{
		App: app.Config{
			DeckPath:      v.GetString(flagDeck),
			Flow:          strings.TrimSpace(v.GetString(flagFlow)),
			DefaultWindow: v.GetString(flagDefaultWindow),
			NoAnimation:   v.GetBool(flagNoAnimation),
			FPS:           v.GetInt(flagFPS),
			Watch:         v.GetBool(flagWatch),
			Width:         v.GetInt(flagWidth),
			Height:        v.GetInt(flagHeight),
			Verbose:       v.GetBool(flagVerbose),
		},
		Logging: Logging{
			FilePath: v.GetString(flagLogFile),
			Trace:    v.GetBool(flagTrace),
		},
		Args: append([]string(nil), args...),
	}
	if v.IsSet(flagAllowWrap) {
		wrap := v.GetBool(flagAllowWrap)
		cfg.App.AllowWrap = &wrap
	}
	cfg.Flags = map[string]string{
		flagDeck:          cfg.App.DeckPath,
		flagFlow:          cfg.App.Flow,
		flagDefaultWindow: cfg.App.DefaultWindow,
		flagNoAnimation:   strconv.FormatBool(cfg.App.NoAnimation),
		flagFPS:           strconv.Itoa(cfg.App.FPS),
		flagWatch:         strconv.FormatBool(cfg.App.Watch),
		flagWidth:         strconv.Itoa(cfg.App.Width),
		flagHeight:        strconv.Itoa(cfg.App.Height),
		flagVerbose:       strconv.FormatBool(cfg.App.Verbose),
	}
	if cfg.App.AllowWrap != nil {
		cfg.Flags[flagAllowWrap] = strconv.FormatBool(*cfg.App.AllowWrap)
	}
	return cfg, Validate(cfg)
}

// envSettings maps PANELDECK_FOO_BAR=value to the flag key foo-bar.
func envSettings(environ []string) map[string]interface{} {
	values := make(map[string]interface{})
	for _, entry := range environ {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || !strings.HasPrefix(key, EnvPrefix) {
			continue
		}
		if strings.TrimSpace(value) == "" {
			continue
		}
		name := strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
		values[strings.ReplaceAll(name, "_", "-")] = value
	}
	return values
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate rejects values no component can work with.
func Validate(cfg Config) error {
	if cfg.App.Width < 0 {
		return fmt.Errorf("width must be >= 0 (got %d)", cfg.App.Width)
	}
	if cfg.App.Height < 0 {
		return fmt.Errorf("height must be >= 0 (got %d)", cfg.App.Height)
	}
	if cfg.App.FPS < 1 || cfg.App.FPS > maxFPS {
		return fmt.Errorf("fps must be between 1 and %d (got %d)", maxFPS, cfg.App.FPS)
	}
	if cfg.App.Flow != "" {
		if _, err := flow.ParseKind(cfg.App.Flow); err != nil {
			return err
		}
	}
	if cfg.App.Watch && cfg.App.DeckPath == "" {
		return fmt.Errorf("--watch needs --deck")
	}
	return nil
}
