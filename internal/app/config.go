package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/raysh454/httpr/internal/logging"
	"github.com/raysh454/httpr/internal/render"
	"github.com/raysh454/httpr/internal/webclient"
)

const envPrefix = "HTTPR"

// Config holds the runtime knobs. httpr reads no configuration files; every
// value comes from the environment (HTTPR_*) or the defaults below.
type Config struct {
	// LogLevel for diagnostics on stderr: debug, info, warn or error.
	LogLevel string

	// Color controls ANSI styling of the status line and header names.
	Color render.ColorMode

	// WebClient configuration
	WebClientCfg webclient.Config
}

// DefaultConfig returns a Config populated with the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "warn",
		Color:    render.ColorAuto,
		WebClientCfg: webclient.Config{
			Client: webclient.ClientNetHTTP,
		},
	}
}

// LoadConfig reads HTTPR_LOG_LEVEL, HTTPR_COLOR and HTTPR_BACKEND. NO_COLOR,
// when present, forces colour off.
func LoadConfig() (*Config, error) {
	return loadConfig(viper.New())
}

func loadConfig(v *viper.Viper) (*Config, error) {
	def := DefaultConfig()

	v.SetEnvPrefix(envPrefix)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("color", string(def.Color))
	v.SetDefault("backend", string(def.WebClientCfg.Client))
	v.AutomaticEnv()

	cfg := &Config{
		LogLevel: strings.ToLower(strings.TrimSpace(v.GetString("log_level"))),
		Color:    render.ColorMode(strings.ToLower(strings.TrimSpace(v.GetString("color")))),
		WebClientCfg: webclient.Config{
			Client: webclient.Client(strings.ToLower(strings.TrimSpace(v.GetString("backend")))),
		},
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		cfg.Color = render.ColorNever
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the rest of the program cannot act on.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %s_LOG_LEVEL: %w", envPrefix, err)
	}
	switch c.Color {
	case render.ColorAuto, render.ColorAlways, render.ColorNever:
	default:
		return fmt.Errorf("config: %s_COLOR: unknown mode %q (want auto, always or never)", envPrefix, c.Color)
	}
	if c.WebClientCfg.Client == "" {
		return fmt.Errorf("config: %s_BACKEND must not be empty", envPrefix)
	}
	return nil
}
