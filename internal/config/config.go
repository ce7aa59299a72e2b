// Package config loads postcraft settings from flags, POSTCRAFT_* environment
// variables and an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/csheth/postcraft/internal/chips"
	"github.com/csheth/postcraft/internal/generator"
)

const EnvPrefix = "POSTCRAFT"

// Config is the resolved runtime configuration.
type Config struct {
	Provider       string        `mapstructure:"provider"`
	Endpoint       string        `mapstructure:"endpoint"`
	BaseURL        string        `mapstructure:"base_url"`
	Model          string        `mapstructure:"model"`
	APIKey         string        `mapstructure:"api_key"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	ArchivePath    string        `mapstructure:"archive"`
	LogFile        string        `mapstructure:"log_file"`
	LogLevel       string        `mapstructure:"log_level"`
	NoAltScreen    bool          `mapstructure:"no_alt_screen"`
	Platform       string        `mapstructure:"platform"`
	Tone           string        `mapstructure:"tone"`
	Style          string        `mapstructure:"style"`
}

// SetDefaults registers every key so env vars bind even without a config file.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("provider", generator.ProviderBackend)
	v.SetDefault("endpoint", generator.DefaultEndpoint)
	v.SetDefault("base_url", generator.DefaultBaseURL)
	v.SetDefault("model", generator.DefaultModel)
	v.SetDefault("api_key", "")
	v.SetDefault("request_timeout", time.Duration(0))
	v.SetDefault("archive", filepath.Join(".", "saved_posts.json"))
	v.SetDefault("log_file", filepath.Join(".", "postcraft.log"))
	v.SetDefault("log_level", "info")
	v.SetDefault("no_alt_screen", false)
	v.SetDefault("platform", chips.DefaultSelection.Platform())
	v.SetDefault("tone", chips.DefaultSelection.Tone())
	v.SetDefault("style", chips.DefaultSelection.Style())
}

// Load resolves configuration from v. configFile, when set, must exist;
// otherwise postcraft.yaml is looked up in the working directory and
// $HOME/.postcraft and skipped when absent.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("postcraft")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".postcraft"))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks provider, URLs and chip defaults.
func (c *Config) Validate() error {
	switch c.Provider {
	case generator.ProviderBackend:
		if err := checkURL("endpoint", c.Endpoint); err != nil {
			return err
		}
	case generator.ProviderCompletions:
		if err := checkURL("base_url", c.BaseURL); err != nil {
			return err
		}
	default:
		return fmt.Errorf("invalid provider %q (want %s or %s)", c.Provider, generator.ProviderBackend, generator.ProviderCompletions)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must not be negative")
	}
	if _, err := chips.NewDefaultSet(c.Selection()); err != nil {
		return fmt.Errorf("invalid chip default: %w", err)
	}
	return nil
}

// Selection returns the configured chip defaults.
func (c *Config) Selection() chips.Selection {
	return chips.Selection{
		chips.GroupPlatform: c.Platform,
		chips.GroupTone:     c.Tone,
		chips.GroupStyle:    c.Style,
	}
}

// Generator returns the generation client configuration.
func (c *Config) Generator() generator.Config {
	return generator.Config{
		Provider: c.Provider,
		Endpoint: c.Endpoint,
		BaseURL:  c.BaseURL,
		Model:    c.Model,
		Timeout:  c.RequestTimeout,
	}
}

func checkURL(key, raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%s must be an absolute URL, got %q", key, raw)
	}
	return nil
}
