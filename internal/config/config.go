// Package config loads habzone settings from the config file, HABZONE_*
// environment variables and command-line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/litescript/habzone/internal/astro"
	"github.com/litescript/habzone/internal/edsm"
)

// EnvPrefix is the prefix for environment overrides (HABZONE_LOG_LEVEL, ...).
const EnvPrefix = "HABZONE"

// FileName is the config file name looked up in the home directory.
const FileName = ".habzone.toml"

// EDSMConfig holds catalog client settings.
type EDSMConfig struct {
	URL       string        `mapstructure:"url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	Rate      float64       `mapstructure:"rate"`
	Burst     int           `mapstructure:"burst"`
	CacheSize int           `mapstructure:"cache_size"`
	CacheTTL  time.Duration `mapstructure:"cache_ttl"`
}

// Config holds all runtime configuration.
type Config struct {
	// Display is the stored visibility setting; see DecodeSetting.
	Display     int        `mapstructure:"display"`
	JournalDir  string     `mapstructure:"journal_dir"`
	LogLevel    string     `mapstructure:"log_level"`
	MetricsAddr string     `mapstructure:"metrics_addr"`
	EDSM        EDSMConfig `mapstructure:"edsm"`
}

// Visibility returns the decoded display setting.
func (c Config) Visibility() astro.Visibility {
	return DecodeSetting(c.Display)
}

// SetVisibility stores v as the display setting.
func (c *Config) SetVisibility(v astro.Visibility) {
	c.Display = EncodeSetting(v)
}

// SetDefaults registers built-in defaults with viper.
func SetDefaults() {
	viper.SetDefault("display", 0)
	viper.SetDefault("journal_dir", DefaultJournalDir())
	viper.SetDefault("log_level", "info")
	viper.SetDefault("metrics_addr", "")
	viper.SetDefault("edsm.url", edsm.DefaultURL)
	viper.SetDefault("edsm.timeout", edsm.DefaultTimeout)
	viper.SetDefault("edsm.rate", 1.0)
	viper.SetDefault("edsm.burst", 3)
	viper.SetDefault("edsm.cache_size", edsm.DefaultCacheSize)
	viper.SetDefault("edsm.cache_ttl", edsm.DefaultCacheTTL)
}

// BindEnv maps HABZONE_* variables onto config keys. Nested keys use an
// underscore: HABZONE_EDSM_RATE sets edsm.rate.
func BindEnv() {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment or flags.
func Load() (Config, error) {
	SetDefaults()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

// DefaultPath returns the config file location in the home directory, or the
// bare file name when the home directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return FileName
	}
	return filepath.Join(home, FileName)
}

// DefaultJournalDir returns where the game writes its journal on Windows,
// relative to the home directory.
func DefaultJournalDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "Saved Games", "Frontier Developments", "Elite Dangerous")
}

// EDSMOptions converts the catalog settings to client options.
// An empty URL or zero timeout keeps the client default.
func (c Config) EDSMOptions() []edsm.Option {
	opts := []edsm.Option{
		edsm.WithRateLimit(c.EDSM.Rate, c.EDSM.Burst),
		edsm.WithCache(c.EDSM.CacheSize, c.EDSM.CacheTTL),
	}
	if c.EDSM.URL != "" {
		opts = append(opts, edsm.WithURL(c.EDSM.URL))
	}
	if c.EDSM.Timeout > 0 {
		opts = append(opts, edsm.WithTimeout(c.EDSM.Timeout))
	}
	return opts
}
