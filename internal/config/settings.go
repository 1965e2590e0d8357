package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/litescript/habzone/internal/astro"
)

// settingNone is the stored value for "show nothing", since a stored zero
// selects the default.
const settingNone = 0xffff

// DecodeSetting converts a stored display setting to a visibility mask.
func DecodeSetting(stored int) astro.Visibility {
	switch stored {
	case 0:
		return astro.VisibilityDefault
	case settingNone:
		return 0
	default:
		return astro.Visibility(stored)
	}
}

// EncodeSetting converts a visibility mask to its stored form.
func EncodeSetting(v astro.Visibility) int {
	if v == 0 {
		return settingNone
	}
	return int(v)
}

// fileEDSM and fileConfig are the on-disk layout. Durations are written as
// strings ("10s") so viper can read them back.
type fileEDSM struct {
	URL       string  `toml:"url,omitempty"`
	Timeout   string  `toml:"timeout,omitempty"`
	Rate      float64 `toml:"rate"`
	Burst     int     `toml:"burst"`
	CacheSize int     `toml:"cache_size"`
	CacheTTL  string  `toml:"cache_ttl,omitempty"`
}

type fileConfig struct {
	Display     int      `toml:"display"`
	JournalDir  string   `toml:"journal_dir,omitempty"`
	LogLevel    string   `toml:"log_level,omitempty"`
	MetricsAddr string   `toml:"metrics_addr,omitempty"`
	EDSM        fileEDSM `toml:"edsm"`
}

func formatDuration(d time.Duration) string {
	if d == 0 {
		return ""
	}
	return d.String()
}

// Save writes cfg to path as TOML, creating parent directories as needed.
func Save(path string, cfg Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	fc := fileConfig{
		Display:     cfg.Display,
		JournalDir:  cfg.JournalDir,
		LogLevel:    cfg.LogLevel,
		MetricsAddr: cfg.MetricsAddr,
		EDSM: fileEDSM{
			URL:       cfg.EDSM.URL,
			Timeout:   formatDuration(cfg.EDSM.Timeout),
			Rate:      cfg.EDSM.Rate,
			Burst:     cfg.EDSM.Burst,
			CacheSize: cfg.EDSM.CacheSize,
			CacheTTL:  formatDuration(cfg.EDSM.CacheTTL),
		},
	}

	data, err := toml.Marshal(fc)
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return nil
}
