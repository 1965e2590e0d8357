// Command habzone shows where habitable-zone worlds orbit the stars of the
// system an Elite Dangerous commander is exploring.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/litescript/habzone/internal/config"
	"github.com/litescript/habzone/internal/logging"
	"github.com/litescript/habzone/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "habzone",
	Short: "Habitable-zone distances for the current star system",
	Long: `habzone follows the game journal and lists, for each enabled world type,
the orbital band around the active star where such worlds form, together with
the matching bodies found by scans and the EDSM catalog.`,
	Version:      version.Version,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runTUI,
}

// configErr holds a config file error other than a missing file.
var configErr error

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default ~/"+config.FileName+")")
	pf.String("log-level", "", "log level (debug, info, warn, error)")
	pf.String("journal-dir", "", "directory holding the game journals")
	pf.String("edsm-url", "", "EDSM bodies endpoint")
	pf.String("metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9090)")

	_ = viper.BindPFlag("log_level", pf.Lookup("log-level"))
	_ = viper.BindPFlag("journal_dir", pf.Lookup("journal-dir"))
	_ = viper.BindPFlag("edsm.url", pf.Lookup("edsm-url"))
	_ = viper.BindPFlag("metrics_addr", pf.Lookup("metrics-addr"))

	rootCmd.Flags().String("log-file", "", "write logs to this file while the TUI runs")
}

func initConfig() {
	// A missing .env is fine.
	_ = godotenv.Load()

	if cfgFile, _ := rootCmd.PersistentFlags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigFile(config.DefaultPath())
	}
	config.BindEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			configErr = fmt.Errorf("reading %s: %w", viper.ConfigFileUsed(), err)
		}
	}
}

// loadConfig returns the merged configuration and a logger at its level.
func loadConfig() (config.Config, *logging.Logger, error) {
	if configErr != nil {
		return config.Config{}, nil, configErr
	}
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, logging.New(logging.ParseLevel(cfg.LogLevel)), nil
}

// settingsPath is where display changes are written back.
func settingsPath() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return config.DefaultPath()
}
