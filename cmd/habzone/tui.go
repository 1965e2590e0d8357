package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/litescript/habzone/internal/astro"
	"github.com/litescript/habzone/internal/config"
	"github.com/litescript/habzone/internal/edsm"
	"github.com/litescript/habzone/internal/journal"
	"github.com/litescript/habzone/internal/state"
	"github.com/litescript/habzone/internal/ui"
)

// runTUI follows the journal directory and runs the interactive display.
func runTUI(cmd *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("habzone needs a terminal; use 'habzone summary' for plain output")
	}

	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	// Log lines would tear the alternate screen, so they go to a file or nowhere.
	if logFile, _ := cmd.Flags().GetString("log-file"); logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		logger.SetOutput(f)
	} else {
		logger.SetOutput(io.Discard)
	}

	collector, stopMetrics, err := startMetrics(cfg.MetricsAddr, logger)
	if err != nil {
		return err
	}
	defer stopMetrics()

	watcher, err := journal.NewWatcher(cfg.JournalDir, logger.With("component", "journal"))
	if err != nil {
		return fmt.Errorf("creating journal watcher: %w", err)
	}
	if err := watcher.Start(); err != nil {
		return fmt.Errorf("watching %s: %w", cfg.JournalDir, err)
	}
	defer watcher.Stop()

	client := edsm.NewClient(cfg.EDSMOptions()...)
	path := settingsPath()

	model := ui.New(state.NewSession(),
		ui.WithEvents(watcher.Events),
		ui.WithCatalog(client),
		ui.WithVisibility(cfg.Visibility()),
		ui.WithSaveVisibility(func(v astro.Visibility) error {
			cfg.SetVisibility(v)
			return config.Save(path, cfg)
		}),
		ui.WithMetrics(collector),
		ui.WithLogger(logger.With("component", "ui")),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
	defer stop()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	// Forward watcher errors into the UI
	go func() {
		for err := range watcher.Errors {
			p.Send(ui.ErrorMsg{Error: err})
		}
	}()

	logger.Info("Watching %s, catalog %s", cfg.JournalDir, client.URL())
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
