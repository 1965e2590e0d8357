package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/litescript/habzone/internal/astro"
	"github.com/litescript/habzone/internal/edsm"
	"github.com/litescript/habzone/internal/journal"
	"github.com/litescript/habzone/internal/logging"
	"github.com/litescript/habzone/internal/metrics"
	"github.com/litescript/habzone/internal/state"
	"github.com/litescript/habzone/internal/ui"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Replay a journal and print the zones for its last system",
	Long: `Replay a journal file through a fresh session and print the habitable-zone
report for the system the commander was in at the end of it. Without --journal
the newest journal in the journal directory is used.`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func init() {
	summaryCmd.Flags().String("journal", "", "journal file to replay")
	summaryCmd.Flags().Bool("full-names", false, "list bodies from outside the system by their full name")
	summaryCmd.Flags().Bool("edsm", false, "query EDSM for the final system")
	summaryCmd.Flags().Bool("all", false, "show every category")
	summaryCmd.Flags().Duration("timeout", 15*time.Second, "EDSM lookup timeout")
	rootCmd.AddCommand(summaryCmd)
}

// catalogFetcher is the lookup used after the replay.
type catalogFetcher interface {
	Fetch(ctx context.Context, system string) edsm.Result
}

type summaryOptions struct {
	Visibility astro.Visibility
	Style      state.NameStyle
	Catalog    catalogFetcher // nil disables lookups
	Timeout    time.Duration
	Logger     *logging.Logger
	Metrics    *metrics.Collector
}

func runSummary(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	path, _ := cmd.Flags().GetString("journal")
	if path == "" {
		path, err = journal.LatestJournal(cfg.JournalDir)
		if err != nil {
			return fmt.Errorf("finding journal in %s: %w", cfg.JournalDir, err)
		}
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening journal: %w", err)
	}
	defer f.Close()

	collector, stopMetrics, err := startMetrics(cfg.MetricsAddr, logger)
	if err != nil {
		return err
	}
	defer stopMetrics()

	opts := summaryOptions{
		Visibility: cfg.Visibility(),
		Logger:     logger,
		Metrics:    collector,
	}
	opts.Timeout, _ = cmd.Flags().GetDuration("timeout")
	if all, _ := cmd.Flags().GetBool("all"); all {
		opts.Visibility |= astro.VisibilityAll &^ astro.VisibilityCatalog
	}
	if on, _ := cmd.Flags().GetBool("edsm"); on {
		opts.Visibility |= astro.VisibilityCatalog
	}
	if full, _ := cmd.Flags().GetBool("full-names"); full {
		opts.Style = state.NameFull
	}
	if opts.Visibility.Catalog() {
		opts.Catalog = edsm.NewClient(cfg.EDSMOptions()...)
	}

	report, err := summarize(cmd.Context(), f, opts)
	if err != nil {
		return err
	}
	ui.WriteSummary(cmd.OutOrStdout(), report)
	return nil
}

// summarize replays a journal into a new session, consults the catalog for
// the final system when enabled, and returns the report.
func summarize(ctx context.Context, r io.Reader, opts summaryOptions) (state.Report, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	session := state.NewSession()
	reader := journal.NewReader(r)
	for {
		ev, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if errors.Is(err, journal.ErrMalformed) {
			logger.Debug("Skipping journal entry: %v", err)
			continue
		}
		if err != nil {
			return state.Report{}, err
		}
		outcome := session.Apply(ev)
		opts.Metrics.ObserveEvent(journal.KindOf(ev), outcome.String())
	}

	if opts.Catalog != nil && opts.Visibility.Catalog() {
		lookupCatalog(ctx, session, opts, logger)
	}
	opts.Metrics.SetSessionCounts(session.Ledger().NumStars(), session.Ledger().NumBodies())

	return session.Report(opts.Visibility, opts.Style), nil
}

// lookupCatalog fetches on a separate goroutine and hands the tagged result
// back over a channel, so the session is only touched here.
func lookupCatalog(ctx context.Context, session *state.Session, opts summaryOptions, logger *logging.Logger) {
	system, ok := session.RequestCatalog()
	if !ok {
		return
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	results := make(chan edsm.Result, 1)
	go func() {
		results <- opts.Catalog.Fetch(ctx, system)
	}()

	var res edsm.Result
	select {
	case res = <-results:
	case <-ctx.Done():
		res = edsm.Result{System: system, Error: fmt.Errorf("%w: %w", edsm.ErrUnavailable, ctx.Err())}
	}

	applied := session.ApplyCatalog(res)
	opts.Metrics.ObserveCatalog(res, applied)
	if res.Error != nil {
		logger.Warn("Catalog lookup for %s failed: %v", system, res.Error)
	}
}
