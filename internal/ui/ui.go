// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/habzone/internal/astro"
	"github.com/litescript/habzone/internal/edsm"
	"github.com/litescript/habzone/internal/journal"
	"github.com/litescript/habzone/internal/logging"
	"github.com/litescript/habzone/internal/metrics"
	"github.com/litescript/habzone/internal/state"
	"github.com/litescript/habzone/internal/version"
)

// DefaultFetchTimeout bounds one catalog lookup, including rate-limit waits.
const DefaultFetchTimeout = 30 * time.Second

// Catalog is the subset of the catalog client the UI needs.
type Catalog interface {
	Fetch(ctx context.Context, system string) edsm.Result
	Invalidate(system string)
}

// Msg types for Bubble Tea
type (
	// AnimTickMsg triggers spinner updates.
	AnimTickMsg time.Time

	// JournalEventMsg carries one decoded journal event.
	JournalEventMsg struct {
		Event journal.Event
	}

	// CatalogMsg carries a finished catalog lookup.
	CatalogMsg struct {
		Result edsm.Result
	}

	// ErrorMsg signals a journal or watcher error.
	ErrorMsg struct {
		Error error
	}

	// journalClosedMsg signals that the event channel was closed.
	journalClosedMsg struct{}
)

// Option configures a Model.
type Option func(*Model)

// WithCatalog enables catalog lookups through c.
func WithCatalog(c Catalog) Option {
	return func(m *Model) {
		m.catalog = c
	}
}

// WithEvents makes the model read journal events from ch.
func WithEvents(ch <-chan journal.Event) Option {
	return func(m *Model) {
		m.events = ch
	}
}

// WithVisibility sets the initial visibility mask.
func WithVisibility(v astro.Visibility) Option {
	return func(m *Model) {
		m.visibility = v
	}
}

// WithSaveVisibility sets the callback used to persist visibility changes.
func WithSaveVisibility(fn func(astro.Visibility) error) Option {
	return func(m *Model) {
		m.saveVisibility = fn
	}
}

// WithNameStyle sets how body names are listed.
func WithNameStyle(s state.NameStyle) Option {
	return func(m *Model) {
		m.nameStyle = s
	}
}

// WithMetrics records event and catalog metrics into c.
func WithMetrics(c *metrics.Collector) Option {
	return func(m *Model) {
		m.metrics = c
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(m *Model) {
		m.log = l
	}
}

// WithFetchTimeout bounds each catalog lookup.
func WithFetchTimeout(d time.Duration) Option {
	return func(m *Model) {
		m.fetchTimeout = d
	}
}

// Model is the root Bubble Tea model. It owns the session; every event,
// catalog result and key press is applied inside Update.
type Model struct {
	// Dependencies
	session        *state.Session
	catalog        Catalog
	events         <-chan journal.Event
	saveVisibility func(astro.Visibility) error
	metrics        *metrics.Collector
	log            *logging.Logger
	fetchTimeout   time.Duration

	// Display settings
	visibility astro.Visibility
	nameStyle  state.NameStyle

	// UI state
	width       int
	height      int
	ready       bool
	statusMsg   string
	lastErr     error
	lastCatalog edsm.Result
	animTick    int
	closed      bool
}

// New creates a new root UI model around session.
func New(session *state.Session, opts ...Option) Model {
	m := Model{
		session:      session,
		visibility:   astro.VisibilityDefault,
		fetchTimeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(&m)
	}
	if m.log == nil {
		m.log = logging.Discard()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		animTickCmd(),
		waitForEvent(m.events),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg))

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case AnimTickMsg:
		cmds = append(cmds, animTickCmd())
		m.animTick++

	case JournalEventMsg:
		cmds = append(cmds, m.applyEvent(msg.Event), waitForEvent(m.events))

	case journalClosedMsg:
		m.closed = true
		m.events = nil

	case CatalogMsg:
		m.applyCatalog(msg.Result)

	case ErrorMsg:
		m.lastErr = msg.Error
		m.log.Warn("journal: %v", msg.Error)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	switch key {
	case "q", "ctrl+c":
		return tea.Quit

	case "left", "<":
		m.session.PreviousStar()
	case "right", ">":
		m.session.NextStar()

	case "1", "2", "3", "4", "5", "6", "7":
		id := astro.CategoryID(key[0] - '1')
		m.setVisibility(m.visibility.Toggle(id))

	case "e":
		m.setVisibility(m.visibility.ToggleCatalog())
		if m.visibility.Catalog() && m.session.CatalogStatus() == state.CatalogNone {
			return m.requestCatalog()
		}

	case "r":
		if m.catalog == nil {
			m.statusMsg = "Catalog lookups are not configured"
			return nil
		}
		if system := m.session.System(); system != "" {
			m.catalog.Invalidate(system)
		}
		return m.requestCatalog()

	case "n":
		if m.nameStyle == state.NameCompact {
			m.nameStyle = state.NameFull
		} else {
			m.nameStyle = state.NameCompact
		}
	}
	return nil
}

// setVisibility applies and persists a new mask.
func (m *Model) setVisibility(v astro.Visibility) {
	m.visibility = v
	if m.saveVisibility == nil {
		return
	}
	if err := m.saveVisibility(v); err != nil {
		m.statusMsg = fmt.Sprintf("Saving settings failed: %v", err)
		m.log.Error("save settings: %v", err)
		return
	}
	m.statusMsg = ""
}

func (m *Model) applyEvent(ev journal.Event) tea.Cmd {
	outcome := m.session.Apply(ev)
	m.metrics.ObserveEvent(journal.KindOf(ev), outcome.String())
	m.metrics.SetSessionCounts(m.session.Ledger().NumStars(), m.session.Ledger().NumBodies())

	if outcome != state.OutcomeReset {
		return nil
	}
	m.log.Info("Arrived in %s", m.session.System())
	m.lastErr = nil
	if m.visibility.Catalog() {
		return m.requestCatalog()
	}
	return nil
}

func (m *Model) applyCatalog(res edsm.Result) {
	applied := m.session.ApplyCatalog(res)
	m.metrics.ObserveCatalog(res, applied)
	if !applied {
		m.log.Debug("Discarding catalog result for %s, now in %s", res.System, m.session.System())
		return
	}
	m.lastCatalog = res
	m.metrics.SetSessionCounts(m.session.Ledger().NumStars(), m.session.Ledger().NumBodies())
	if res.Error != nil || res.Data == nil {
		m.log.Warn("Catalog lookup for %s failed: %v", res.System, res.Error)
		return
	}
	m.log.Debug("Catalog lookup for %s: %d bodies in %v", res.System, len(res.Data.Bodies), res.Duration)
}

// requestCatalog starts an asynchronous lookup for the current system. The
// result comes back as a CatalogMsg tagged with the system it was made for.
func (m *Model) requestCatalog() tea.Cmd {
	if m.catalog == nil {
		return nil
	}
	system, ok := m.session.RequestCatalog()
	if !ok {
		return nil
	}

	client := m.catalog
	timeout := m.fetchTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return CatalogMsg{Result: client.Fetch(ctx, system)}
	}
}

// Report returns the current session report.
func (m Model) Report() state.Report {
	return m.session.Report(m.visibility, m.nameStyle)
}

// Visibility returns the current visibility mask.
func (m Model) Visibility() astro.Visibility {
	return m.visibility
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	report := m.Report()
	header := m.renderHeader(report)
	footer := m.renderFooter(report)
	return header + "\n" + RenderReport(report) + "\n" + footer
}

func (m Model) renderHeader(r state.Report) string {
	var b strings.Builder
	b.WriteString("\n  ")
	b.WriteString(renderTitle("HABZONE"))

	b.WriteString(dimStyle.Render(fmt.Sprintf("  v%s", version.Version)))
	b.WriteString("\n\n")

	system := r.System
	if system == "" {
		system = m.renderShimmerText("Waiting for journal...")
	} else {
		system = systemStyle.Render(system)
	}
	b.WriteString("  " + labelStyle.Render("System: ") + system + "\n")
	return b.String()
}

func (m Model) renderFooter(r state.Report) string {
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))

	spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	spinner := spinnerFrames[m.animTick%len(spinnerFrames)]

	var status string
	switch {
	case m.lastErr != nil:
		status = errorStyle.Render("ERROR: " + m.lastErr.Error())
	case r.Catalog == state.CatalogPending:
		status = accentStyle.Render(spinner) + dimStyle.Render(" querying catalog")
	case r.Catalog == state.CatalogUnavailable:
		status = errorStyle.Render("catalog unavailable")
		if errors.Is(m.lastCatalog.Error, context.DeadlineExceeded) {
			status += dimStyle.Render(" (timeout)")
		}
	case r.Catalog == state.CatalogMerged:
		status = dimStyle.Render("catalog merged")
		if m.lastCatalog.Cached {
			status += dimStyle.Render(" (cached)")
		} else if m.lastCatalog.Duration > 0 {
			status += dimStyle.Render(" (" + m.lastCatalog.Duration.Round(time.Millisecond).String() + ")")
		}
	case !m.visibility.Catalog():
		status = dimStyle.Render("catalog off")
	default:
		status = dimStyle.Render("catalog idle")
	}
	if m.closed {
		status += dimStyle.Render(" | journal closed")
	}

	help := dimStyle.Render("←/→: star | 1-7: categories | e: catalog | r: requery | n: names | q: quit")
	footer := "  " + status + "  " + dimStyle.Render("|") + "  " + help
	footer += "\n  " + renderToggles(m.visibility)

	if m.statusMsg != "" {
		footer += "\n  " + dimStyle.Render(m.statusMsg)
	}
	return footer
}

func animTickCmd() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(t time.Time) tea.Msg {
		return AnimTickMsg(t)
	})
}

// waitForEvent blocks on the next journal event.
func waitForEvent(ch <-chan journal.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return journalClosedMsg{}
		}
		return JournalEventMsg{Event: ev}
	}
}

// SendError creates a command that sends an error message.
func SendError(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Error: err}
	}
}

// renderShimmerText renders text with a subtle moving shine effect.
func (m Model) renderShimmerText(text string) string {
	runes := []rune(text)
	textLen := len(runes)
	if textLen == 0 {
		return ""
	}

	pos := m.animTick % (textLen + 8)

	var result strings.Builder
	for i, r := range runes {
		dist := i - pos + 4
		if dist < 0 {
			dist = -dist
		}

		var r8, g8, b8 int
		switch {
		case dist <= 1:
			r8, g8, b8 = 180, 160, 220
		case dist <= 3:
			r8, g8, b8 = 140, 120, 180
		case dist <= 5:
			r8, g8, b8 = 110, 90, 150
		default:
			r8, g8, b8 = 80, 70, 120
		}

		style := lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", r8, g8, b8)))
		result.WriteString(style.Render(string(r)))
	}
	return result.String()
}
