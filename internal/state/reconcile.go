package state

import (
	"github.com/litescript/habzone/internal/astro"
	"github.com/litescript/habzone/internal/edsm"
	"github.com/litescript/habzone/internal/journal"
)

// Outcome describes what applying an event did to the session.
type Outcome int

const (
	OutcomeSkipped Outcome = iota // Nothing relevant or malformed; no side effects
	OutcomeUpdated                // Ledger changed
	OutcomeReset                  // Session reset for a new system
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSkipped:
		return "skipped"
	case OutcomeUpdated:
		return "updated"
	case OutcomeReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Apply feeds one live survey event into the session.
func (s *Session) Apply(ev journal.Event) Outcome {
	switch e := ev.(type) {
	case journal.SystemChanged:
		s.Reset(e.System)
		return OutcomeReset

	case journal.StarScanned:
		if e.Body == "" || e.Radius <= 0 || e.SurfaceTemp <= 0 {
			return OutcomeSkipped
		}
		s.adopt(e.System)
		s.ledger.RecordStar(e.Body, e.SurfaceTemp, e.Radius)
		return OutcomeUpdated

	case journal.PlanetScanned:
		if e.Body == "" {
			return OutcomeSkipped
		}
		ids := astro.MatchPlanetClass(e.PlanetClass)
		if e.TerraformState == astro.JournalTerraformable {
			ids = append(ids, astro.Terraformable)
		}
		if len(ids) == 0 {
			return OutcomeSkipped
		}
		s.adopt(e.System)
		for _, id := range ids {
			s.ledger.RecordBody(e.Body, id, e.WasMapped)
		}
		return OutcomeUpdated

	case journal.SurveyCompleted:
		if e.Body == "" || s.ledger.MarkMapped(e.Body) == 0 {
			return OutcomeSkipped
		}
		return OutcomeUpdated

	default:
		return OutcomeSkipped
	}
}

// adopt takes the system name from an event when none is tracked yet.
func (s *Session) adopt(system string) {
	if s.system == "" && system != "" {
		s.system = system
	}
}

// RequestCatalog marks a catalog lookup as outstanding and returns the
// system name to tag it with. It reports false when no system is tracked.
func (s *Session) RequestCatalog() (string, bool) {
	if s.system == "" {
		return "", false
	}
	s.catalog = CatalogPending
	return s.system, true
}

// ApplyCatalog merges a catalog result. Results tagged for a system other
// than the tracked one are stale and dropped; ApplyCatalog then returns
// false. A failed result marks the catalog unavailable without touching the
// ledger.
func (s *Session) ApplyCatalog(res edsm.Result) bool {
	if res.System == "" || res.System != s.system {
		return false
	}
	if res.Error != nil || res.Data == nil {
		s.catalog = CatalogUnavailable
		return true
	}

	s.mergeCatalog(res.Data)
	s.catalog = CatalogMerged
	return true
}

func (s *Session) mergeCatalog(sys *edsm.System) {
	for _, b := range sys.Bodies {
		if b.Name == "" {
			continue
		}
		if b.IsStar() && b.Radius > 0 && b.SurfaceTemp > 0 {
			s.ledger.RecordStar(b.Name, b.SurfaceTemp, b.Radius)
		}
		// The catalog carries no "mapped by others" flag.
		for _, id := range astro.MatchClass(b.SubType) {
			s.ledger.RecordBody(b.Name, id, false)
		}
		if b.TerraformingState == astro.CatalogTerraformable {
			s.ledger.RecordBody(b.Name, astro.Terraformable, false)
		}
	}
}
