package state

import "github.com/litescript/habzone/internal/astro"

// NameStyle selects how body names are listed.
type NameStyle int

const (
	// NameCompact strips the system prefix and hides bodies from elsewhere.
	NameCompact NameStyle = iota
	// NameFull strips the system prefix and lists other bodies in full.
	NameFull
)

// Row is the output for one enabled category.
type Row struct {
	Category astro.Category

	// Zone is the band around the active star; valid only when HasZone.
	Zone    astro.Range
	HasZone bool

	Bodies []string

	// Unavailable is set when the catalog lookup for this system failed.
	Unavailable bool
}

// Report is everything a presentation layer needs to draw the session.
type Report struct {
	System    string
	Star      Star
	HasStar   bool
	StarLabel string
	Catalog   CatalogStatus
	Unit      string
	Rows      []Row
}

// Report builds the output for the categories enabled in mask.
func (s *Session) Report(mask astro.Visibility, style NameStyle) Report {
	star, hasStar := s.ActiveStar()
	r := Report{
		System:    s.system,
		Star:      star,
		HasStar:   hasStar,
		StarLabel: s.StarLabel(),
		Catalog:   s.catalog,
		Unit:      astro.UnitLabel,
	}

	for _, c := range mask.Enabled() {
		row := Row{
			Category:    c,
			Unavailable: s.catalog == CatalogUnavailable,
		}
		if hasStar {
			row.Zone = star.Zone(c)
			row.HasZone = true
		}
		for _, name := range s.ledger.DisplayNames(c.ID, s.system, style == NameFull) {
			if name != "" {
				row.Bodies = append(row.Bodies, name)
			}
		}
		r.Rows = append(r.Rows, row)
	}
	return r
}
