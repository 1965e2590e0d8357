package ui

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/litescript/habzone/internal/state"
)

// CollapsedMark replaces the distance band when a category's zone lies
// inside the star.
const CollapsedMark = "×"

// UnavailableMark prefixes the body list when the catalog lookup failed.
const UnavailableMark = "?"

var numbers = message.NewPrinter(language.English)

// formatDistance renders a distance with digit grouping (1,591).
func formatDistance(d int) string {
	return numbers.Sprintf("%d", d)
}

// ZoneText renders a row's distance band: "501 - 752 ls", the collapsed mark,
// or "" when no star is active.
func ZoneText(row state.Row, unit string) string {
	if !row.HasZone {
		return ""
	}
	if row.Zone.Collapsed {
		return CollapsedMark
	}
	return fmt.Sprintf("%s - %s %s", formatDistance(row.Zone.Near), formatDistance(row.Zone.Far), unit)
}

// BodiesText joins a row's body names, prefixed with the unavailable mark
// when the catalog could not be consulted.
func BodiesText(row state.Row) string {
	names := strings.Join(row.Bodies, " ")
	if !row.Unavailable {
		return names
	}
	if names == "" {
		return UnavailableMark
	}
	return UnavailableMark + " " + names
}

// RowText renders one category as a single plain line.
func RowText(row state.Row, unit string) string {
	parts := []string{row.Category.Name + ":"}
	if b := BodiesText(row); b != "" {
		parts = append(parts, b)
	}
	if z := ZoneText(row, unit); z != "" {
		parts = append(parts, z)
	}
	return strings.Join(parts, " ")
}

// StarText renders the active star line.
func StarText(r state.Report) string {
	if !r.HasStar {
		return fmt.Sprintf("Star used: [%s]", r.StarLabel)
	}
	return fmt.Sprintf("Star used: [%s] %s", r.StarLabel, r.Star.Name)
}

// WriteSummary prints a report as plain text.
func WriteSummary(w io.Writer, r state.Report) {
	system := r.System
	if system == "" {
		system = "(unknown)"
	}
	fmt.Fprintf(w, "System: %s\n", system)
	fmt.Fprintln(w, StarText(r))
	if r.Catalog != state.CatalogNone {
		fmt.Fprintf(w, "Catalog: %s\n", r.Catalog)
	}
	if len(r.Rows) == 0 {
		fmt.Fprintln(w, "No categories enabled")
		return
	}
	for _, row := range r.Rows {
		fmt.Fprintln(w, RowText(row, r.Unit))
	}
}
