package state

import (
	"sort"
	"strings"

	"github.com/litescript/habzone/internal/astro"
)

// Survey markers appended to body display names.
const (
	MarkExternallySurveyed = "⍻"
	MarkSelfSurveyed       = "🗸"
)

// Star is a star measured in the current system.
type Star struct {
	Name        string
	SurfaceTemp float64 // kelvin
	Radius      float64 // meters
}

// Zone returns the rounded orbital band for a category around the star.
func (s Star) Zone(c astro.Category) astro.Range {
	return astro.ZoneFor(c, s.Radius, s.SurfaceTemp)
}

// BodyKey identifies a classified body. The same body may be held under its
// primary category and under Terraformable.
type BodyKey struct {
	Name     string
	Category astro.CategoryID
}

// ScannedBody is a body classified into a category.
type ScannedBody struct {
	Name      string
	Category  astro.CategoryID
	WasMapped bool // surveyed by someone else before this visit
	Mapped    bool // surveyed during this session
}

// Label returns the body name with its survey marker.
func (b ScannedBody) Label() string {
	switch {
	case b.WasMapped:
		return b.Name + MarkExternallySurveyed
	case b.Mapped:
		return b.Name + MarkSelfSurveyed
	default:
		return b.Name
	}
}

// Ledger holds the stars and classified bodies of one system.
type Ledger struct {
	stars     []Star
	starIndex map[string]int
	bodies    map[BodyKey]*ScannedBody
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		starIndex: make(map[string]int),
		bodies:    make(map[BodyKey]*ScannedBody),
	}
}

// RecordStar adds a star if its name is unseen. Recorded stars are never
// updated. It reports whether the star was added.
func (l *Ledger) RecordStar(name string, surfaceTemp, radius float64) bool {
	if _, ok := l.starIndex[name]; ok {
		return false
	}
	l.starIndex[name] = len(l.stars)
	l.stars = append(l.stars, Star{Name: name, SurfaceTemp: surfaceTemp, Radius: radius})
	return true
}

// RecordBody upserts a classified body. wasMapped is OR'ed into any stored
// flag. It reports whether a new entry was created.
func (l *Ledger) RecordBody(name string, category astro.CategoryID, wasMapped bool) bool {
	key := BodyKey{Name: name, Category: category}
	if b, ok := l.bodies[key]; ok {
		b.WasMapped = b.WasMapped || wasMapped
		return false
	}
	l.bodies[key] = &ScannedBody{Name: name, Category: category, WasMapped: wasMapped}
	return true
}

// MarkMapped flags every entry for the named body as surveyed this session
// and returns how many entries it touched.
func (l *Ledger) MarkMapped(name string) int {
	n := 0
	for key, b := range l.bodies {
		if key.Name == name {
			b.Mapped = true
			n++
		}
	}
	return n
}

// Stars returns the recorded stars in first-seen order.
func (l *Ledger) Stars() []Star {
	out := make([]Star, len(l.stars))
	copy(out, l.stars)
	return out
}

// NumStars returns the number of recorded stars.
func (l *Ledger) NumStars() int {
	return len(l.stars)
}

// Star returns the i-th recorded star.
func (l *Ledger) Star(i int) (Star, bool) {
	if i < 0 || i >= len(l.stars) {
		return Star{}, false
	}
	return l.stars[i], true
}

// Body returns the entry for a key.
func (l *Ledger) Body(key BodyKey) (ScannedBody, bool) {
	b, ok := l.bodies[key]
	if !ok {
		return ScannedBody{}, false
	}
	return *b, true
}

// NumBodies returns the number of classified entries.
func (l *Ledger) NumBodies() int {
	return len(l.bodies)
}

// Bodies returns the entries of a category sorted by name.
func (l *Ledger) Bodies(category astro.CategoryID) []ScannedBody {
	var out []ScannedBody
	for _, b := range l.bodies {
		if b.Category == category {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// DisplayNames returns the decorated names of a category, sorted.
//
// Names starting with the system name lose that prefix and every remaining
// space ("Sol A 1" in Sol becomes "A1"). Names from outside the system are
// kept in full when keepForeign is set and reported as "" otherwise.
func (l *Ledger) DisplayNames(category astro.CategoryID, system string, keepForeign bool) []string {
	bodies := l.Bodies(category)
	labels := make([]string, len(bodies))
	for i, b := range bodies {
		labels[i] = b.Label()
	}
	sort.Strings(labels)

	for i, label := range labels {
		switch {
		case strings.HasPrefix(label, system):
			labels[i] = strings.ReplaceAll(label[len(system):], " ", "")
		case !keepForeign:
			labels[i] = ""
		}
	}
	return labels
}
