// Package state reconciles survey events and catalog data into the picture
// of the current star system.
//
// A Session is not safe for concurrent use. All events, catalog results and
// cursor moves must be funneled through one goroutine.
package state

// CatalogStatus is the state of the catalog lookup for the current system.
type CatalogStatus int

const (
	CatalogNone        CatalogStatus = iota // Not requested
	CatalogPending                          // Requested, no result yet
	CatalogMerged                           // Result merged into the ledger
	CatalogUnavailable                      // Fetch failed or payload unusable
)

func (s CatalogStatus) String() string {
	switch s {
	case CatalogNone:
		return "none"
	case CatalogPending:
		return "pending"
	case CatalogMerged:
		return "merged"
	case CatalogUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Session is the per-system state: the ledger, the star cursor and the
// catalog status. It is reset whenever the commander changes system.
type Session struct {
	system  string
	ledger  *Ledger
	cursor  Cursor
	catalog CatalogStatus
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{ledger: NewLedger()}
}

// Reset clears all stars, bodies and the cursor, and starts tracking system.
// An empty system name leaves the session without a current system until an
// event supplies one.
func (s *Session) Reset(system string) {
	s.system = system
	s.ledger = NewLedger()
	s.cursor.Reset()
	s.catalog = CatalogNone
}

// System returns the name of the tracked system.
func (s *Session) System() string {
	return s.system
}

// Ledger returns the session's ledger.
func (s *Session) Ledger() *Ledger {
	return s.ledger
}

// CatalogStatus returns the catalog lookup state.
func (s *Session) CatalogStatus() CatalogStatus {
	return s.catalog
}

// NextStar makes the following star active. It reports false when there
// are no stars.
func (s *Session) NextStar() bool {
	return s.cursor.Next(s.ledger.NumStars())
}

// PreviousStar makes the preceding star active. It reports false when there
// are no stars.
func (s *Session) PreviousStar() bool {
	return s.cursor.Previous(s.ledger.NumStars())
}

// ActiveStar returns the star zones are computed for.
func (s *Session) ActiveStar() (Star, bool) {
	return s.ledger.Star(s.cursor.Index())
}

// ActiveIndex returns the cursor position.
func (s *Session) ActiveIndex() int {
	return s.cursor.Index()
}

// StarLabel returns the active star position as "index/total".
func (s *Session) StarLabel() string {
	return s.cursor.Label(s.ledger.NumStars())
}
