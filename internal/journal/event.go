// Package journal decodes the commander's journal into survey events.
package journal

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrIgnored is returned for journal entries that carry no survey data.
	ErrIgnored = errors.New("journal: entry ignored")

	// ErrMalformed is returned for entries missing fields required by their kind.
	ErrMalformed = errors.New("journal: malformed entry")
)

// Event is a decoded survey event. It is one of StarScanned, PlanetScanned,
// SurveyCompleted or SystemChanged.
type Event interface {
	// Time returns the journal timestamp of the event.
	Time() time.Time
}

// StarScanned is a detailed scan of a star.
type StarScanned struct {
	Timestamp   time.Time
	System      string
	Body        string
	StarType    string
	Radius      float64 // meters
	SurfaceTemp float64 // kelvin
}

// PlanetScanned is a detailed scan of a planet or moon.
type PlanetScanned struct {
	Timestamp      time.Time
	System         string
	Body           string
	PlanetClass    string
	TerraformState string
	WasMapped      bool
}

// SurveyCompleted is emitted when the commander finishes a surface map.
type SurveyCompleted struct {
	Timestamp time.Time
	Body      string
}

// SystemChanged is emitted on arrival in a system or on game start.
type SystemChanged struct {
	Timestamp time.Time
	Kind      string // Location, FSDJump or StartUp
	System    string
}

func (e StarScanned) Time() time.Time     { return e.Timestamp }
func (e PlanetScanned) Time() time.Time   { return e.Timestamp }
func (e SurveyCompleted) Time() time.Time { return e.Timestamp }
func (e SystemChanged) Time() time.Time   { return e.Timestamp }

// KindOf returns a short label for an event, for logs and metrics.
func KindOf(ev Event) string {
	switch ev.(type) {
	case StarScanned:
		return "star"
	case PlanetScanned:
		return "planet"
	case SurveyCompleted:
		return "survey"
	case SystemChanged:
		return "system"
	default:
		return "unknown"
	}
}

// entry mirrors the subset of journal fields used here.
type entry struct {
	Timestamp          time.Time `json:"timestamp"`
	Event              string    `json:"event"`
	StarSystem         string    `json:"StarSystem"`
	BodyName           string    `json:"BodyName"`
	StarType           string    `json:"StarType"`
	Radius             *float64  `json:"Radius"`
	SurfaceTemperature *float64  `json:"SurfaceTemperature"`
	PlanetClass        string    `json:"PlanetClass"`
	TerraformState     string    `json:"TerraformState"`
	WasMapped          bool      `json:"WasMapped"`
}

// Decode parses one journal line.
func Decode(line []byte) (Event, error) {
	var e entry
	if err := json.Unmarshal(line, &e); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	switch e.Event {
	case "Scan":
		return decodeScan(e)

	case "SAAScanComplete":
		if e.BodyName == "" {
			return nil, fmt.Errorf("%w: SAAScanComplete without BodyName", ErrMalformed)
		}
		return SurveyCompleted{Timestamp: e.Timestamp, Body: e.BodyName}, nil

	case "Location", "FSDJump", "StartUp":
		return SystemChanged{Timestamp: e.Timestamp, Kind: e.Event, System: e.StarSystem}, nil

	default:
		return nil, ErrIgnored
	}
}

func decodeScan(e entry) (Event, error) {
	if e.BodyName == "" {
		return nil, fmt.Errorf("%w: Scan without BodyName", ErrMalformed)
	}

	if e.StarType != "" {
		if e.Radius == nil || e.SurfaceTemperature == nil {
			return nil, fmt.Errorf("%w: star scan of %s without Radius or SurfaceTemperature", ErrMalformed, e.BodyName)
		}
		return StarScanned{
			Timestamp:   e.Timestamp,
			System:      e.StarSystem,
			Body:        e.BodyName,
			StarType:    e.StarType,
			Radius:      *e.Radius,
			SurfaceTemp: *e.SurfaceTemperature,
		}, nil
	}

	if e.PlanetClass == "" && e.TerraformState == "" {
		// Belt clusters and rings.
		return nil, ErrIgnored
	}

	return PlanetScanned{
		Timestamp:      e.Timestamp,
		System:         e.StarSystem,
		Body:           e.BodyName,
		PlanetClass:    e.PlanetClass,
		TerraformState: e.TerraformState,
		WasMapped:      e.WasMapped,
	}, nil
}
