// Package astro provides the habitable-zone math and the world category table.
package astro

import "math"

const (
	// LightSecond is the approximate length of one light-second in meters.
	LightSecond = 300000000.0

	// SolarRadius is one solar radius in meters, as used by the catalog.
	SolarRadius = 695500000.0

	// UnitLabel is the display unit for zone distances.
	UnitLabel = "ls"
)

// DistanceForTemperature returns the orbital distance, in light-seconds, at
// which a black body around a star of the given radius (meters) and surface
// temperature (kelvin) reaches the target equilibrium temperature.
// target must be positive.
//
// From Jackie Silver's Hab-Zone Calculator.
func DistanceForTemperature(radius, surfaceTemp, target float64) float64 {
	t2 := surfaceTemp * surfaceTemp
	g2 := target * target
	return math.Sqrt(radius*radius*t2*t2/(4*g2*g2)) / LightSecond
}

// Round rounds a non-negative distance half-up to whole light-seconds.
func Round(d float64) int {
	return int(math.Floor(d + 0.5))
}

// Range is the computed orbital band for one category around one star.
type Range struct {
	Near int
	Far  int

	// Collapsed is set when the band lies entirely inside the star.
	// Near and Far are meaningless in that case.
	Collapsed bool
}

// ZoneFor computes the rounded band for a category around a star.
// A category without a high threshold uses the star's surface as its near bound.
func ZoneFor(c Category, radius, surfaceTemp float64) Range {
	far := Round(DistanceForTemperature(radius, surfaceTemp, c.Low))
	surface := Round(radius / LightSecond)
	if far <= surface {
		return Range{Collapsed: true}
	}

	near := surface
	if c.HasHigh() {
		near = Round(DistanceForTemperature(radius, surfaceTemp, c.High))
	}
	return Range{Near: near, Far: far}
}
