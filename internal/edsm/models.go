// Package edsm queries the Elite Dangerous Star Map catalog for the bodies of a system.
package edsm

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/litescript/habzone/internal/astro"
)

// System is a decoded catalog response.
type System struct {
	Name   string
	Bodies []Body
}

// Body is one catalog body descriptor.
type Body struct {
	Name              string
	Type              string // "Star" or "Planet"
	SubType           string
	SurfaceTemp       float64 // kelvin, zero if unknown
	Radius            float64 // meters, zero if unknown; stars only
	TerraformingState string
}

// IsStar reports whether the body is a star.
func (b Body) IsStar() bool {
	return b.Type == "Star"
}

// wire structures matching the catalog JSON

type wireSystem struct {
	Name   string     `json:"name"`
	Bodies []wireBody `json:"bodies"`
}

type wireBody struct {
	Name               string   `json:"name"`
	Type               string   `json:"type"`
	SubType            string   `json:"subType"`
	SurfaceTemperature *float64 `json:"surfaceTemperature"`
	SolarRadius        *float64 `json:"solarRadius"`
	TerraformingState  string   `json:"terraformingState"`
}

// Parse decodes a catalog bodies response. The catalog answers an unknown
// system with an empty array or object, which decodes to a System without
// bodies.
func Parse(data []byte) (*System, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty response")
	}

	if trimmed[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("decode catalog JSON: %w", err)
		}
		if len(items) != 0 {
			return nil, fmt.Errorf("unexpected array response with %d items", len(items))
		}
		return &System{}, nil
	}

	var ws wireSystem
	if err := json.Unmarshal(trimmed, &ws); err != nil {
		return nil, fmt.Errorf("decode catalog JSON: %w", err)
	}

	sys := &System{
		Name:   ws.Name,
		Bodies: make([]Body, 0, len(ws.Bodies)),
	}
	for _, wb := range ws.Bodies {
		b := Body{
			Name:              wb.Name,
			Type:              wb.Type,
			SubType:           wb.SubType,
			TerraformingState: wb.TerraformingState,
		}
		if wb.SurfaceTemperature != nil {
			b.SurfaceTemp = *wb.SurfaceTemperature
		}
		if wb.SolarRadius != nil {
			b.Radius = *wb.SolarRadius * astro.SolarRadius
		}
		sys.Bodies = append(sys.Bodies, b)
	}
	return sys, nil
}
