package journal

import (
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

const sampleJournal = `{ "timestamp":"2024-03-01T10:00:00Z", "event":"Fileheader", "part":1, "gameversion":"4.0" }
{ "timestamp":"2024-03-01T10:00:05Z", "event":"FSDJump", "StarSystem":"Shinrarta Dezhra", "JumpDist":12.3 }
{ "timestamp":"2024-03-01T10:00:30Z", "event":"Scan", "ScanType":"AutoScan", "BodyName":"Shinrarta Dezhra A", "StarSystem":"Shinrarta Dezhra", "StarType":"K", "Radius":512000000.0, "SurfaceTemperature":4800.0 }
{ "timestamp":"2024-03-01T10:01:00Z", "event":"Scan", "BodyName":"Shinrarta Dezhra A 1", "StarSystem":"Shinrarta Dezhra", "PlanetClass":"Earthlike body", "TerraformState":"", "WasMapped":true }
{ "timestamp":"2024-03-01T10:01:10Z", "event":"Scan", "BodyName":"Shinrarta Dezhra A Belt Cluster 1", "StarSystem":"Shinrarta Dezhra" }
{ "timestamp":"2024-03-01T10:01:20Z", "event":"Scan", "BodyName":"Shinrarta Dezhra B", "StarType":"M" }
{ "timestamp":"2024-03-01T10:02:00Z", "event":"Scan", "BodyName":"Shinrarta Dezhra A 2", "PlanetClass":"High metal content body", "TerraformState":"Terraformable" }

{ "timestamp":"2024-03-01T10:05:00Z", "event":"SAAScanComplete", "BodyName":"Shinrarta Dezhra A 2", "ProbesUsed":5 }
not json
{ "timestamp":"2024-03-01T10:06:00Z", "event":"Music", "MusicTrack":"Exploration" }
`

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    Event
		wantErr error
	}{
		{
			name: "star scan",
			line: `{"timestamp":"2024-03-01T10:00:30Z","event":"Scan","BodyName":"Sol","StarSystem":"Sol","StarType":"G","Radius":696000000.0,"SurfaceTemperature":5778.0}`,
			want: StarScanned{
				Timestamp:   time.Date(2024, 3, 1, 10, 0, 30, 0, time.UTC),
				System:      "Sol",
				Body:        "Sol",
				StarType:    "G",
				Radius:      696000000,
				SurfaceTemp: 5778,
			},
		},
		{
			name: "planet scan",
			line: `{"event":"Scan","BodyName":"Sol 3","PlanetClass":"Earthlike body","TerraformState":"","WasMapped":true}`,
			want: PlanetScanned{Body: "Sol 3", PlanetClass: "Earthlike body", WasMapped: true},
		},
		{
			name: "terraform state only",
			line: `{"event":"Scan","BodyName":"Sol 4","TerraformState":"Terraformable"}`,
			want: PlanetScanned{Body: "Sol 4", TerraformState: "Terraformable"},
		},
		{
			name: "survey complete",
			line: `{"event":"SAAScanComplete","BodyName":"Sol 4"}`,
			want: SurveyCompleted{Body: "Sol 4"},
		},
		{
			name: "location",
			line: `{"event":"Location","StarSystem":"Sol"}`,
			want: SystemChanged{Kind: "Location", System: "Sol"},
		},
		{
			name: "startup without system",
			line: `{"event":"StartUp"}`,
			want: SystemChanged{Kind: "StartUp"},
		},
		{name: "belt cluster", line: `{"event":"Scan","BodyName":"Sol Belt Cluster 1"}`, wantErr: ErrIgnored},
		{name: "other event", line: `{"event":"Docked"}`, wantErr: ErrIgnored},
		{name: "star without radius", line: `{"event":"Scan","BodyName":"Sol","StarType":"G","SurfaceTemperature":5778}`, wantErr: ErrMalformed},
		{name: "scan without body", line: `{"event":"Scan","PlanetClass":"Water world"}`, wantErr: ErrMalformed},
		{name: "survey without body", line: `{"event":"SAAScanComplete"}`, wantErr: ErrMalformed},
		{name: "not json", line: `{"event":`, wantErr: ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode([]byte(tt.line))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Decode() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Decode() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestReader(t *testing.T) {
	r := NewReader(strings.NewReader(sampleJournal))

	var events []Event
	var malformed int
	for {
		ev, err := r.Next()
		if err == io.EOF {
			break
		}
		if errors.Is(err, ErrMalformed) {
			malformed++
			continue
		}
		if err != nil {
			t.Fatalf("Next() unexpected error: %v", err)
		}
		events = append(events, ev)
	}

	// Star B without radius and the "not json" line.
	if malformed != 2 {
		t.Errorf("malformed = %d, want 2", malformed)
	}

	if len(events) != 5 {
		t.Fatalf("got %d events, want 5: %#v", len(events), events)
	}
	if _, ok := events[0].(SystemChanged); !ok {
		t.Errorf("events[0] = %T, want SystemChanged", events[0])
	}
	if star, ok := events[1].(StarScanned); !ok || star.Radius != 512000000 {
		t.Errorf("events[1] = %#v, want star scan", events[1])
	}
	if p, ok := events[2].(PlanetScanned); !ok || !p.WasMapped {
		t.Errorf("events[2] = %#v, want mapped planet scan", events[2])
	}
	if p, ok := events[3].(PlanetScanned); !ok || p.TerraformState != "Terraformable" {
		t.Errorf("events[3] = %#v, want terraformable planet", events[3])
	}
	if s, ok := events[4].(SurveyCompleted); !ok || s.Body != "Shinrarta Dezhra A 2" {
		t.Errorf("events[4] = %#v, want survey complete", events[4])
	}
	if r.Line() != 11 {
		t.Errorf("Line() = %d, want 11", r.Line())
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		ev   Event
		want string
	}{
		{StarScanned{}, "star"},
		{PlanetScanned{}, "planet"},
		{SurveyCompleted{}, "survey"},
		{SystemChanged{}, "system"},
		{nil, "unknown"},
	}
	for _, tt := range tests {
		if got := KindOf(tt.ev); got != tt.want {
			t.Errorf("KindOf(%T) = %q, want %q", tt.ev, got, tt.want)
		}
	}
}
