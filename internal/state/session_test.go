package state

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/habzone/internal/astro"
	"github.com/litescript/habzone/internal/edsm"
	"github.com/litescript/habzone/internal/journal"
)

func solSession(t *testing.T) *Session {
	t.Helper()
	s := NewSession()
	require.Equal(t, OutcomeReset, s.Apply(journal.SystemChanged{Kind: "FSDJump", System: "Sol"}))
	require.Equal(t, OutcomeUpdated, s.Apply(journal.StarScanned{
		System: "Sol", Body: "Sol", StarType: "G", Radius: 6.96e8, SurfaceTemp: 5778,
	}))
	return s
}

func TestSession_SolEarthLike(t *testing.T) {
	s := solSession(t)
	assert.Equal(t, OutcomeUpdated, s.Apply(journal.PlanetScanned{
		System: "Sol", Body: "Earth", PlanetClass: "Earthlike body",
	}))

	r := s.Report(astro.VisibilityDefault, NameFull)
	assert.Equal(t, "Sol", r.System)
	assert.Equal(t, "1/1", r.StarLabel)
	assert.Equal(t, "ls", r.Unit)
	require.Len(t, r.Rows, 1)

	row := r.Rows[0]
	assert.Equal(t, astro.EarthLike, row.Category.ID)
	require.True(t, row.HasZone)
	assert.Equal(t, astro.Range{Near: 501, Far: 752}, row.Zone)
	assert.Equal(t, []string{"Earth"}, row.Bodies)
	assert.False(t, row.Unavailable)
}

func TestSession_CompactHidesForeignNames(t *testing.T) {
	s := solSession(t)
	s.Apply(journal.PlanetScanned{System: "Sol", Body: "Earth", PlanetClass: "Earthlike body"})
	s.Apply(journal.PlanetScanned{System: "Sol", Body: "Sol 3", PlanetClass: "Earthlike body"})

	r := s.Report(astro.VisibilityDefault, NameCompact)
	require.Len(t, r.Rows, 1)
	assert.Equal(t, []string{"3"}, r.Rows[0].Bodies)
}

func TestSession_PlanetClassification(t *testing.T) {
	tests := []struct {
		name  string
		event journal.PlanetScanned
		want  []astro.CategoryID
	}{
		{
			name:  "class II alias",
			event: journal.PlanetScanned{Body: "Sol 5", PlanetClass: "Sudarsky class II gas giant"},
			want:  []astro.CategoryID{astro.ClassIIGiant},
		},
		{
			name:  "terraformable water world",
			event: journal.PlanetScanned{Body: "Sol 4", PlanetClass: "Water world", TerraformState: "Terraformable"},
			want:  []astro.CategoryID{astro.WaterWorld, astro.Terraformable},
		},
		{
			name:  "terraformable only",
			event: journal.PlanetScanned{Body: "Sol 2", PlanetClass: "High metal content body", TerraformState: "Terraformable"},
			want:  []astro.CategoryID{astro.Terraformable},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := solSession(t)
			tt.event.System = "Sol"
			assert.Equal(t, OutcomeUpdated, s.Apply(tt.event))
			assert.Equal(t, len(tt.want), s.Ledger().NumBodies())
			for _, id := range tt.want {
				_, ok := s.Ledger().Body(BodyKey{Name: tt.event.Body, Category: id})
				assert.True(t, ok, "missing %s entry", id)
			}
		})
	}
}

func TestSession_IrrelevantEventsSkipped(t *testing.T) {
	s := solSession(t)

	assert.Equal(t, OutcomeSkipped, s.Apply(journal.PlanetScanned{System: "Sol", Body: "Sol 1", PlanetClass: "Icy body"}))
	assert.Equal(t, OutcomeSkipped, s.Apply(journal.StarScanned{System: "Sol", Body: "Sol B"}))
	assert.Equal(t, OutcomeSkipped, s.Apply(journal.SurveyCompleted{Body: "Sol 9"}))
	assert.Equal(t, OutcomeSkipped, s.Apply(nil))

	assert.Equal(t, 1, s.Ledger().NumStars())
	assert.Zero(t, s.Ledger().NumBodies())
}

func TestSession_SurveyCompletedMarksMapped(t *testing.T) {
	s := solSession(t)
	s.Apply(journal.PlanetScanned{System: "Sol", Body: "Sol 4", PlanetClass: "Water world", TerraformState: "Terraformable"})

	assert.Equal(t, OutcomeUpdated, s.Apply(journal.SurveyCompleted{Body: "Sol 4"}))

	r := s.Report(astro.Visibility(astro.WaterWorld.Get().Bit()|astro.Terraformable.Get().Bit()), NameCompact)
	require.Len(t, r.Rows, 2)
	assert.Equal(t, []string{"4🗸"}, r.Rows[0].Bodies)
	assert.Equal(t, []string{"4🗸"}, r.Rows[1].Bodies)
}

func TestSession_StarCycling(t *testing.T) {
	s := solSession(t)
	s.Apply(journal.StarScanned{System: "Sol", Body: "Sol B", Radius: 1.5e8, SurfaceTemp: 2500})
	s.Apply(journal.StarScanned{System: "Sol", Body: "Sol C", Radius: 1e7, SurfaceTemp: 5000})

	s.NextStar()
	s.NextStar()
	star, ok := s.ActiveStar()
	require.True(t, ok)
	assert.Equal(t, "Sol C", star.Name)
	assert.Equal(t, "3/3", s.StarLabel())

	s.NextStar()
	assert.Equal(t, 0, s.ActiveIndex())

	s.PreviousStar()
	assert.Equal(t, 2, s.ActiveIndex())

	// The zone follows the active star.
	s.PreviousStar()
	r := s.Report(astro.Visibility(astro.MetalRich.Get().Bit()), NameCompact)
	require.Len(t, r.Rows, 1)
	assert.Equal(t, "Sol B", r.Star.Name)
	assert.True(t, r.Rows[0].Zone.Collapsed)
}

func TestSession_ResetClearsEverything(t *testing.T) {
	s := solSession(t)
	s.Apply(journal.StarScanned{System: "Sol", Body: "Sol B", Radius: 1.5e8, SurfaceTemp: 2500})
	s.Apply(journal.PlanetScanned{System: "Sol", Body: "Earth", PlanetClass: "Earthlike body"})
	s.NextStar()
	_, ok := s.RequestCatalog()
	require.True(t, ok)

	assert.Equal(t, OutcomeReset, s.Apply(journal.SystemChanged{Kind: "Location", System: "Achenar"}))
	assert.Equal(t, "Achenar", s.System())
	assert.Zero(t, s.Ledger().NumStars())
	assert.Zero(t, s.Ledger().NumBodies())
	assert.Equal(t, 0, s.ActiveIndex())
	assert.Equal(t, "0/0", s.StarLabel())
	assert.Equal(t, CatalogNone, s.CatalogStatus())

	r := s.Report(astro.VisibilityDefault, NameFull)
	require.Len(t, r.Rows, 1)
	assert.False(t, r.HasStar)
	assert.False(t, r.Rows[0].HasZone)
	assert.Empty(t, r.Rows[0].Bodies)
}

func TestSession_AdoptsSystemFromScan(t *testing.T) {
	s := NewSession()
	s.Apply(journal.StarScanned{System: "Sol", Body: "Sol", Radius: 6.96e8, SurfaceTemp: 5778})
	assert.Equal(t, "Sol", s.System())

	s.Apply(journal.StarScanned{System: "Achenar", Body: "Achenar", Radius: 6.96e8, SurfaceTemp: 5778})
	assert.Equal(t, "Sol", s.System(), "tracked system changes only on reset")
}

func TestSession_CatalogMerge(t *testing.T) {
	s := NewSession()
	s.Reset("Sol")

	system, ok := s.RequestCatalog()
	require.True(t, ok)
	assert.Equal(t, "Sol", system)
	assert.Equal(t, CatalogPending, s.CatalogStatus())

	data := &edsm.System{Name: "Sol", Bodies: []edsm.Body{
		{Name: "Sol", Type: "Star", SubType: "G (White-Yellow) Star", SurfaceTemp: 5778, Radius: 6.96e8},
		{Name: "Earth", Type: "Planet", SubType: "Earth-like world", SurfaceTemp: 288},
		{Name: "Mars", Type: "Planet", SubType: "High metal content world", TerraformingState: "Candidate for terraforming"},
		{Name: "Mercury", Type: "Planet", SubType: "Metal-rich body"},
		{Name: "Europa", Type: "Planet", SubType: "Icy body"},
	}}
	assert.True(t, s.ApplyCatalog(edsm.Result{System: "Sol", Data: data}))
	assert.Equal(t, CatalogMerged, s.CatalogStatus())

	assert.Equal(t, 1, s.Ledger().NumStars())
	assert.Equal(t, 3, s.Ledger().NumBodies())
	for _, key := range []BodyKey{
		{Name: "Earth", Category: astro.EarthLike},
		{Name: "Mars", Category: astro.Terraformable},
		{Name: "Mercury", Category: astro.MetalRich},
	} {
		b, ok := s.Ledger().Body(key)
		require.True(t, ok, "missing %v", key)
		assert.False(t, b.WasMapped)
	}

	// Live data recorded earlier keeps its flags through a merge.
	s.Apply(journal.PlanetScanned{System: "Sol", Body: "Earth", PlanetClass: "Earthlike body", WasMapped: true})
	s.ApplyCatalog(edsm.Result{System: "Sol", Data: data})
	b, _ := s.Ledger().Body(BodyKey{Name: "Earth", Category: astro.EarthLike})
	assert.True(t, b.WasMapped)
}

func TestSession_CatalogFailure(t *testing.T) {
	s := solSession(t)
	s.Apply(journal.PlanetScanned{System: "Sol", Body: "Earth", PlanetClass: "Earthlike body"})
	s.RequestCatalog()

	assert.True(t, s.ApplyCatalog(edsm.Result{System: "Sol", Error: errors.Join(edsm.ErrUnavailable, errors.New("timeout"))}))
	assert.Equal(t, CatalogUnavailable, s.CatalogStatus())

	r := s.Report(astro.VisibilityDefault, NameFull)
	require.Len(t, r.Rows, 1)
	assert.True(t, r.Rows[0].Unavailable)
	assert.Equal(t, []string{"Earth"}, r.Rows[0].Bodies, "live bodies stay listed")
	assert.Equal(t, 1, s.Ledger().NumBodies())
}

func TestSession_StaleCatalogDiscarded(t *testing.T) {
	s := NewSession()
	s.Reset("Sol")
	system, _ := s.RequestCatalog()

	s.Apply(journal.SystemChanged{Kind: "FSDJump", System: "Achenar"})

	stale := edsm.Result{System: system, Data: &edsm.System{Name: "Sol", Bodies: []edsm.Body{
		{Name: "Earth", Type: "Planet", SubType: "Earth-like world"},
	}}}
	assert.False(t, s.ApplyCatalog(stale))
	assert.Zero(t, s.Ledger().NumBodies())
	assert.Equal(t, CatalogNone, s.CatalogStatus())

	assert.False(t, s.ApplyCatalog(edsm.Result{}), "untagged results are stale")
}

func TestSession_RequestCatalogWithoutSystem(t *testing.T) {
	s := NewSession()
	_, ok := s.RequestCatalog()
	assert.False(t, ok)
	assert.Equal(t, CatalogNone, s.CatalogStatus())
}
