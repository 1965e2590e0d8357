package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/litescript/habzone/internal/edsm"
)

func newTestCollector(t *testing.T) (*Collector, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}
	return c, reg
}

func TestObserveEvent(t *testing.T) {
	c, _ := newTestCollector(t)

	c.ObserveEvent("planet", "updated")
	c.ObserveEvent("planet", "updated")
	c.ObserveEvent("system", "reset")

	if got := testutil.ToFloat64(c.Events.WithLabelValues("planet", "updated")); got != 2 {
		t.Errorf("planet/updated = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.Events.WithLabelValues("system", "reset")); got != 1 {
		t.Errorf("system/reset = %v, want 1", got)
	}
}

func TestObserveCatalog(t *testing.T) {
	c, reg := newTestCollector(t)

	c.ObserveCatalog(edsm.Result{System: "Sol", Duration: 200 * time.Millisecond}, true)
	c.ObserveCatalog(edsm.Result{System: "Sol", Cached: true}, true)
	c.ObserveCatalog(edsm.Result{System: "Sol", Error: edsm.ErrUnavailable, Duration: time.Second}, true)
	c.ObserveCatalog(edsm.Result{System: "Sol", Error: errors.New("late")}, false)

	for result, want := range map[string]float64{
		ResultOK:     1,
		ResultCached: 1,
		ResultError:  1,
		ResultStale:  1,
	} {
		if got := testutil.ToFloat64(c.CatalogFetches.WithLabelValues(result)); got != want {
			t.Errorf("%s = %v, want %v", result, got, want)
		}
	}

	count, err := testutil.GatherAndCount(reg, "habzone_catalog_fetch_duration_seconds")
	if err != nil {
		t.Fatalf("GatherAndCount: %v", err)
	}
	if count != 1 {
		t.Errorf("duration series = %d, want 1", count)
	}
}

func TestNilCollector(t *testing.T) {
	var c *Collector
	c.ObserveEvent("star", "updated")
	c.ObserveCatalog(edsm.Result{}, true)
	c.SetSessionCounts(1, 2)
	if c.Handler() == nil {
		t.Error("Handler() on nil collector returned nil")
	}
}

func TestRegisterTwice(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("first NewCollector: %v", err)
	}
	second, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("second NewCollector: %v", err)
	}

	second.ObserveEvent("star", "updated")
	if got := testutil.ToFloat64(first.Events.WithLabelValues("star", "updated")); got != 1 {
		t.Errorf("shared counter = %v, want 1", got)
	}
}

func TestHandlerExposesGauges(t *testing.T) {
	c, _ := newTestCollector(t)
	c.SetSessionCounts(3, 7)

	rr := httptest.NewRecorder()
	c.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	for _, want := range []string{"habzone_session_stars 3", "habzone_session_bodies 7"} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
