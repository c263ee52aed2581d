package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveTick(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := New(reg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	c.ObserveTick(-45, true, false)
	c.ObserveTick(-44.75, false, true)

	if got := testutil.ToFloat64(c.Ticks); got != 2 {
		t.Errorf("ticks_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.MidnightLongitude); got != -44.75 {
		t.Errorf("midnight_longitude_degrees = %v, want -44.75", got)
	}
	if got := testutil.ToFloat64(c.FollowEnabled); got != 0 {
		t.Errorf("follow_enabled = %v, want 0", got)
	}
	if got := testutil.ToFloat64(c.ClockResyncs); got != 1 {
		t.Errorf("clock_resyncs_total = %v, want 1", got)
	}
}

func TestObserveFallback(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := New(reg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c.ObserveFallback("apparent")
	c.ObserveFallback("apparent")
	if got := testutil.ToFloat64(c.Fallbacks.WithLabelValues("apparent")); got != 2 {
		t.Errorf("midnight_fallbacks_total{strategy=apparent} = %v, want 2", got)
	}
}

func TestNewReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := New(reg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	second, err := New(reg)
	if err != nil {
		t.Fatalf("second New: %v", err)
	}
	second.SetClients(3)
	if got := testutil.ToFloat64(first.ViewerClients); got != 3 {
		t.Errorf("viewer_clients = %v, want 3 through the shared gauge", got)
	}
}

func TestNilCollectorIsNoop(t *testing.T) {
	var c *Collector
	c.ObserveTick(1, true, true)
	c.ObserveFallback("apparent")
	c.SetClients(1)
}

func TestHandlerExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := New(reg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c.ObserveTick(90, true, false)
	c.ObserveFallback("apparent")

	rr := httptest.NewRecorder()
	c.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	for _, want := range []string{
		"midnight_longitude_degrees 90",
		"follow_enabled 1",
		"ticks_total 1",
		`midnight_fallbacks_total{strategy="apparent"} 1`,
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
