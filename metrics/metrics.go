// Package metrics exposes the host's Prometheus metrics.
package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles the host metrics. A nil *Collector ignores every call so
// tests and tools can run without a registry.
type Collector struct {
	gatherer prometheus.Gatherer

	MidnightLongitude prometheus.Gauge
	FollowEnabled     prometheus.Gauge
	ViewerClients     prometheus.Gauge
	Ticks             prometheus.Counter
	Fallbacks         *prometheus.CounterVec
	ClockResyncs      prometheus.Counter
}

// New registers the host metrics against reg, defaulting to the global
// Prometheus registry when nil.
func New(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	c := &Collector{gatherer: gatherer}
	var err error

	if c.MidnightLongitude, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "midnight_longitude_degrees",
		Help: "Longitude currently at solar midnight, in (-180, 180].",
	}), "midnight_longitude_degrees"); err != nil {
		return nil, err
	}
	if c.FollowEnabled, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "follow_enabled",
		Help: "1 while the camera follows the midnight line.",
	}), "follow_enabled"); err != nil {
		return nil, err
	}
	if c.ViewerClients, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "viewer_clients",
		Help: "Connected globe viewer clients.",
	}), "viewer_clients"); err != nil {
		return nil, err
	}
	if c.Ticks, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ticks_total",
		Help: "Host ticks processed.",
	}), "ticks_total"); err != nil {
		return nil, err
	}
	if c.Fallbacks, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "midnight_fallbacks_total",
		Help: "Midnight longitude evaluations where a strategy was unavailable, by strategy.",
	}, []string{"strategy"}), "midnight_fallbacks_total"); err != nil {
		return nil, err
	}
	if c.ClockResyncs, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "clock_resyncs_total",
		Help: "Times the simulated clock snapped back to wall time.",
	}), "clock_resyncs_total"); err != nil {
		return nil, err
	}
	return c, nil
}

// Handler exposes a ready-to-use /metrics handler.
func (c *Collector) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if c != nil && c.gatherer != nil {
		gatherer = c.gatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// ObserveFallback counts a strategy that could not serve an instant.
func (c *Collector) ObserveFallback(strategy string) {
	if c == nil {
		return
	}
	c.Fallbacks.WithLabelValues(strategy).Inc()
}

// ObserveTick records one host tick.
func (c *Collector) ObserveTick(longitude float64, following, resynced bool) {
	if c == nil {
		return
	}
	c.Ticks.Inc()
	c.MidnightLongitude.Set(longitude)
	if following {
		c.FollowEnabled.Set(1)
	} else {
		c.FollowEnabled.Set(0)
	}
	if resynced {
		c.ClockResyncs.Inc()
	}
}

// SetClients records the number of connected viewers.
func (c *Collector) SetClients(n int) {
	if c == nil {
		return
	}
	c.ViewerClients.Set(float64(n))
}

// register adds col to reg, reusing an existing collector of the same type.
func register[T prometheus.Collector](reg prometheus.Registerer, col T, name string) (T, error) {
	if err := reg.Register(col); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
			var zero T
			return zero, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		var zero T
		return zero, err
	}
	return col, nil
}
