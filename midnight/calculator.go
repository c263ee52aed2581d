package midnight

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Provider is anything that yields a midnight longitude for an instant.
type Provider interface {
	MidnightLongitude(t time.Time) float64
}

// FallbackObserver is told whenever a strategy could not serve an instant.
type FallbackObserver interface {
	ObserveFallback(strategy string)
}

// Calculator evaluates strategies in order and returns the first result.
// MeanSolar always terminates the chain.
type Calculator struct {
	strategies []Strategy
	log        *zap.Logger
	observer   FallbackObserver
}

// New builds a calculator trying strategies in the given order.
func New(log *zap.Logger, strategies ...Strategy) *Calculator {
	if log == nil {
		log = zap.NewNop()
	}
	chain := make([]Strategy, 0, len(strategies)+1)
	hasMean := false
	for _, s := range strategies {
		if s == nil {
			continue
		}
		if s.Name() == MeanSolarName {
			hasMean = true
		}
		chain = append(chain, s)
	}
	if !hasMean {
		chain = append(chain, MeanSolar{})
	}
	return &Calculator{strategies: chain, log: log}
}

// NewFromName builds a calculator from a configured strategy name:
// "apparent" (apparent with mean fallback) or "mean".
func NewFromName(log *zap.Logger, name string) (*Calculator, error) {
	strategies, err := ParseStrategy(name)
	if err != nil {
		return nil, err
	}
	return New(log, strategies...), nil
}

// ParseStrategy maps a configured strategy name to its ordering.
func ParseStrategy(name string) ([]Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ApparentSolarName:
		return []Strategy{ApparentSolar{}, MeanSolar{}}, nil
	case MeanSolarName:
		return []Strategy{MeanSolar{}}, nil
	default:
		return nil, fmt.Errorf("unknown midnight strategy %q", name)
	}
}

// SetObserver registers o to be notified of fallbacks.
func (c *Calculator) SetObserver(o FallbackObserver) {
	c.observer = o
}

// Strategies returns the names of the strategies in evaluation order.
func (c *Calculator) Strategies() []string {
	names := make([]string, len(c.strategies))
	for i, s := range c.strategies {
		names[i] = s.Name()
	}
	return names
}

// Evaluate returns the midnight longitude at t and the name of the strategy
// that produced it.
func (c *Calculator) Evaluate(t time.Time) (float64, string) {
	for _, s := range c.strategies {
		lon, err := s.Longitude(t)
		if err == nil {
			return lon, s.Name()
		}
		c.log.Debug("midnight strategy unavailable, falling back",
			zap.String("strategy", s.Name()),
			zap.Time("instant", t),
			zap.Error(err))
		if c.observer != nil {
			c.observer.ObserveFallback(s.Name())
		}
	}
	// unreachable while MeanSolar terminates the chain
	lon, _ := MeanSolar{}.Longitude(t)
	return lon, MeanSolarName
}

// MidnightLongitude implements Provider.
func (c *Calculator) MidnightLongitude(t time.Time) float64 {
	lon, _ := c.Evaluate(t)
	return lon
}
