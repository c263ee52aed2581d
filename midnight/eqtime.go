package midnight

import (
	"time"

	"github.com/echoflaresat/midnightline/earth"
	"github.com/soniakeys/meeus/v3/eqtime"
	"github.com/soniakeys/meeus/v3/julian"
)

// EquationOfTime returns apparent minus mean solar time at t. Positive values
// mean a sundial runs ahead of the clock. When ΔT is unavailable, UT is used
// in place of dynamical time; the error is far below a second.
func EquationOfTime(t time.Time) time.Duration {
	jde := julian.TimeToJD(t.UTC())
	if dt, err := earth.DeltaT(t); err == nil {
		jde += dt.Day()
	}
	e := eqtime.ESmart(jde)
	return time.Duration(e.Sec() * float64(time.Second))
}
