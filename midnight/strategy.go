// Package midnight computes the longitude currently experiencing solar
// midnight.
//
// Two strategies are provided. MeanSolar derives the longitude from UTC
// clock time and ignores the equation of time. ApparentSolar uses the true
// position of the Sun and is only available while an inertial-to-fixed frame
// transform exists for the instant. A Calculator layers them so that the
// result is always defined.
package midnight

import (
	"math"
	"time"

	"github.com/echoflaresat/midnightline/earth"
)

const (
	MeanSolarName     = "mean"
	ApparentSolarName = "apparent"
)

// Strategy computes the midnight longitude for an instant, in degrees within
// (-180, 180].
type Strategy interface {
	Name() string
	Longitude(t time.Time) (float64, error)
}

// Normalize wraps lon into (-180, 180]. -180 is reported as +180.
func Normalize(lon float64) float64 {
	lon = math.Mod(lon, 360.0)
	if lon > 180.0 {
		lon -= 360.0
	} else if lon <= -180.0 {
		lon += 360.0
	}
	return lon
}

// DecimalHour returns the UTC time of day of t in hours, [0, 24).
func DecimalHour(t time.Time) float64 {
	u := t.UTC()
	return float64(u.Hour()) +
		float64(u.Minute())/60.0 +
		float64(u.Second())/3600.0 +
		float64(u.Nanosecond())/3.6e12
}

// MeanSolar places the Sun at (12 - h) * 15 degrees and midnight opposite it.
type MeanSolar struct{}

func (MeanSolar) Name() string { return MeanSolarName }

func (MeanSolar) Longitude(t time.Time) (float64, error) {
	return Normalize((12.0-DecimalHour(t))*15.0 + 180.0), nil
}

// ApparentSolar takes the longitude of the true Sun in the Earth-fixed frame
// and returns its antipodal meridian.
type ApparentSolar struct{}

func (ApparentSolar) Name() string { return ApparentSolarName }

func (ApparentSolar) Longitude(t time.Time) (float64, error) {
	sun, err := earth.SunDirectionECEF(t)
	if err != nil {
		return 0, err
	}
	_, lon, _ := earth.Geodetic(sun.Scale(earth.EquatorialRadius))
	return Normalize(lon + 180.0), nil
}
