package earth

import (
	"errors"
	"math"
	"time"

	"github.com/StefanSchroeder/Golang-Ellipsoid/ellipsoid"
	"github.com/echoflaresat/midnightline/vectors"
	"github.com/soniakeys/meeus/v3/deltat"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/meeus/v3/solar"
	"github.com/soniakeys/unit"
)

// EquatorialRadius is the WGS84 semi-major axis in meters.
const EquatorialRadius = 6378137.0

// The inertial-to-fixed transform needs ΔT (TT - UT). Tabulated values cover
// 1620..2010. Later years use the post-2000 polynomial, which is open ended;
// extrapolating it past 2100 is refused here.
const (
	FrameFirstYear = 1620
	FrameLastYear  = 2100 // exclusive
	tableLastYear  = 2010
)

// ErrFrameUnavailable is returned when no inertial-to-fixed transform is
// available for the requested instant.
var ErrFrameUnavailable = errors.New("earth: inertial-to-fixed frame unavailable")

var wgs84 = ellipsoid.Init(
	"WGS84",
	ellipsoid.Degrees,
	ellipsoid.Meter,
	ellipsoid.LongitudeIsSymmetric,
	ellipsoid.BearingNotSymmetric)

// FrameAvailable reports whether SunDirectionECEF can be evaluated at t.
func FrameAvailable(t time.Time) bool {
	y := t.UTC().Year()
	return y >= FrameFirstYear && y < FrameLastYear
}

// DeltaT returns TT - UT at t.
func DeltaT(t time.Time) (unit.Time, error) {
	if !FrameAvailable(t) {
		return 0, ErrFrameUnavailable
	}
	t = t.UTC()
	if t.Year() < tableLastYear {
		return deltat.Interp10A(julian.TimeToJD(t)), nil
	}
	year := float64(t.Year()) + float64(t.YearDay()-1)/365.25
	return deltat.PolyAfter2000(year), nil
}

// SunDirectionECEF returns the unit vector from the Earth's center towards
// the apparent Sun, expressed in the Earth-fixed frame.
func SunDirectionECEF(t time.Time) (vectors.Vec3, error) {
	t = t.UTC()
	dt, err := DeltaT(t)
	if err != nil {
		return vectors.Vec3{}, err
	}
	jd := julian.TimeToJD(t)
	jde := jd + dt.Day()

	// Step 1: Apparent RA/Dec of the Sun (equator and equinox of date)
	ra, dec := solar.ApparentEquatorial(jde)

	// Step 2: Unit vector in ECI (Earth-centered inertial)
	x := dec.Cos() * ra.Cos()
	y := dec.Cos() * ra.Sin()
	z := dec.Sin()

	// Step 3: Rotate ECI → ECEF using Greenwich apparent sidereal time
	gast := sidereal.Apparent(jd)
	cosGAST := gast.Angle().Cos()
	sinGAST := gast.Angle().Sin()

	xe := x*cosGAST + y*sinGAST
	ye := -x*sinGAST + y*cosGAST
	ze := z

	return vectors.Vec3{X: xe, Y: ye, Z: ze}, nil
}

// Geodetic converts an ECEF position in meters to WGS84 latitude, longitude
// (degrees, longitude in (-180, 180]) and height above the ellipsoid.
func Geodetic(p vectors.Vec3) (lat, lon, alt float64) {
	if p.X == 0 {
		// the ellipsoid solver divides by x
		p.X = math.SmallestNonzeroFloat64
	}
	return wgs84.ToLLA(p.X, p.Y, p.Z)
}

// FromDegrees converts WGS84 longitude, latitude (degrees) and height
// (meters) to an ECEF position in meters.
func FromDegrees(lon, lat, alt float64) vectors.Vec3 {
	x, y, z := wgs84.ToECEF(lat, lon, alt)
	return vectors.Vec3{X: x, Y: y, Z: z}
}
