package view

import (
	"time"

	"github.com/echoflaresat/midnightline/colors"
	"github.com/echoflaresat/midnightline/midnight"
	"github.com/golang/geo/s2"
)

// DefaultLineSamples places a vertex every five degrees of latitude. Two
// vertices would be antipodal and leave the geodesic undefined.
const DefaultLineSamples = 37

// MidnightLine is the pole-to-pole overlay at the current midnight meridian.
// It is re-evaluated on every redraw regardless of the follow toggle.
type MidnightLine struct {
	Source  midnight.Provider
	Samples int
	Color   colors.Color4
	Width   float64
}

// Degrees returns the vertices from the south pole to the north pole as
// [longitude, latitude] pairs.
func (l MidnightLine) Degrees(t time.Time) [][2]float64 {
	n := l.Samples
	if n < 3 {
		n = DefaultLineSamples
	}
	lon := l.Source.MidnightLongitude(t)
	out := make([][2]float64, n)
	for i := range out {
		out[i] = [2]float64{lon, -90.0 + 180.0*float64(i)/float64(n-1)}
	}
	return out
}

// LatLngs returns the vertices as s2 coordinates.
func (l MidnightLine) LatLngs(t time.Time) []s2.LatLng {
	deg := l.Degrees(t)
	out := make([]s2.LatLng, len(deg))
	for i, v := range deg {
		out[i] = s2.LatLngFromDegrees(v[1], v[0])
	}
	return out
}

// Polyline returns the line as an s2 polyline on the unit sphere.
func (l MidnightLine) Polyline(t time.Time) *s2.Polyline {
	return s2.PolylineFromLatLngs(l.LatLngs(t))
}
