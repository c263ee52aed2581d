// Package view models what the host tells the external globe viewer: where
// the camera is, where it should go, and the midnight meridian overlay.
package view

import (
	"time"

	"github.com/echoflaresat/midnightline/earth"
	"github.com/echoflaresat/midnightline/vectors"
)

// Helsinki home view.
const (
	HelsinkiLon = 24.9384
	HelsinkiLat = 60.1699
	ViewHeight  = 20000000.0 // meters; the whole globe is visible

	// HomeFlight is how long the "fly to Helsinki" transition lasts.
	HomeFlight = 2 * time.Second
)

// GeoCoordinate is a WGS84 position: degrees, degrees, meters.
type GeoCoordinate struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	Altitude  float64 `json:"altitude"`
}

// Cartesian returns the ECEF position in meters.
func (g GeoCoordinate) Cartesian() vectors.Vec3 {
	return earth.FromDegrees(g.Longitude, g.Latitude, g.Altitude)
}

// Pose describes the viewer camera. Angles are in degrees; pitch -90 looks
// straight down.
type Pose struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	Altitude  float64 `json:"altitude"`
	Heading   float64 `json:"heading"`
	Pitch     float64 `json:"pitch"`
	Roll      float64 `json:"roll"`
}

// HomePose looks straight down on Helsinki from ViewHeight.
func HomePose() Pose {
	return Pose{
		Longitude: HelsinkiLon,
		Latitude:  HelsinkiLat,
		Altitude:  ViewHeight,
		Heading:   0,
		Pitch:     -90,
		Roll:      0,
	}
}

// WithLongitude returns p with only its longitude replaced.
func (p Pose) WithLongitude(lon float64) Pose {
	p.Longitude = lon
	return p
}

// Coordinate returns the camera position.
func (p Pose) Coordinate() GeoCoordinate {
	return GeoCoordinate{Longitude: p.Longitude, Latitude: p.Latitude, Altitude: p.Altitude}
}

// Transition is a requested camera move. A zero Duration is an instantaneous
// view change; anything longer is an animated flight.
type Transition struct {
	Pose     Pose
	Duration time.Duration
}
