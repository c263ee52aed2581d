package view

import (
	"math"
	"time"

	"github.com/echoflaresat/midnightline/vectors"
)

// Camera is the host-side model of the viewer camera. Poses applied to it
// are queued as a Transition for the viewer to perform.
type Camera struct {
	pose    Pose
	pending *Transition
}

// NewCamera starts at p without requesting a transition.
func NewCamera(p Pose) *Camera {
	return &Camera{pose: p}
}

// Pose returns the current pose.
func (c *Camera) Pose() Pose {
	return c.pose
}

// SetView moves the camera instantly.
func (c *Camera) SetView(p Pose) {
	c.pose = p
	c.pending = &Transition{Pose: p}
}

// FlyTo moves the camera with an animated transition lasting d.
func (c *Camera) FlyTo(p Pose, d time.Duration) {
	c.pose = p
	c.pending = &Transition{Pose: p, Duration: d}
}

// Report records a pose the viewer reached on its own (user drag, zoom) and
// cancels an unsent instant view change. An unsent flight is kept and the
// report is ignored, since the viewer is about to fly away from p.
func (c *Camera) Report(p Pose) {
	if c.pending != nil && c.pending.Duration > 0 {
		return
	}
	c.pose = p
	c.pending = nil
}

// TakeTransition returns and clears the pending transition.
func (c *Camera) TakeTransition() (Transition, bool) {
	if c.pending == nil {
		return Transition{}, false
	}
	t := *c.pending
	c.pending = nil
	return t, true
}

// Orientation is the camera frame in ECEF: position in meters, unit view
// direction, up and right vectors.
type Orientation struct {
	Position  vectors.Vec3
	Direction vectors.Vec3
	Up        vectors.Vec3
	Right     vectors.Vec3
}

// Orientation returns the ECEF frame of the current pose.
func (c *Camera) Orientation() Orientation {
	return OrientationOf(c.pose)
}

// OrientationOf builds the camera frame for p from the local east-north-up
// basis: heading turns clockwise from north, pitch raises the view above the
// horizon and roll spins about the view direction.
func OrientationOf(p Pose) Orientation {
	lat := p.Latitude * math.Pi / 180.0
	lon := p.Longitude * math.Pi / 180.0

	east := vectors.Vec3{X: -math.Sin(lon), Y: math.Cos(lon), Z: 0}
	north := vectors.Vec3{
		X: -math.Sin(lat) * math.Cos(lon),
		Y: -math.Sin(lat) * math.Sin(lon),
		Z: math.Cos(lat),
	}
	up := vectors.Vec3{
		X: math.Cos(lat) * math.Cos(lon),
		Y: math.Cos(lat) * math.Sin(lon),
		Z: math.Sin(lat),
	}

	fwd, right, camUp := north, east, up

	if p.Heading != 0 {
		fwd, right, camUp = yawCamera(fwd, right, camUp, -p.Heading)
	}

	fwd, right, camUp = tiltCamera(fwd, right, camUp, p.Pitch)

	if p.Roll != 0 {
		fwd, right, camUp = rollCamera(fwd, right, camUp, p.Roll)
	}

	return Orientation{
		Position:  p.Coordinate().Cartesian(),
		Direction: fwd,
		Up:        camUp,
		Right:     right,
	}
}

// tiltCamera rotates forward/up around the Right axis by tiltDeg.
func tiltCamera(fwd, right, up vectors.Vec3, tiltDeg float64) (vectors.Vec3, vectors.Vec3, vectors.Vec3) {
	fwdNew := fwd.Rotate(right, tiltDeg).Normalize()
	upNew := up.Rotate(right, tiltDeg).Normalize()
	return fwdNew, right, upNew
}

// yawCamera rotates forward/right around the Up axis by yawDeg.
// This is a left-right (horizontal) camera pan.
func yawCamera(fwd, right, up vectors.Vec3, yawDeg float64) (vectors.Vec3, vectors.Vec3, vectors.Vec3) {
	fwdNew := fwd.Rotate(up, yawDeg).Normalize()
	rightNew := right.Rotate(up, yawDeg).Normalize()
	return fwdNew, rightNew, up
}

// rollCamera rotates right/up around the Forward axis by rollDeg.
func rollCamera(fwd, right, up vectors.Vec3, rollDeg float64) (vectors.Vec3, vectors.Vec3, vectors.Vec3) {
	rightNew := right.Rotate(fwd, rollDeg).Normalize()
	upNew := up.Rotate(fwd, rollDeg).Normalize()
	return fwd, rightNew, upNew
}
