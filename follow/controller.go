// Package follow keeps the camera on the midnight meridian while the
// follow toggle is on.
package follow

import (
	"time"

	"github.com/echoflaresat/midnightline/midnight"
	"github.com/echoflaresat/midnightline/view"
)

// Controller computes the follow pose for a tick. It holds no state; the
// toggle is owned by the caller and read once per tick.
type Controller struct {
	Source midnight.Provider
}

// OnTick returns current with its longitude moved to the midnight meridian
// at t. When following is false the pose is returned unchanged and ok is
// false. Latitude, altitude and orientation are never touched.
func (c Controller) OnTick(t time.Time, following bool, current view.Pose) (next view.Pose, ok bool) {
	if !following {
		return current, false
	}
	return current.WithLongitude(c.Source.MidnightLongitude(t)), true
}

// Camera is whatever applies a pose to the viewer.
type Camera interface {
	SetView(p view.Pose)
	FlyTo(p view.Pose, d time.Duration)
}

// Apply requests the move produced by OnTick. A zero duration sets the view
// instantly.
func Apply(cam Camera, next view.Pose, ok bool, d time.Duration) {
	if !ok {
		return
	}
	if d <= 0 {
		cam.SetView(next)
		return
	}
	cam.FlyTo(next, d)
}
