package server

import (
	"time"

	"github.com/echoflaresat/midnightline/view"
)

// Command types sent by the viewer.
const (
	CommandFollow = "follow" // follow checkbox toggled
	CommandHome   = "home"   // "fly to Helsinki" button
	CommandPose   = "pose"   // user moved the camera
)

// Command is a viewer message.
type Command struct {
	Type    string     `json:"type"`
	Enabled bool       `json:"enabled,omitempty"`
	Pose    *view.Pose `json:"pose,omitempty"`
}

// Frame is broadcast to every viewer once per tick.
type Frame struct {
	Type              string          `json:"type"`
	Time              time.Time       `json:"time"`
	MidnightLongitude float64         `json:"midnightLongitude"`
	Strategy          string          `json:"strategy"`
	EquationOfTime    float64         `json:"equationOfTime"` // seconds
	Following         bool            `json:"following"`
	Camera            CameraState     `json:"camera"`
	Transition        *TransitionJSON `json:"transition"`
	Line              LineJSON        `json:"line"`
}

// CameraState is the camera pose and its ECEF frame in meters.
type CameraState struct {
	Pose      view.Pose  `json:"pose"`
	Position  [3]float64 `json:"position"`
	Direction [3]float64 `json:"direction"`
	Up        [3]float64 `json:"up"`
}

// TransitionJSON asks the viewer to move its camera. Duration 0 is setView,
// anything else flyTo.
type TransitionJSON struct {
	Pose     view.Pose `json:"pose"`
	Duration float64   `json:"duration"` // seconds
}

// LineJSON is the midnight meridian overlay.
type LineJSON struct {
	Positions [][2]float64 `json:"positions"` // [lon, lat] degrees
	Color     string       `json:"color"`
	Width     float64      `json:"width"`
}

const frameType = "frame"
