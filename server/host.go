// Package server hosts the midnight line: it runs the tick loop, applies the
// follow behaviour to the camera model and streams frames to globe viewers.
package server

import (
	"context"
	"time"

	"github.com/echoflaresat/midnightline/clock"
	"github.com/echoflaresat/midnightline/follow"
	"github.com/echoflaresat/midnightline/metrics"
	"github.com/echoflaresat/midnightline/midnight"
	"github.com/echoflaresat/midnightline/view"
	"go.uber.org/zap"
)

// Broadcaster receives every frame the host produces.
type Broadcaster interface {
	Broadcast(f Frame)
}

// Options tune the host loop.
type Options struct {
	Tick             time.Duration
	Sync             bool          // snap the clock to wall time on drift
	Following        bool          // follow toggle at start
	FollowTransition time.Duration // 0 sets the view instantly
}

// Host owns the core state. Step and Handle must be called from a single
// goroutine; Run does that.
type Host struct {
	log     *zap.Logger
	clock   *clock.Clock
	source  midnight.Evaluator
	follow  follow.Controller
	camera  *view.Camera
	line    view.MidnightLine
	metrics *metrics.Collector
	opts    Options

	following bool
	holdUntil time.Time // follow is paused until the home flight lands
	commands  chan Command
}

// NewHost wires the core components. The overlay line is redrawn from source
// on every tick. m may be nil.
func NewHost(log *zap.Logger, clk *clock.Clock, source midnight.Evaluator, line view.MidnightLine, m *metrics.Collector, opts Options) *Host {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Tick <= 0 {
		opts.Tick = time.Second
	}
	line.Source = source
	cam := view.NewCamera(view.HomePose())
	cam.SetView(view.HomePose())
	return &Host{
		log:       log,
		clock:     clk,
		source:    source,
		follow:    follow.Controller{Source: source},
		camera:    cam,
		line:      line,
		metrics:   m,
		opts:      opts,
		following: opts.Following,
		commands:  make(chan Command, 64),
	}
}

// Commands is where viewer commands are queued for the host goroutine.
func (h *Host) Commands() chan<- Command {
	return h.commands
}

// Following reports the follow toggle.
func (h *Host) Following() bool {
	return h.following
}

// Camera returns the camera model.
func (h *Host) Camera() *view.Camera {
	return h.camera
}

// Clock returns the simulated clock.
func (h *Host) Clock() *clock.Clock {
	return h.clock
}

// Handle applies one viewer command received at wall time.
func (h *Host) Handle(cmd Command, wall time.Time) {
	switch cmd.Type {
	case CommandFollow:
		h.following = cmd.Enabled
		h.log.Info("follow toggled", zap.Bool("enabled", cmd.Enabled))
	case CommandHome:
		h.camera.FlyTo(view.HomePose(), view.HomeFlight)
		h.holdUntil = wall.Add(view.HomeFlight)
		h.log.Info("flying home", zap.Duration("duration", view.HomeFlight))
	case CommandPose:
		if cmd.Pose == nil {
			h.log.Warn("pose command without a pose")
			return
		}
		h.camera.Report(*cmd.Pose)
	default:
		h.log.Warn("unknown viewer command", zap.String("type", cmd.Type))
	}
}

// Step runs one tick at wall time: advance the clock, move the camera when
// following, redraw the overlay and build the frame.
func (h *Host) Step(wall time.Time) Frame {
	now := h.clock.Advance(wall)
	resynced := false
	if h.opts.Sync && h.clock.Multiplier() == 1 && h.clock.Sync(wall) {
		resynced = true
		now = h.clock.Now()
		h.log.Debug("clock resynced to wall time", zap.Time("wall", wall))
	}

	lon, strategy := h.source.Evaluate(now)

	if !wall.Before(h.holdUntil) {
		next, ok := h.follow.OnTick(now, h.following, h.camera.Pose())
		follow.Apply(h.camera, next, ok, h.opts.FollowTransition)
	}

	frame := h.frame(now, lon, strategy)
	h.metrics.ObserveTick(lon, h.following, resynced)
	return frame
}

func (h *Host) frame(now time.Time, lon float64, strategy string) Frame {
	o := h.camera.Orientation()
	f := Frame{
		Type:              frameType,
		Time:              now,
		MidnightLongitude: lon,
		Strategy:          strategy,
		EquationOfTime:    midnight.EquationOfTime(now).Seconds(),
		Following:         h.following,
		Camera: CameraState{
			Pose:      h.camera.Pose(),
			Position:  o.Position.Array(),
			Direction: o.Direction.Array(),
			Up:        o.Up.Array(),
		},
		Line: LineJSON{
			Positions: h.line.Degrees(now),
			Color:     h.line.Color.Hex(),
			Width:     h.line.Width,
		},
	}
	if tr, ok := h.camera.TakeTransition(); ok {
		f.Transition = &TransitionJSON{Pose: tr.Pose, Duration: tr.Duration.Seconds()}
	}
	return f
}

// Run ticks until ctx is done, handling commands between ticks and sending
// every frame to out.
func (h *Host) Run(ctx context.Context, out Broadcaster) error {
	ticker := time.NewTicker(h.opts.Tick)
	defer ticker.Stop()

	h.log.Info("host loop started",
		zap.Duration("tick", h.opts.Tick),
		zap.Bool("following", h.following),
		zap.Time("start", h.clock.Now()))

	for {
		select {
		case <-ctx.Done():
			h.log.Info("host loop stopped")
			return ctx.Err()
		case cmd := <-h.commands:
			h.Handle(cmd, time.Now())
		case wall := <-ticker.C:
			f := h.Step(wall)
			if out != nil {
				out.Broadcast(f)
			}
		}
	}
}
