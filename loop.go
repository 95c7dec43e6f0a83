package tilecore

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrLoopRunning is returned by Run when the loop is already running.
var ErrLoopRunning = errors.New("tilecore: loop already running")

// DefaultFPS is the frame rate used when LoopConfig.FPS is not positive.
const DefaultFPS = 60

// LoopConfig configures NewLoop.
type LoopConfig struct {
	// FPS is the target frame rate. The nominal frame duration is 1s/FPS.
	FPS int
	// Clock paces the loop. Defaults to SystemClock.
	Clock Clock
	// OnRedraw runs after the update of every frame, paused or not.
	OnRedraw func()
}

// Loop drives a scene at a fixed cadence measured on the wall clock. Each
// frame passes the elapsed time, in nominal frames, to the scene's Update and
// then runs the redraw hook. Slow frames are not caught up; the next delta
// simply grows.
//
// Step and Run must be called from one goroutine. Stop, Pause, Resume and the
// read accessors are safe from any goroutine.
type Loop struct {
	scene    Updatable
	clock    Clock
	frameDur time.Duration
	onRedraw func()

	running atomic.Bool
	stop    atomic.Bool
	paused  atomic.Bool
	frames  atomic.Uint64
	fps     atomic.Uint64 // math.Float64bits of the last measured rate

	started     bool
	lastTime    time.Time
	windowStart time.Time
	windowCount int
}

// NewLoop creates a loop driving scene. scene may be nil, in which case only
// the redraw hook runs.
func NewLoop(scene Updatable, cfg LoopConfig) *Loop {
	fps := cfg.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	clock := cfg.Clock
	if clock == nil {
		clock = SystemClock
	}
	return &Loop{
		scene:    scene,
		clock:    clock,
		frameDur: time.Second / time.Duration(fps),
		onRedraw: cfg.OnRedraw,
	}
}

// FrameDuration returns the nominal duration of one frame.
func (l *Loop) FrameDuration() time.Duration { return l.frameDur }

// Step runs one frame without sleeping and returns the delta passed to the
// scene. The first Step after construction has a delta of zero.
//
// While paused the scene is not updated but the redraw hook still runs, and
// the reference time keeps advancing, so the first delta after Resume covers
// only the last frame and not the whole pause.
func (l *Loop) Step() float64 {
	now := l.clock.Now()
	if !l.started {
		l.started = true
		l.lastTime = now
		l.windowStart = now
	}
	dt := float64(now.Sub(l.lastTime)) / float64(l.frameDur)
	l.lastTime = now

	if l.paused.Load() {
		dt = 0
	} else if l.scene != nil {
		l.scene.Update(dt)
	}
	if l.onRedraw != nil {
		l.onRedraw()
	}

	l.frames.Add(1)
	if elapsed := now.Sub(l.windowStart); elapsed >= time.Second {
		l.fps.Store(math.Float64bits(float64(l.windowCount) / elapsed.Seconds()))
		l.windowStart = now
		l.windowCount = 0
	}
	l.windowCount++
	return dt
}

// Run steps the loop until Stop is called or ctx is done, sleeping out the
// rest of each frame's budget. Both are checked at the top of every
// iteration; a frame in progress always completes. Run returns nil after Stop
// and ctx.Err() after cancellation.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return ErrLoopRunning
	}
	defer func() {
		l.stop.Store(false)
		l.running.Store(false)
	}()

	Log.WithFields(logrus.Fields{
		"frame_duration": l.frameDur,
	}).Info("loop started")

	for {
		if l.stop.Load() {
			Log.WithField("frames", l.Frames()).Info("loop stopped")
			return nil
		}
		if err := ctx.Err(); err != nil {
			Log.WithError(err).WithField("frames", l.Frames()).Info("loop cancelled")
			return err
		}

		start := l.clock.Now()
		l.Step()
		if rem := l.frameDur - l.clock.Now().Sub(start); rem > 0 {
			l.clock.Sleep(rem)
		}
	}
}

// Stop asks a running loop to exit before its next frame. Calling Stop before
// Run makes the next Run return immediately.
func (l *Loop) Stop() { l.stop.Store(true) }

// Running reports whether Run is executing.
func (l *Loop) Running() bool { return l.running.Load() }

// Pause freezes scene updates. Redraws continue.
func (l *Loop) Pause() { l.paused.Store(true) }

// Resume undoes Pause.
func (l *Loop) Resume() { l.paused.Store(false) }

// TogglePause flips the pause state and returns the new state.
func (l *Loop) TogglePause() bool {
	for {
		p := l.paused.Load()
		if l.paused.CompareAndSwap(p, !p) {
			return !p
		}
	}
}

// Paused reports whether scene updates are frozen.
func (l *Loop) Paused() bool { return l.paused.Load() }

// Frames returns the number of frames stepped so far.
func (l *Loop) Frames() uint64 { return l.frames.Load() }

// ActualFPS returns the frame rate measured over the last full second, or
// zero before a second has passed.
func (l *Loop) ActualFPS() float64 { return math.Float64frombits(l.fps.Load()) }
