package tilecore

import (
	"context"
	"errors"
	"testing"
	"time"
)

var loopEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type dtRecorder struct {
	deltas []float64
	hook   func()
}

func (r *dtRecorder) Update(dt float64) {
	r.deltas = append(r.deltas, dt)
	if r.hook != nil {
		r.hook()
	}
}

func TestLoopStepDelta(t *testing.T) {
	clock := NewManualClock(loopEpoch)
	rec := &dtRecorder{}
	l := NewLoop(rec, LoopConfig{FPS: 50, Clock: clock})

	if l.FrameDuration() != 20*time.Millisecond {
		t.Fatalf("FrameDuration = %v, want 20ms", l.FrameDuration())
	}

	l.Step()
	clock.Advance(20 * time.Millisecond)
	l.Step()
	clock.Advance(50 * time.Millisecond)
	l.Step()

	want := []float64{0, 1, 2.5}
	if len(rec.deltas) != len(want) {
		t.Fatalf("deltas = %v, want %v", rec.deltas, want)
	}
	for i := range want {
		if rec.deltas[i] != want[i] {
			t.Errorf("delta[%d] = %v, want %v", i, rec.deltas[i], want[i])
		}
	}
	if l.Frames() != 3 {
		t.Errorf("Frames = %d, want 3", l.Frames())
	}
}

func TestLoopPause(t *testing.T) {
	clock := NewManualClock(loopEpoch)
	rec := &dtRecorder{}
	redraws := 0
	l := NewLoop(rec, LoopConfig{FPS: 50, Clock: clock, OnRedraw: func() { redraws++ }})

	l.Step()
	l.Pause()
	for i := 0; i < 5; i++ {
		clock.Advance(20 * time.Millisecond)
		if dt := l.Step(); dt != 0 {
			t.Errorf("paused Step returned %v, want 0", dt)
		}
	}
	if len(rec.deltas) != 1 {
		t.Errorf("updates while paused = %d, want 0", len(rec.deltas)-1)
	}
	if redraws != 6 {
		t.Errorf("redraws = %d, want 6 (redraw continues while paused)", redraws)
	}

	l.Resume()
	clock.Advance(20 * time.Millisecond)
	l.Step()
	if got := rec.deltas[len(rec.deltas)-1]; got != 1 {
		t.Errorf("first delta after resume = %v, want 1", got)
	}
}

func TestLoopTogglePause(t *testing.T) {
	l := NewLoop(nil, LoopConfig{})
	if !l.TogglePause() || !l.Paused() {
		t.Error("TogglePause did not pause")
	}
	if l.TogglePause() || l.Paused() {
		t.Error("TogglePause did not resume")
	}
}

func TestLoopRunStop(t *testing.T) {
	clock := NewManualClock(loopEpoch)
	var l *Loop
	redraws := 0
	l = NewLoop(&dtRecorder{}, LoopConfig{FPS: 50, Clock: clock, OnRedraw: func() {
		redraws++
		if redraws == 5 {
			l.Stop()
		}
	}})

	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("Run = %v, want nil", err)
	}
	if l.Frames() != 5 {
		t.Errorf("Frames = %d, want 5", l.Frames())
	}
	if clock.Slept() != 100*time.Millisecond {
		t.Errorf("Slept = %v, want 100ms", clock.Slept())
	}
	if l.Running() {
		t.Error("Running = true after Run returned")
	}
}

func TestLoopRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	l := NewLoop(nil, LoopConfig{Clock: NewManualClock(loopEpoch)})
	if err := l.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run = %v, want context.Canceled", err)
	}
	if l.Frames() != 0 {
		t.Errorf("Frames = %d, want 0", l.Frames())
	}
}

func TestLoopRunTwice(t *testing.T) {
	var (
		l     *Loop
		inner error
	)
	l = NewLoop(nil, LoopConfig{Clock: NewManualClock(loopEpoch), OnRedraw: func() {
		inner = l.Run(context.Background())
		l.Stop()
	}})
	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("Run = %v", err)
	}
	if !errors.Is(inner, ErrLoopRunning) {
		t.Errorf("nested Run = %v, want ErrLoopRunning", inner)
	}
}

func TestLoopOverrunDoesNotSleep(t *testing.T) {
	clock := NewManualClock(loopEpoch)
	rec := &dtRecorder{hook: func() { clock.Advance(30 * time.Millisecond) }}
	var l *Loop
	l = NewLoop(rec, LoopConfig{FPS: 50, Clock: clock, OnRedraw: func() {
		if len(rec.deltas) == 2 {
			l.Stop()
		}
	}})
	if err := l.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if clock.Slept() != 0 {
		t.Errorf("Slept = %v, want 0 for overrunning frames", clock.Slept())
	}
	if rec.deltas[1] != 1.5 {
		t.Errorf("delta after overrun = %v, want 1.5", rec.deltas[1])
	}
}

func TestLoopActualFPS(t *testing.T) {
	clock := NewManualClock(loopEpoch)
	l := NewLoop(nil, LoopConfig{FPS: 50, Clock: clock})
	if l.ActualFPS() != 0 {
		t.Errorf("ActualFPS before a second = %v, want 0", l.ActualFPS())
	}
	for i := 0; i <= 50; i++ {
		l.Step()
		clock.Advance(20 * time.Millisecond)
	}
	if got := l.ActualFPS(); got != 50 {
		t.Errorf("ActualFPS = %v, want 50", got)
	}
}

func TestLoopStopBeforeRun(t *testing.T) {
	l := NewLoop(nil, LoopConfig{Clock: NewManualClock(loopEpoch)})
	l.Stop()
	if err := l.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if l.Frames() != 0 {
		t.Errorf("Frames = %d, want 0", l.Frames())
	}
}
