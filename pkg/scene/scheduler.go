package scene

import (
	"context"
	"time"

	"github.com/jfortez/flowgraph/pkg/snapshot"
)

// Scheduler rates. Rendering and publication run on independent gates so a
// slow publisher never holds back the frame rate.
const (
	// RenderInterval is the minimum spacing between rendered frames.
	RenderInterval = time.Second / 60
	// PublishInterval is the minimum spacing between snapshot publications.
	PublishInterval = time.Second / 30
	// StepInterval is the simulation integrator's own clock.
	StepInterval = time.Second / 60

	// maxCatchUpSteps bounds how many simulation steps one Advance may run
	// when the host clock stalls, so a long pause never causes a burst.
	maxCatchUpSteps = 4
)

// Tick reports what one Advance call did.
type Tick struct {
	// Render is true when enough time has passed that the host should draw
	// a frame. Rendering always reads live simulation nodes, never the
	// published snapshot.
	Render bool
	// Published is true when a snapshot was handed to the publisher.
	Published bool
	// Steps is the number of simulation steps taken.
	Steps int
	// HoverCleared is true when a pending hover-clear deadline fired.
	HoverCleared bool
}

// Scheduler drives a scene from a host-provided clock. It owns no timers
// and spawns no goroutines; the host calls Advance from its own loop (an
// animation tick, a TUI tick message) and the scheduler decides what is due.
type Scheduler struct {
	scene *Scene
	pub   snapshot.Publisher

	renderEvery  time.Duration
	publishEvery time.Duration
	stepEvery    time.Duration

	lastRender  time.Time
	lastPublish time.Time
	lastStep    time.Time
	closed      bool
}

// NewScheduler wires a scheduler to a scene. pub may be nil when nothing
// consumes snapshots.
func NewScheduler(s *Scene, pub snapshot.Publisher) *Scheduler {
	return &Scheduler{
		scene:        s,
		pub:          pub,
		renderEvery:  RenderInterval,
		publishEvery: PublishInterval,
		stepEvery:    StepInterval,
	}
}

// Advance runs everything due at the given instant: simulation steps on the
// integrator's clock, the hover-clear deadline, the render gate, and the
// publication gate. It returns what happened plus any publisher error.
func (s *Scheduler) Advance(ctx context.Context, now time.Time) (Tick, error) {
	var t Tick
	if s.closed {
		return t, nil
	}

	if s.lastStep.IsZero() {
		s.lastStep = now
	}
	for s.scene.Simulation().Running() && t.Steps < maxCatchUpSteps && !now.Before(s.lastStep.Add(s.stepEvery)) {
		s.scene.Simulation().Step()
		s.lastStep = s.lastStep.Add(s.stepEvery)
		t.Steps++
	}
	if t.Steps == maxCatchUpSteps {
		s.lastStep = now // drop the backlog instead of bursting
	}

	t.HoverCleared = s.scene.Hover().Expire(now)

	if now.Sub(s.lastRender) >= s.renderEvery {
		s.lastRender = now
		t.Render = true
	}

	if s.pub != nil && now.Sub(s.lastPublish) >= s.publishEvery {
		s.lastPublish = now
		if err := s.pub.Publish(ctx, s.scene.Snapshot(now)); err != nil {
			return t, err
		}
		t.Published = true
	}
	return t, nil
}

// Close stops the scheduler; later Advance calls do nothing. The publisher
// is closed too, so no state leaks across a scene teardown.
func (s *Scheduler) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.pub != nil {
		return s.pub.Close()
	}
	return nil
}
