package scene

import (
	"context"
	"testing"
	"time"

	"github.com/jfortez/flowgraph/pkg/snapshot"
	"github.com/jfortez/flowgraph/pkg/view"
)

func TestAdvanceGates(t *testing.T) {
	ctx := context.Background()
	s := newTestScene(t)
	pub := snapshot.NewMemory()
	sched := NewScheduler(s, pub)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// First call establishes the step clock; render and publish both fire.
	tick, err := sched.Advance(ctx, base)
	if err != nil {
		t.Fatalf("Advance() error = %v", err)
	}
	if !tick.Render || !tick.Published || tick.Steps != 0 {
		t.Fatalf("first tick = %+v, want render+publish, no steps", tick)
	}

	// 5ms later nothing is due.
	tick, err = sched.Advance(ctx, base.Add(5*time.Millisecond))
	if err != nil {
		t.Fatalf("Advance() error = %v", err)
	}
	if tick.Render || tick.Published || tick.Steps != 0 {
		t.Fatalf("tick at +5ms = %+v, want nothing due", tick)
	}

	// 17ms: one step interval and one render interval elapsed, but the
	// publish interval has not.
	tick, err = sched.Advance(ctx, base.Add(17*time.Millisecond))
	if err != nil {
		t.Fatalf("Advance() error = %v", err)
	}
	if tick.Steps != 1 {
		t.Errorf("steps at +17ms = %d, want 1", tick.Steps)
	}
	if !tick.Render {
		t.Error("render gate closed at +17ms")
	}
	if tick.Published {
		t.Error("published at +17ms, before the publish interval")
	}

	// 35ms: publish due again.
	tick, err = sched.Advance(ctx, base.Add(35*time.Millisecond))
	if err != nil {
		t.Fatalf("Advance() error = %v", err)
	}
	if !tick.Published {
		t.Error("publish gate closed at +35ms")
	}

	snap, err := pub.Latest(ctx)
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if len(snap.Positions) != 4 {
		t.Errorf("published positions = %d, want 4", len(snap.Positions))
	}
}

func TestAdvanceCapsCatchUpSteps(t *testing.T) {
	ctx := context.Background()
	s := newTestScene(t)
	sched := NewScheduler(s, nil)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	if _, err := sched.Advance(ctx, base); err != nil {
		t.Fatalf("Advance() error = %v", err)
	}

	// A one-second stall must not burst sixty steps.
	tick, err := sched.Advance(ctx, base.Add(time.Second))
	if err != nil {
		t.Fatalf("Advance() error = %v", err)
	}
	if tick.Steps != maxCatchUpSteps {
		t.Fatalf("steps after stall = %d, want %d", tick.Steps, maxCatchUpSteps)
	}

	// The backlog is dropped: the next interval yields a single step.
	tick, err = sched.Advance(ctx, base.Add(time.Second+17*time.Millisecond))
	if err != nil {
		t.Fatalf("Advance() error = %v", err)
	}
	if tick.Steps != 1 {
		t.Errorf("steps after recovery = %d, want 1", tick.Steps)
	}
}

func TestAdvanceSkipsSettledSimulation(t *testing.T) {
	ctx := context.Background()
	s := newTestScene(t)
	sched := NewScheduler(s, nil)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// Run the simulation to convergence.
	for s.Simulation().Running() {
		s.Simulation().Step()
	}
	before := s.Simulation().Steps()

	if _, err := sched.Advance(ctx, base); err != nil {
		t.Fatalf("Advance() error = %v", err)
	}
	tick, err := sched.Advance(ctx, base.Add(100*time.Millisecond))
	if err != nil {
		t.Fatalf("Advance() error = %v", err)
	}
	if tick.Steps != 0 || s.Simulation().Steps() != before {
		t.Errorf("settled simulation stepped: tick=%+v steps=%d", tick, s.Simulation().Steps()-before)
	}
	if !tick.Render {
		t.Error("render gate must stay open while the simulation is settled")
	}
}

func TestAdvanceFiresHoverClear(t *testing.T) {
	ctx := context.Background()
	s := newTestScene(t)
	sched := NewScheduler(s, nil)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	root := s.Simulation().Node("root")
	s.Move(view.Point{X: root.X, Y: root.Y}, base)
	s.Move(view.Point{X: 5000, Y: 5000}, base.Add(10*time.Millisecond))
	if s.Hover().NodeID() != "root" {
		t.Fatal("hover should persist through the clear delay")
	}

	tick, err := sched.Advance(ctx, base.Add(300*time.Millisecond))
	if err != nil {
		t.Fatalf("Advance() error = %v", err)
	}
	if !tick.HoverCleared {
		t.Fatal("hover-clear deadline did not fire")
	}
	if !s.Hover().Empty() {
		t.Error("hover still set after the deadline fired")
	}
}

func TestCloseStopsScheduler(t *testing.T) {
	ctx := context.Background()
	s := newTestScene(t)
	pub := snapshot.NewMemory()
	sched := NewScheduler(s, pub)

	if err := sched.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	tick, err := sched.Advance(ctx, time.Now())
	if err != nil {
		t.Fatalf("Advance() after Close error = %v", err)
	}
	if tick != (Tick{}) {
		t.Errorf("Advance() after Close = %+v, want zero tick", tick)
	}
	if err := sched.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}
