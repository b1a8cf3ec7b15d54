package sim

import (
	"math"
	"testing"
)

func nodesAt(coords ...[2]float64) []*Node {
	nodes := make([]*Node, len(coords))
	for i, c := range coords {
		nodes[i] = &Node{
			ID: string(rune('a' + i)),
			X:  c[0], Y: c[1],
			AnchorX: c[0], AnchorY: c[1],
		}
	}
	return nodes
}

func TestSimulationDecaysAndStops(t *testing.T) {
	s := New(Config{})
	s.SetNodes(nodesAt([2]float64{0, 0}, [2]float64{10, 0}))

	steps := 0
	for s.Step() {
		steps++
		if steps > 10000 {
			t.Fatal("simulation never converged")
		}
	}
	if s.Running() {
		t.Error("Running() should be false after convergence")
	}
	if s.Alpha() >= DefaultConfig().AlphaMin {
		t.Errorf("alpha = %v, want < %v", s.Alpha(), DefaultConfig().AlphaMin)
	}
	// Roughly 300 steps by construction of the default decay.
	if steps < 250 || steps > 350 {
		t.Errorf("converged in %d steps, want ~300", steps)
	}
}

func TestReheatResumesMotion(t *testing.T) {
	s := New(Config{})
	s.SetNodes(nodesAt([2]float64{0, 0}))
	for s.Step() {
	}
	if s.Step() {
		t.Fatal("stopped simulation must not step")
	}

	s.Reheat(0.3)
	if !s.Running() {
		t.Fatal("reheat should resume the simulation")
	}
	if !s.Step() {
		t.Error("step after reheat should advance")
	}

	// Reheat never cools a hotter simulation.
	s.Reheat(0.0001)
	if s.Alpha() < 0.1 {
		t.Errorf("Reheat lowered alpha to %v", s.Alpha())
	}
}

func TestManyBodyRepulsionSeparatesNodes(t *testing.T) {
	nodes := nodesAt([2]float64{0, 0}, [2]float64{5, 0})
	s := New(Config{})
	s.SetNodes(nodes)
	s.AddForce("charge", NewManyBody(-60, 500))

	before := math.Hypot(nodes[1].X-nodes[0].X, nodes[1].Y-nodes[0].Y)
	for i := 0; i < 50 && s.Step(); i++ {
	}
	after := math.Hypot(nodes[1].X-nodes[0].X, nodes[1].Y-nodes[0].Y)
	if after <= before {
		t.Errorf("repulsion should separate nodes: %.2f -> %.2f", before, after)
	}
}

func TestManyBodyDistanceCutoff(t *testing.T) {
	nodes := nodesAt([2]float64{0, 0}, [2]float64{1000, 0})
	s := New(Config{})
	s.SetNodes(nodes)
	s.AddForce("charge", NewManyBody(-60, 100))

	s.Step()
	for _, n := range nodes {
		if n.VX != 0 || n.VY != 0 {
			t.Errorf("node %s moved despite distance cutoff: v=(%v, %v)", n.ID, n.VX, n.VY)
		}
	}
}

func TestLinkForcePullstowardRestDistance(t *testing.T) {
	nodes := nodesAt([2]float64{0, 0}, [2]float64{300, 0})
	s := New(Config{})
	s.SetNodes(nodes)
	s.AddForce("link", NewLinkForce([]Spring{{Source: nodes[0], Target: nodes[1]}}, 60, 1))

	for i := 0; i < 300 && s.Step(); i++ {
	}
	got := math.Hypot(nodes[1].X-nodes[0].X, nodes[1].Y-nodes[0].Y)
	if math.Abs(got-60) > 5 {
		t.Errorf("settled link length = %.2f, want ~60", got)
	}
}

func TestLinkForceZeroStrengthIsInert(t *testing.T) {
	nodes := nodesAt([2]float64{0, 0}, [2]float64{300, 0})
	s := New(Config{})
	s.SetNodes(nodes)
	s.AddForce("link", NewLinkForce([]Spring{{Source: nodes[0], Target: nodes[1]}}, 60, 0))

	s.Step()
	if nodes[0].X != 0 || nodes[1].X != 300 {
		t.Errorf("zero-strength link moved nodes: %v, %v", nodes[0].X, nodes[1].X)
	}
}

func TestAnchorForceRestoresPosition(t *testing.T) {
	n := &Node{ID: "a", X: 500, Y: 500, AnchorX: 0, AnchorY: 0}
	s := New(Config{})
	s.SetNodes([]*Node{n})
	s.AddForce("anchor", NewAnchorForce(0.1))

	for i := 0; i < 400 && s.Step(); i++ {
	}
	if d := math.Hypot(n.X, n.Y); d > 50 {
		t.Errorf("node ended %.1f from anchor, want close to it", d)
	}
}

func TestCenterForcePullsCentroid(t *testing.T) {
	nodes := nodesAt([2]float64{100, 100}, [2]float64{200, 200})
	s := New(Config{})
	s.SetNodes(nodes)
	s.AddForce("center", NewCenterForce(0, 0, 1))

	s.Step()
	cx := (nodes[0].X + nodes[1].X) / 2
	cy := (nodes[0].Y + nodes[1].Y) / 2
	if math.Abs(cx) > 1e-9 || math.Abs(cy) > 1e-9 {
		t.Errorf("centroid = (%v, %v), want origin at full strength", cx, cy)
	}
}

func TestPinnedNodeStaysPutAndStillRepels(t *testing.T) {
	nodes := nodesAt([2]float64{0, 0}, [2]float64{5, 0})
	pinned := nodes[0]
	free := nodes[1]
	pinned.Pin(0, 0)

	s := New(Config{})
	s.SetNodes(nodes)
	s.AddForce("charge", NewManyBody(-60, 500))

	for i := 0; i < 30 && s.Step(); i++ {
	}
	if pinned.X != 0 || pinned.Y != 0 {
		t.Errorf("pinned node moved to (%v, %v)", pinned.X, pinned.Y)
	}
	if free.X <= 5 {
		t.Errorf("free node should have been repelled, at x=%v", free.X)
	}
}

func TestUnpinResumesMotionOnReheat(t *testing.T) {
	nodes := nodesAt([2]float64{0, 0}, [2]float64{5, 0})
	n := nodes[0]
	n.Pin(0, 0)

	s := New(Config{})
	s.SetNodes(nodes)
	s.AddForce("charge", NewManyBody(-60, 500))
	for s.Step() {
	}

	n.Unpin()
	if n.Pinned() {
		t.Fatal("Unpin did not clear the pin")
	}
	nodes[1].X, nodes[1].Y = 5, 0 // back within repulsion range
	s.Reheat(0.5)
	for i := 0; i < 30 && s.Step(); i++ {
	}
	if n.X == 0 && n.Y == 0 {
		t.Error("unpinned node should resume physics-governed motion")
	}
}

func TestCollideSeparatesOverlap(t *testing.T) {
	nodes := nodesAt([2]float64{0, 0}, [2]float64{4, 0})
	s := New(Config{})
	s.SetNodes(nodes)
	radius := func(*Node) float64 { return 10 }
	s.AddForce("collide", NewCollideForce(CollisionFull, radius))

	for i := 0; i < 120 && s.Step(); i++ {
	}
	got := math.Hypot(nodes[1].X-nodes[0].X, nodes[1].Y-nodes[0].Y)
	if got < 19 {
		t.Errorf("separation = %.2f, want >= ~20 (sum of radii)", got)
	}
}

func TestCollisionModes(t *testing.T) {
	radius := func(*Node) float64 { return 10 }

	if f := NewCollideForce(CollisionNone, radius); f != nil {
		t.Error("CollisionNone should produce a nil force")
	}
	full := NewCollideForce(CollisionFull, radius)
	minimal := NewCollideForce(CollisionMinimal, radius)
	if minimal.Radius(&Node{}) >= full.Radius(&Node{}) {
		t.Error("minimal mode should use a smaller radius")
	}
	if minimal.Strength >= full.Strength {
		t.Error("minimal mode should push more weakly")
	}

	// Toggling modes must not alter the base radius function.
	n := &Node{}
	before := radius(n)
	_ = NewCollideForce(CollisionNone, radius)
	_ = NewCollideForce(CollisionFull, radius)
	if radius(n) != before {
		t.Error("mode construction altered the shared radius function")
	}
}

func TestAddForceNilRemoves(t *testing.T) {
	s := New(Config{})
	s.AddForce("collide", NewCollideForce(CollisionFull, func(*Node) float64 { return 1 }))
	if s.Force("collide") == nil {
		t.Fatal("force not registered")
	}
	s.AddForce("collide", nil)
	if s.Force("collide") != nil {
		t.Error("nil force should remove the registration")
	}
}

func TestParseCollisionMode(t *testing.T) {
	for _, valid := range []string{"full", "minimal", "none"} {
		if _, ok := ParseCollisionMode(valid); !ok {
			t.Errorf("ParseCollisionMode(%q) rejected", valid)
		}
	}
	if _, ok := ParseCollisionMode("bouncy"); ok {
		t.Error("ParseCollisionMode(bouncy) accepted")
	}
}
