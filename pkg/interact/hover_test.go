package interact

import (
	"testing"
	"time"

	"github.com/jfortez/flowgraph/pkg/graph"
)

func TestHoverNodeTakesPrecedence(t *testing.T) {
	var h Hover
	now := time.Now()
	link := &graph.Link{Source: "a", Target: "b"}

	if !h.Update("n1", link, now) {
		t.Fatal("first hover should report a change")
	}
	if h.NodeID() != "n1" || h.Link() != nil {
		t.Errorf("hover = (%q, %v), want node only", h.NodeID(), h.Link())
	}
}

func TestHoverMutuallyExclusive(t *testing.T) {
	var h Hover
	now := time.Now()
	link := &graph.Link{Source: "a", Target: "b"}

	h.Update("n1", nil, now)
	h.Update("", link, now)
	if h.NodeID() != "" || h.Link() == nil {
		t.Errorf("hover = (%q, %v), want link only", h.NodeID(), h.Link())
	}
}

func TestHoverClearDelay(t *testing.T) {
	var h Hover
	now := time.Now()

	h.Update("n1", nil, now)
	h.Update("", nil, now) // lost hover: arms the delay, does not clear

	if h.Empty() {
		t.Fatal("hover cleared immediately, want delayed")
	}
	if h.Expire(now.Add(HoverClearDelay / 2)) {
		t.Error("expired before the delay elapsed")
	}
	if !h.Expire(now.Add(HoverClearDelay + time.Millisecond)) {
		t.Error("should expire after the delay")
	}
	if !h.Empty() {
		t.Error("hover should be empty after expiry")
	}
}

func TestHoverSwitchCancelsPendingClear(t *testing.T) {
	var h Hover
	now := time.Now()

	h.Update("n1", nil, now)
	h.Update("", nil, now) // arm clear
	h.Update("n2", nil, now.Add(50*time.Millisecond))

	// The pending clear must be cancelled by the new target.
	if h.Expire(now.Add(time.Second)) {
		t.Error("clear fired despite a new hover target")
	}
	if h.NodeID() != "n2" {
		t.Errorf("hover = %q, want n2", h.NodeID())
	}
}

func TestHoverRearmKeepsOriginalDeadline(t *testing.T) {
	var h Hover
	now := time.Now()

	h.Update("n1", nil, now)
	h.Update("", nil, now)
	h.Update("", nil, now.Add(100*time.Millisecond)) // still empty, already armed

	if !h.Expire(now.Add(HoverClearDelay + time.Millisecond)) {
		t.Error("repeated empty updates must not push the deadline out")
	}
}

func TestHoverSameTargetNoChange(t *testing.T) {
	var h Hover
	now := time.Now()

	h.Update("n1", nil, now)
	if h.Update("n1", nil, now.Add(time.Millisecond)) {
		t.Error("re-hovering the same node should not report a change")
	}
}

func TestHoverReset(t *testing.T) {
	var h Hover
	now := time.Now()

	h.Update("n1", nil, now)
	h.Update("", nil, now)
	h.Reset()
	if !h.Empty() {
		t.Error("Reset should clear immediately")
	}
	if h.Expire(now.Add(time.Second)) {
		t.Error("Reset should cancel the pending clear")
	}
}
