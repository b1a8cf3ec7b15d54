package interact

import (
	"time"

	"github.com/jfortez/flowgraph/pkg/graph"
)

// HoverClearDelay is how long the pointer may sit over empty space before
// the hover target clears. The delay absorbs the flicker of passing between
// adjacent shapes.
const HoverClearDelay = 150 * time.Millisecond

// Hover tracks the current hover target: at most one of a node ID or a link
// at a time. Clearing is deadline-based against the caller's clock; no
// timers are owned here, the scheduler polls [Hover.Expire] each tick.
type Hover struct {
	nodeID  string
	link    *graph.Link
	clearAt time.Time // zero when no clear is pending
}

// NodeID returns the hovered node ID, or "".
func (h *Hover) NodeID() string { return h.nodeID }

// Link returns the hovered link, or nil.
func (h *Hover) Link() *graph.Link { return h.link }

// Empty reports whether nothing is hovered.
func (h *Hover) Empty() bool { return h.nodeID == "" && h.link == nil }

// Update sets the hover target from a pointer-move hit test. A node hit
// takes precedence over a link hit; either cancels any pending clear.
// Losing both arms the clear delay instead of clearing immediately.
// It reports whether the externally visible target changed.
func (h *Hover) Update(nodeID string, link *graph.Link, now time.Time) bool {
	switch {
	case nodeID != "":
		h.clearAt = time.Time{}
		if h.nodeID == nodeID {
			return false
		}
		h.nodeID = nodeID
		h.link = nil
		return true
	case link != nil:
		h.clearAt = time.Time{}
		if h.link != nil && *h.link == *link {
			return false
		}
		h.nodeID = ""
		h.link = link
		return true
	default:
		if h.Empty() {
			return false
		}
		if h.clearAt.IsZero() {
			h.clearAt = now.Add(HoverClearDelay)
		}
		return false
	}
}

// Expire clears the target once the armed delay has elapsed. It reports
// whether the target was cleared this call.
func (h *Hover) Expire(now time.Time) bool {
	if h.clearAt.IsZero() || now.Before(h.clearAt) {
		return false
	}
	h.nodeID = ""
	h.link = nil
	h.clearAt = time.Time{}
	return true
}

// Reset drops the target and any pending clear immediately (teardown,
// pointer leave).
func (h *Hover) Reset() {
	h.nodeID = ""
	h.link = nil
	h.clearAt = time.Time{}
}
