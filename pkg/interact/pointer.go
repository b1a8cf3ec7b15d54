package interact

import (
	"math"
	"time"

	"github.com/jfortez/flowgraph/pkg/graph"
	"github.com/jfortez/flowgraph/pkg/view"
)

// Gesture thresholds.
const (
	// DragThreshold is the screen-space distance a held pointer must move
	// before a press becomes a drag. Releases within it count as clicks.
	DragThreshold = 3.0
	// DoubleClickWindow is the maximum gap between two clicks on the same
	// node for them to count as a double click.
	DoubleClickWindow = 350 * time.Millisecond
)

// phase is the machine's current gesture state.
type phase int

const (
	phaseIdle phase = iota
	phaseDownOnNode
	phaseDownOnEmpty
	phaseDragging
	phasePanning
	phaseButtonArmed
)

// ActionKind enumerates the effects the machine asks the scene to apply.
type ActionKind int

const (
	// ActionNone means the event had no scene-visible effect.
	ActionNone ActionKind = iota
	// ActionDragStart pins the node at its current position.
	ActionDragStart
	// ActionDragMove moves the pin to the new simulation-space position.
	ActionDragMove
	// ActionDragEnd releases the pin. No click follows a completed drag.
	ActionDragEnd
	// ActionPan shifts the viewport by the screen-space delta.
	ActionPan
	// ActionClickNode toggles the node's selection (replace by default,
	// add/remove with the modifier held).
	ActionClickNode
	// ActionClearSelection empties the selection (click on empty space).
	ActionClearSelection
	// ActionToggleCollapse flips the node's collapse state (double click on
	// a node with children, or the expand button).
	ActionToggleCollapse
)

// Action is the machine's output for one pointer event.
type Action struct {
	Kind     ActionKind
	NodeID   string
	Modifier bool
	// Sim is the pointer position in simulation space (drag actions).
	Sim view.Point
	// DX/DY is the screen-space delta (pan actions).
	DX, DY float64
}

// Machine tracks one pointer's gesture state. All fields are explicit and
// re-read per event; the machine holds no closures over scene state.
type Machine struct {
	hit      *HitTester
	viewport *view.Viewport
	res      *graph.Resolution

	phase     phase
	pressedID string     // node under the initial press
	pressAt   view.Point // screen position of the press
	lastMove  view.Point // previous screen position while panning/dragging

	lastClickID string // double-click tracking
	lastClickAt time.Time
}

// NewMachine creates an idle machine bound to a viewport. The hit tester
// and resolution are swapped on every graph resolution via [Machine.Rebind].
func NewMachine(vp *view.Viewport) *Machine {
	return &Machine{viewport: vp}
}

// Rebind points the machine at the current hit tester and resolution.
// In-flight gestures survive: a drag keeps its node ID even when the node
// array was rebuilt underneath it.
func (m *Machine) Rebind(hit *HitTester, res *graph.Resolution) {
	m.hit = hit
	m.res = res
}

// Dragging reports whether a drag is in progress; hover updates pause while
// it is.
func (m *Machine) Dragging() bool { return m.phase == phaseDragging }

// DragTarget returns the node ID being dragged, or "".
func (m *Machine) DragTarget() string {
	if m.phase == phaseDragging || m.phase == phaseDownOnNode {
		return m.pressedID
	}
	return ""
}

// Press handles a pointer-down at a screen position.
func (m *Machine) Press(screen view.Point, modifier bool, now time.Time) Action {
	if m.hit == nil {
		return Action{}
	}
	m.pressAt = screen
	m.lastMove = screen
	sp := m.viewport.Transform().ToSim(screen)

	if n := m.hit.NodeAt(sp); n != nil {
		if m.hit.ExpandButtonAt(n, sp, m.viewport.Transform().K) {
			m.phase = phaseButtonArmed
			m.pressedID = n.ID
			return Action{}
		}
		m.phase = phaseDownOnNode
		m.pressedID = n.ID
		return Action{}
	}
	// Expand buttons extend past their node's hit circle.
	if id := m.expandButtonOwner(sp); id != "" {
		m.phase = phaseButtonArmed
		m.pressedID = id
		return Action{}
	}
	m.phase = phaseDownOnEmpty
	m.pressedID = ""
	return Action{}
}

// Move handles pointer motion. While a button is held it promotes presses
// to drags (on nodes) or pans (on empty space) once the threshold is
// exceeded; afterwards it streams drag/pan deltas.
func (m *Machine) Move(screen view.Point, now time.Time) Action {
	defer func() { m.lastMove = screen }()

	switch m.phase {
	case phaseDownOnNode:
		if dist(screen, m.pressAt) <= DragThreshold {
			return Action{}
		}
		m.phase = phaseDragging
		return Action{Kind: ActionDragStart, NodeID: m.pressedID, Sim: m.viewport.Transform().ToSim(screen)}
	case phaseDragging:
		return Action{Kind: ActionDragMove, NodeID: m.pressedID, Sim: m.viewport.Transform().ToSim(screen)}
	case phaseDownOnEmpty:
		if dist(screen, m.pressAt) <= DragThreshold {
			return Action{}
		}
		m.phase = phasePanning
		fallthrough
	case phasePanning:
		return Action{Kind: ActionPan, DX: screen.X - m.lastMove.X, DY: screen.Y - m.lastMove.Y}
	}
	return Action{}
}

// Release handles pointer-up, emitting the gesture's terminal action.
func (m *Machine) Release(screen view.Point, modifier bool, now time.Time) Action {
	ph := m.phase
	m.phase = phaseIdle

	switch ph {
	case phaseDragging:
		// A completed drag suppresses the click's selection side effect.
		id := m.pressedID
		m.pressedID = ""
		m.lastClickID = ""
		return Action{Kind: ActionDragEnd, NodeID: id}

	case phaseButtonArmed:
		id := m.pressedID
		m.pressedID = ""
		sp := m.viewport.Transform().ToSim(screen)
		if n := m.hit.Node(id); n != nil && m.hit.ExpandButtonAt(n, sp, m.viewport.Transform().K) {
			return Action{Kind: ActionToggleCollapse, NodeID: id}
		}
		return Action{}

	case phaseDownOnNode:
		id := m.pressedID
		m.pressedID = ""
		if id == m.lastClickID && now.Sub(m.lastClickAt) <= DoubleClickWindow && m.res != nil && m.res.HasChildren(id) {
			// Double click: collapse toggle replaces the second click's
			// selection effect.
			m.lastClickID = ""
			return Action{Kind: ActionToggleCollapse, NodeID: id}
		}
		m.lastClickID = id
		m.lastClickAt = now
		return Action{Kind: ActionClickNode, NodeID: id, Modifier: modifier}

	case phaseDownOnEmpty:
		m.lastClickID = ""
		return Action{Kind: ActionClearSelection}

	case phasePanning:
		return Action{}
	}
	return Action{}
}

// Leave cancels any gesture in progress (pointer left the canvas).
// An active drag ends where it was; clicks are abandoned.
func (m *Machine) Leave(now time.Time) Action {
	ph := m.phase
	m.phase = phaseIdle
	id := m.pressedID
	m.pressedID = ""
	if ph == phaseDragging {
		return Action{Kind: ActionDragEnd, NodeID: id}
	}
	return Action{}
}

// expandButtonOwner finds a visible node whose live expand button contains
// the point, for presses that land outside every node's own hit circle.
func (m *Machine) expandButtonOwner(sp view.Point) string {
	zoom := m.viewport.Transform().K
	if zoom <= MinExpandZoom {
		return ""
	}
	for _, n := range m.hit.nodes {
		if m.hit.ExpandButtonAt(n, sp, zoom) {
			return n.ID
		}
	}
	return ""
}

func dist(a, b view.Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
