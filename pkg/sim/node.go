package sim

// Node is a simulated particle: the live position and velocity of one
// visible graph node, plus the anchor it is pulled toward and an optional
// pin that overrides physics entirely.
type Node struct {
	ID    string
	Level int // Hierarchy depth, drives collision radius

	X, Y   float64 // Live position, simulation space
	VX, VY float64 // Velocity

	// AnchorX/AnchorY is the layout-assigned restoring target. It changes
	// when the layout is re-initialized; the live position eases toward it.
	AnchorX, AnchorY float64

	// FX/FY, when non-nil, fix the position. The node stops responding to
	// forces but keeps exerting them on others.
	FX, FY *float64

	index int
}

// Pinned reports whether the node's position is currently fixed.
func (n *Node) Pinned() bool { return n.FX != nil && n.FY != nil }

// Pin fixes the node at the given position. The position takes effect on the
// next simulation step.
func (n *Node) Pin(x, y float64) {
	n.FX, n.FY = &x, &y
}

// Unpin releases the pin; the node resumes physics-governed motion on the
// next re-heat.
func (n *Node) Unpin() {
	n.FX, n.FY = nil, nil
}
