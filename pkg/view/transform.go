package view

import "math"

// Scale clamp range for all zoom paths.
const (
	MinScale = 0.3
	MaxScale = 4.0
)

// Point is a coordinate pair in either space; methods state which.
type Point struct {
	X, Y float64
}

// Transform is the viewport's affine map: screen = sim*K + (X, Y).
// The zero value is not useful; use [Identity].
type Transform struct {
	X, Y float64 // Translation, screen pixels
	K    float64 // Uniform scale
}

// Identity returns the neutral transform.
func Identity() Transform { return Transform{K: 1} }

// ToScreen converts a simulation-space point to screen space.
func (t Transform) ToScreen(p Point) Point {
	return Point{X: p.X*t.K + t.X, Y: p.Y*t.K + t.Y}
}

// ToSim converts a screen-space point to simulation space.
func (t Transform) ToSim(p Point) Point {
	return Point{X: (p.X - t.X) / t.K, Y: (p.Y - t.Y) / t.K}
}

// Viewport owns the interactive transform. All gesture handling and
// imperative sets route through it so the gesture baseline stays coherent.
type Viewport struct {
	t Transform
}

// NewViewport starts at the identity transform.
func NewViewport() *Viewport {
	return &Viewport{t: Identity()}
}

// Transform returns the current transform triple.
func (v *Viewport) Transform() Transform { return v.t }

// Set replaces the transform imperatively (minimap drag, fit-to-view).
// The scale is clamped; the new value becomes the baseline for subsequent
// gestures.
func (v *Viewport) Set(t Transform) {
	if t.K == 0 {
		t.K = 1
	}
	t.K = clampScale(t.K)
	v.t = t
}

// Pan shifts the viewport by a screen-space delta.
func (v *Viewport) Pan(dx, dy float64) {
	v.t.X += dx
	v.t.Y += dy
}

// ZoomAt scales by factor anchored at a screen point: the simulation-space
// point under the anchor is invariant across the zoom.
func (v *Viewport) ZoomAt(anchor Point, factor float64) {
	k := clampScale(v.t.K * factor)
	if k == v.t.K {
		return
	}
	// Keep anchor fixed: solve for the translation that maps the same sim
	// point back to the anchor at the new scale.
	sp := v.t.ToSim(anchor)
	v.t.K = k
	v.t.X = anchor.X - sp.X*k
	v.t.Y = anchor.Y - sp.Y*k
}

// Fit positions the viewport so the simulation-space bounding box fills the
// container with the given padding. Degenerate extents (single node, zero
// container) fall back to centering at scale 1.
func (v *Viewport) Fit(minX, minY, maxX, maxY, width, height, padding float64) {
	if width <= 0 || height <= 0 {
		return
	}
	w := maxX - minX
	h := maxY - minY
	cx := (minX + maxX) / 2
	cy := (minY + maxY) / 2

	k := 1.0
	if w > 0 || h > 0 {
		kx, ky := math.Inf(1), math.Inf(1)
		if w > 0 {
			kx = (width - 2*padding) / w
		}
		if h > 0 {
			ky = (height - 2*padding) / h
		}
		k = math.Min(kx, ky)
		if k <= 0 || math.IsInf(k, 0) {
			k = 1
		}
	}
	k = clampScale(k)
	v.t = Transform{
		X: width/2 - cx*k,
		Y: height/2 - cy*k,
		K: k,
	}
}

func clampScale(k float64) float64 {
	return math.Min(math.Max(k, MinScale), MaxScale)
}

// NodeRadius is the render radius for a node at the given hierarchy depth:
// roots draw largest, descendants progressively smaller with a floor. The
// value is in simulation units; multiply by the transform scale for screen
// size.
func NodeRadius(level int) float64 {
	r := 26 - 7*float64(level)
	if r < 10 {
		return 10
	}
	return r
}
