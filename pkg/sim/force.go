package sim

import "math"

// jiggle returns a tiny deterministic displacement used to separate exactly
// coincident nodes. A fixed linear congruential sequence keeps runs
// reproducible.
type jiggler struct{ state uint32 }

func (j *jiggler) next() float64 {
	j.state = j.state*1664525 + 1013904223
	return (float64(j.state)/float64(math.MaxUint32) - 0.5) * 1e-6
}

// Spring couples two simulated nodes for the link-attraction force.
type Spring struct {
	Source, Target *Node
}

// LinkForce pulls linked node pairs toward a rest distance.
//
// Strength scales the pull: 0 means no pull, 1 means the standard rigid
// coupling. Each spring is additionally biased by its endpoints' degrees so
// heavily linked hubs are not yanked around by every leaf.
type LinkForce struct {
	Distance float64 // Rest length, simulation units
	Strength float64 // 0..1 overall scale

	springs  []Spring
	bias     []float64 // fraction of correction pushed onto the source
	strength []float64 // per-spring strength after degree normalization
	jig      jiggler
}

// NewLinkForce builds a link force over resolved springs. Both endpoints
// must be part of the simulated node array.
func NewLinkForce(springs []Spring, distance, strength float64) *LinkForce {
	return &LinkForce{Distance: distance, Strength: strength, springs: springs}
}

// Initialize recomputes degree biases for the current node array.
func (f *LinkForce) Initialize(nodes []*Node) {
	degree := make(map[string]int)
	for _, sp := range f.springs {
		degree[sp.Source.ID]++
		degree[sp.Target.ID]++
	}
	f.bias = make([]float64, len(f.springs))
	f.strength = make([]float64, len(f.springs))
	for i, sp := range f.springs {
		ds, dt := degree[sp.Source.ID], degree[sp.Target.ID]
		f.bias[i] = float64(ds) / float64(ds+dt)
		f.strength[i] = f.Strength / float64(min(ds, dt))
	}
}

// Apply moves each spring's endpoints toward the rest distance, splitting
// the correction by bias.
func (f *LinkForce) Apply(alpha float64) {
	for i, sp := range f.springs {
		src, dst := sp.Source, sp.Target
		dx := dst.X + dst.VX - src.X - src.VX
		dy := dst.Y + dst.VY - src.Y - src.VY
		if dx == 0 {
			dx = f.jig.next()
		}
		if dy == 0 {
			dy = f.jig.next()
		}
		l := math.Hypot(dx, dy)
		k := (l - f.Distance) / l * alpha * f.strength[i]
		dx *= k
		dy *= k

		b := f.bias[i]
		dst.VX -= dx * b
		dst.VY -= dy * b
		src.VX += dx * (1 - b)
		src.VY += dy * (1 - b)
	}
}

// AnchorForce pulls each node toward its own layout anchor, preventing
// unbounded drift and preserving the layout mode's shape. Pinned nodes are
// left alone.
type AnchorForce struct {
	Strength float64

	nodes []*Node
}

// NewAnchorForce builds an anchor force with the given strength.
func NewAnchorForce(strength float64) *AnchorForce {
	return &AnchorForce{Strength: strength}
}

func (f *AnchorForce) Initialize(nodes []*Node) { f.nodes = nodes }

func (f *AnchorForce) Apply(alpha float64) {
	for _, n := range f.nodes {
		if n.Pinned() {
			continue
		}
		n.VX += (n.AnchorX - n.X) * f.Strength * alpha
		n.VY += (n.AnchorY - n.Y) * f.Strength * alpha
	}
}

// CenterForce nudges the layout's centroid toward a fixed point by
// translating positions. Pinned nodes still count toward the centroid but
// are not moved.
type CenterForce struct {
	X, Y     float64
	Strength float64

	nodes []*Node
}

// NewCenterForce builds a centering force toward (x, y).
func NewCenterForce(x, y, strength float64) *CenterForce {
	return &CenterForce{X: x, Y: y, Strength: strength}
}

func (f *CenterForce) Initialize(nodes []*Node) { f.nodes = nodes }

func (f *CenterForce) Apply(float64) {
	if len(f.nodes) == 0 {
		return
	}
	var cx, cy float64
	for _, n := range f.nodes {
		cx += n.X
		cy += n.Y
	}
	cx = (cx/float64(len(f.nodes)) - f.X) * f.Strength
	cy = (cy/float64(len(f.nodes)) - f.Y) * f.Strength
	for _, n := range f.nodes {
		if n.Pinned() {
			continue
		}
		n.X -= cx
		n.Y -= cy
	}
}
