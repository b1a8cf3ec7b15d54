package sim

import "math"

// CollisionMode selects how strongly overlapping nodes are pushed apart.
type CollisionMode string

const (
	// CollisionFull separates nodes at their full collision radius.
	CollisionFull CollisionMode = "full"
	// CollisionMinimal uses a smaller radius and weaker push.
	CollisionMinimal CollisionMode = "minimal"
	// CollisionNone disables collision handling entirely.
	CollisionNone CollisionMode = "none"
)

// ParseCollisionMode validates a collision mode name.
func ParseCollisionMode(s string) (CollisionMode, bool) {
	switch CollisionMode(s) {
	case CollisionFull, CollisionMinimal, CollisionNone:
		return CollisionMode(s), true
	}
	return "", false
}

// CollideForce enforces a minimum center-to-center separation between
// nodes. Radii come from a caller-supplied function so the simulation never
// owns rendering radii; switching modes cannot leak into how nodes draw.
type CollideForce struct {
	Radius     func(n *Node) float64
	Strength   float64
	Iterations int

	nodes []*Node
	jig   jiggler
}

// NewCollideForce builds a collision force for the given mode. The base
// radius function is scaled down for the minimal mode; nil is returned for
// [CollisionNone] so callers can register it directly (a nil force removes
// the slot).
func NewCollideForce(mode CollisionMode, radius func(n *Node) float64) *CollideForce {
	switch mode {
	case CollisionMinimal:
		return &CollideForce{
			Radius:     func(n *Node) float64 { return radius(n) * 0.6 },
			Strength:   0.3,
			Iterations: 1,
		}
	case CollisionNone:
		return nil
	default:
		return &CollideForce{Radius: radius, Strength: 1, Iterations: 2}
	}
}

func (f *CollideForce) Initialize(nodes []*Node) { f.nodes = nodes }

// Apply pushes overlapping pairs apart along their separation axis. A
// uniform grid keyed by the largest radius keeps the neighbor search local.
// Pinned nodes absorb no displacement; their counterpart takes the full
// correction.
func (f *CollideForce) Apply(float64) {
	if len(f.nodes) < 2 {
		return
	}
	var maxR float64
	radii := make([]float64, len(f.nodes))
	for i, n := range f.nodes {
		radii[i] = f.Radius(n)
		maxR = math.Max(maxR, radii[i])
	}
	if maxR <= 0 {
		return
	}
	cell := maxR * 2

	for iter := 0; iter < f.Iterations; iter++ {
		grid := make(map[[2]int][]int, len(f.nodes))
		key := func(n *Node) [2]int {
			return [2]int{int(math.Floor((n.X + n.VX) / cell)), int(math.Floor((n.Y + n.VY) / cell))}
		}
		for i, n := range f.nodes {
			grid[key(n)] = append(grid[key(n)], i)
		}

		for i, a := range f.nodes {
			k := key(a)
			for dx := -1; dx <= 1; dx++ {
				for dy := -1; dy <= 1; dy++ {
					for _, j := range grid[[2]int{k[0] + dx, k[1] + dy}] {
						if j <= i {
							continue
						}
						f.separate(a, f.nodes[j], radii[i], radii[j])
					}
				}
			}
		}
	}
}

// separate resolves one overlapping pair by adjusting velocities.
func (f *CollideForce) separate(a, b *Node, ra, rb float64) {
	r := ra + rb
	dx := (b.X + b.VX) - (a.X + a.VX)
	dy := (b.Y + b.VY) - (a.Y + a.VY)
	d2 := dx*dx + dy*dy
	if d2 >= r*r {
		return
	}
	if dx == 0 {
		dx = f.jig.next()
		d2 += dx * dx
	}
	if dy == 0 {
		dy = f.jig.next()
		d2 += dy * dy
	}
	d := math.Sqrt(d2)
	l := (r - d) / d * f.Strength

	// Heavier (larger) node moves less.
	wb := ra * ra / (ra*ra + rb*rb)
	wa := 1 - wb

	switch {
	case a.Pinned() && b.Pinned():
		return
	case a.Pinned():
		b.VX += dx * l
		b.VY += dy * l
	case b.Pinned():
		a.VX -= dx * l
		a.VY -= dy * l
	default:
		b.VX += dx * l * wb
		b.VY += dy * l * wb
		a.VX -= dx * l * wa
		a.VY -= dy * l * wa
	}
}
