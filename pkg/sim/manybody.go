package sim

import "math"

// ManyBodyForce applies inverse-square pairwise repulsion (or attraction for
// positive strength) between all simulated nodes, approximated with a
// Barnes-Hut quadtree so a step costs O(n log n) instead of O(n²).
//
// Interactions beyond DistanceMax are ignored entirely; distances below
// DistanceMin are clamped to avoid unbounded velocities for near-coincident
// nodes.
type ManyBodyForce struct {
	Strength    float64 // Negative repels (the usual case)
	DistanceMax float64 // Interaction cutoff
	DistanceMin float64 // Closeness clamp
	Theta       float64 // Barnes-Hut accuracy; larger approximates more

	nodes []*Node
	jig   jiggler
}

// NewManyBody builds a repulsion force. strength is typically negative;
// distanceMax bounds the interaction range.
func NewManyBody(strength, distanceMax float64) *ManyBodyForce {
	return &ManyBodyForce{
		Strength:    strength,
		DistanceMax: distanceMax,
		DistanceMin: 1,
		Theta:       0.9,
	}
}

func (f *ManyBodyForce) Initialize(nodes []*Node) { f.nodes = nodes }

func (f *ManyBodyForce) Apply(alpha float64) {
	if len(f.nodes) < 2 {
		return
	}
	root := buildQuadtree(f.nodes)
	if root == nil {
		return
	}
	max2 := f.DistanceMax * f.DistanceMax
	min2 := f.DistanceMin * f.DistanceMin
	theta2 := f.Theta * f.Theta

	for _, n := range f.nodes {
		f.accumulate(root, n, alpha, max2, min2, theta2)
	}
}

// accumulate walks the quadtree for a single node, applying aggregated
// far-field forces and exact near-field forces.
func (f *ManyBodyForce) accumulate(q *quad, n *Node, alpha, max2, min2, theta2 float64) {
	if q == nil || q.count == 0 {
		return
	}
	dx := q.comX - n.X
	dy := q.comY - n.Y
	d2 := dx*dx + dy*dy

	// Far enough: treat the whole cell as one body at its center of mass.
	if q.size*q.size < theta2*d2 {
		if d2 < max2 {
			if dx == 0 {
				dx = f.jig.next()
				d2 += dx * dx
			}
			if dy == 0 {
				dy = f.jig.next()
				d2 += dy * dy
			}
			if d2 < min2 {
				d2 = math.Sqrt(min2 * d2)
			}
			w := f.Strength * float64(q.count) * alpha / d2
			n.VX += dx * w
			n.VY += dy * w
		}
		return
	}

	if q.leaf {
		for _, b := range q.bodies {
			if b == n {
				continue
			}
			bx := b.X - n.X
			by := b.Y - n.Y
			bd2 := bx*bx + by*by
			if bd2 >= max2 {
				continue
			}
			if bx == 0 {
				bx = f.jig.next()
				bd2 += bx * bx
			}
			if by == 0 {
				by = f.jig.next()
				bd2 += by * by
			}
			if bd2 < min2 {
				bd2 = math.Sqrt(min2 * bd2)
			}
			w := f.Strength * alpha / bd2
			n.VX += bx * w
			n.VY += by * w
		}
		return
	}

	for _, c := range q.children {
		f.accumulate(c, n, alpha, max2, min2, theta2)
	}
}

// quad is one cell of the Barnes-Hut quadtree: spatial bounds, center of
// mass over the contained bodies, and either child cells or a small list of
// bodies at the leaf.
type quad struct {
	x, y, size float64 // Square cell: top-left corner and side length

	comX, comY float64 // Center of mass
	count      int

	leaf     bool
	bodies   []*Node
	children [4]*quad
}

// leafCapacity bounds bodies per leaf before a split. Coincident nodes stop
// splitting once the cell is degenerately small.
const leafCapacity = 4

func buildQuadtree(nodes []*Node) *quad {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, n := range nodes {
		minX = math.Min(minX, n.X)
		minY = math.Min(minY, n.Y)
		maxX = math.Max(maxX, n.X)
		maxY = math.Max(maxY, n.Y)
	}
	size := math.Max(maxX-minX, maxY-minY)
	if size == 0 || math.IsInf(size, 0) {
		size = 1
	}
	root := &quad{x: minX, y: minY, size: size, leaf: true}
	for _, n := range nodes {
		root.insert(n)
	}
	root.summarize()
	return root
}

func (q *quad) insert(n *Node) {
	if q.leaf {
		q.bodies = append(q.bodies, n)
		if len(q.bodies) > leafCapacity && q.size > 1e-6 {
			q.split()
		}
		return
	}
	q.childFor(n).insert(n)
}

func (q *quad) split() {
	q.leaf = false
	half := q.size / 2
	q.children[0] = &quad{x: q.x, y: q.y, size: half, leaf: true}
	q.children[1] = &quad{x: q.x + half, y: q.y, size: half, leaf: true}
	q.children[2] = &quad{x: q.x, y: q.y + half, size: half, leaf: true}
	q.children[3] = &quad{x: q.x + half, y: q.y + half, size: half, leaf: true}
	for _, b := range q.bodies {
		q.childFor(b).insert(b)
	}
	q.bodies = nil
}

func (q *quad) childFor(n *Node) *quad {
	half := q.size / 2
	i := 0
	if n.X >= q.x+half {
		i++
	}
	if n.Y >= q.y+half {
		i += 2
	}
	return q.children[i]
}

// summarize computes counts and centers of mass bottom-up.
func (q *quad) summarize() {
	if q.leaf {
		q.count = len(q.bodies)
		if q.count == 0 {
			return
		}
		for _, b := range q.bodies {
			q.comX += b.X
			q.comY += b.Y
		}
		q.comX /= float64(q.count)
		q.comY /= float64(q.count)
		return
	}
	var wx, wy float64
	for _, c := range q.children {
		c.summarize()
		q.count += c.count
		wx += c.comX * float64(c.count)
		wy += c.comY * float64(c.count)
	}
	if q.count > 0 {
		q.comX = wx / float64(q.count)
		q.comY = wy / float64(q.count)
	}
}
