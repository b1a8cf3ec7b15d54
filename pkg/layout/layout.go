package layout

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/jfortez/flowgraph/pkg/graph"
)

// ErrUnknownMode is returned by [ParseMode] for unrecognized mode names.
var ErrUnknownMode = errors.New("unknown layout mode")

// Mode selects the initial-placement strategy.
type Mode string

const (
	// ModeConcentric places each level on a circle of radius level × RingStep.
	ModeConcentric Mode = "concentric"
	// ModeProgressive grows ring radius geometrically with level.
	ModeProgressive Mode = "progressive"
	// ModeHierarchical derives a node's angle from its parent's angle within
	// a bounded angular spread shared among siblings.
	ModeHierarchical Mode = "hierarchical"
	// ModeRadialTree is reserved; placement falls back to concentric.
	ModeRadialTree Mode = "radial-tree"
	// ModeCluster is reserved; placement falls back to concentric.
	ModeCluster Mode = "cluster"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeConcentric, ModeProgressive, ModeHierarchical, ModeRadialTree, ModeCluster:
		return Mode(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Options tune the placement geometry. Zero values are replaced by
// [DefaultOptions] equivalents in [Init].
type Options struct {
	CenterX float64 // Viewport center, simulation space
	CenterY float64

	RingStep     float64 // Radius increment per level (concentric, hierarchical)
	BaseRadius   float64 // First-ring radius (progressive)
	GrowthFactor float64 // Geometric ring growth (progressive)
	Spread       float64 // Angular spread shared among siblings (hierarchical), radians
}

// DefaultOptions returns the placement defaults.
func DefaultOptions() Options {
	return Options{
		RingStep:     160,
		BaseRadius:   140,
		GrowthFactor: 1.6,
		Spread:       math.Pi / 2,
	}
}

// Point is a position in simulation space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Placement is the initializer's output for one node: the anchor the
// positional force restores toward, and the seed position the simulation
// starts from. Seeded reports whether the start position was carried over
// from a previous simulation rather than freshly computed.
type Placement struct {
	Anchor Point
	Start  Point
	Seeded bool
}

// Init computes placements for every visible node in the resolution.
//
// prev carries simulated positions from a torn-down scene, keyed by node ID;
// a surviving node starts where it left off while its anchor moves to the
// fresh target. prev may be nil. Reserved modes fall back to concentric
// placement rather than failing.
func Init(res *graph.Resolution, mode Mode, opts Options, prev map[string]Point) map[string]Placement {
	if opts.RingStep == 0 {
		opts.RingStep = DefaultOptions().RingStep
	}
	if opts.BaseRadius == 0 {
		opts.BaseRadius = DefaultOptions().BaseRadius
	}
	if opts.GrowthFactor == 0 {
		opts.GrowthFactor = DefaultOptions().GrowthFactor
	}
	if opts.Spread == 0 {
		opts.Spread = DefaultOptions().Spread
	}

	var anchors map[string]Point
	switch mode {
	case ModeProgressive:
		anchors = ringPlacement(res, opts, progressiveRadius(opts))
	case ModeHierarchical:
		anchors = hierarchicalPlacement(res, opts)
	default:
		// concentric, radial-tree, cluster
		anchors = ringPlacement(res, opts, func(level int) float64 {
			return float64(level) * opts.RingStep
		})
	}

	out := make(map[string]Placement, len(anchors))
	for id, anchor := range anchors {
		p := Placement{Anchor: anchor, Start: anchor}
		if prevPos, ok := prev[id]; ok {
			p.Start = prevPos
			p.Seeded = true
		}
		out[id] = p
	}
	return out
}

func progressiveRadius(opts Options) func(int) float64 {
	return func(level int) float64 {
		if level <= 0 {
			return 0
		}
		return opts.BaseRadius * math.Pow(opts.GrowthFactor, float64(level-1))
	}
}

// ringPlacement spaces the nodes of each level evenly around a circle whose
// radius is a function of the level.
func ringPlacement(res *graph.Resolution, opts Options, radius func(int) float64) map[string]Point {
	byLevel := res.VisibleByLevel()
	out := make(map[string]Point, len(res.VisibleNodes))
	for level, nodes := range byLevel {
		r := radius(level)
		for i, n := range nodes {
			angle := ringAngle(i, len(nodes))
			out[n.ID] = Point{
				X: opts.CenterX + r*math.Cos(angle),
				Y: opts.CenterY + r*math.Sin(angle),
			}
		}
	}
	return out
}

// ringAngle spaces index i of n evenly around the circle, starting at the top.
func ringAngle(i, n int) float64 {
	if n <= 0 {
		return -math.Pi / 2
	}
	return 2*math.Pi*float64(i)/float64(n) - math.Pi/2
}

// hierarchicalPlacement puts roots at (or near) the center and derives each
// node's angle from its parent's angle, offset within the sibling spread.
// Radius grows linearly with level. Nodes whose parent position is unknown
// fall back to an evenly-spaced ring for their level.
func hierarchicalPlacement(res *graph.Resolution, opts Options) map[string]Point {
	byLevel := res.VisibleByLevel()
	levels := make([]int, 0, len(byLevel))
	for l := range byLevel {
		levels = append(levels, l)
	}
	slices.Sort(levels)

	out := make(map[string]Point, len(res.VisibleNodes))
	angles := make(map[string]float64)
	hasAngle := make(map[string]bool)

	for _, level := range levels {
		nodes := byLevel[level]
		r := float64(level) * opts.RingStep

		if level == levels[0] {
			// Top level: single root sits at the center with no angle of its
			// own; multiple roots share a ring.
			if len(nodes) == 1 && r == 0 {
				out[nodes[0].ID] = Point{X: opts.CenterX, Y: opts.CenterY}
				continue
			}
			for i, n := range nodes {
				a := ringAngle(i, len(nodes))
				out[n.ID] = Point{X: opts.CenterX + r*math.Cos(a), Y: opts.CenterY + r*math.Sin(a)}
				angles[n.ID] = a
				hasAngle[n.ID] = true
			}
			continue
		}

		// Count placed siblings per parent so offsets divide the spread.
		siblings := make(map[string]int)
		for _, n := range nodes {
			if p, ok := res.Parent(n.ID); ok {
				if _, placed := out[p]; placed {
					siblings[p]++
				}
			}
		}

		seen := make(map[string]int)
		var fallback []*graph.Node
		for _, n := range nodes {
			p, ok := res.Parent(n.ID)
			if !ok {
				fallback = append(fallback, n)
				continue
			}
			if _, placed := out[p]; !placed {
				fallback = append(fallback, n)
				continue
			}
			i := seen[p]
			seen[p]++
			m := siblings[p]

			var a float64
			if hasAngle[p] {
				a = angles[p] + opts.Spread*((float64(i)+0.5)/float64(m)-0.5)
			} else {
				// Parent at the center: children own the full circle.
				a = ringAngle(i, m)
			}
			out[n.ID] = Point{X: opts.CenterX + r*math.Cos(a), Y: opts.CenterY + r*math.Sin(a)}
			angles[n.ID] = a
			hasAngle[n.ID] = true
		}

		for i, n := range fallback {
			a := ringAngle(i, len(fallback))
			out[n.ID] = Point{X: opts.CenterX + r*math.Cos(a), Y: opts.CenterY + r*math.Sin(a)}
			angles[n.ID] = a
			hasAngle[n.ID] = true
		}
	}
	return out
}
