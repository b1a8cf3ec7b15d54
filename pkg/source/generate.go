package source

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/jfortez/flowgraph/pkg/graph"
)

// GenerateConfig shapes the synthetic tree.
type GenerateConfig struct {
	// Depth is the number of levels below the root.
	Depth int
	// Breadth is the maximum number of children per node.
	Breadth int
	// Seed makes the tree shape reproducible. Zero draws a random one.
	Seed int64
}

// Generator produces a random tree for demos and load testing. Node IDs are
// UUIDs so repeated generations never collide inside the same store.
type Generator struct {
	cfg GenerateConfig
}

// NewGenerator creates a generator with the given shape.
func NewGenerator(cfg GenerateConfig) *Generator {
	if cfg.Depth < 1 {
		cfg.Depth = 3
	}
	if cfg.Breadth < 1 {
		cfg.Breadth = 4
	}
	return &Generator{cfg: cfg}
}

// Load builds a fresh synthetic graph.
func (gen *Generator) Load(_ context.Context) (graph.Graph, error) {
	rng := rand.New(rand.NewSource(gen.cfg.Seed))
	if gen.cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}

	g := graph.Graph{}
	root := graph.Node{ID: uuid.NewString(), Label: "root", Level: 0}
	g.Nodes = append(g.Nodes, root)

	frontier := []graph.Node{root}
	serial := 0
	for level := 1; level <= gen.cfg.Depth; level++ {
		var next []graph.Node
		for _, parent := range frontier {
			// At least one child per frontier node keeps every level populated.
			count := 1 + rng.Intn(gen.cfg.Breadth)
			for i := 0; i < count; i++ {
				serial++
				child := graph.Node{
					ID:    uuid.NewString(),
					Label: fmt.Sprintf("n%d", serial),
					Level: level,
				}
				g.Nodes = append(g.Nodes, child)
				g.Links = append(g.Links, graph.Link{Source: parent.ID, Target: child.ID})
				next = append(next, child)
			}
		}
		frontier = next
	}
	return g, nil
}
