package source

import (
	"context"
	"fmt"
	"os"

	"github.com/jfortez/flowgraph/pkg/graph"
)

// Source produces a validated graph document.
type Source interface {
	Load(ctx context.Context) (graph.Graph, error)
}

// File loads a graph from a JSON document on disk.
type File struct {
	Path string
}

// NewFile creates a file source for the given path.
func NewFile(path string) *File { return &File{Path: path} }

// Load reads and validates the graph document.
func (f *File) Load(_ context.Context) (graph.Graph, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return graph.Graph{}, fmt.Errorf("read graph %s: %w", f.Path, err)
	}
	g, err := graph.Unmarshal(data)
	if err != nil {
		return graph.Graph{}, fmt.Errorf("parse graph %s: %w", f.Path, err)
	}
	if err := g.Validate(); err != nil {
		return graph.Graph{}, fmt.Errorf("validate graph %s: %w", f.Path, err)
	}
	return g, nil
}
