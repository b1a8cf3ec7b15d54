package export

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/jfortez/flowgraph/pkg/graph"
	"github.com/jfortez/flowgraph/pkg/snapshot"
	"github.com/jfortez/flowgraph/pkg/view"
)

// ToDOT emits the visible graph as DOT with every node pinned to its
// snapshot position. Nodes missing from the snapshot are left unpinned and
// neato places them. Y is flipped: screen space grows downward, DOT upward.
func ToDOT(res *graph.Resolution, snap snapshot.Snapshot) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fixedsize=true];\n")
	buf.WriteString("\n")

	for _, n := range res.VisibleNodes {
		attrs := nodeAttrs(n, snap)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, l := range res.VisibleLinks {
		fmt.Fprintf(&buf, "  %q -- %q;\n", l.Source, l.Target)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n *graph.Node, snap snapshot.Snapshot) []string {
	r := view.NodeRadius(n.Level)
	attrs := []string{
		fmt.Sprintf("label=%q", n.DisplayLabel()),
		// width is a diameter in inches; DOT uses 72 points per inch.
		fmt.Sprintf("width=%.3f", 2*r/72),
	}
	if p, ok := snap.Positions[n.ID]; ok {
		attrs = append(attrs, fmt.Sprintf("pos=\"%.2f,%.2f!\"", p.X, -p.Y))
	}
	if n.Fill != "" {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", n.Fill))
	}
	if n.Border != "" {
		attrs = append(attrs, fmt.Sprintf("color=%q", n.Border))
	}
	return attrs
}

// RenderSVG renders pinned DOT to SVG with the neato engine.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.SVG)
}

// RenderPNG renders pinned DOT to PNG with the neato engine.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
