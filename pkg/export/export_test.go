package export

import (
	"strings"
	"testing"

	"github.com/jfortez/flowgraph/pkg/graph"
	"github.com/jfortez/flowgraph/pkg/snapshot"
)

func testResolution(collapsed graph.Set) *graph.Resolution {
	g := graph.Graph{
		Nodes: []graph.Node{
			{ID: "root", Label: "Root", Fill: "#ff8800"},
			{ID: "a", Level: 1},
			{ID: "a1", Level: 2},
		},
		Links: []graph.Link{
			{Source: "root", Target: "a"},
			{Source: "a", Target: "a1"},
		},
	}
	return graph.Resolve(g, collapsed)
}

func TestToDOTPinsPositions(t *testing.T) {
	res := testResolution(nil)
	snap := snapshot.Snapshot{Positions: map[string]snapshot.Position{
		"root": {X: 0, Y: 0},
		"a":    {X: 100.5, Y: 40},
	}}

	dot := ToDOT(res, snap)

	for _, want := range []string{
		"layout=neato;",
		`"root" [`,
		`label="Root"`,
		`pos="100.50,-40.00!"`,
		`fillcolor="#ff8800"`,
		`"root" -- "a";`,
		`"a" -- "a1";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}

	// a1 had no snapshot position, so it must not carry a pin.
	for _, line := range strings.Split(dot, "\n") {
		if strings.Contains(line, `"a1" [`) && strings.Contains(line, "pos=") {
			t.Errorf("unpositioned node a1 got a pin: %s", line)
		}
	}
}

func TestToDOTHonorsCollapse(t *testing.T) {
	res := testResolution(graph.NewSet("a"))
	dot := ToDOT(res, snapshot.Snapshot{})

	if strings.Contains(dot, `"a1"`) {
		t.Error("hidden node a1 exported")
	}
	if !strings.Contains(dot, `"a" [`) {
		t.Error("collapsed-but-visible node a missing")
	}
}
