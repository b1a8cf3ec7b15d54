package graph

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		g       Graph
		wantErr error
	}{
		{
			name: "Valid",
			g: Graph{
				Nodes: []Node{{ID: "a"}, {ID: "b"}},
				Links: []Link{{Source: "a", Target: "b"}},
			},
		},
		{
			name:    "EmptyID",
			g:       Graph{Nodes: []Node{{ID: ""}}},
			wantErr: ErrInvalidNodeID,
		},
		{
			name:    "DuplicateID",
			g:       Graph{Nodes: []Node{{ID: "a"}, {ID: "a"}}},
			wantErr: ErrDuplicateNodeID,
		},
		{
			name: "DanglingLinkIsNotAnError",
			g: Graph{
				Nodes: []Node{{ID: "a"}},
				Links: []Link{{Source: "a", Target: "ghost"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.g.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	g := Graph{
		Nodes: []Node{{ID: "root", Label: "Root", Type: "group"}, {ID: "a", Level: 1, Match: true}},
		Links: []Link{{Source: "root", Target: "a"}},
	}

	data, err := Marshal(g)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(got.Nodes) != 2 || len(got.Links) != 1 {
		t.Fatalf("got %d nodes, %d links, want 2, 1", len(got.Nodes), len(got.Links))
	}
	if got.Nodes[0].Label != "Root" || !got.Nodes[1].Match {
		t.Errorf("node fields lost in round trip: %+v", got.Nodes)
	}
}

func TestUnmarshalRejectsInvalid(t *testing.T) {
	if _, err := Unmarshal([]byte(`{"nodes": [{"id": ""}]}`)); !errors.Is(err, ErrInvalidNodeID) {
		t.Errorf("Unmarshal empty-id = %v, want ErrInvalidNodeID", err)
	}
	if _, err := Unmarshal([]byte(`not json`)); err == nil {
		t.Error("Unmarshal garbage: want error, got nil")
	}
}

func TestSet(t *testing.T) {
	s := NewSet("a", "b")
	if !s.Has("a") || !s.Has("b") || s.Has("c") {
		t.Fatalf("unexpected membership: %v", s)
	}

	if added := s.Toggle("c"); !added {
		t.Error("Toggle new id should report true")
	}
	if removed := s.Toggle("a"); removed {
		t.Error("Toggle existing id should report false")
	}
	if s.Has("a") || !s.Has("c") {
		t.Errorf("toggle results wrong: %v", s)
	}

	c := s.Clone()
	c.Add("z")
	if s.Has("z") {
		t.Error("Clone must be independent of the original")
	}
}

func TestDisplayLabel(t *testing.T) {
	n := Node{ID: "pkg", Label: "Package"}
	if got := n.DisplayLabel(); got != "Package" {
		t.Errorf("DisplayLabel = %q, want Package", got)
	}
	n.Label = ""
	if got := n.DisplayLabel(); got != "pkg" {
		t.Errorf("DisplayLabel = %q, want pkg", got)
	}
}
