package depgraph

import (
	"slices"
	"testing"
)

func TestGraph_EnsureNodeIdempotent(t *testing.T) {
	g := New()
	g.EnsureNode("a")
	g.EnsureNode("a")

	if g.NodeCount() != 1 {
		t.Errorf("NodeCount() = %d, want 1", g.NodeCount())
	}
	if !g.Has("a") {
		t.Error("Has(a) = false, want true")
	}
}

func TestGraph_EnsureNodeEmptyName(t *testing.T) {
	g := New()
	g.EnsureNode("")

	if g.NodeCount() != 0 {
		t.Errorf("NodeCount() = %d, want 0", g.NodeCount())
	}
}

func TestGraph_AddEdgeRegistersBothEndpoints(t *testing.T) {
	g := New()
	g.AddEdge("a", "b")

	if !g.Has("a") || !g.Has("b") {
		t.Error("expected both endpoints registered as nodes")
	}
	deps := g.DependenciesOf("b")
	if len(deps) != 0 {
		t.Errorf("DependenciesOf(b) = %v, want empty", deps)
	}
}

func TestGraph_DuplicateEdgesCollapse(t *testing.T) {
	g := New()
	g.AddEdge("a", "b")
	g.AddEdge("a", "b")

	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", g.EdgeCount())
	}
}

func TestGraph_DependenciesOfUnknown(t *testing.T) {
	g := New()

	deps := g.DependenciesOf("ghost")
	if deps == nil || len(deps) != 0 {
		t.Errorf("DependenciesOf(ghost) = %v, want empty non-nil slice", deps)
	}
}

func TestGraph_DependenciesOfReturnsCopy(t *testing.T) {
	g := New()
	g.AddEdge("a", "b")

	deps := g.DependenciesOf("a")
	deps[0] = "mutated"

	got := g.DependenciesOf("a")
	if len(got) != 1 || got[0] != "b" {
		t.Errorf("DependenciesOf(a) = %v after caller mutation, want [b]", got)
	}
}

func TestGraph_NodesReturnsAllNames(t *testing.T) {
	g := New()
	g.AddEdge("a", "b")
	g.AddEdge("a", "c")

	nodes := g.Nodes()
	slices.Sort(nodes)
	want := []string{"a", "b", "c"}
	if !slices.Equal(nodes, want) {
		t.Errorf("Nodes() = %v, want %v", nodes, want)
	}
}

func TestGraph_CaseSensitiveNames(t *testing.T) {
	g := New()
	g.EnsureNode("Serde")
	g.EnsureNode("serde")

	if g.NodeCount() != 2 {
		t.Errorf("NodeCount() = %d, want 2", g.NodeCount())
	}
}
