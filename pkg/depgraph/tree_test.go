package depgraph

import (
	"slices"
	"strings"
	"testing"

	"github.com/cratewalk/cratewalk/pkg/errors"
)

func TestRenderTree_DirectDepsOnly(t *testing.T) {
	g := New()
	g.AddEdge("a", "c")
	g.AddEdge("a", "b")
	g.AddEdge("b", "x") // must not appear at maxDepth 1

	lines, err := RenderTree(g, "a", 1, "")
	if err != nil {
		t.Fatalf("RenderTree failed: %v", err)
	}

	want := []string{
		"a",
		"├── b",
		"└── c",
	}
	if !slices.Equal(lines, want) {
		t.Errorf("RenderTree() = %q, want %q", lines, want)
	}
}

func TestRenderTree_TwoCycle(t *testing.T) {
	g := New()
	g.AddEdge("a", "b")
	g.AddEdge("b", "a")

	lines, err := RenderTree(g, "a", 5, "")
	if err != nil {
		t.Fatalf("RenderTree failed: %v", err)
	}

	want := []string{
		"a",
		"└── b",
		"    └── a (cyclic)",
	}
	if !slices.Equal(lines, want) {
		t.Errorf("RenderTree() = %q, want %q", lines, want)
	}
}

func TestRenderTree_CyclicMarkerBeforeDepthCap(t *testing.T) {
	// The repeated ancestor sits exactly at maxDepth; it still gets the marker.
	g := New()
	g.AddEdge("a", "b")
	g.AddEdge("b", "a")

	lines, err := RenderTree(g, "a", 2, "")
	if err != nil {
		t.Fatalf("RenderTree failed: %v", err)
	}
	last := lines[len(lines)-1]
	if last != "    └── a (cyclic)" {
		t.Errorf("last line = %q, want %q", last, "    └── a (cyclic)")
	}
}

func TestRenderTree_Diamond(t *testing.T) {
	g := New()
	g.AddEdge("a", "b")
	g.AddEdge("a", "c")
	g.AddEdge("b", "d")
	g.AddEdge("c", "d")

	lines, err := RenderTree(g, "a", 3, "")
	if err != nil {
		t.Fatalf("RenderTree failed: %v", err)
	}

	want := []string{
		"a",
		"├── b",
		"│   └── d",
		"└── c",
		"    └── d",
	}
	if !slices.Equal(lines, want) {
		t.Errorf("RenderTree() = %q, want %q", lines, want)
	}
}

func TestRenderTree_Filter(t *testing.T) {
	g := New()
	g.AddEdge("app", "testutils")
	g.AddEdge("app", "core")
	g.AddEdge("testutils", "mocklib")

	lines, err := RenderTree(g, "app", 5, "test")
	if err != nil {
		t.Fatalf("RenderTree failed: %v", err)
	}

	want := []string{
		"app",
		"└── core",
	}
	if !slices.Equal(lines, want) {
		t.Errorf("RenderTree() = %q, want %q", lines, want)
	}
	for _, line := range lines {
		if strings.Contains(line, "test") {
			t.Errorf("filtered substring leaked into output: %q", line)
		}
	}
}

func TestRenderTree_RootExemptFromFilter(t *testing.T) {
	g := New()
	g.AddEdge("testapp", "core")

	lines, err := RenderTree(g, "testapp", 2, "test")
	if err != nil {
		t.Fatalf("RenderTree failed: %v", err)
	}
	if len(lines) == 0 || lines[0] != "testapp" {
		t.Errorf("root line = %v, want testapp first", lines)
	}
}

func TestRenderTree_SiblingBranchesIndependent(t *testing.T) {
	// d->b closes a cycle on the b branch only; under c the same nodes
	// must still expand until their own branch repeats.
	g := New()
	g.AddEdge("a", "b")
	g.AddEdge("a", "c")
	g.AddEdge("b", "d")
	g.AddEdge("c", "d")
	g.AddEdge("d", "b")

	lines, err := RenderTree(g, "a", 5, "")
	if err != nil {
		t.Fatalf("RenderTree failed: %v", err)
	}

	want := []string{
		"a",
		"├── b",
		"│   └── d",
		"│       └── b (cyclic)",
		"└── c",
		"    └── d",
		"        └── b",
		"            └── d (cyclic)",
	}
	if !slices.Equal(lines, want) {
		t.Errorf("RenderTree() = %q, want %q", lines, want)
	}
}

func TestRenderTree_MaxDepthZero(t *testing.T) {
	g := New()
	g.AddEdge("a", "b")

	lines, err := RenderTree(g, "a", 0, "")
	if err != nil {
		t.Fatalf("RenderTree failed: %v", err)
	}
	if len(lines) != 1 || lines[0] != "a" {
		t.Errorf("RenderTree() = %q, want just the root", lines)
	}
}

func TestRenderTree_RootNotFound(t *testing.T) {
	g := New()
	g.EnsureNode("a")

	_, err := RenderTree(g, "missing", 3, "")
	if err == nil {
		t.Fatal("expected error for missing root")
	}
	if !errors.Is(err, errors.ErrCodeRootNotFound) {
		t.Errorf("GetCode(err) = %s, want %s", errors.GetCode(err), errors.ErrCodeRootNotFound)
	}
}

func TestRenderTree_Deterministic(t *testing.T) {
	g := New()
	g.AddEdge("a", "c")
	g.AddEdge("a", "b")
	g.AddEdge("b", "d")
	g.AddEdge("c", "d")
	g.AddEdge("d", "a")

	first, err := RenderTree(g, "a", 10, "")
	if err != nil {
		t.Fatalf("RenderTree failed: %v", err)
	}
	for range 5 {
		again, err := RenderTree(g, "a", 10, "")
		if err != nil {
			t.Fatalf("RenderTree failed: %v", err)
		}
		if !slices.Equal(first, again) {
			t.Fatalf("RenderTree() not deterministic: %q vs %q", first, again)
		}
	}
}
