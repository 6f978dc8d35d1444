package depgraph

import (
	"maps"
	"slices"
	"strings"

	"github.com/cratewalk/cratewalk/pkg/errors"
)

// ComputeLoadOrder linearizes the graph reachable from start so that every
// dependency precedes its dependents (reverse-topological order).
//
// Nodes whose name contains filter as a substring are excluded entirely,
// start included; edges into a filtered node are treated as absent. At each
// branch point dependencies are visited in ascending lexicographic order,
// making the result fully deterministic.
//
// The returned cycles slice holds the sorted names at which a still-active
// ancestor was re-encountered. Reporting is intentionally partial: only the
// node where the repeat was detected is recorded, not the whole cycle.
//
// Returns ErrCodeRootNotFound if start is not a node in the graph.
func ComputeLoadOrder(g *Graph, start string, filter string) (order []string, cycles []string, err error) {
	if !g.Has(start) {
		return nil, nil, errors.New(errors.ErrCodeRootNotFound, "crate %q not in graph", start)
	}

	visited := make(map[string]struct{})
	onStack := make(map[string]struct{})
	cycleSet := make(map[string]struct{})

	var visit func(name string)
	visit = func(name string) {
		if filter != "" && strings.Contains(name, filter) {
			return
		}
		if _, active := onStack[name]; active {
			cycleSet[name] = struct{}{}
			return
		}
		if _, done := visited[name]; done {
			return
		}

		onStack[name] = struct{}{}
		deps := g.DependenciesOf(name)
		slices.Sort(deps)
		for _, dep := range deps {
			visit(dep)
		}
		delete(onStack, name)

		visited[name] = struct{}{}
		order = append(order, name)
	}

	visit(start)
	return order, slices.Sorted(maps.Keys(cycleSet)), nil
}

// FormatLoadOrder joins an order into the display form used by the CLI.
func FormatLoadOrder(order []string) string {
	return strings.Join(order, "-> ")
}

// CycleNote returns the names present in both cycles and order, sorted and
// comma-separated, or "" when the intersection is empty. The note flags
// crates that were loaded despite participating in a cycle.
func CycleNote(order, cycles []string) string {
	inOrder := make(map[string]struct{}, len(order))
	for _, name := range order {
		inOrder[name] = struct{}{}
	}

	var hits []string
	for _, name := range cycles {
		if _, ok := inOrder[name]; ok {
			hits = append(hits, name)
		}
	}
	slices.Sort(hits)
	return strings.Join(hits, ", ")
}
