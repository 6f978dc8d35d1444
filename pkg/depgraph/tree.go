package depgraph

import (
	"slices"
	"strings"

	"github.com/cratewalk/cratewalk/pkg/errors"
)

// Box-drawing connectors for the rendered tree.
const (
	connectorMid  = "├── "
	connectorLast = "└── "
	continueMid   = "│   "
	continueLast  = "    "

	cyclicSuffix = " (cyclic)"
)

// RenderTree produces the tree view of the graph rooted at root, one line
// per visited node, down to maxDepth levels below the root.
//
// Nodes whose name contains filter as a substring are skipped together with
// their entire subtree; the root itself is exempt from filtering. A node
// that repeats an ancestor on its own branch is emitted with a " (cyclic)"
// suffix and not descended into. Sibling branches keep independent ancestor
// paths, so a crate shared by two subtrees is not falsely marked cyclic.
//
// Returns ErrCodeRootNotFound if root is not a node in the graph.
func RenderTree(g *Graph, root string, maxDepth int, filter string) ([]string, error) {
	if !g.Has(root) {
		return nil, errors.New(errors.ErrCodeRootNotFound, "crate %q not in graph", root)
	}

	var lines []string
	var walk func(name, linePrefix, childPrefix string, depth int, path map[string]struct{})
	walk = func(name, linePrefix, childPrefix string, depth int, path map[string]struct{}) {
		if _, repeated := path[name]; repeated {
			lines = append(lines, linePrefix+name+cyclicSuffix)
			return
		}
		lines = append(lines, linePrefix+name)

		if depth >= maxDepth {
			return
		}
		children := sortedChildren(g, name, filter)
		if len(children) == 0 {
			return
		}

		for i, child := range children {
			connector, cont := connectorMid, continueMid
			if i == len(children)-1 {
				connector, cont = connectorLast, continueLast
			}
			// Each branch owns its own copy of the ancestor path.
			branch := make(map[string]struct{}, len(path)+1)
			for p := range path {
				branch[p] = struct{}{}
			}
			branch[name] = struct{}{}
			walk(child, childPrefix+connector, childPrefix+cont, depth+1, branch)
		}
	}

	walk(root, "", "", 0, map[string]struct{}{})
	return lines, nil
}

// sortedChildren returns the direct dependencies of name with filtered
// crates removed, in ascending lexicographic order.
func sortedChildren(g *Graph, name, filter string) []string {
	deps := g.DependenciesOf(name)
	if filter != "" {
		deps = slices.DeleteFunc(deps, func(d string) bool {
			return strings.Contains(d, filter)
		})
	}
	slices.Sort(deps)
	return deps
}
