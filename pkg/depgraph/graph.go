package depgraph

// Graph is a directed dependency graph keyed by crate name.
// Names are case-sensitive and matched exactly. Duplicate edges collapse.
//
// Every name that appears as a dependency is also registered as a node
// (with an empty dependency set if nothing else defines it), so lookups
// never need to distinguish "unknown" from "no dependencies".
//
// The zero value is not usable - use New. Graph is not safe for concurrent
// use without external synchronization.
type Graph struct {
	adj map[string]map[string]struct{}
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{adj: make(map[string]map[string]struct{})}
}

// EnsureNode registers name as a node with at least an empty dependency set.
// Calling it repeatedly is a no-op, as is calling it with an empty name.
func (g *Graph) EnsureNode(name string) {
	if name == "" {
		return
	}
	if _, ok := g.adj[name]; !ok {
		g.adj[name] = make(map[string]struct{})
	}
}

// AddEdge records to as a direct dependency of from, registering both
// names as nodes. Duplicate edges and empty names are ignored.
func (g *Graph) AddEdge(from, to string) {
	if from == "" || to == "" {
		return
	}
	g.EnsureNode(from)
	g.EnsureNode(to)
	g.adj[from][to] = struct{}{}
}

// Has reports whether name is a node in the graph.
func (g *Graph) Has(name string) bool {
	_, ok := g.adj[name]
	return ok
}

// DependenciesOf returns the direct dependencies of name as a fresh slice.
// The order is unspecified; callers needing determinism must sort.
// Unknown names yield an empty slice, never an error.
func (g *Graph) DependenciesOf(name string) []string {
	set := g.adj[name]
	deps := make([]string, 0, len(set))
	for dep := range set {
		deps = append(deps, dep)
	}
	return deps
}

// Nodes returns all node names as a fresh slice in unspecified order.
func (g *Graph) Nodes() []string {
	nodes := make([]string, 0, len(g.adj))
	for name := range g.adj {
		nodes = append(nodes, name)
	}
	return nodes
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.adj) }

// EdgeCount returns the number of distinct edges in the graph.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, set := range g.adj {
		n += len(set)
	}
	return n
}
