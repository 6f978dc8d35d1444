// Package depgraph implements the in-memory dependency graph and the two
// traversals cratewalk is built around: a depth-bounded, cycle-annotated
// tree view and a reverse-topological loading order.
//
// A [Graph] maps crate names to sets of direct dependency names. Every name
// that appears as a dependency is guaranteed to also exist as a node, so
// traversal code never has to special-case unknown crates.
//
// Both traversals are deterministic: children are visited in ascending
// lexicographic order, so repeated runs over the same graph produce
// byte-identical output.
package depgraph
