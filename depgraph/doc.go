// Package depgraph implements the directed dependency graph over files,
// components, and scopes described in the scope-graph core.
//
// Nodes are keyed by opaque strings: file pkgPaths, "component:<name>"
// component identifiers, or scope names. Edges point from a dependent key
// to its dependency ("scope foo depends on file bar" is an edge
// foo -> bar). [Graph.GetAllDependencies] returns the transitive closure
// of a key's dependencies in deterministic traversal order.
//
// Graph is safe for concurrent use. Scopes only subscribe to and query the
// graph; they never mutate it (see the scope package), matching the shared-
// resource contract of the core.
package depgraph
