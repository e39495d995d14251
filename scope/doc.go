// Package scope implements the scope graph and validator: the subsystem
// that models containment and inheritance of scopes, caches per-scope
// lookup tables, performs cross-file validation, and invalidates derived
// state when file dependencies change.
//
// A Catalog holds every named Scope, including the distinguished global
// scope that every other scope inherits from. Scopes subscribe to their
// depgraph.Graph key at construction and become invalid whenever a
// dependency changes; the next Validate call rebuilds caches and the
// diagnostic list from scratch.
package scope
