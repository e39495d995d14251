// Package provider implements the read-only completion and definition
// queries over a scope's lookup tables (spec.md §4.4). It depends on
// github.com/tliron/glsp's protocol types for completion item shapes
// only; it does not implement a language-server transport or any other
// part of the LSP surface, which spec.md §1 lists as an out-of-scope
// collaborator. The first call that touches glsp types silences
// commonlog, glsp's required logging dependency, in favor of this core's
// own slog-based logging; see logging.go.
package provider
