package provider

import (
	"github.com/bsc-lang/scopegraph/bscfile"
	"github.com/bsc-lang/scopegraph/location"
	"github.com/bsc-lang/scopegraph/scope"
)

// DefinitionFinder is the virtual hook spec.md §4.4 describes:
// getDefinition(file, position). The base implementation,
// DefaultDefinitionFinder, always returns an empty list; hosts that need
// real go-to-definition behavior provide their own implementation (e.g.
// the XML-component variant resolving into a backing script file).
type DefinitionFinder interface {
	GetDefinition(s *scope.Scope, file *bscfile.File, pos location.Position) []location.Span
}

// DefaultDefinitionFinder is the base implementation: it never resolves a
// definition. Declared as a named type (rather than a bare function) so
// it satisfies DefinitionFinder and can be swapped out by callers that
// embed a provider in their own virtual-hook hierarchy.
type DefaultDefinitionFinder struct{}

// GetDefinition implements DefinitionFinder.
func (DefaultDefinitionFinder) GetDefinition(*scope.Scope, *bscfile.File, location.Position) []location.Span {
	return nil
}
