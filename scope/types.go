package scope

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/bsc-lang/scopegraph/bscfile"
	"github.com/bsc-lang/scopegraph/location"
)

// caseFold is the shared case folder used for the language's
// case-insensitive identifiers (spec.md §3 invariant): every declared name
// that participates in a lookup is folded through this before comparison.
var caseFold = cases.Fold()

// FileProvider is the upstream collaborator that resolves files and XML
// components by identifier (spec.md §6 "File provider").
type FileProvider interface {
	GetFileByPkgPath(pkgPath string) (*bscfile.File, bool)
	GetComponent(name string) (ComponentDescriptor, bool)
}

// ComponentDescriptor is the minimal view of an XML component a
// ComponentScope needs: the script file it declares.
type ComponentDescriptor struct {
	File *bscfile.File
}

// CallableContainer pairs a callable with the scope that surfaced it, so
// override and ancestry disputes can be resolved without walking the
// scope chain a second time.
type CallableContainer struct {
	Callable *bscfile.Callable
	Scope    *Scope
}

// NamespaceContainer is one node of the namespace tree described in the
// data model: every prefix of every declared namespace path receives an
// entry, keyed by its lowercase full name in the owning lookup map.
//
// NamespaceContainer owns its children; the parent is reached only via a
// second lookup in that same map, so there is no cyclic ownership between
// nodes (spec.md §9 Design Notes, "Back-references in namespace trees").
type NamespaceContainer struct {
	File               *bscfile.File
	FullName           string
	NameRange          location.Span
	LastPartName       string
	Statements         []bscfile.NamespaceStatement
	ClassStatements    map[string]*bscfile.ClassStatement
	FunctionStatements map[string]*bscfile.Callable
	Namespaces         map[string]*NamespaceContainer
}

// ParseMode selects which completion filtering rule applies to
// getCallablesAsCompletions.
type ParseMode int

const (
	// ParseModeBrightScript is the legacy parse mode: namespaced callables
	// are surfaced alongside everything else.
	ParseModeBrightScript ParseMode = iota
	// ParseModeBrighterScript filters out callables declared inside a
	// namespace; a separate namespace-completion path surfaces those.
	ParseModeBrighterScript
)

func lowerName(name string) string {
	return caseFold.String(name)
}
