package scope

import "github.com/bsc-lang/scopegraph/bscfile"

// ComponentScope is the Scope variant backing an XML component: it
// overrides parent resolution (an XML component's parent is the
// component it extends, not necessarily the global scope) and own-file
// enumeration (its own files come from its component descriptor's
// <script> tags, not from dependency-graph traversal). Definition lookup
// is inherited unchanged from Scope (spec.md §9 Design Notes,
// "Polymorphism": capability set {parent-resolution, own-file-enumeration,
// definition-lookup}).
type ComponentScope struct {
	*Scope

	parentScopeName string
	componentFile   *bscfile.File
}

// ParentComponentName returns the name of the component this scope
// extends, if any.
func (cs *ComponentScope) ParentComponentName() (string, bool) {
	return cs.parentScopeName, cs.parentScopeName != ""
}

// SetComponentFile attaches the script file this XML component declares,
// once the component descriptor has been resolved by the Program, and
// installs both overrides: own-file enumeration returns that file, and
// parent resolution returns the extended component (or the global scope
// when none is named). Until it is called, the scope resolves its parent
// and own files as a generic Scope does.
func (cs *ComponentScope) SetComponentFile(f *bscfile.File) {
	cs.componentFile = f
	cs.ownFilesResolver = func() []*bscfile.File {
		if cs.componentFile == nil {
			return nil
		}
		return []*bscfile.File{cs.componentFile}
	}
	cs.parentResolver = func() (*Scope, bool) {
		if cs.parentScopeName == "" {
			if cs.catalog == nil {
				return nil, false
			}
			global := cs.catalog.Global()
			if global == cs.Scope {
				return nil, false
			}
			return global, true
		}
		if cs.catalog == nil {
			return nil, false
		}
		return cs.catalog.Get(cs.parentScopeName)
	}
}
