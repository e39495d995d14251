package scope

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/bsc-lang/scopegraph/bscfile"
	"github.com/bsc-lang/scopegraph/cache"
	"github.com/bsc-lang/scopegraph/classvalidator"
	"github.com/bsc-lang/scopegraph/depgraph"
	"github.com/bsc-lang/scopegraph/diag"
	"github.com/bsc-lang/scopegraph/internal/trace"
	"github.com/bsc-lang/scopegraph/pluginbus"
)

// validationState is the scope's three-state validation machine:
// invalid -> validating -> valid. valid -> invalid occurs only via
// Invalidate or a dependency-graph change notification.
type validationState int

const (
	stateInvalid validationState = iota
	stateValidating
	stateValid
)

const (
	slotAllFiles       = "allFiles"
	slotNamespaceLookup = "namespaceLookup"
)

// scopeConfig carries the collaborators a Scope needs, shared by the
// generic scope and the XML-component variant.
type scopeConfig struct {
	name          string
	dependencyKey string
	catalog       *Catalog
	graph         *depgraph.Graph
	files         FileProvider
	bus           *pluginbus.Bus
	classes       classvalidator.Validator
	logger        *slog.Logger

	// parentResolver overrides default parent selection (global scope for
	// every non-global scope). Used by ComponentScope.
	parentResolver func() (*Scope, bool)
	// ownFilesResolver overrides the direct-dependency file enumeration.
	// Used by ComponentScope, whose own files come from its component
	// descriptor rather than the dependency graph.
	ownFilesResolver func() []*bscfile.File
}

// Scope is a named collection of files whose declarations are mutually
// visible at runtime. It holds its member files (via the dependency
// graph), a parent link, computed lookup tables, diagnostics, and the
// validation state machine.
type Scope struct {
	name          string
	dependencyKey string
	catalog       *Catalog
	graph         *depgraph.Graph
	files         FileProvider
	bus           *pluginbus.Bus
	classes       classvalidator.Validator
	logger        *slog.Logger

	parentResolver   func() (*Scope, bool)
	ownFilesResolver func() []*bscfile.File

	mu          sync.Mutex
	cache       *cache.Cache
	diagnostics []diag.Issue
	state       validationState
	unsubscribe depgraph.Unsubscribe
}

func newScope(cfg scopeConfig) *Scope {
	s := &Scope{
		name:             cfg.name,
		dependencyKey:    cfg.dependencyKey,
		catalog:          cfg.catalog,
		graph:            cfg.graph,
		files:            cfg.files,
		bus:              cfg.bus,
		classes:          cfg.classes,
		logger:           cfg.logger,
		parentResolver:   cfg.parentResolver,
		ownFilesResolver: cfg.ownFilesResolver,
		cache:            cache.New(),
		state:            stateInvalid,
	}
	if s.graph != nil {
		s.unsubscribe = s.graph.OnChange(s.dependencyKey, func(string) {
			s.Invalidate()
		}, false)
	}
	return s
}

// Name returns the scope's name.
func (s *Scope) Name() string { return s.name }

// DependencyKey returns the opaque dependency-graph key identifying this
// scope's membership edges.
func (s *Scope) DependencyKey() string { return s.dependencyKey }

// GetParentScope returns the scope's parent: the global scope for every
// non-global scope, or none for the global scope itself. Subclasses such
// as ComponentScope may substitute a more specific parent.
func (s *Scope) GetParentScope() (*Scope, bool) {
	if s.parentResolver != nil {
		return s.parentResolver()
	}
	if s.name == GlobalScopeName || s.catalog == nil {
		return nil, false
	}
	global := s.catalog.Global()
	if global == s {
		return nil, false
	}
	return global, true
}

// GetOwnFiles returns the scope's direct-dependency files only (spec.md
// §3 invariant: a file appears in getOwnFiles iff it is a direct
// dependency of the scope's key, not inherited). This intentionally
// departs from the source implementation's "return everything" behavior,
// which its own header contract disclaims (spec.md §9 Open Questions).
func (s *Scope) GetOwnFiles() []*bscfile.File {
	if s.ownFilesResolver != nil {
		return s.ownFilesResolver()
	}
	return s.resolveFiles(s.graphDirectDependencies())
}

func (s *Scope) graphDirectDependencies() []string {
	if s.graph == nil {
		return nil
	}
	return s.graph.DirectDependencies(s.dependencyKey)
}

func (s *Scope) resolveFiles(pkgPaths []string) []*bscfile.File {
	out := make([]*bscfile.File, 0, len(pkgPaths))
	for _, p := range pkgPaths {
		if depgraph.IsComponentKey(p) {
			continue
		}
		f, ok := s.files.GetFileByPkgPath(p)
		if !ok {
			continue
		}
		out = append(out, f)
	}
	return out
}

// GetAllFiles returns the union of own and inherited files, deduplicated
// by pkgPath and deterministically ordered by dependency-graph traversal
// order. The result is cached until the next Invalidate.
func (s *Scope) GetAllFiles() []*bscfile.File {
	v := s.cache.GetOrAdd(slotAllFiles, func() any {
		return s.computeAllFiles()
	})
	if files, ok := v.([]*bscfile.File); ok {
		return files
	}
	return nil
}

func (s *Scope) computeAllFiles() []*bscfile.File {
	seen := map[string]struct{}{}
	var out []*bscfile.File

	for _, f := range s.GetOwnFiles() {
		if _, dup := seen[f.PkgPath]; dup {
			continue
		}
		seen[f.PkgPath] = struct{}{}
		out = append(out, f)
	}

	if parent, ok := s.GetParentScope(); ok {
		for _, f := range parent.GetAllFiles() {
			if _, dup := seen[f.PkgPath]; dup {
				continue
			}
			seen[f.PkgPath] = struct{}{}
			out = append(out, f)
		}
	}
	return out
}

// EnumerateAllFiles calls cb for every file in GetAllFiles whose
// HasTypedef is false.
func (s *Scope) EnumerateAllFiles(cb func(*bscfile.File)) {
	for _, f := range s.GetAllFiles() {
		if f.HasTypedef {
			continue
		}
		cb(f)
	}
}

// EnumerateOwnFiles calls cb for every file in GetOwnFiles whose
// HasTypedef is false.
func (s *Scope) EnumerateOwnFiles(cb func(*bscfile.File)) {
	for _, f := range s.GetOwnFiles() {
		if f.HasTypedef {
			continue
		}
		cb(f)
	}
}

// GetOwnCallables returns every callable declared directly in the
// scope's own, non-typedef files, each wrapped in a container recording
// this scope as the surfacing scope.
func (s *Scope) GetOwnCallables() []CallableContainer {
	var out []CallableContainer
	s.EnumerateOwnFiles(func(f *bscfile.File) {
		for _, c := range f.Callables {
			out = append(out, CallableContainer{Callable: c, Scope: s})
		}
	})
	return out
}

// GetAllCallables returns the scope's own callables concatenated with the
// parent's all-callables.
func (s *Scope) GetAllCallables() []CallableContainer {
	out := s.GetOwnCallables()
	if parent, ok := s.GetParentScope(); ok {
		out = append(out, parent.GetAllCallables()...)
	}
	return out
}

// GetCallableByName performs a case-insensitive lookup, own scope before
// parent; the first match wins.
func (s *Scope) GetCallableByName(name string) (*bscfile.Callable, bool) {
	lower := lowerName(name)
	for _, c := range s.GetOwnCallables() {
		if c.Callable.LowerName == lower {
			return c.Callable, true
		}
	}
	if parent, ok := s.GetParentScope(); ok {
		return parent.GetCallableByName(name)
	}
	return nil, false
}

// GetClass returns the class declared under lowercaseName, searching own
// files before the parent chain.
func (s *Scope) GetClass(lowercaseName string) (*bscfile.ClassStatement, bool) {
	for _, class := range s.ownClasses() {
		if lowerName(class.FullName()) == lowercaseName {
			return class, true
		}
	}
	if parent, ok := s.GetParentScope(); ok {
		return parent.GetClass(lowercaseName)
	}
	return nil, false
}

func (s *Scope) ownClasses() []*bscfile.ClassStatement {
	var out []*bscfile.ClassStatement
	s.EnumerateOwnFiles(func(f *bscfile.File) {
		if f.References == nil {
			return
		}
		for i := range f.References.Classes {
			out = append(out, &f.References.Classes[i])
		}
	})
	return out
}

// allClasses returns every class visible to this scope, own files first,
// then the parent chain; used by the class-structure validator and by
// ScopeName/Classes (the classvalidator.ClassSource view).
func (s *Scope) allClasses() []*bscfile.ClassStatement {
	out := s.ownClasses()
	if parent, ok := s.GetParentScope(); ok {
		out = append(out, parent.allClasses()...)
	}
	return out
}

// ScopeName implements classvalidator.ClassSource.
func (s *Scope) ScopeName() string { return s.name }

// Classes implements classvalidator.ClassSource.
func (s *Scope) Classes() []*bscfile.ClassStatement { return s.allClasses() }

// IsKnownNamespace reports whether any declared namespace equals name or
// has "name." as a prefix. Fixed per spec.md §9 Open Questions: the
// original returns false unconditionally due to a nested-loop return that
// never escapes; this returns true on first match.
func (s *Scope) IsKnownNamespace(name string) bool {
	lower := lowerName(name)
	lookup := s.BuildNamespaceLookup()
	if _, ok := lookup[lower]; ok {
		return true
	}
	prefix := lower + "."
	for key := range lookup {
		if len(key) > len(prefix) && key[:len(prefix)] == prefix {
			return true
		}
	}
	return false
}

// GetNewExpressions returns every `new` expression visible to this scope,
// decorated with the file that owns it.
func (s *Scope) GetNewExpressions() []DecoratedNewExpression {
	var out []DecoratedNewExpression
	s.EnumerateAllFiles(func(f *bscfile.File) {
		if f.References == nil {
			return
		}
		for _, ne := range f.References.NewExpressions {
			out = append(out, DecoratedNewExpression{NewExpression: ne, File: f})
		}
	})
	return out
}

// DecoratedNewExpression pairs a raw `new` expression with its owning
// file.
type DecoratedNewExpression struct {
	bscfile.NewExpression
	File *bscfile.File
}

// Invalidate transitions the scope to invalid and clears its cache. The
// next read of any cached view recomputes from scratch (spec.md §8
// invariant 2).
func (s *Scope) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = stateInvalid
	s.cache.Clear()
}

// Dispose releases the scope's dependency-graph subscription. Safe to
// call more than once.
func (s *Scope) Dispose() {
	s.mu.Lock()
	unsub := s.unsubscribe
	s.unsubscribe = nil
	s.mu.Unlock()
	if unsub != nil {
		unsub()
	}
}

// Diagnostics returns the diagnostics from the most recent successful
// Validate call.
func (s *Scope) Diagnostics() []diag.Issue {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]diag.Issue, len(s.diagnostics))
	copy(out, s.diagnostics)
	return out
}

// GetDiagnostics returns this scope's pipeline-produced diagnostics merged
// with the per-file diagnostics carried by its own, non-typedef files
// (spec.md §6 "Downstream (exposed)": "returns merged per-scope and
// per-own-file diagnostics with suppression filtering applied"). isSuppressed
// is a host-supplied predicate; an issue for which it returns true is
// dropped. A nil isSuppressed suppresses nothing.
func (s *Scope) GetDiagnostics(isSuppressed func(diag.Issue) bool) []diag.Issue {
	merged := s.Diagnostics()
	s.EnumerateOwnFiles(func(f *bscfile.File) {
		merged = append(merged, f.Diagnostics...)
	})

	if isSuppressed == nil {
		return merged
	}
	out := make([]diag.Issue, 0, len(merged))
	for _, issue := range merged {
		if isSuppressed(issue) {
			continue
		}
		out = append(out, issue)
	}
	return out
}

// IsValidated reports whether the scope's cache currently reflects the
// current dependency set.
func (s *Scope) IsValidated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == stateValid
}

func (s *Scope) sortedAllCallables() []CallableContainer {
	all := s.GetAllCallables()
	sort.SliceStable(all, func(i, j int) bool {
		fi, fj := all[i].Callable.DeclaringFile, all[j].Callable.DeclaringFile
		pi, pj := "", ""
		if fi != nil {
			pi = fi.PathAbsolute
		}
		if fj != nil {
			pj = fj.PathAbsolute
		}
		if pi != pj {
			return pi < pj
		}
		return all[i].Callable.Name < all[j].Callable.Name
	})
	return all
}

func buildCallableContainerMap(sorted []CallableContainer) map[string][]CallableContainer {
	m := make(map[string][]CallableContainer)
	for _, c := range sorted {
		key := c.Callable.LowerName
		m[key] = append(m[key], c)
	}
	return m
}

// uniqueLowerKeys returns the distinct lowercase callable names in sorted,
// in their first-occurrence order. Since sorted is already deterministically
// ordered (path, then name; spec.md §4.3), this gives callers a stable
// iteration order over containerMap's keys without ranging the map itself
// (spec.md §5, §8 determinism invariants).
func uniqueLowerKeys(sorted []CallableContainer) []string {
	seen := make(map[string]bool, len(sorted))
	out := make([]string, 0, len(sorted))
	for _, c := range sorted {
		key := c.Callable.LowerName
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, key)
	}
	return out
}

// Validate runs the validation pipeline (spec.md §4.3.1). If the scope is
// already valid and force is false, this is a no-op. Parent scopes
// validate first.
func (s *Scope) Validate(ctx context.Context, force bool) {
	op := trace.Begin(ctx, s.logger, "bsc.scope.validate", slog.String("scope", s.name), slog.Bool("force", force))
	var validateErr error
	defer func() { op.End(validateErr) }()

	s.mu.Lock()
	if s.state == stateValid && !force {
		s.mu.Unlock()
		return
	}
	if s.state == stateValidating {
		// Re-entry while validating is a no-op; concurrent validation of a
		// single Program is not supported (spec.md §5).
		s.mu.Unlock()
		return
	}
	s.state = stateValidating
	s.mu.Unlock()

	if parent, ok := s.GetParentScope(); ok && !parent.IsValidated() {
		parent.Validate(ctx, force)
	}

	diagnostics := s.runPipeline(ctx)

	s.mu.Lock()
	s.diagnostics = diagnostics
	s.state = stateValid
	s.mu.Unlock()
}
