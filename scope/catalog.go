package scope

import (
	"log/slog"
	"sync"

	"github.com/bsc-lang/scopegraph/classvalidator"
	"github.com/bsc-lang/scopegraph/depgraph"
	"github.com/bsc-lang/scopegraph/pluginbus"
)

// GlobalScopeName is the name reserved for the distinguished global scope.
// Every other scope has it as an ancestor.
const GlobalScopeName = "global"

// Catalog is a collection of named scopes. It exposes the distinguished
// global scope and is the factory external callers use to create and
// dispose scopes as files are added to or removed from a Program.
type Catalog struct {
	mu     sync.RWMutex
	scopes map[string]*Scope

	graph   *depgraph.Graph
	files   FileProvider
	bus     *pluginbus.Bus
	logger  *slog.Logger
	classes classvalidator.Validator
}

// Option configures a Catalog at construction time.
type Option func(*Catalog)

// WithLogger attaches a structured logger propagated to every scope the
// catalog creates.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) { c.logger = logger }
}

// WithPluginBus attaches the plugin bus fired around validate() calls. A
// fresh no-op bus is used if this option is not supplied.
func WithPluginBus(bus *pluginbus.Bus) Option {
	return func(c *Catalog) { c.bus = bus }
}

// WithClassValidator attaches the class-structure validator collaborator
// invoked during step 9 of the validation pipeline. classvalidator.New()
// is used if this option is not supplied.
func WithClassValidator(v classvalidator.Validator) Option {
	return func(c *Catalog) { c.classes = v }
}

// New creates a Catalog backed by graph and files, with the global scope
// already present.
func New(graph *depgraph.Graph, files FileProvider, opts ...Option) *Catalog {
	c := &Catalog{
		scopes: make(map[string]*Scope),
		graph:  graph,
		files:  files,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.bus == nil {
		c.bus = pluginbus.New()
	}
	if c.classes == nil {
		c.classes = classvalidator.New()
	}

	global := newScope(scopeConfig{
		name:          GlobalScopeName,
		dependencyKey: GlobalScopeName,
		catalog:       c,
		graph:         graph,
		files:         files,
		bus:           c.bus,
		classes:       c.classes,
		logger:        c.logger,
	})
	c.scopes[GlobalScopeName] = global
	return c
}

// Global returns the distinguished global scope.
func (c *Catalog) Global() *Scope {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.scopes[GlobalScopeName]
}

// Get returns the named scope, if one has been created.
func (c *Catalog) Get(name string) (*Scope, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.scopes[name]
	return s, ok
}

// CreateScope creates and registers a new scope rooted at dependencyKey,
// parented to the global scope, and subscribes it to graph changes. The
// caller must eventually call Dispose on the returned scope (or
// RemoveScope) to release its subscription.
func (c *Catalog) CreateScope(name, dependencyKey string) *Scope {
	s := newScope(scopeConfig{
		name:          name,
		dependencyKey: dependencyKey,
		catalog:       c,
		graph:         c.graph,
		files:         c.files,
		bus:           c.bus,
		classes:       c.classes,
		logger:        c.logger,
	})
	c.mu.Lock()
	c.scopes[name] = s
	c.mu.Unlock()
	return s
}

// CreateComponentScope creates and registers an XML-component scope: a
// Scope variant that overrides parent resolution and own-file
// enumeration (spec.md §9 Design Notes, "Polymorphism"). The overrides
// take effect once [ComponentScope.SetComponentFile] is called.
func (c *Catalog) CreateComponentScope(name, dependencyKey, parentComponentName string) *ComponentScope {
	base := newScope(scopeConfig{
		name:          name,
		dependencyKey: dependencyKey,
		catalog:       c,
		graph:         c.graph,
		files:         c.files,
		bus:           c.bus,
		classes:       c.classes,
		logger:        c.logger,
	})
	cs := &ComponentScope{
		Scope:          base,
		parentScopeName: parentComponentName,
	}
	c.mu.Lock()
	c.scopes[name] = cs.Scope
	c.mu.Unlock()
	return cs
}

// RemoveScope disposes and unregisters the named scope. A no-op if the
// scope does not exist or is the global scope.
func (c *Catalog) RemoveScope(name string) {
	if name == GlobalScopeName {
		return
	}
	c.mu.Lock()
	s, ok := c.scopes[name]
	if ok {
		delete(c.scopes, name)
	}
	c.mu.Unlock()
	if ok {
		s.Dispose()
	}
}
