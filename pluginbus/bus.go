// Package pluginbus implements the observer bus fired before and after
// scope validation (spec.md §4.1, §6), letting external analyzers
// contribute diagnostics without the scope-graph core depending on them.
package pluginbus

import (
	"sync"

	"github.com/bsc-lang/scopegraph/diag"
)

// ValidationContext is the read-only snapshot a plugin receives around a
// single scope's validate() call. It mirrors the emit(eventName, scope,
// files, callableContainerMap) signature spec.md §6 specifies, expressed
// without a dependency from this package back onto the scope package.
type ValidationContext struct {
	// ScopeName is the name of the scope being validated.
	ScopeName string

	// OwnFiles lists the pkgPaths of the scope's direct-dependency files.
	OwnFiles []string

	// AllFiles lists the pkgPaths of the scope's own and inherited files.
	AllFiles []string

	// CallableNames lists the lowercase names visible in the scope at
	// validation time (the keys of callableContainerMap).
	CallableNames []string

	// Collect appends a diagnostic to the validating scope's diagnostic
	// list. Plugins call this instead of returning diagnostics, since a
	// plugin may want to report more than one issue per event.
	Collect func(diag.Issue)
}

// Plugin is the interface external analyzers implement to observe scope
// validation.
//
// Handlers run synchronously in registration order and must not trigger
// validation of the scope currently validating; re-entry before
// completion is undefined (spec.md §5).
type Plugin interface {
	// BeforeScopeValidate is called once per validate() call, after
	// diagnostics are cleared and callables are sorted, but before any
	// pipeline check runs.
	BeforeScopeValidate(ctx ValidationContext)

	// AfterScopeValidate is called once per validate() call, after every
	// pipeline check has run and before isValidated is set.
	AfterScopeValidate(ctx ValidationContext)
}

// Bus dispatches beforeScopeValidate/afterScopeValidate events to
// registered plugins in registration order.
//
// Bus is safe for concurrent Register/Unregister calls, but per spec.md
// §5 emit itself is only ever called from the single-threaded validation
// path of one Program.
type Bus struct {
	mu      sync.RWMutex
	plugins []Plugin
}

// New creates an empty plugin bus.
func New() *Bus {
	return &Bus{}
}

// Register adds a plugin to the bus, returning an unregister function.
// Calling unregister more than once is a no-op.
func (b *Bus) Register(p Plugin) (unregister func()) {
	b.mu.Lock()
	b.plugins = append(b.plugins, p)
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			for i, q := range b.plugins {
				if q == p {
					b.plugins = append(b.plugins[:i], b.plugins[i+1:]...)
					return
				}
			}
		})
	}
}

// EmitBeforeScopeValidate fires BeforeScopeValidate on every registered
// plugin, in registration order.
func (b *Bus) EmitBeforeScopeValidate(ctx ValidationContext) {
	b.emit(func(p Plugin) { p.BeforeScopeValidate(ctx) })
}

// EmitAfterScopeValidate fires AfterScopeValidate on every registered
// plugin, in registration order.
func (b *Bus) EmitAfterScopeValidate(ctx ValidationContext) {
	b.emit(func(p Plugin) { p.AfterScopeValidate(ctx) })
}

func (b *Bus) emit(fn func(Plugin)) {
	b.mu.RLock()
	plugins := make([]Plugin, len(b.plugins))
	copy(plugins, b.plugins)
	b.mu.RUnlock()

	for _, p := range plugins {
		fn(p)
	}
}
