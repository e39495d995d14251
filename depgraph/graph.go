package depgraph

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Unsubscribe releases a subscription acquired via [Graph.OnChange].
// It is idempotent: calling it more than once is a no-op.
type Unsubscribe func()

// ChangeHandler is invoked when a key's dependency set (or the key's own
// edges) changes. It receives the subscribed key, not the edge that moved.
// Handlers must be idempotent; ordering between handlers registered on the
// same key is unspecified.
type ChangeHandler func(key string)

type subscription struct {
	id      uuid.UUID
	key     string
	handler ChangeHandler
}

// Graph is a directed graph over opaque string keys (file pkgPaths,
// "component:<name>" identifiers, or scope names).
//
// Graph is safe for concurrent use from multiple goroutines.
type Graph struct {
	logger *slog.Logger

	mu sync.RWMutex
	// forwardOrder preserves edge insertion order per "from" node so
	// GetAllDependencies returns a stable, deterministic traversal order
	// regardless of map iteration.
	forwardOrder map[string][]string
	forwardSet   map[string]map[string]struct{}
	// reverse supports ancestor computation for change propagation.
	reverse map[string]map[string]struct{}

	subs map[string][]*subscription
}

// Option configures a Graph at construction time.
type Option func(*Graph)

// WithLogger attaches a structured logger used for debug-level records of
// edge updates ("addEdge", "removeEdge") and of subscribe/unsubscribe.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Graph) { g.logger = logger }
}

// New creates an empty dependency graph.
func New(opts ...Option) *Graph {
	g := &Graph{
		forwardOrder: make(map[string][]string),
		forwardSet:   make(map[string]map[string]struct{}),
		reverse:      make(map[string]map[string]struct{}),
		subs:         make(map[string][]*subscription),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// AddEdge records that from depends on to. Adding an edge that already
// exists is a no-op (idempotent) and does not trigger a change
// notification.
func (g *Graph) AddEdge(from, to string) {
	var changed bool
	g.mu.Lock()
	if g.forwardSet[from] == nil {
		g.forwardSet[from] = make(map[string]struct{})
	}
	if _, ok := g.forwardSet[from][to]; !ok {
		g.forwardSet[from][to] = struct{}{}
		g.forwardOrder[from] = append(g.forwardOrder[from], to)
		if g.reverse[to] == nil {
			g.reverse[to] = make(map[string]struct{})
		}
		g.reverse[to][from] = struct{}{}
		changed = true
	}
	affected := g.affectedSubscribersLocked(from)
	g.mu.Unlock()
	g.logDebug("addEdge", from, to, changed)

	if changed {
		g.fire(affected)
	}
}

// RemoveEdge removes a from->to edge if present. Removing a non-existent
// edge is a no-op and does not trigger a change notification.
func (g *Graph) RemoveEdge(from, to string) {
	var changed bool
	g.mu.Lock()
	if set, ok := g.forwardSet[from]; ok {
		if _, ok := set[to]; ok {
			delete(set, to)
			g.forwardOrder[from] = removeFirst(g.forwardOrder[from], to)
			if rev, ok := g.reverse[to]; ok {
				delete(rev, from)
			}
			changed = true
		}
	}
	affected := g.affectedSubscribersLocked(from)
	g.mu.Unlock()
	g.logDebug("removeEdge", from, to, changed)

	if changed {
		g.fire(affected)
	}
}

// GetAllDependencies returns the transitive closure of key's dependencies:
// every key reachable by following edges forward from key, deduplicated,
// in stable traversal order (depth-first, following each node's edges in
// the order they were added). key itself is not included.
func (g *Graph) GetAllDependencies(key string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	visited := map[string]struct{}{key: {}}
	var order []string
	var walk func(string)
	walk = func(k string) {
		for _, next := range g.forwardOrder[k] {
			if _, ok := visited[next]; ok {
				continue
			}
			visited[next] = struct{}{}
			order = append(order, next)
			walk(next)
		}
	}
	walk(key)
	return order
}

// DirectDependencies returns the keys key depends on directly (one edge
// away), in insertion order. Unlike GetAllDependencies this is not
// transitive; it backs queries like Scope.OwnFiles that must distinguish
// direct membership from inherited membership.
func (g *Graph) DirectDependencies(key string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	order := g.forwardOrder[key]
	out := make([]string, len(order))
	copy(out, order)
	return out
}

// OnChange subscribes handler to changes affecting key: either a direct
// edge update on key, or any structural mutation reachable from key (an
// edge update on any of key's transitive dependencies). If emitImmediately
// is true, handler fires once synchronously before OnChange returns,
// carrying key.
//
// The returned Unsubscribe must be called to release the subscription;
// there is no finalizer-based cleanup (see scope.Scope.Dispose).
func (g *Graph) OnChange(key string, handler ChangeHandler, emitImmediately bool) Unsubscribe {
	sub := &subscription{id: uuid.New(), key: key, handler: handler}

	g.mu.Lock()
	g.subs[key] = append(g.subs[key], sub)
	g.mu.Unlock()

	if g.logger != nil {
		g.logger.Debug("depgraph subscribed", "key", key, "sub_id", sub.id.String())
	}

	if emitImmediately {
		handler(key)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			list := g.subs[key]
			for i, s := range list {
				if s == sub {
					g.subs[key] = append(list[:i], list[i+1:]...)
					break
				}
			}
			g.mu.Unlock()
			if g.logger != nil {
				g.logger.Debug("depgraph unsubscribed", "key", key, "sub_id", sub.id.String())
			}
		})
	}
}

// affectedSubscribersLocked returns the handlers that must fire for a
// structural mutation at node `from`: from's own subscribers plus the
// subscribers of every ancestor of from (every key that transitively
// depends on from). Must be called with g.mu held (read or write).
func (g *Graph) affectedSubscribersLocked(from string) []*subscription {
	visited := map[string]struct{}{from: {}}
	queue := []string{from}
	var out []*subscription
	out = append(out, g.subs[from]...)

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		for ancestor := range g.reverse[node] {
			if _, ok := visited[ancestor]; ok {
				continue
			}
			visited[ancestor] = struct{}{}
			out = append(out, g.subs[ancestor]...)
			queue = append(queue, ancestor)
		}
	}
	return out
}

func (g *Graph) fire(subs []*subscription) {
	for _, s := range subs {
		s.handler(s.key)
	}
}

func (g *Graph) logDebug(op, from, to string, changed bool) {
	if g.logger == nil {
		return
	}
	g.logger.Debug("depgraph edge update", "op", op, "from", from, "to", to, "changed", changed)
}

func removeFirst(s []string, v string) []string {
	for i, e := range s {
		if e == v {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}
