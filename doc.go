// Package scopegraph is the root of a static-analysis core for a
// BrighterScript-like scripting language: scope graphs over parsed source
// files, and the validator pipeline that checks them.
//
// # Architecture Overview
//
// The module is organized into layers with strict dependency ordering:
//
//	Foundation tier (imports only packages of this tier):
//	  - location: source positions, spans, and canonical paths
//	  - diag: structured diagnostics with stable error codes
//	  - bscfile: the parsed-source-file data model the core consumes
//	  - builtin: the global built-in callable oracle
//	  - cache: per-scope memoization
//	  - depgraph: file/scope/component dependency graph with invalidation
//
//	Core library tier:
//	  - classvalidator: pluggable class-hierarchy structural validation
//	  - pluginbus: observer hooks fired around scope validation
//	  - scope: scope graphs, the validation pipeline, and namespace lookup
//
//	Consumer tier:
//	  - provider: read-only completion/definition query helpers
//	  - config: bsconfig-style manifest loading for plugin registration and
//	    diagnostic suppression
//
// # Entry Points
//
// Building a scope catalog and validating:
//
//	import "github.com/bsc-lang/scopegraph/scope"
//
//	cat := scope.New(graph, fileProvider)
//	s := cat.CreateScope("source", "scope:source")
//	s.Validate(ctx, false)
//	for _, issue := range s.Diagnostics() {
//	    // report issue.Severity(), issue.Code(), issue.Message(), issue.Span()
//	}
//
// # Subpackages
//
// See the individual package documentation for detailed usage:
//
//   - [github.com/bsc-lang/scopegraph/diag]: structured diagnostics
//   - [github.com/bsc-lang/scopegraph/location]: source location tracking
//   - [github.com/bsc-lang/scopegraph/bscfile]: parsed-file data model
//   - [github.com/bsc-lang/scopegraph/depgraph]: dependency graph
//   - [github.com/bsc-lang/scopegraph/scope]: scope graphs and the validator
//   - [github.com/bsc-lang/scopegraph/classvalidator]: class-structure checks
//   - [github.com/bsc-lang/scopegraph/provider]: completion/definition queries
//   - [github.com/bsc-lang/scopegraph/config]: manifest loading
package scopegraph
