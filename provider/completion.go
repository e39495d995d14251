package provider

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/bsc-lang/scopegraph/scope"
)

// strPtr is a pointer helper; several protocol.CompletionItem fields are
// optional pointers.
func strPtr(s string) *string { return &s }

// GetCallablesAsCompletions returns one completion item per callable
// reachable from s, per parseMode. In [scope.ParseModeBrighterScript],
// callables declared inside a namespace are filtered out; they are
// surfaced by a separate namespace-completion path outside this core.
func GetCallablesAsCompletions(s *scope.Scope, parseMode scope.ParseMode) []protocol.CompletionItem {
	silenceCommonlog()
	kind := protocol.CompletionItemKindFunction

	var items []protocol.CompletionItem
	for _, container := range s.GetAllCallables() {
		c := container.Callable
		if parseMode == scope.ParseModeBrighterScript && c.HasNamespace {
			continue
		}

		item := protocol.CompletionItem{
			Label: c.Name,
			Kind:  &kind,
		}
		if c.ShortDescription != "" {
			item.Detail = strPtr(c.ShortDescription)
		}
		if c.Documentation != "" {
			item.Documentation = protocol.MarkupContent{
				Kind:  protocol.MarkupKindMarkdown,
				Value: c.Documentation,
			}
		}
		items = append(items, item)
	}
	return items
}
