package scope

import (
	"strings"

	"github.com/bsc-lang/scopegraph/bscfile"
)

// BuildNamespaceLookup builds the namespace tree described in the data
// model: every prefix of every namespace declared in this scope's files
// receives an entry, keyed by its lowercase full name. Sibling namespace
// bodies sharing a full name coalesce (their statements concatenate);
// parent-child wiring is performed in insertion order after coalescing.
// The result is cached until the next Invalidate.
func (s *Scope) BuildNamespaceLookup() map[string]*NamespaceContainer {
	v := s.cache.GetOrAdd(slotNamespaceLookup, func() any {
		return s.computeNamespaceLookup()
	})
	if lookup, ok := v.(map[string]*NamespaceContainer); ok {
		return lookup
	}
	return nil
}

func (s *Scope) computeNamespaceLookup() map[string]*NamespaceContainer {
	lookup := make(map[string]*NamespaceContainer)
	var order []string

	s.EnumerateAllFiles(func(f *bscfile.File) {
		if f.References == nil {
			return
		}
		for i := range f.References.Namespaces {
			ns := f.References.Namespaces[i]
			parts := strings.Split(ns.FullName, ".")
			for end := 1; end <= len(parts); end++ {
				prefix := strings.Join(parts[:end], ".")
				key := lowerName(prefix)
				node, exists := lookup[key]
				if !exists {
					node = &NamespaceContainer{
						FullName:           prefix,
						LastPartName:       parts[end-1],
						ClassStatements:    make(map[string]*bscfile.ClassStatement),
						FunctionStatements: make(map[string]*bscfile.Callable),
						Namespaces:         make(map[string]*NamespaceContainer),
					}
					lookup[key] = node
					order = append(order, key)
				}
				if end == len(parts) {
					node.File = f
					node.NameRange = ns.NameRange
					node.Statements = append(node.Statements, ns)
				}
			}
		}

		for _, class := range f.References.Classes {
			if class.Namespace == "" {
				continue
			}
			if node, ok := lookup[lowerName(class.Namespace)]; ok {
				node.ClassStatements[lowerName(class.Name)] = classCopy(class)
			}
		}

		for _, callable := range f.Callables {
			if !callable.HasNamespace {
				continue
			}
			ns := namespaceOfCallable(callable.Name)
			if ns == "" {
				continue
			}
			if node, ok := lookup[lowerName(ns)]; ok {
				node.FunctionStatements[lowerName(leafName(callable.Name))] = callable
			}
		}
	})

	for _, key := range order {
		node := lookup[key]
		parentKey := parentPrefixKey(node.FullName)
		if parentKey == "" {
			continue
		}
		if parent, ok := lookup[parentKey]; ok {
			parent.Namespaces[lowerName(node.LastPartName)] = node
		}
	}

	return lookup
}

func classCopy(c bscfile.ClassStatement) *bscfile.ClassStatement {
	cp := c
	return &cp
}

// namespaceOfCallable and leafName split a namespace-qualified callable
// name ("Net.Http.get") into its namespace prefix and leaf name. Callables
// without HasNamespace never reach these helpers.
func namespaceOfCallable(fullName string) string {
	idx := strings.LastIndex(fullName, ".")
	if idx < 0 {
		return ""
	}
	return fullName[:idx]
}

func leafName(fullName string) string {
	idx := strings.LastIndex(fullName, ".")
	if idx < 0 {
		return fullName
	}
	return fullName[idx+1:]
}

func parentPrefixKey(fullName string) string {
	idx := strings.LastIndex(fullName, ".")
	if idx < 0 {
		return ""
	}
	return lowerName(fullName[:idx])
}
