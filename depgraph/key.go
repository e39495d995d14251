package depgraph

import "strings"

// componentKeyPrefix distinguishes component-identifier keys from file
// pkgPath keys in the dependency graph's opaque key space.
const componentKeyPrefix = "component:"

// ComponentKey builds the dependency-graph key for an XML component
// identified by name.
func ComponentKey(name string) string {
	return componentKeyPrefix + name
}

// IsComponentKey reports whether key identifies a component rather than a
// file or scope.
func IsComponentKey(key string) bool {
	return strings.HasPrefix(key, componentKeyPrefix)
}

// ComponentName strips the "component:" prefix from key, returning the bare
// component identifier. If key does not carry the prefix, it is returned
// unchanged.
//
// The source implementation stripped this prefix with a malformed regex
// (/$component:/, which anchors at the string's end and can never match a
// leading prefix); this is a plain, correct prefix strip instead.
func ComponentName(key string) string {
	return strings.TrimPrefix(key, componentKeyPrefix)
}
