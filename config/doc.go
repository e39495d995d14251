// Package config loads the bsconfig-style manifest that governs this
// core's own operation: which pluginbus.Plugin implementations to
// register by name, and which diagnostic codes a host should suppress
// before surfacing a Validate result. It is not a reimplementation of
// project loading (out of scope per spec.md §1) — only the shape of
// configuration a compiler front end needs to bootstrap itself.
package config
