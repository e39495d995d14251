// Package builtin provides the process-wide standard-library callable
// membership oracle (spec.md §6 "Built-in callable map").
//
// The table is immutable after package initialization; callers must not
// attempt to mutate it, including in tests (spec.md §9 Design Notes: "Do
// not make it mutable test-state").
package builtin

import "strings"

// names lists the standard-library callables known to the language
// runtime. The set mirrors the global function surface a set-top-box
// scripting runtime typically exposes: string/array/math utilities, I/O
// helpers, and reflection helpers. It is not exhaustive of every runtime
// build; hosts needing a project-specific table should layer their own
// membership check in front of [IsBuiltin].
var names = []string{
	"Abs", "Atn", "Cdbl", "Cint", "Csng", "Cos", "Exp", "Fix", "Int", "Log",
	"Rnd", "Sgn", "Sin", "Sqr", "Tan",
	"Asc", "Chr", "Instr", "Left", "Len", "Mid", "Right", "Str", "StrI",
	"String", "Val", "LCase", "UCase", "StrToI", "Substitute",
	"CreateObject", "GetGlobalAA", "Type", "GetInterface", "FindMemberFunction",
	"ObjFun", "RunGarbageCollector", "UpTime", "Wait", "Sleep",
	"GetLastRunCompileError", "GetLastRunRuntimeError",
	"ParseJson", "FormatJson",
	"Tab", "Pos",
	"ReadAsciiFile", "WriteAsciiFile", "ListDir", "CopyFile", "MoveFile",
	"DeleteFile", "DeleteDirectory", "CreateDirectory", "MatchFiles",
	"StrToF", "IsInteger", "IsFloat", "IsString", "IsBoolean", "IsArray",
	"IsAssociativeArray", "IsFunction", "IsInvalid", "IsList",
}

var lowerSet map[string]struct{}

func init() {
	lowerSet = make(map[string]struct{}, len(names))
	for _, n := range names {
		lowerSet[strings.ToLower(n)] = struct{}{}
	}
}

// IsBuiltin reports whether name (compared case-insensitively, as the
// language itself is case-insensitive) is a standard-library callable.
func IsBuiltin(name string) bool {
	_, ok := lowerSet[strings.ToLower(name)]
	return ok
}

// Names returns a copy of the canonically-cased built-in name list. Useful
// for completion providers that want to offer built-ins alongside scope
// callables.
func Names() []string {
	out := make([]string, len(names))
	copy(out, names)
	return out
}
