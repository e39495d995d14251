package scope_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bsc-lang/scopegraph/bscfile"
	"github.com/bsc-lang/scopegraph/depgraph"
	"github.com/bsc-lang/scopegraph/diag"
	"github.com/bsc-lang/scopegraph/scope"
)

// Scenario 1: call to an undeclared function.
func TestValidate_UnknownCall(t *testing.T) {
	mainScopeRange := span(1, 1, 3, 1)
	main := &bscfile.Callable{Name: "main", LowerName: "main", NameRange: span(1, 1, 1, 9)}
	f := &bscfile.File{
		PkgPath:   "pkg:/a.brs",
		Callables: []*bscfile.Callable{main},
		FunctionCalls: []*bscfile.FunctionCall{
			{Name: "foo", NameRange: span(2, 3, 2, 6), ArgCount: 0, ScopeRange: mainScopeRange},
		},
		FunctionScopes: []*bscfile.FunctionScope{
			{Range: mainScopeRange},
		},
	}
	main.DeclaringFile = f

	g := depgraph.New()
	g.AddEdge("scope:source", "pkg:/a.brs")
	cat := scope.New(g, newFakeFiles(f))
	s := cat.CreateScope("source", "scope:source")
	s.Validate(context.Background(), false)

	require.Contains(t, codesOf(s.Diagnostics()), diag.E_CALL_UNKNOWN_FUNCTION)
}

// Scenario 2: arity mismatch with a trailing optional parameter.
func TestValidate_ArityMismatch(t *testing.T) {
	greet := &bscfile.Callable{
		Name:      "greet",
		LowerName: "greet",
		NameRange: span(1, 1, 1, 6),
		Params: []bscfile.Param{
			{Name: "name"},
			{Name: "prefix", IsOptional: true},
		},
	}
	callerScope := span(5, 1, 7, 1)
	f := &bscfile.File{
		PkgPath:   "pkg:/a.brs",
		Callables: []*bscfile.Callable{greet},
		FunctionCalls: []*bscfile.FunctionCall{
			{Name: "greet", NameRange: span(6, 3, 6, 8), ArgCount: 3, ScopeRange: callerScope},
		},
		FunctionScopes: []*bscfile.FunctionScope{{Range: callerScope}},
	}
	greet.DeclaringFile = f

	g := depgraph.New()
	g.AddEdge("scope:source", "pkg:/a.brs")
	cat := scope.New(g, newFakeFiles(f))
	s := cat.CreateScope("source", "scope:source")
	s.Validate(context.Background(), false)

	require.Contains(t, codesOf(s.Diagnostics()), diag.E_MISMATCH_ARGUMENT_COUNT)
}

// Scenario 3: duplicate declarations within one scope's own files.
func TestValidate_DuplicateDeclarations(t *testing.T) {
	run1 := &bscfile.Callable{Name: "run", LowerName: "run", NameRange: span(1, 1, 1, 4)}
	run2 := &bscfile.Callable{Name: "run", LowerName: "run", NameRange: span(1, 1, 1, 4)}
	fa := &bscfile.File{PkgPath: "pkg:/a.brs", PathAbsolute: "/a.brs", Callables: []*bscfile.Callable{run1}}
	fb := &bscfile.File{PkgPath: "pkg:/b.brs", PathAbsolute: "/b.brs", Callables: []*bscfile.Callable{run2}}
	run1.DeclaringFile = fa
	run2.DeclaringFile = fb

	g := depgraph.New()
	g.AddEdge("scope:source", "pkg:/a.brs")
	g.AddEdge("scope:source", "pkg:/b.brs")
	cat := scope.New(g, newFakeFiles(fa, fb))
	s := cat.CreateScope("source", "scope:source")
	s.Validate(context.Background(), false)

	var dupes int
	for _, c := range codesOf(s.Diagnostics()) {
		if c == diag.E_DUPLICATE_FUNCTION_IMPLEMENTATION {
			dupes++
		}
	}
	require.Equal(t, 2, dupes)
}

// Scenario 4: redeclaring "init" in a child scope produces no override
// diagnostic (the documented exception).
func TestValidate_InitExceptionSuppressesOverride(t *testing.T) {
	parentInit := &bscfile.Callable{Name: "init", LowerName: "init", NameRange: span(1, 1, 1, 5)}
	parentFile := &bscfile.File{PkgPath: "pkg:/parent.brs", Callables: []*bscfile.Callable{parentInit}}
	parentInit.DeclaringFile = parentFile

	childInit := &bscfile.Callable{Name: "init", LowerName: "init", NameRange: span(1, 1, 1, 5)}
	childFile := &bscfile.File{PkgPath: "pkg:/child.brs", Callables: []*bscfile.Callable{childInit}}
	childInit.DeclaringFile = childFile

	g := depgraph.New()
	g.AddEdge(scope.GlobalScopeName, "pkg:/parent.brs")
	g.AddEdge("scope:child", "pkg:/child.brs")
	cat := scope.New(g, newFakeFiles(parentFile, childFile))
	s := cat.CreateScope("child", "scope:child")
	s.Validate(context.Background(), false)

	require.NotContains(t, codesOf(s.Diagnostics()), diag.I_OVERRIDES_ANCESTOR_FUNCTION)
}

// Scenario 5: a parameter sharing a name with a declared namespace.
func TestValidate_ParameterCollidesWithNamespace(t *testing.T) {
	nsRange := span(1, 1, 1, 10)
	callerScope := span(3, 1, 5, 1)
	f := &bscfile.File{
		PkgPath: "pkg:/a.brs",
		References: &bscfile.References{
			Namespaces: []bscfile.NamespaceStatement{
				{FullName: "Net.Http", NameRange: nsRange},
			},
		},
		FunctionScopes: []*bscfile.FunctionScope{
			{
				Range:      callerScope,
				Parameters: []bscfile.Param{{Name: "net", NameRange: span(3, 10, 3, 13)}},
			},
		},
	}

	g := depgraph.New()
	g.AddEdge("scope:source", "pkg:/a.brs")
	cat := scope.New(g, newFakeFiles(f))
	s := cat.CreateScope("source", "scope:source")
	s.Validate(context.Background(), false)

	var found diag.Issue
	for _, issue := range s.Diagnostics() {
		if issue.Code() == diag.E_PARAMETER_SAME_NAME_AS_NAMESPACE {
			found = issue
		}
	}
	require.False(t, found.IsZero())
	require.NotEmpty(t, found.Related())
}

// Scenario 6: a script import that resolves but has mismatched casing.
func TestValidate_ScriptImportCaseMismatch(t *testing.T) {
	lib := &bscfile.File{PkgPath: "pkg:/lib/foo.brs"}
	main := &bscfile.File{
		PkgPath: "pkg:/main.brs",
		OwnScriptImports: []*bscfile.ScriptImport{
			{Text: "Pkg:/Lib/foo.brs", Range: span(1, 1, 1, 20)},
		},
	}

	g := depgraph.New()
	g.AddEdge("scope:source", "pkg:/main.brs")
	g.AddEdge("scope:source", "pkg:/lib/foo.brs")
	cat := scope.New(g, newFakeFiles(lib, main))
	s := cat.CreateScope("source", "scope:source")
	s.Validate(context.Background(), false)

	require.Contains(t, codesOf(s.Diagnostics()), diag.W_SCRIPT_IMPORT_CASE_MISMATCH)
}

func TestValidate_EmptyScriptImport(t *testing.T) {
	main := &bscfile.File{
		PkgPath: "pkg:/main.brs",
		OwnScriptImports: []*bscfile.ScriptImport{
			{Text: "", Range: span(1, 1, 1, 3)},
		},
	}
	g := depgraph.New()
	g.AddEdge("scope:source", "pkg:/main.brs")
	cat := scope.New(g, newFakeFiles(main))
	s := cat.CreateScope("source", "scope:source")
	s.Validate(context.Background(), false)

	require.Contains(t, codesOf(s.Diagnostics()), diag.E_SCRIPT_SRC_EMPTY)
}

func TestValidate_MissingScriptImport(t *testing.T) {
	main := &bscfile.File{
		PkgPath: "pkg:/main.brs",
		OwnScriptImports: []*bscfile.ScriptImport{
			{Text: "pkg:/missing.brs", Range: span(1, 1, 1, 20)},
		},
	}
	g := depgraph.New()
	g.AddEdge("scope:source", "pkg:/main.brs")
	cat := scope.New(g, newFakeFiles(main))
	s := cat.CreateScope("source", "scope:source")
	s.Validate(context.Background(), false)

	require.Contains(t, codesOf(s.Diagnostics()), diag.E_REFERENCED_FILE_DOES_NOT_EXIST)
}

func TestValidate_LocalVariableSatisfiesCall(t *testing.T) {
	callerScope := span(1, 1, 3, 1)
	f := &bscfile.File{
		PkgPath: "pkg:/a.brs",
		FunctionCalls: []*bscfile.FunctionCall{
			{Name: "handler", NameRange: span(2, 3, 2, 10), ArgCount: 0, ScopeRange: callerScope},
		},
		FunctionScopes: []*bscfile.FunctionScope{
			{
				Range: callerScope,
				Variables: []bscfile.VariableDeclaration{
					{Name: "handler", LowerName: "handler", IsFunctionType: true},
				},
			},
		},
	}

	g := depgraph.New()
	g.AddEdge("scope:source", "pkg:/a.brs")
	cat := scope.New(g, newFakeFiles(f))
	s := cat.CreateScope("source", "scope:source")
	s.Validate(context.Background(), false)

	require.NotContains(t, codesOf(s.Diagnostics()), diag.E_CALL_UNKNOWN_FUNCTION)
}

func TestValidate_LocalVarShadowsBuiltin(t *testing.T) {
	f := &bscfile.File{
		PkgPath: "pkg:/a.brs",
		FunctionScopes: []*bscfile.FunctionScope{
			{
				Range: span(1, 1, 3, 1),
				Variables: []bscfile.VariableDeclaration{
					{Name: "Len", LowerName: "len", IsFunctionType: true},
				},
			},
		},
	}
	g := depgraph.New()
	g.AddEdge("scope:source", "pkg:/a.brs")
	cat := scope.New(g, newFakeFiles(f))
	s := cat.CreateScope("source", "scope:source")
	s.Validate(context.Background(), false)

	require.Contains(t, codesOf(s.Diagnostics()), diag.W_LOCAL_VAR_SHADOWS_STDLIB)
}

func TestValidate_FunctionCollidesWithBuiltin(t *testing.T) {
	c := &bscfile.Callable{Name: "Len", LowerName: "len", NameRange: span(1, 1, 1, 4)}
	f := &bscfile.File{PkgPath: "pkg:/a.brs", Callables: []*bscfile.Callable{c}}
	c.DeclaringFile = f

	g := depgraph.New()
	g.AddEdge("scope:source", "pkg:/a.brs")
	cat := scope.New(g, newFakeFiles(f))
	s := cat.CreateScope("source", "scope:source")
	s.Validate(context.Background(), false)

	require.Contains(t, codesOf(s.Diagnostics()), diag.W_SCOPE_FUNCTION_SHADOWED_BY_BUILTIN)
}
