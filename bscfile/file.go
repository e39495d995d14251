// Package bscfile models BscFile and the declarations it carries: the
// parsed-source-file collaborator the scope-graph core consumes but does
// not produce (spec.md §1, §3). Lexing, parsing, and AST construction
// happen upstream; this package only shapes the data the validator reads.
package bscfile

import (
	"github.com/bsc-lang/scopegraph/diag"
	"github.com/bsc-lang/scopegraph/location"
)

// File is a parsed source file (a .bs/.brs script, or the script-bearing
// half of an XML component). It is a plain data bag: everything on it is
// produced by the out-of-scope parser and is read-only from the scope
// graph's perspective.
type File struct {
	// PkgPath is the canonical package-relative path, e.g. "pkg:/lib/Foo.brs".
	// It is the stable identifier used for pkgPath-based lookups and for
	// script-import resolution.
	PkgPath string

	// PathAbsolute is the filesystem path backing this file.
	PathAbsolute string

	// Extension is the lowercase file extension without the dot (e.g. "bs", "brs", "xml").
	Extension string

	// HasTypedef is true when a typedef sibling supersedes this file; such
	// files contribute no callables, references, or diagnostics (invariant 6).
	HasTypedef bool

	// Callables is the ordered list of top-level callable declarations in
	// this file, in declaration order.
	Callables []*Callable

	// FunctionCalls is the ordered list of call-site records found in this
	// file.
	FunctionCalls []*FunctionCall

	// FunctionScopes is the ordered list of function-local scopes (one per
	// sub/function body) with their variable declarations.
	FunctionScopes []*FunctionScope

	// PropertyNameCompletions lists property names available for completion
	// within this file's XML component context, if any.
	PropertyNameCompletions []string

	// References holds the namespace/class/new/assignment statement lists
	// the parser recorded for this file (parser.references in spec.md §3).
	References *References

	// OwnScriptImports lists the script imports declared directly in this
	// file's body (brighterscript `import` statements).
	OwnScriptImports []*ScriptImport

	// ScriptTagImports lists script imports declared via an XML component's
	// <script> tags. Empty for non-component files.
	ScriptTagImports []*ScriptImport

	// Diagnostics holds this file's own diagnostics produced upstream of
	// the scope graph (e.g. lex/parse errors). A scope's getDiagnostics
	// merges these alongside its own pipeline-produced diagnostics
	// (spec.md §6 "Downstream (exposed)").
	Diagnostics []diag.Issue
}

// AllScriptImports returns OwnScriptImports followed by ScriptTagImports,
// the full set a scope must resolve for this file.
func (f *File) AllScriptImports() []*ScriptImport {
	if len(f.ScriptTagImports) == 0 {
		return f.OwnScriptImports
	}
	out := make([]*ScriptImport, 0, len(f.OwnScriptImports)+len(f.ScriptTagImports))
	out = append(out, f.OwnScriptImports...)
	out = append(out, f.ScriptTagImports...)
	return out
}

// Param is one parameter of a callable declaration.
type Param struct {
	Name       string
	IsOptional bool
	NameRange  location.Span
}

// Callable is a named function or subroutine declaration.
type Callable struct {
	Name             string
	LowerName        string
	DeclaringFile    *File
	Params           []Param
	NameRange        location.Span
	HasNamespace     bool
	Documentation    string
	ShortDescription string
}

// MinParams is the count of non-optional parameters. The language
// guarantees optional parameters are trailing, so this is simply the
// index of the first optional parameter (or the full count if none).
func (c *Callable) MinParams() int {
	for i, p := range c.Params {
		if p.IsOptional {
			return i
		}
	}
	return len(c.Params)
}

// MaxParams is the total parameter count.
func (c *Callable) MaxParams() int {
	return len(c.Params)
}

// FunctionCall is a call-site record: a name reference followed by an
// argument list, at a known source location.
type FunctionCall struct {
	Name      string
	NameRange location.Span
	ArgCount  int
	// ScopeRange is the span of the innermost FunctionScope enclosing the
	// call, used to locate local variables that might satisfy it.
	ScopeRange location.Span
}

// FunctionScope is a function-local scope: the span of a sub/function
// body and the variables declared directly within it.
type FunctionScope struct {
	Range      location.Span
	Parameters []Param
	Variables  []VariableDeclaration
}

// Contains reports whether span falls within this function scope's range,
// by source and by line.
func (fs *FunctionScope) Contains(span location.Span) bool {
	if fs.Range.Source != span.Source {
		return false
	}
	return fs.Range.Start.Line <= span.Start.Line && span.Start.Line <= fs.Range.End.Line
}

// VariableDeclaration is a local variable declaration within a function
// scope.
type VariableDeclaration struct {
	Name           string
	LowerName      string
	NameRange      location.Span
	IsFunctionType bool // true when the inferred/declared type is a function type
}

// ScriptImport is one script import statement (brighterscript `import`, or
// an XML component's <script src="..."> tag).
type ScriptImport struct {
	// Text is the raw import text exactly as written, e.g. "Pkg:/Lib/foo.brs".
	Text  string
	Range location.Span
}

// ClassField is a field declared directly on a class body.
type ClassField struct {
	Name      string
	NameRange location.Span
}

// ClassStatement is a declared class (or brighterscript namespace-scoped
// class).
type ClassStatement struct {
	Name       string
	LowerName  string
	Namespace  string // dotted namespace prefix this class is declared under, "" if none
	NameRange  location.Span
	ParentName string       // base class name, "" if none; consumed by the class validator
	Fields     []ClassField // fields declared directly on this class's body
}

// FullName returns the namespace-qualified class name (Namespace + "." +
// Name), or just Name when Namespace is empty.
func (c *ClassStatement) FullName() string {
	if c.Namespace == "" {
		return c.Name
	}
	return c.Namespace + "." + c.Name
}

// NamespaceStatement is one `namespace Foo.Bar` declaration body.
type NamespaceStatement struct {
	FullName  string
	NameRange location.Span
}

// NewExpression is a raw `new ClassName()` expression.
type NewExpression struct {
	ClassName string
	Range     location.Span
}

// AssignmentStatement is an assignment target, e.g. the left side of
// `net = 5`.
type AssignmentStatement struct {
	TargetName string
	Range      location.Span
}

// References bundles the namespace/class/new/assignment lists the parser
// attaches to a file (parser.references in spec.md §3).
type References struct {
	Namespaces     []NamespaceStatement
	Classes        []ClassStatement
	NewExpressions []NewExpression
	Assignments    []AssignmentStatement
}
