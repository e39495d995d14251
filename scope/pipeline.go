package scope

import (
	"context"
	"fmt"
	"strings"

	"github.com/bsc-lang/scopegraph/builtin"
	"github.com/bsc-lang/scopegraph/bscfile"
	"github.com/bsc-lang/scopegraph/classvalidator"
	"github.com/bsc-lang/scopegraph/diag"
	"github.com/bsc-lang/scopegraph/location"
	"github.com/bsc-lang/scopegraph/pluginbus"
)

// runPipeline executes steps 3-11 of the validation pipeline and returns
// the scope's fresh diagnostic list. Step 1 (already-valid short circuit)
// and step 2 (parent-first ordering) are handled by Validate; step 12
// (isValidated = true) is set by the caller once this returns.
func (s *Scope) runPipeline(ctx context.Context) []diag.Issue {
	var issues []diag.Issue
	collect := func(i diag.Issue) { issues = append(issues, i) }

	sorted := s.sortedAllCallables()
	containerMap := buildCallableContainerMap(sorted)
	lowerKeys := uniqueLowerKeys(sorted)

	pctx := pluginbus.ValidationContext{
		ScopeName:     s.name,
		OwnFiles:      pkgPaths(s.GetOwnFiles()),
		AllFiles:      pkgPaths(s.GetAllFiles()),
		CallableNames: lowerKeys,
		Collect:       collect,
	}
	if s.bus != nil {
		s.bus.EmitBeforeScopeValidate(pctx)
	}

	s.diagnosticFindDuplicateFunctionDeclarations(containerMap, lowerKeys, collect)
	s.diagnosticValidateScriptImportPaths(collect)
	s.validateClasses(collect)

	namespaceLookup := s.BuildNamespaceLookup()

	s.EnumerateOwnFiles(func(f *bscfile.File) {
		s.diagnosticFindCallsToUnknownFunction(f, containerMap, collect)
		s.diagnosticCheckArity(f, containerMap, collect)
		s.diagnosticCheckLocalVarShadowing(f, containerMap, collect)
		s.diagnosticCheckFunctionCollisions(f, collect)
		s.diagnosticCheckNamespaceCollisions(f, namespaceLookup, collect)
	})

	if s.bus != nil {
		s.bus.EmitAfterScopeValidate(pctx)
	}
	_ = ctx
	return issues
}

func pkgPaths(files []*bscfile.File) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.PkgPath)
	}
	return out
}

// diagnosticFindDuplicateFunctionDeclarations implements spec.md §4.3.2.
func (s *Scope) diagnosticFindDuplicateFunctionDeclarations(containerMap map[string][]CallableContainer, lowerKeys []string, collect func(diag.Issue)) {
	for _, lower := range lowerKeys {
		containers := containerMap[lower]
		var own, ancestors []CallableContainer
		for _, c := range containers {
			switch {
			case c.Scope == s:
				own = append(own, c)
			case c.Scope.name != GlobalScopeName:
				ancestors = append(ancestors, c)
			}
		}

		if len(own) >= 1 && len(ancestors) >= 1 && lower != "init" {
			deepest := ancestors[len(ancestors)-1]
			for _, o := range own {
				if sameFile(o.Callable.DeclaringFile, deepest.Callable.DeclaringFile) {
					continue
				}
				issue := diag.NewIssue(diag.Info, diag.I_OVERRIDES_ANCESTOR_FUNCTION,
					fmt.Sprintf("function %q overrides a function declared in an ancestor scope", o.Callable.Name)).
					WithSpan(o.Callable.NameRange).
					WithRelated(location.RelatedInfo{Span: deepest.Callable.NameRange, Message: location.MsgPreviousDefinition}).
					Build()
				collect(issue)
			}
		}

		if len(own) >= 2 {
			for _, o := range own {
				issue := diag.NewIssue(diag.Error, diag.E_DUPLICATE_FUNCTION_IMPLEMENTATION,
					fmt.Sprintf("function %q is implemented more than once in this scope", o.Callable.Name)).
					WithSpan(o.Callable.NameRange).
					Build()
				collect(issue)
			}
		}
	}
}

func sameFile(a, b *bscfile.File) bool {
	if a == nil || b == nil {
		return false
	}
	return a.PkgPath == b.PkgPath
}

// diagnosticValidateScriptImportPaths implements spec.md §4.3.3.
func (s *Scope) diagnosticValidateScriptImportPaths(collect func(diag.Issue)) {
	allFiles := s.GetAllFiles()
	byLowerPkgPath := make(map[string]*bscfile.File, len(allFiles))
	for _, f := range allFiles {
		byLowerPkgPath[lowerName(f.PkgPath)] = f
	}

	s.EnumerateOwnFiles(func(f *bscfile.File) {
		for _, imp := range f.AllScriptImports() {
			if imp.Text == "" {
				collect(diag.NewIssue(diag.Error, diag.E_SCRIPT_SRC_EMPTY, "script import src cannot be empty").
					WithSpan(imp.Range).
					Build())
				continue
			}
			target, ok := byLowerPkgPath[lowerName(imp.Text)]
			if !ok {
				collect(diag.NewIssue(diag.Error, diag.E_REFERENCED_FILE_DOES_NOT_EXIST,
					fmt.Sprintf("referenced file %q does not exist", imp.Text)).
					WithSpan(imp.Range).
					Build())
				continue
			}
			if target.PkgPath != imp.Text {
				collect(diag.NewIssue(diag.Warning, diag.W_SCRIPT_IMPORT_CASE_MISMATCH,
					fmt.Sprintf("script import casing %q does not match canonical path %q", imp.Text, target.PkgPath)).
					WithSpan(imp.Range).
					Build())
			}
		}
	})
}

// validateClasses delegates to the class-structure validator collaborator
// (spec.md §4.3.1 step 9) and appends its diagnostics.
func (s *Scope) validateClasses(collect func(diag.Issue)) {
	var src classvalidator.ClassSource = s
	s.classes.Validate(src)
	for _, issue := range s.classes.Diagnostics() {
		collect(issue)
	}
}

// diagnosticFindCallsToUnknownFunction implements spec.md §4.3.4.
func (s *Scope) diagnosticFindCallsToUnknownFunction(f *bscfile.File, containerMap map[string][]CallableContainer, collect func(diag.Issue)) {
	for _, call := range f.FunctionCalls {
		lower := lowerName(call.Name)
		if lower == "super" && strings.EqualFold(f.Extension, "bs") {
			continue
		}
		if s.hasLocalVariable(f, call) {
			continue
		}
		if _, ok := containerMap[lower]; ok {
			continue
		}
		collect(diag.NewIssue(diag.Error, diag.E_CALL_UNKNOWN_FUNCTION,
			fmt.Sprintf("call to unknown function %q in scope %q", call.Name, s.name)).
			WithSpan(call.NameRange).
			Build())
	}
}

func (s *Scope) hasLocalVariable(f *bscfile.File, call *bscfile.FunctionCall) bool {
	fs := innermostFunctionScope(f, call.ScopeRange)
	if fs == nil {
		return false
	}
	lower := lowerName(call.Name)
	for _, v := range fs.Variables {
		if v.LowerName == lower {
			return true
		}
	}
	return false
}

// innermostFunctionScope returns the FunctionScope matching target,
// preferring an exact range match and falling back to the smallest
// enclosing scope.
func innermostFunctionScope(f *bscfile.File, target location.Span) *bscfile.FunctionScope {
	var best *bscfile.FunctionScope
	for _, fs := range f.FunctionScopes {
		if fs.Range == target {
			return fs
		}
		if fs.Contains(target) {
			if best == nil || lineSpan(fs.Range) < lineSpan(best.Range) {
				best = fs
			}
		}
	}
	return best
}

func lineSpan(s location.Span) int {
	return s.End.Line - s.Start.Line
}

// diagnosticCheckArity implements spec.md §4.3.5.
func (s *Scope) diagnosticCheckArity(f *bscfile.File, containerMap map[string][]CallableContainer, collect func(diag.Issue)) {
	for _, call := range f.FunctionCalls {
		lower := lowerName(call.Name)
		containers, ok := containerMap[lower]
		if !ok || len(containers) == 0 {
			continue
		}
		callable := containers[0].Callable
		minParams, maxParams := callable.MinParams(), callable.MaxParams()
		if call.ArgCount >= minParams && call.ArgCount <= maxParams {
			continue
		}
		display := fmt.Sprintf("%d-%d", minParams, maxParams)
		if minParams == maxParams {
			display = fmt.Sprintf("%d", maxParams)
		}
		collect(diag.NewIssue(diag.Error, diag.E_MISMATCH_ARGUMENT_COUNT,
			fmt.Sprintf("function %q expects %s argument(s), got %d", call.Name, display, call.ArgCount)).
			WithSpan(call.NameRange).
			Build())
	}
}

// diagnosticCheckLocalVarShadowing implements spec.md §4.3.6.
func (s *Scope) diagnosticCheckLocalVarShadowing(f *bscfile.File, containerMap map[string][]CallableContainer, collect func(diag.Issue)) {
	for _, fs := range f.FunctionScopes {
		for _, v := range fs.Variables {
			lower := v.LowerName
			if v.IsFunctionType {
				switch {
				case builtin.IsBuiltin(lower):
					collect(diag.NewIssue(diag.Warning, diag.W_LOCAL_VAR_SHADOWS_STDLIB,
						fmt.Sprintf("local variable %q shadows a built-in function", v.Name)).
						WithSpan(v.NameRange).
						Build())
				case hasContainer(containerMap, lower):
					collect(diag.NewIssue(diag.Warning, diag.W_LOCAL_VAR_SHADOWS_SCOPE_FUNCTION,
						fmt.Sprintf("local variable %q shadows a scope function", v.Name)).
						WithSpan(v.NameRange).
						Build())
				}
				continue
			}

			if builtin.IsBuiltin(lower) {
				continue
			}
			if hasContainer(containerMap, lower) {
				collect(diag.NewIssue(diag.Warning, diag.W_LOCAL_VAR_SHADOWED_BY_SCOPED_FUNCTION,
					fmt.Sprintf("local variable %q is shadowed by a scope function", v.Name)).
					WithSpan(v.NameRange).
					Build())
				continue
			}
			if class, ok := s.GetClass(lower); ok {
				collect(diag.NewIssue(diag.Warning, diag.W_LOCAL_VAR_SAME_NAME_AS_CLASS,
					fmt.Sprintf("local variable %q has the same name as class %q", v.Name, class.FullName())).
					WithSpan(v.NameRange).
					Build())
			}
		}
	}
}

func hasContainer(containerMap map[string][]CallableContainer, lower string) bool {
	containers, ok := containerMap[lower]
	return ok && len(containers) > 0
}

// diagnosticCheckFunctionCollisions implements spec.md §4.3.7.
func (s *Scope) diagnosticCheckFunctionCollisions(f *bscfile.File, collect func(diag.Issue)) {
	for _, c := range f.Callables {
		if builtin.IsBuiltin(c.LowerName) {
			collect(diag.NewIssue(diag.Warning, diag.W_SCOPE_FUNCTION_SHADOWED_BY_BUILTIN,
				fmt.Sprintf("function %q is shadowed by a built-in function", c.Name)).
				WithSpan(c.NameRange).
				Build())
		}
		if class, ok := s.GetClass(c.LowerName); ok {
			collect(diag.NewIssue(diag.Error, diag.E_FUNCTION_SAME_NAME_AS_CLASS,
				fmt.Sprintf("function %q cannot have the same name as class %q", c.Name, class.FullName())).
				WithSpan(c.NameRange).
				Build())
		}
	}
}

// diagnosticCheckNamespaceCollisions implements spec.md §4.3.8.
func (s *Scope) diagnosticCheckNamespaceCollisions(f *bscfile.File, namespaceLookup map[string]*NamespaceContainer, collect func(diag.Issue)) {
	for _, fs := range f.FunctionScopes {
		for _, p := range fs.Parameters {
			if ns, ok := namespaceLookup[lowerName(p.Name)]; ok {
				collect(diag.NewIssue(diag.Error, diag.E_PARAMETER_SAME_NAME_AS_NAMESPACE,
					fmt.Sprintf("parameter %q may not share a name with namespace %q", p.Name, ns.FullName)).
					WithSpan(p.NameRange).
					WithRelated(location.RelatedInfo{Span: ns.NameRange, Message: location.MsgDeclaredHere}).
					Build())
			}
		}
	}

	if f.References == nil {
		return
	}
	for _, a := range f.References.Assignments {
		if ns, ok := namespaceLookup[lowerName(a.TargetName)]; ok {
			collect(diag.NewIssue(diag.Error, diag.E_VARIABLE_SAME_NAME_AS_NAMESPACE,
				fmt.Sprintf("variable %q may not share a name with namespace %q", a.TargetName, ns.FullName)).
				WithSpan(a.Range).
				WithRelated(location.RelatedInfo{Span: ns.NameRange, Message: location.MsgDeclaredHere}).
				Build())
		}
	}
}
