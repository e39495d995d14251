// Package classvalidator provides a concrete implementation of the
// pluggable class-structure validator spec.md §4.3.1 step 9 and §6 name as
// an external collaborator ("circular inheritance, field overrides... its
// contract is specified but its algorithm is not"). This implementation
// exists so the validation pipeline is runnable end to end; hosts may
// substitute their own by satisfying the same [Validator] interface.
package classvalidator

import (
	"fmt"
	"strings"

	"github.com/bsc-lang/scopegraph/bscfile"
	"github.com/bsc-lang/scopegraph/diag"
)

// ClassSource is the minimal view of a scope the class validator needs: the
// full set of classes visible within it (own and inherited), deduplicated
// by lowercase full name. Defined here rather than depending on the scope
// package directly, so classvalidator has no import-cycle back onto scope.
type ClassSource interface {
	ScopeName() string
	Classes() []*bscfile.ClassStatement
}

// Validator is the contract spec.md §6 specifies for the class-structure
// validator collaborator: validate(scope) and expose diagnostics.
type Validator interface {
	Validate(src ClassSource)
	Diagnostics() []diag.Issue
}

// DefaultValidator checks for circular inheritance chains and field
// declarations that shadow a field already declared by an ancestor class.
type DefaultValidator struct {
	diagnostics []diag.Issue
}

// New creates a DefaultValidator with no diagnostics.
func New() *DefaultValidator {
	return &DefaultValidator{}
}

// Validate runs both checks against every class visible in src, replacing
// any diagnostics from a previous Validate call.
func (v *DefaultValidator) Validate(src ClassSource) {
	v.diagnostics = nil

	classes := src.Classes()
	byLowerFullName := make(map[string]*bscfile.ClassStatement, len(classes))
	for _, c := range classes {
		byLowerFullName[strings.ToLower(c.FullName())] = c
	}

	for _, c := range classes {
		v.checkInheritanceCycle(c, byLowerFullName)
		v.checkFieldOverrides(c, byLowerFullName)
	}
}

// Diagnostics returns the diagnostics from the most recent Validate call.
func (v *DefaultValidator) Diagnostics() []diag.Issue {
	return v.diagnostics
}

func (v *DefaultValidator) checkInheritanceCycle(start *bscfile.ClassStatement, byName map[string]*bscfile.ClassStatement) {
	seen := map[string]struct{}{strings.ToLower(start.FullName()): {}}
	cur := start
	for cur.ParentName != "" {
		parent, ok := byName[strings.ToLower(cur.ParentName)]
		if !ok {
			return // unresolved parent; not this validator's concern
		}
		key := strings.ToLower(parent.FullName())
		if _, cycle := seen[key]; cycle {
			issue := diag.NewIssue(diag.Error, diag.E_INHERIT_CYCLE,
				fmt.Sprintf("class %q participates in a circular inheritance chain", start.FullName())).
				WithSpan(start.NameRange).
				Build()
			v.diagnostics = append(v.diagnostics, issue)
			return
		}
		seen[key] = struct{}{}
		cur = parent
	}
}

func (v *DefaultValidator) checkFieldOverrides(c *bscfile.ClassStatement, byName map[string]*bscfile.ClassStatement) {
	if c.ParentName == "" {
		return
	}
	ancestorFields := map[string]bscfile.ClassField{}
	cur, ok := byName[strings.ToLower(c.ParentName)]
	for ok {
		for _, f := range cur.Fields {
			if _, exists := ancestorFields[strings.ToLower(f.Name)]; !exists {
				ancestorFields[strings.ToLower(f.Name)] = f
			}
		}
		if cur.ParentName == "" {
			break
		}
		cur, ok = byName[strings.ToLower(cur.ParentName)]
	}

	for _, f := range c.Fields {
		if _, overridden := ancestorFields[strings.ToLower(f.Name)]; overridden {
			issue := diag.NewIssue(diag.Info, diag.E_PROPERTY_CONFLICT,
				fmt.Sprintf("field %q on class %q overrides a field declared by an ancestor class", f.Name, c.FullName())).
				WithSpan(f.NameRange).
				Build()
			v.diagnostics = append(v.diagnostics, issue)
		}
	}
}

