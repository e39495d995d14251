package scope_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bsc-lang/scopegraph/bscfile"
	"github.com/bsc-lang/scopegraph/depgraph"
	"github.com/bsc-lang/scopegraph/scope"
)

func TestComponentScope_OwnFilesComeFromComponentFile(t *testing.T) {
	compFile := &bscfile.File{PkgPath: "pkg:/components/Widget.brs"}
	unrelated := &bscfile.File{PkgPath: "pkg:/source/unrelated.brs"}

	g := depgraph.New()
	// Deliberately wire an edge that would contribute to dependency-graph
	// based own-file resolution, to prove the component override bypasses it.
	g.AddEdge("component:Widget", "pkg:/source/unrelated.brs")

	cat := scope.New(g, newFakeFiles(compFile, unrelated))
	cs := cat.CreateComponentScope("Widget", "component:Widget", "")
	cs.SetComponentFile(compFile)

	own := cs.GetOwnFiles()
	require.Len(t, own, 1)
	require.Equal(t, "pkg:/components/Widget.brs", own[0].PkgPath)
}

func TestComponentScope_NoParentNameFallsBackToGlobal(t *testing.T) {
	compFile := &bscfile.File{PkgPath: "pkg:/components/Widget.brs"}
	g := depgraph.New()
	cat := scope.New(g, newFakeFiles(compFile))

	cs := cat.CreateComponentScope("Widget", "component:Widget", "")
	cs.SetComponentFile(compFile)

	parent, ok := cs.GetParentScope()
	require.True(t, ok)
	require.Same(t, cat.Global(), parent)

	name, ok := cs.ParentComponentName()
	require.False(t, ok)
	require.Empty(t, name)
}

func TestComponentScope_ResolvesNamedParentComponent(t *testing.T) {
	baseFile := &bscfile.File{PkgPath: "pkg:/components/Base.brs"}
	childFile := &bscfile.File{PkgPath: "pkg:/components/Child.brs"}
	g := depgraph.New()
	cat := scope.New(g, newFakeFiles(baseFile, childFile))

	base := cat.CreateComponentScope("Base", "component:Base", "")
	base.SetComponentFile(baseFile)

	child := cat.CreateComponentScope("Child", "component:Child", "Base")
	child.SetComponentFile(childFile)

	parent, ok := child.GetParentScope()
	require.True(t, ok)
	require.Same(t, base.Scope, parent)

	name, ok := child.ParentComponentName()
	require.True(t, ok)
	require.Equal(t, "Base", name)
}

func TestComponentScope_UnresolvableParentNameNotFound(t *testing.T) {
	compFile := &bscfile.File{PkgPath: "pkg:/components/Widget.brs"}
	g := depgraph.New()
	cat := scope.New(g, newFakeFiles(compFile))

	cs := cat.CreateComponentScope("Widget", "component:Widget", "Missing")
	cs.SetComponentFile(compFile)

	_, ok := cs.GetParentScope()
	require.False(t, ok)
}
