package provider_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bsc-lang/scopegraph/bscfile"
	"github.com/bsc-lang/scopegraph/location"
	"github.com/bsc-lang/scopegraph/provider"
)

func TestDefaultDefinitionFinder_AlwaysReturnsNil(t *testing.T) {
	var finder provider.DefinitionFinder = provider.DefaultDefinitionFinder{}
	got := finder.GetDefinition(nil, &bscfile.File{PkgPath: "pkg:/a.brs"}, location.Position{Line: 1, Column: 1})
	require.Nil(t, got)
}
