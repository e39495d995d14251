package cache_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bsc-lang/scopegraph/cache"
)

func TestGetOrAdd_ComputesOnce(t *testing.T) {
	c := cache.New()
	calls := 0
	factory := func() any {
		calls++
		return 42
	}

	require.Equal(t, 42, c.GetOrAdd("answer", factory))
	require.Equal(t, 42, c.GetOrAdd("answer", factory))
	require.Equal(t, 1, calls)
}

func TestGetOrAdd_AbsentSentinelAvoidsRefactory(t *testing.T) {
	c := cache.New()
	calls := 0
	factory := func() any {
		calls++
		return cache.Absent
	}

	require.Equal(t, cache.Absent, c.GetOrAdd("class:foo", factory))
	require.Equal(t, cache.Absent, c.GetOrAdd("class:foo", factory))
	require.Equal(t, 1, calls)
}

func TestClear_DropsAllSlots(t *testing.T) {
	c := cache.New()
	c.GetOrAdd("a", func() any { return 1 })
	c.GetOrAdd("b", func() any { return 2 })
	require.Equal(t, 2, c.Len())

	c.Clear()
	require.Equal(t, 0, c.Len())
	require.False(t, c.Has("a"))
}
