package interval_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fernlang/fern/internal/interval"
)

func TestMap(t *testing.T) {
	t.Parallel()

	var m interval.Map[int, string]
	assert.Zero(t, m.Len())

	_, ok := m.Get(5)
	assert.False(t, ok)

	require.True(t, m.Insert(0, 7, "a"))
	require.True(t, m.Insert(10, 10, "b"))
	require.True(t, m.Insert(8, 9, "c"))
	assert.Equal(t, 3, m.Len())

	tests := []struct {
		key  int
		want string
		ok   bool
	}{
		{0, "a", true},
		{7, "a", true},
		{8, "c", true},
		{9, "c", true},
		{10, "b", true},
		{11, "", false},
		{-1, "", false},
	}
	for _, tt := range tests {
		got, ok := m.Get(tt.key)
		assert.Equal(t, tt.ok, ok, "Get(%d)", tt.key)
		assert.Equal(t, tt.want, got, "Get(%d)", tt.key)
	}
}

func TestMapOverlap(t *testing.T) {
	t.Parallel()

	var m interval.Map[int, string]
	require.True(t, m.Insert(5, 10, "a"))

	// Overlap on either endpoint, containment, and exact duplicates are all
	// rejected without modifying the map.
	assert.False(t, m.Insert(0, 5, "b"))
	assert.False(t, m.Insert(10, 20, "b"))
	assert.False(t, m.Insert(6, 9, "b"))
	assert.False(t, m.Insert(0, 20, "b"))
	assert.False(t, m.Insert(5, 10, "b"))
	assert.Equal(t, 1, m.Len())

	// Adjacent intervals do not overlap.
	assert.True(t, m.Insert(0, 4, "b"))
	assert.True(t, m.Insert(11, 11, "c"))
}

func TestMapIntervals(t *testing.T) {
	t.Parallel()

	var m interval.Map[int, string]
	require.True(t, m.Insert(8, 9, "c"))
	require.True(t, m.Insert(0, 7, "a"))
	require.True(t, m.Insert(10, 10, "b"))

	var got []interval.Interval[int, string]
	for iv := range m.Intervals() {
		got = append(got, iv)
	}
	assert.Equal(t, []interval.Interval[int, string]{
		{Start: 0, End: 7, Value: "a"},
		{Start: 8, End: 9, Value: "c"},
		{Start: 10, End: 10, Value: "b"},
	}, got)
}

func TestMapFormat(t *testing.T) {
	t.Parallel()

	var m interval.Map[int, string]
	require.True(t, m.Insert(0, 7, "a"))
	require.True(t, m.Insert(10, 10, "b"))

	assert.Equal(t, `{[0, 7]: "a", 10: "b"}`, fmt.Sprintf("%q", &m))
}

func TestMapInvalid(t *testing.T) {
	t.Parallel()

	var m interval.Map[int, string]
	assert.Panics(t, func() { m.Insert(2, 1, "x") })
}
