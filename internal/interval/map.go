// Package interval provides an interval map keyed by closed ranges.
//
// The parser uses it to answer "which comment covers this byte offset"
// queries without a linear scan over the comment list.
package interval

import (
	"fmt"
	"iter"

	"github.com/tidwall/btree"
	"golang.org/x/exp/constraints"
)

// Endpoint is a type usable as an interval endpoint.
type Endpoint = constraints.Integer

// Map maps closed intervals with endpoints in K to values of type V.
//
// Intervals in the map never overlap: Insert rejects an interval that
// intersects one already present. A zero value is ready to use.
type Map[K Endpoint, V any] struct {
	// Keys in this tree are the ends of the intervals in the map.
	tree btree.Map[K, *entry[K, V]]
}

type entry[K Endpoint, V any] struct {
	start K
	value V
}

// Interval is a single entry of a [Map].
type Interval[K Endpoint, V any] struct {
	// The inclusive endpoints of this interval.
	Start, End K

	Value V
}

// Get looks up the value of the interval containing key, if one exists.
func (m *Map[K, V]) Get(key K) (V, bool) {
	// Seek finds the interval with the least end such that key <= end; the
	// interval contains key exactly when its start is also at or before key.
	iter := m.tree.Iter()
	if !iter.Seek(key) || key < iter.Value().start {
		var zero V
		return zero, false
	}
	return iter.Value().value, true
}

// Insert adds the interval [start, end], both endpoints inclusive, with the
// given associated value.
//
// Returns false without modifying the map if the interval overlaps one
// already present.
func (m *Map[K, V]) Insert(start, end K, value V) bool {
	if start > end {
		panic(fmt.Sprintf("interval: start (%#v) > end (%#v)", start, end))
	}

	// The candidate for overlap is the interval with the least end such that
	// start <= end. Intervals ending before start cannot intersect [start,
	// end], and because intervals in the map are disjoint, every interval
	// after the candidate begins past the candidate's start.
	iter := m.tree.Iter()
	if iter.Seek(start) && iter.Value().start <= end {
		return false
	}

	m.tree.Set(end, &entry[K, V]{start: start, value: value})
	return true
}

// Len returns the number of intervals in the map.
func (m *Map[K, V]) Len() int {
	return m.tree.Len()
}

// Intervals returns an iterator over the intervals in this map, in
// ascending order.
func (m *Map[K, V]) Intervals() iter.Seq[Interval[K, V]] {
	return func(yield func(Interval[K, V]) bool) {
		iter := m.tree.Iter()
		for more := iter.First(); more; more = iter.Next() {
			if !yield(Interval[K, V]{
				Start: iter.Value().start,
				End:   iter.Key(),
				Value: iter.Value().value,
			}) {
				return
			}
		}
	}
}

// Format implements [fmt.Formatter].
func (m *Map[K, V]) Format(s fmt.State, v rune) {
	fmt.Fprint(s, "{")
	first := true
	m.tree.Scan(func(end K, entry *entry[K, V]) bool {
		if !first {
			fmt.Fprint(s, ", ")
		}
		first = false

		if entry.start == end {
			fmt.Fprintf(s, "%#v: ", entry.start)
		} else {
			fmt.Fprintf(s, "[%#v, %#v]: ", entry.start, end)
		}
		fmt.Fprintf(s, fmt.FormatString(s, v), entry.value)

		return true
	})
	fmt.Fprint(s, "}")
}
