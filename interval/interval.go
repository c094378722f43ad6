// Package interval locates a position within a sorted list of closed
// intervals, such as the display windows of timestamped lyric lines.
package interval

import (
	"cmp"
	"slices"
)

// Interval is a closed [Lower, Upper] range
type Interval struct {
	Lower float64
	Upper float64
}

// Contains reports whether p lies within the interval, bounds included
func (iv Interval) Contains(p float64) bool {
	return iv.Lower <= p && p <= iv.Upper
}

// Search returns the index of the interval containing position, or -1.
//
// intervals must be sorted ascending by Upper. The candidate is the leftmost
// interval whose Upper is >= position, so a position on a bound shared by
// two neighbours resolves to the earlier one. An empty list returns -1.
func Search(intervals []Interval, position float64) int {
	idx, _ := slices.BinarySearchFunc(intervals, position, func(iv Interval, p float64) int {
		return cmp.Compare(iv.Upper, p)
	})
	if idx < len(intervals) && intervals[idx].Contains(position) {
		return idx
	}
	return -1
}
