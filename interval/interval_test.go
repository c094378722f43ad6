package interval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearch(t *testing.T) {
	lines := []Interval{{0, 12}, {12, 15}}

	tests := []struct {
		name      string
		intervals []Interval
		position  float64
		expected  int
	}{
		{"inside second", lines, 13, 1},
		{"inside first", lines, 7, 0},
		{"past the end", lines, 20, -1},
		{"shared bound resolves left", lines, 12, 0},
		{"lower bound of first", lines, 0, 0},
		{"upper bound of last", lines, 15, 1},
		{"before the start", lines, -1, -1},
		{"empty list", nil, 3, -1},
		{"single interval", []Interval{{5, 10}}, 7.5, 0},
		{"gap between intervals", []Interval{{0, 5}, {10, 15}}, 7, -1},
		{"gap lands on next lower bound", []Interval{{0, 5}, {10, 15}}, 10, 1},
		{"zero width interval", []Interval{{0, 5}, {5, 5}, {5, 9}}, 5, 0},
		{
			name:      "many lines",
			intervals: []Interval{{0, 2}, {2, 4.5}, {4.5, 9}, {9, 11}, {11, 30}, {30, 31}},
			position:  10.25,
			expected:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Search(tt.intervals, tt.position))
		})
	}
}

// TestSearchMatchesLinearScan checks the binary search against the obvious
// scan on intervals without shared bounds.
func TestSearchMatchesLinearScan(t *testing.T) {
	intervals := []Interval{{0, 1}, {2, 3}, {4, 5}, {6, 7}, {8, 9}}

	for p := -1.0; p <= 10; p += 0.25 {
		expected := -1
		for i, iv := range intervals {
			if iv.Contains(p) {
				expected = i
				break
			}
		}
		assert.Equal(t, expected, Search(intervals, p), "position %v", p)
	}
}

func TestContains(t *testing.T) {
	iv := Interval{Lower: 1, Upper: 2}
	assert.True(t, iv.Contains(1))
	assert.True(t, iv.Contains(1.5))
	assert.True(t, iv.Contains(2))
	assert.False(t, iv.Contains(0.999))
	assert.False(t, iv.Contains(2.001))
}

func BenchmarkSearch(b *testing.B) {
	intervals := make([]Interval, 2000)
	for i := range intervals {
		intervals[i] = Interval{Lower: float64(i) * 3, Upper: float64(i+1) * 3}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Search(intervals, 4321.5)
	}
}
