// Package lrc parses LRC timestamped lyrics and finds the line for a
// playback position.
package lrc

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"lyricbar/interval"
)

// Line is one lyric line starting at Time seconds
type Line struct {
	Time float64
	Text string
}

// Lyrics is a list of lines ordered by Time
type Lyrics struct {
	Lines []Line
}

// Parse reads LRC text. A line may carry several time tags
// ("[00:12.00][01:40.50]chorus"); each tag produces a Line. Metadata tags
// such as [ar:...] and lines without a time tag are skipped. Lines with an
// empty text are kept, they mark instrumental breaks.
func Parse(raw string) Lyrics {
	var lines []Line

	for _, row := range strings.Split(raw, "\n") {
		row = strings.TrimSpace(row)
		if row == "" {
			continue
		}

		var times []float64
		for strings.HasPrefix(row, "[") {
			end := strings.Index(row, "]")
			if end < 0 {
				break
			}
			t, err := parseTimestamp(row[1:end])
			if err != nil {
				break
			}
			times = append(times, t)
			row = row[end+1:]
		}

		text := strings.TrimSpace(row)
		for _, t := range times {
			lines = append(lines, Line{Time: t, Text: text})
		}
	}

	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].Time < lines[j].Time
	})

	return Lyrics{Lines: lines}
}

var errNegativeTime = errors.New("negative time not allowed")

// parseTimestamp parses mm:ss.xx or hh:mm:ss.xx into seconds
func parseTimestamp(raw string) (float64, error) {
	parts := strings.Split(raw, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid time tag %q", raw)
	}

	var total float64
	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid time tag %q: %w", raw, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("invalid time tag %q: not a finite number", raw)
		}
		if v < 0 {
			return 0, fmt.Errorf("invalid time tag %q: %w", raw, errNegativeTime)
		}
		total = total*60 + v
	}

	return total, nil
}

// Intervals returns the display window of each line. A line lasts until the
// next one starts; the last line lasts until duration, or is a single point
// if duration is earlier than its start.
func (l Lyrics) Intervals(duration float64) []interval.Interval {
	out := make([]interval.Interval, len(l.Lines))
	for i, line := range l.Lines {
		upper := duration
		if i+1 < len(l.Lines) {
			upper = l.Lines[i+1].Time
		}
		if upper < line.Time {
			upper = line.Time
		}
		out[i] = interval.Interval{Lower: line.Time, Upper: upper}
	}
	return out
}

// LineAt returns the index of the line shown at position, or -1 before the
// first line and after duration.
func (l Lyrics) LineAt(position, duration float64) int {
	return interval.Search(l.Intervals(duration), position)
}
