package main

import (
	"fmt"
)

// formatTime converts seconds to MM:SS format
func formatTime(seconds int64) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// formatProgress renders "position/duration", clamping the position to the
// duration when the player reports it slightly past the end
func formatProgress(position, duration float64) string {
	if duration > 0 && position > duration {
		position = duration
	}
	return formatTime(int64(position)) + "/" + formatTime(int64(duration))
}
