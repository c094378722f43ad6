// Package media reads "now playing" information from a media player through
// the host's scripting bridge.
package media

import (
	"context"
	"log/slog"
)

// State is the playback state reported by the player.
type State int

const (
	StateStopped State = 0
	StatePaused  State = 1
	StatePlaying State = 2
)

// ParseState maps the player's textual state to a State. Unknown text is
// treated as stopped.
func ParseState(s string) State {
	switch s {
	case "playing":
		return StatePlaying
	case "paused":
		return StatePaused
	default:
		return StateStopped
	}
}

func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "stopped"
	}
}

// Information is a snapshot of the player's current track
type Information struct {
	Name     string
	Artists  string  // artist field as reported, not split
	Position float64 // seconds
	State    State
	Duration float64 // seconds; see ParseOutput for unit handling
}

// LogValue implements slog.LogValuer
func (i Information) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("name", i.Name),
		slog.String("artists", i.Artists),
		slog.Float64("position", i.Position),
		slog.String("state", i.State.String()),
		slog.Float64("duration", i.Duration),
	)
}

// Provider runs the scripting bridge against a named application.
//
// A non-zero exit of the bridge is reported through exitCode. err is only
// set when the bridge could not be run at all.
type Provider interface {
	FetchRaw(ctx context.Context, app string) (exitCode int, output string, err error)
}

// ProviderFunc adapts an ordinary function to a Provider
type ProviderFunc func(ctx context.Context, app string) (int, string, error)

func (f ProviderFunc) FetchRaw(ctx context.Context, app string) (int, string, error) {
	return f(ctx, app)
}
