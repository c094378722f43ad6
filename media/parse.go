package media

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NotRunning is what the script prints when the application isn't running
const NotRunning = "Empty"

const (
	tokenSeparator = ", "
	fieldSeparator = "|"
	recordTokens   = 9
)

// ErrMalformedOutput is returned when the bridge output doesn't have the
// expected record layout.
var ErrMalformedOutput = errors.New("malformed provider output")

// ParseOutput parses the bridge's textual record
//
//	name, |, artist, |, position, |, state, |, duration
//
// The bridge prints the script's list joined by ", ", so the "|" markers
// occupy the odd indices and the fields the even ones. A field that itself
// contains ", " shifts the layout and is reported as malformed.
//
// Duration without a decimal point is taken as integer milliseconds and
// floored to whole seconds; with a decimal point it is taken as seconds.
// Spotify reports the former and Music the latter.
func ParseOutput(raw string) (Information, error) {
	tokens := strings.Split(raw, tokenSeparator)
	if len(tokens) != recordTokens {
		return Information{}, fmt.Errorf("%w: got %d tokens, expected %d", ErrMalformedOutput, len(tokens), recordTokens)
	}
	for i := 1; i < recordTokens; i += 2 {
		if tokens[i] != fieldSeparator {
			return Information{}, fmt.Errorf("%w: token %d is %q, expected %q", ErrMalformedOutput, i, tokens[i], fieldSeparator)
		}
	}

	position, err := strconv.ParseFloat(tokens[4], 64)
	if err != nil {
		return Information{}, fmt.Errorf("%w: position: %v", ErrMalformedOutput, err)
	}

	duration, err := parseDuration(tokens[8])
	if err != nil {
		return Information{}, fmt.Errorf("%w: duration: %v", ErrMalformedOutput, err)
	}

	return Information{
		Name:     tokens[0],
		Artists:  tokens[2],
		Position: position,
		State:    ParseState(tokens[6]),
		Duration: duration,
	}, nil
}

func parseDuration(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if !strings.Contains(s, ".") {
		return math.Floor(v / 1000), nil
	}
	return v, nil
}

// formatRecord builds a record in the layout ParseOutput expects
func formatRecord(name, artist, position, state, duration string) string {
	return strings.Join([]string{
		name, fieldSeparator,
		artist, fieldSeparator,
		position, fieldSeparator,
		state, fieldSeparator,
		duration,
	}, tokenSeparator)
}
