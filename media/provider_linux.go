//go:build linux
// +build linux

package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

const defaultPlayerctl = "playerctl"

// Tab separated so "|" and ", " inside titles don't confuse the split here.
const metadataFormat = "{{title}}\t{{artist}}\t{{lc(status)}}\t{{mpris:length}}"

// PlayerctlProvider implements Provider using playerctl (MPRIS) on Linux.
// It reports the same record layout as the macOS script, with the duration
// as integer milliseconds.
type PlayerctlProvider struct {
	binary string
}

// NewProvider creates the provider for the current platform. An empty binary
// uses playerctl from PATH.
func NewProvider(binary string) Provider {
	if binary == "" {
		binary = defaultPlayerctl
	}
	return &PlayerctlProvider{binary: binary}
}

func (p *PlayerctlProvider) FetchRaw(ctx context.Context, app string) (int, string, error) {
	// MPRIS bus names are lowercase ("Spotify" is org.mpris.MediaPlayer2.spotify)
	player := strings.ToLower(app)

	code, out, stderr, err := p.run(ctx, "-p", player, "metadata", "--format", metadataFormat)
	if err != nil {
		return 0, "", err
	}
	if code != 0 {
		if isNoPlayer(stderr) {
			return 0, NotRunning, nil
		}
		return code, out, nil
	}

	parts := strings.Split(out, "\t")
	if len(parts) != 4 {
		// Let the parser report the layout problem
		return 0, out, nil
	}

	code, position, _, err := p.run(ctx, "-p", player, "position")
	if err != nil {
		return 0, "", err
	}
	if code != 0 {
		return code, position, nil
	}

	return 0, formatRecord(
		sanitizeField(parts[0]),
		sanitizeField(parts[1]),
		position,
		parts[2],
		microsToMillis(parts[3]),
	), nil
}

// sanitizeField drops the space after commas so a title like
// "Hello, Goodbye" doesn't split into extra record tokens
func sanitizeField(s string) string {
	return strings.ReplaceAll(s, tokenSeparator, ",")
}

func (p *PlayerctlProvider) run(ctx context.Context, args ...string) (int, string, string, error) {
	cmd := exec.CommandContext(ctx, p.binary, args...)
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			return exitErr.ExitCode(), trimNewline(out.String()), stderr.String(), nil
		}
		return 0, "", "", fmt.Errorf("%s %s failed: %w", p.binary, strings.Join(args, " "), err)
	}
	return 0, trimNewline(out.String()), stderr.String(), nil
}

// trimNewline keeps tabs so empty leading or trailing fields survive
func trimNewline(s string) string {
	return strings.TrimRight(s, "\r\n")
}

func isNoPlayer(stderr string) bool {
	return strings.Contains(stderr, "No players found") ||
		strings.Contains(stderr, "No player could handle this command")
}

// microsToMillis converts mpris:length to whole milliseconds. Unknown or
// unparsable lengths become "0".
func microsToMillis(s string) string {
	us, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return "0"
	}
	return strconv.FormatInt(us/1000, 10)
}
