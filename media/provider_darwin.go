//go:build darwin
// +build darwin

package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

const defaultOSAScript = "osascript"

// infoScript asks app for its current track. It returns NotRunning when app
// isn't running, otherwise a list that osascript prints as
// "name, |, artist, |, position, |, state, |, duration".
const infoScript = `on run
	if application "%[1]s" is running then
		tell application "%[1]s"
			set currentInfo to {name of current track, "|", artist of current track, "|", player position, "|", player state, "|", duration of current track}
		end tell
	else
		set currentInfo to "Empty"
	end if
	return currentInfo
end run`

// AppleScriptProvider implements Provider using osascript on macOS
type AppleScriptProvider struct {
	binary string
}

// NewProvider creates the provider for the current platform. An empty binary
// uses osascript from PATH.
func NewProvider(binary string) Provider {
	if binary == "" {
		binary = defaultOSAScript
	}
	return &AppleScriptProvider{binary: binary}
}

var scriptQuoter = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func (a *AppleScriptProvider) FetchRaw(ctx context.Context, app string) (int, string, error) {
	return a.runAppleScript(ctx, fmt.Sprintf(infoScript, scriptQuoter.Replace(app)))
}

func (a *AppleScriptProvider) runAppleScript(ctx context.Context, script string) (int, string, error) {
	cmd := exec.CommandContext(ctx, a.binary, "-e", script)
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			return exitErr.ExitCode(), strings.TrimSpace(out.String()), nil
		}
		return 0, "", fmt.Errorf("%s failed: %w", a.binary, err)
	}
	return 0, strings.TrimSpace(out.String()), nil
}
