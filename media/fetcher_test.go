package media

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticProvider returns a fixed result and records the requested app
func staticProvider(code int, out string, err error, gotApp *string) Provider {
	return ProviderFunc(func(ctx context.Context, app string) (int, string, error) {
		if gotApp != nil {
			*gotApp = app
		}
		return code, out, err
	})
}

func newTestLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, &buf
}

func logLines(buf *bytes.Buffer) []string {
	return strings.Split(strings.TrimSpace(buf.String()), "\n")
}

func TestGetInfoPlaying(t *testing.T) {
	var app string
	f := NewFetcher(staticProvider(0, "Blue in Green, |, Miles Davis, |, 42.5, |, playing, |, 180000", nil, &app))

	info, err := f.GetInfo(context.Background(), "Spotify")
	require.NoError(t, err)
	require.NotNil(t, info)

	assert.Equal(t, "Spotify", app)
	assert.Equal(t, "Blue in Green", info.Name)
	assert.Equal(t, "Miles Davis", info.Artists)
	assert.Equal(t, 42.5, info.Position)
	assert.Equal(t, StatePlaying, info.State)
	assert.Equal(t, 180.0, info.Duration)
}

func TestGetInfoReturnsNil(t *testing.T) {
	tests := []struct {
		name string
		code int
		out  string
		err  error
	}{
		{"not running", 0, NotRunning, nil},
		{"non-zero exit", 1, "execution error: Spotify got an error", nil},
		{"non-zero exit with record", 1, "Track, |, Artist, |, 3, |, playing, |, 1000", nil},
		{"bridge missing", 0, "", errors.New("exec: \"osascript\": executable file not found in $PATH")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFetcher(staticProvider(tt.code, tt.out, tt.err, nil))
			info, err := f.GetInfo(context.Background(), "Spotify")
			assert.NoError(t, err)
			assert.Nil(t, info)
		})
	}
}

func TestGetInfoMalformed(t *testing.T) {
	f := NewFetcher(staticProvider(0, "Hello, Goodbye, |, The Beatles, |, 3, |, playing, |, 1000", nil, nil))

	info, err := f.GetInfo(context.Background(), "Music")
	assert.Nil(t, info)
	assert.ErrorIs(t, err, ErrMalformedOutput)
}

func TestGetInfoLogsRawAndParsed(t *testing.T) {
	logger, buf := newTestLogger()
	f := NewFetcher(staticProvider(0, "Track, |, Artist, |, 3, |, paused, |, 1000", nil, nil), WithLogger(logger))

	_, err := f.GetInfo(context.Background(), "Music")
	require.NoError(t, err)

	lines := logLines(buf)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `msg="scripting bridge output"`)
	assert.Contains(t, lines[0], `raw="Track, |, Artist, |, 3, |, paused, |, 1000"`)
	assert.Contains(t, lines[1], `msg="parsed media information"`)
	assert.Contains(t, lines[1], "info.name=Track")
	assert.Contains(t, lines[1], "info.state=paused")
}

func TestGetInfoLogsNilWhenNotRunning(t *testing.T) {
	logger, buf := newTestLogger()
	f := NewFetcher(staticProvider(0, NotRunning, nil, nil), WithLogger(logger))

	info, err := f.GetInfo(context.Background(), "Music")
	require.NoError(t, err)
	require.Nil(t, info)

	lines := logLines(buf)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "raw=Empty")
	assert.Contains(t, lines[1], "info=<nil>")
}

func TestGetInfoLogsPairWhenBridgeFails(t *testing.T) {
	logger, buf := newTestLogger()
	f := NewFetcher(staticProvider(0, "", errors.New("exec: not found"), nil), WithLogger(logger))

	info, err := f.GetInfo(context.Background(), "Music")
	require.NoError(t, err)
	require.Nil(t, info)

	lines := logLines(buf)
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "level=WARN")
	assert.Contains(t, lines[1], `msg="scripting bridge output"`)
	assert.Contains(t, lines[1], `raw=""`)
	assert.Contains(t, lines[2], `msg="parsed media information"`)
	assert.Contains(t, lines[2], "info=<nil>")
}

func TestGetInfoLogsPairWhenMalformed(t *testing.T) {
	logger, buf := newTestLogger()
	f := NewFetcher(staticProvider(0, "Track, |, Artist", nil, nil), WithLogger(logger))

	_, err := f.GetInfo(context.Background(), "Music")
	require.ErrorIs(t, err, ErrMalformedOutput)

	lines := logLines(buf)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `msg="scripting bridge output"`)
	assert.Contains(t, lines[1], `msg="parsed media information"`)
	assert.Contains(t, lines[1], "info=<nil>")
}

func TestGetInfoTimeout(t *testing.T) {
	var deadline time.Time
	var hasDeadline bool
	p := ProviderFunc(func(ctx context.Context, app string) (int, string, error) {
		deadline, hasDeadline = ctx.Deadline()
		return 0, NotRunning, nil
	})

	_, err := NewFetcher(p).GetInfo(context.Background(), "Music")
	require.NoError(t, err)
	assert.False(t, hasDeadline, "no timeout by default")

	_, err = NewFetcher(p, WithTimeout(time.Second)).GetInfo(context.Background(), "Music")
	require.NoError(t, err)
	assert.True(t, hasDeadline)
	assert.WithinDuration(t, time.Now().Add(time.Second), deadline, time.Second)
}

func TestWithLoggerIgnoresNil(t *testing.T) {
	f := NewFetcher(staticProvider(0, NotRunning, nil, nil), WithLogger(nil))
	require.NotNil(t, f.logger)

	_, err := f.GetInfo(context.Background(), "Music")
	assert.NoError(t, err)
}
