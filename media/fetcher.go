package media

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// Fetcher reads now-playing information through a Provider
type Fetcher struct {
	provider Provider
	logger   *slog.Logger
	timeout  time.Duration
}

// Option configures a Fetcher
type Option func(*Fetcher)

// WithLogger sets the logger used for the raw and parsed diagnostics
func WithLogger(l *slog.Logger) Option {
	return func(f *Fetcher) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithTimeout bounds each bridge call. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a Fetcher. Without WithLogger diagnostics are discarded.
func NewFetcher(p Provider, opts ...Option) *Fetcher {
	f := &Fetcher{
		provider: p,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// GetInfo returns the current track of app.
//
// It returns nil with no error when the application isn't running, the
// bridge exits non-zero or the bridge can't be run. A payload that doesn't
// match the record layout returns an error wrapping ErrMalformedOutput.
func (f *Fetcher) GetInfo(ctx context.Context, app string) (*Information, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	code, out, err := f.provider.FetchRaw(ctx, app)
	if err != nil {
		f.logger.Warn("scripting bridge failed", "app", app, "err", err)
	}

	f.logger.Debug("scripting bridge output", "app", app, "exit_code", code, "raw", out)

	var info *Information
	if err == nil && code == 0 && out != NotRunning {
		parsed, err := ParseOutput(out)
		if err != nil {
			f.logger.Debug("parsed media information", "app", app, "info", nil)
			return nil, err
		}
		info = &parsed
	}

	if info != nil {
		f.logger.Debug("parsed media information", "app", app, "info", *info)
	} else {
		f.logger.Debug("parsed media information", "app", app, "info", nil)
	}

	return info, nil
}
