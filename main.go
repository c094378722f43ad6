// Command lyricbar prints what a media player is playing right now and,
// given an LRC file, which lyric line is current.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"lyricbar/lrc"
	"lyricbar/media"
)

// newProvider is swapped out in tests
var newProvider = media.NewProvider

// report is the YAML document written to stdout
type report struct {
	App      string     `yaml:"app"`
	Running  bool       `yaml:"running"`
	Name     string     `yaml:"name,omitempty"`
	Artists  string     `yaml:"artists,omitempty"`
	State    string     `yaml:"state,omitempty"`
	Position *float64   `yaml:"position,omitempty"` // nil only when not running
	Duration *float64   `yaml:"duration,omitempty"`
	Progress string     `yaml:"progress,omitempty"`
	Line     *lyricLine `yaml:"line,omitempty"`
}

type lyricLine struct {
	Index int    `yaml:"index"`
	Text  string `yaml:"text"`
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet()
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(fs)
	if err != nil {
		return err
	}

	errs := validateConfig(&cfg)
	applyDefaultsForInvalidFields(&cfg, errs)

	logger := newLogger(stderr, cfg.LogLevel)
	printConfigWarnings(logger, errs)

	fetcher := media.NewFetcher(
		newProvider(cfg.Provider.Binary),
		media.WithLogger(logger),
		media.WithTimeout(cfg.Provider.Timeout),
	)

	r, err := nowPlaying(ctx, fetcher, cfg, logger)
	if err != nil {
		return err
	}
	return writeReport(stdout, r)
}

// nowPlaying fetches the current track once and, when a lyrics file is
// configured, locates the current line in it.
func nowPlaying(ctx context.Context, fetcher *media.Fetcher, cfg Config, logger *slog.Logger) (report, error) {
	r := report{App: cfg.App}

	info, err := fetcher.GetInfo(ctx, cfg.App)
	if err != nil {
		return r, fmt.Errorf("reading %s: %w", cfg.App, err)
	}
	if info == nil {
		logger.Info("nothing playing", "app", cfg.App)
		return r, nil
	}

	r.Running = true
	r.Name = info.Name
	r.Artists = info.Artists
	r.State = info.State.String()
	r.Position = &info.Position
	r.Duration = &info.Duration
	r.Progress = formatProgress(info.Position, info.Duration)

	if cfg.Lyrics == "" {
		return r, nil
	}

	data, err := os.ReadFile(cfg.Lyrics)
	if err != nil {
		return r, fmt.Errorf("reading lyrics: %w", err)
	}
	lyrics := lrc.Parse(string(data))
	logger.Debug("parsed lyrics", "file", cfg.Lyrics, "lines", len(lyrics.Lines))

	line := &lyricLine{Index: lyrics.LineAt(info.Position, info.Duration)}
	if line.Index >= 0 {
		line.Text = lyrics.Lines[line.Index].Text
	}
	r.Line = line

	return r, nil
}

func writeReport(w io.Writer, r report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return enc.Close()
}
