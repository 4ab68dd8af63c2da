// Package logging builds the *slog.Logger used by the gw2oas commands.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/erraggy/gw2oas/internal/fileutil"
	slogmulti "github.com/samber/slog-multi"
)

// Config selects where records go.
type Config struct {
	// Level is the minimum level of every handler.
	Level slog.Level
	// Stderr receives human-readable text records. Defaults to os.Stderr.
	Stderr io.Writer
	// File, when set, also receives every record as JSON, appended.
	File string
}

// New returns a logger fanning out to stderr and, when configured, a JSON
// log file. The returned close function releases the file and is never nil.
func New(c Config) (*slog.Logger, func() error, error) {
	stderr := c.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	handlers := []slog.Handler{
		slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: c.Level}),
	}

	closeFn := func() error { return nil }
	if c.File != "" {
		f, err := fileutil.OpenAppend(c.File)
		if err != nil {
			return nil, closeFn, fmt.Errorf("logging: opening log file: %w", err)
		}
		closeFn = f.Close
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{
			Level:     c.Level,
			AddSource: true,
		}))
	}

	return slog.New(slogmulti.Fanout(handlers...)), closeFn, nil
}

// Init is New followed by slog.SetDefault.
func Init(c Config) (func() error, error) {
	logger, closeFn, err := New(c)
	if err != nil {
		return closeFn, err
	}
	slog.SetDefault(logger)
	return closeFn, nil
}
