// Package logging configures the module's structured logger. Output goes
// to stderr by default so command output (tables, file paths) stays clean
// on stdout.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// ParseLevel maps a config string to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("logging: unknown level %q", s)
}

// New builds a text-format logger writing to w at the given level.
func New(level slog.Level, w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Default returns an info-level logger on stderr and installs it as the
// process default, so library code logging via slog agrees with ours.
func Default() *slog.Logger {
	l := New(slog.LevelInfo, os.Stderr)
	slog.SetDefault(l)
	return l
}
