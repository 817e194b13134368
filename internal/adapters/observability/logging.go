package observability

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger returns a zerolog Logger writing to stdout.
// dev switches to a human-friendly console writer.
// An unknown level falls back to info.
func NewLogger(dev bool, level string) zerolog.Logger {
	return newLogger(os.Stdout, dev, level)
}

func newLogger(w io.Writer, dev bool, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	if dev {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Str("svc", "triply").Logger()
}
