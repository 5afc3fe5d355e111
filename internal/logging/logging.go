// Package logging builds the diagnostic logger shared by all commands.
package logging

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// New returns a console logger writing to w at the named level
// (trace, debug, info, warn, error, disabled). An empty level means warn.
func New(level string, w io.Writer, color bool) (zerolog.Logger, error) {
	if level == "" {
		level = "warn"
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}

	out := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.TimeOnly,
		NoColor:    !color,
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}
