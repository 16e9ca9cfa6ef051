// Package log is the server's logging facade. Everything goes to stderr:
// stdout carries the stdio MCP transport and must stay clean.
package log

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

var logger = newLogger(os.Stderr)

var verbose bool

func newLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		With().
		Timestamp().
		Logger()
}

// SetOutput redirects log output, mainly for tests.
func SetOutput(w io.Writer) {
	logger = newLogger(w)
}

// SetVerbose enables debug-level output.
func SetVerbose(v bool) {
	verbose = v
}

func Log(args ...any) {
	logger.Info().Msg(fmt.Sprint(args...))
}

func Logf(format string, args ...any) {
	logger.Info().Msgf(format, args...)
}

func Debugf(format string, args ...any) {
	if verbose {
		logger.Debug().Msgf(format, args...)
	}
}

func Errorf(format string, args ...any) {
	logger.Error().Msgf(format, args...)
}
