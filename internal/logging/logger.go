// Package logging is a thin zerolog wrapper shared by every adkit subsystem.
// Log lines go to stderr so stdout stays clean for responses and URLs.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Console styles accepted by NewWithStyle.
const (
	StylePretty = "pretty"
	StyleJSON   = "json"
)

// Logger scopes a zerolog.Logger to a subsystem.
type Logger struct {
	zl zerolog.Logger
}

// New creates a root logger at the given level. A nil writer means pretty
// output on stderr; any other writer receives JSON lines.
func New(w io.Writer, level string) *Logger {
	style := StylePretty
	if w != nil {
		style = StyleJSON
	}
	return NewWithStyle(w, level, style)
}

// NewWithStyle is New with an explicit console style. Anything but the json
// style renders through zerolog.ConsoleWriter, colored only on a terminal.
// A nil writer means stderr.
func NewWithStyle(w io.Writer, level, style string) *Logger {
	if w == nil {
		w = os.Stderr
	}
	if style != StyleJSON {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: !isTerminal(w)}
	}
	zl := zerolog.New(w).With().Timestamp().Logger().Level(parseLevel(level))
	return &Logger{zl: zl}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

// Sub returns a child logger tagged with subsystem.
func (l *Logger) Sub(subsystem string) *Logger {
	return &Logger{zl: l.zl.With().Str("subsystem", subsystem).Logger()}
}

func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }

// ValidLevels lists the level names understood by New.
var ValidLevels = []string{"silent", "fatal", "error", "warn", "info", "debug", "trace"}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "silent":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}
