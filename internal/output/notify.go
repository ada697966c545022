// Package output implements the leveled notifier that every other
// component reports through. Nothing in here terminates the process:
// fatal conditions are returned as *FatalError values and the CLI
// decides what to do with them.
package output

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Severity classifies a notification. The zero value is Info.
type Severity struct {
	label string
}

var (
	// Info is prefixed with "~".
	Info = Severity{}
	// Warning is prefixed with "[WARNING]".
	Warning = Severity{label: "WARNING"}
	// Fatal is prefixed with "[FATAL]" and always carries exit code 23.
	Fatal = Severity{label: "FATAL"}
)

// Custom returns a severity with an arbitrary bracketed label.
func Custom(label string) Severity {
	return Severity{label: strings.ToUpper(label)}
}

// Prefix returns the printable prefix for the severity.
func (s Severity) Prefix() string {
	if s.label == "" {
		return "~"
	}
	return "[" + s.label + "]"
}

// Record is the data a notification carried, for callers that want the
// values independent of the printing side effect.
type Record struct {
	Message string
	Extra   any
	Verbose bool
}

var (
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	fatalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Notifier formats and emits leveled messages.
type Notifier struct {
	w      io.Writer
	color  bool
	quiet  bool
	logger *slog.Logger
}

// New returns a notifier writing to stdout, colored when stdout is a
// terminal.
func New() *Notifier {
	return &Notifier{
		w:     os.Stdout,
		color: isatty.IsTerminal(os.Stdout.Fd()),
	}
}

// NewWriter returns an uncolored notifier writing to w. Used by tests
// and by anything that captures output.
func NewWriter(w io.Writer) *Notifier {
	return &Notifier{w: w}
}

// Notify renders the message with its severity prefix and optional
// extra payload. It is written to the notifier's writer when verbose
// is true or the severity is Fatal; it is always mirrored to the log
// file when one is configured. The returned Record carries the inputs
// untouched.
func (n *Notifier) Notify(msg string, sev Severity, extra any, verbose bool) Record {
	line := n.paint(sev) + " " + msg
	if extra != nil {
		line += "\n\t" + strings.ReplaceAll(renderExtra(extra), "\n", "\n\t")
	}
	if sev == Fatal || (verbose && !(n.quiet && sev == Info)) {
		fmt.Fprintln(n.w, line)
	}
	if n.logger != nil {
		n.logger.Log(context.Background(), sev.level(), msg, "extra", fmt.Sprintf("%v", extra))
	}
	return Record{Message: msg, Extra: extra, Verbose: verbose}
}

// SetQuiet suppresses informational messages. Warnings and fatal
// notifications always print.
func (n *Notifier) SetQuiet(quiet bool) {
	n.quiet = quiet
}

// Fatalf emits a Fatal notification and returns the FatalError the
// caller should propagate up to the CLI.
func (n *Notifier) Fatalf(extra any, format string, args ...any) *FatalError {
	msg := fmt.Sprintf(format, args...)
	n.Notify(msg, Fatal, extra, true)
	return &FatalError{Message: msg, Extra: extra, Code: FatalExitCode}
}

func (n *Notifier) paint(sev Severity) string {
	p := sev.Prefix()
	if !n.color {
		return p
	}
	switch sev {
	case Warning:
		return warnStyle.Render(p)
	case Fatal:
		return fatalStyle.Render(p)
	case Info:
		return infoStyle.Render(p)
	default:
		return p
	}
}

func (s Severity) level() slog.Level {
	switch s {
	case Warning:
		return slog.LevelWarn
	case Fatal:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// renderExtra pretty-prints the payload attached to a notification.
func renderExtra(extra any) string {
	if s, ok := extra.(string); ok {
		return s
	}
	if b, err := json.MarshalIndent(extra, "", "  "); err == nil {
		return string(b)
	}
	return fmt.Sprintf("%+v", extra)
}
