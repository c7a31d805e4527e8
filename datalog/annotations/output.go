package annotations

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// OutputFormatter renders evaluation events as the human-readable
// "-verbose" trace: colorized when writing to a terminal, plain otherwise.
type OutputFormatter struct {
	useColor bool
	writer   io.Writer
}

// NewOutputFormatter returns a formatter writing to w (os.Stdout if nil),
// auto-detecting whether w supports color.
func NewOutputFormatter(w io.Writer) *OutputFormatter {
	if w == nil {
		w = os.Stdout
	}
	useColor := false
	if f, ok := w.(*os.File); ok {
		useColor = isTerminal(f.Fd())
	}
	return &OutputFormatter{useColor: useColor, writer: w}
}

// Handle implements Handler, printing each event's formatted line.
func (f *OutputFormatter) Handle(event Event) {
	if line := f.Format(event); line != "" {
		fmt.Fprintln(f.writer, line)
	}
}

// Format converts an event to a single display line.
func (f *OutputFormatter) Format(event Event) string {
	switch event.Name {
	case SCCBegin:
		rules := event.Data["rules"].([]string)
		recursive := event.Data["recursive"].(bool)
		kind := "non-recursive"
		if recursive {
			kind = "recursive"
		}
		return fmt.Sprintf("%s SCC: %s (%s)", f.colorize("===", color.FgYellow), joinCommas(rules), kind)

	case SCCComplete:
		passes := event.Data["passes"].(int)
		return fmt.Sprintf("%s populated after %s", f.colorize("===", color.FgYellow), f.colorizeCount("pass", passes))

	case RuleEvaluated:
		rule := event.Data["rule"].(string)
		added := event.Data["added"].(int)
		return fmt.Sprintf("  %s -> %s", rule, f.colorizeCount("new tuple", added))

	case QueryInvoked:
		return fmt.Sprintf("%s %s", f.colorize(">", color.FgCyan), event.Data["query"])

	case QueryComplete:
		answered := event.Data["answered"].(bool)
		mark := f.colorize("No", color.FgRed)
		if answered {
			mark = f.colorize(fmt.Sprintf("Yes(%d)", event.Data["count"].(int)), color.FgGreen)
		}
		return fmt.Sprintf("  %s", mark)

	default:
		return fmt.Sprintf("%s %v", event.Name, event.Data)
	}
}

// colorizeCount formats "<n> <label>", pluralizing label when n != 1.
func (f *OutputFormatter) colorizeCount(label string, n int) string {
	if n != 1 {
		label += "s"
	}
	text := fmt.Sprintf("%d %s", n, label)
	if !f.useColor {
		return text
	}
	return color.CyanString(text)
}

// colorize applies color if enabled, returning text unchanged otherwise.
func (f *OutputFormatter) colorize(text string, attrs ...color.Attribute) string {
	if !f.useColor {
		return text
	}
	return color.New(attrs...).Sprint(text)
}

func joinCommas(items []string) string {
	out := ""
	for i, s := range items {
		if i > 0 {
			out += ","
		}
		out += s
	}
	return out
}

// ConsoleHandler returns a Handler that prints formatted events to stdout.
func ConsoleHandler() Handler {
	formatter := NewOutputFormatter(os.Stdout)
	return formatter.Handle
}

// isTerminal reports whether fd is stdout or stderr. A simplified check:
// a real implementation would use golang.org/x/term.
func isTerminal(fd uintptr) bool {
	return fd == uintptr(1) || fd == uintptr(2)
}
