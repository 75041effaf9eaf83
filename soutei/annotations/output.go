package annotations

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
)

// OutputFormatter formats events for human-readable display.
type OutputFormatter struct {
	useColor bool
	writer   io.Writer
}

// NewOutputFormatter creates a formatter with color support detection.
func NewOutputFormatter(w io.Writer) *OutputFormatter {
	if w == nil {
		w = os.Stdout
	}

	// Auto-detect color support
	useColor := false
	if f, ok := w.(*os.File); ok {
		useColor = isTerminal(f.Fd())
	}

	return &OutputFormatter{
		useColor: useColor,
		writer:   w,
	}
}

// Handle has the Handler signature - prints events as they occur
func (f *OutputFormatter) Handle(event Event) {
	output := f.Format(event)
	if output != "" {
		fmt.Fprintln(f.writer, output)
	}
}

// Format converts an event to a human-readable string.
func (f *OutputFormatter) Format(event Event) string {
	switch event.Name {
	case RunInvoked:
		return fmt.Sprintf("%s Query: %v  (run %v, steps<=%v, answers<=%v)",
			f.colorize("===", color.FgYellow),
			event.Data["query"],
			event.Data["run.id"],
			event.Data["step.limit"],
			event.Data["answer.limit"])

	case RunCompleted:
		return fmt.Sprintf("%s %s Run done: %v answers in %v steps, stopped by %v.",
			f.formatLatency(event.Latency),
			f.colorize("===", color.FgGreen),
			event.Data["answer.count"],
			event.Data["step.count"],
			event.Data["termination"])

	case ResolveDispatch:
		return fmt.Sprintf("  %s %v", f.colorize("->", color.FgCyan), event.Data["goal"])

	case ResolveMissingAssertion:
		return fmt.Sprintf("  %s no assertion %v", f.colorize("x", color.FgRed), event.Data["assertion"])

	case ResolveMissingPredicate:
		return fmt.Sprintf("  %s no predicate %v in %v",
			f.colorize("x", color.FgRed), event.Data["predicate"], event.Data["assertion"])

	case ResolveUngroundAssertion:
		return fmt.Sprintf("  %s unground assertion reference in %v",
			f.colorize("x", color.FgRed), event.Data["goal"])

	case AnswerEmitted:
		return fmt.Sprintf("  %s %v", f.colorize("<=", color.FgGreen), event.Data["answer"])

	case NativeInvoked:
		return fmt.Sprintf("  %s %v", f.colorize("~>", color.FgMagenta), event.Data["call"])

	case NativeDecodeFailed:
		return fmt.Sprintf("  %s %v: argument %v has wrong type",
			f.colorize("x", color.FgRed), event.Data["predicate"], event.Data["arg"])

	case NativeCallFailed:
		return fmt.Sprintf("  %s %v: %v",
			f.colorize("x", color.FgRed), event.Data["predicate"], event.Data["error"])
	}

	return ""
}

// formatLatency renders a latency aligned for scanning.
func (f *OutputFormatter) formatLatency(d time.Duration) string {
	if d == 0 {
		return "        "
	}
	return fmt.Sprintf("%7.3fms", float64(d.Microseconds())/1000.0)
}

func (f *OutputFormatter) colorize(s string, attr color.Attribute) string {
	if !f.useColor {
		return s
	}
	return color.New(attr).Sprint(s)
}

// isTerminal checks if the file descriptor is a terminal.
// This is a simplified version - in production you'd use a proper terminal detection library.
func isTerminal(fd uintptr) bool {
	return fd == uintptr(1) || fd == uintptr(2) // stdout or stderr
}
