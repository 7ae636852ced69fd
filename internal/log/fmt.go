package log

import (
	"fmt"
	"strings"
)

// Format renders args against the fmt-style placeholders in format. Surplus
// arguments are appended space-separated, and a trailing error argument is
// appended as " - <message>".
func Format(format string, args ...any) string {
	var trailingErr error
	if n := len(args); n > 0 {
		if e, ok := args[n-1].(error); ok {
			trailingErr = e
			args = args[:n-1]
		}
	}

	verbs := strings.Count(format, "%") - 2*strings.Count(format, "%%")
	var builder strings.Builder
	switch {
	case verbs <= 0:
		builder.WriteString(format)
		writeJoined(&builder, args)
	case verbs >= len(args):
		builder.WriteString(fmt.Sprintf(format, args...))
	default:
		builder.WriteString(fmt.Sprintf(format, args[:verbs]...))
		writeJoined(&builder, args[verbs:])
	}

	if trailingErr != nil {
		builder.WriteString(" - ")
		builder.WriteString(trailingErr.Error())
	}
	return builder.String()
}

// FormatArgs treats the first argument as the format string when more follow.
func FormatArgs(args ...any) string {
	switch len(args) {
	case 0:
		return ""
	case 1:
		return fmt.Sprint(args[0])
	default:
		return Format(fmt.Sprint(args[0]), args[1:]...)
	}
}

func writeJoined(builder *strings.Builder, args []any) {
	for _, arg := range args {
		if builder.Len() > 0 {
			builder.WriteByte(' ')
		}
		builder.WriteString(fmt.Sprint(arg))
	}
}
