// Package diagnostics renders semantic errors and warnings as source-aware,
// human-readable text: a header, the offending source line, a caret, and
// the message, with optional ANSI color. It has no opinion on how or
// whether those diagnostics are fatal — that's for the caller to decide.
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/lumenlang/lumen/internal/semantic"
)

const (
	ansiBold  = "\033[1m"
	ansiDim   = "\033[2m"
	ansiRed   = "\033[1;31m"
	ansiYellow = "\033[1;33m"
	ansiReset = "\033[0m"
)

// Diagnostic is the minimal shape both *semantic.Error and *semantic.Warning
// satisfy for rendering purposes.
type Diagnostic struct {
	Message string
	Line    int
	Column  int
	Level   string // "error" or "warning"
}

// FromError adapts a semantic.Error.
func FromError(e *semantic.Error) Diagnostic {
	return Diagnostic{Message: e.Message(), Line: e.Loc.Line, Column: e.Loc.Column, Level: "error"}
}

// FromWarning adapts a semantic.Warning.
func FromWarning(w *semantic.Warning) Diagnostic {
	return Diagnostic{Message: w.Message(), Line: w.Loc.Line, Column: w.Loc.Column, Level: "warning"}
}

// Format renders a single diagnostic against its source file, with a
// caret under the offending column. If color is true, ANSI codes are used.
func Format(d Diagnostic, source, file string, color bool) string {
	var sb strings.Builder

	label := "Error"
	accent := ansiRed
	if d.Level == "warning" {
		label = "Warning"
		accent = ansiYellow
	}

	if file != "" {
		sb.WriteString(fmt.Sprintf("%s in %s:%d:%d\n", label, file, d.Line, d.Column))
	} else {
		sb.WriteString(fmt.Sprintf("%s at %d:%d\n", label, d.Line, d.Column))
	}

	if line := sourceLine(source, d.Line); line != "" {
		lineNumStr := fmt.Sprintf("%4d | ", d.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+max(d.Column-1, 0)))
		if color {
			sb.WriteString(accent)
		}
		sb.WriteString("^")
		if color {
			sb.WriteString(ansiReset)
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString(ansiBold)
	}
	sb.WriteString(d.Message)
	if color {
		sb.WriteString(ansiReset)
	}
	return sb.String()
}

// FormatAll renders a batch of diagnostics, each separated by a blank line,
// with a summary header when there is more than one.
func FormatAll(ds []Diagnostic, source, file string, color bool) string {
	if len(ds) == 0 {
		return ""
	}
	if len(ds) == 1 {
		return Format(ds[0], source, file, color)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d diagnostic(s):\n\n", len(ds)))
	for i, d := range ds {
		sb.WriteString(fmt.Sprintf("[%d of %d]\n", i+1, len(ds)))
		sb.WriteString(Format(d, source, file, color))
		if i < len(ds)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

func sourceLine(source string, line int) string {
	if source == "" || line < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return ""
	}
	return lines[line-1]
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
