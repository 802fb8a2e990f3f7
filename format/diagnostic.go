package format

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dhamidi/diary/parser"
)

type diagnosticStyles struct {
	location lipgloss.Style
	kind     lipgloss.Style
	gutter   lipgloss.Style
	caret    lipgloss.Style
	context  lipgloss.Style
}

func newDiagnosticStyles(w io.Writer) diagnosticStyles {
	r := lipgloss.NewRenderer(w)
	return diagnosticStyles{
		location: r.NewStyle().Bold(true),
		kind:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("#EF4444")),
		gutter:   r.NewStyle().Foreground(lipgloss.Color("#6B7280")),
		caret:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("#F59E0B")),
		context:  r.NewStyle().Foreground(lipgloss.Color("#94A3B8")),
	}
}

// WriteDiagnostic describes err for a person reading source. Parse errors
// get the offending line with a caret under the failing column; other
// errors are written as they are. Colour is used only when w is a terminal.
func WriteDiagnostic(w io.Writer, err error, source string) error {
	var perr *parser.Error
	if !errors.As(err, &perr) {
		_, werr := fmt.Fprintln(w, err)
		return werr
	}
	st := newDiagnosticStyles(w)

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s\n",
		st.location.Render(perr.Position.String()+":"),
		st.kind.Render(perr.Kind.String()+" error"))
	fmt.Fprintf(&sb, "  expected %s", perr.Expected)
	if perr.Detail != "" {
		fmt.Fprintf(&sb, ": %s", perr.Detail)
	}
	sb.WriteByte('\n')

	writeSourceLine(&sb, st, source, perr.Position)
	if len(perr.Context) > 0 {
		fmt.Fprintf(&sb, "  %s\n", st.context.Render("in "+strings.Join(perr.Context, " < ")))
	}
	if note := perr.Note; note != nil {
		fmt.Fprintf(&sb, "  %s %s: expected %s", st.context.Render("note:"), note.Position, note.Expected)
		if note.Detail != "" {
			fmt.Fprintf(&sb, ": %s", note.Detail)
		}
		sb.WriteByte('\n')
		writeSourceLine(&sb, st, source, note.Position)
	}
	_, werr := io.WriteString(w, sb.String())
	return werr
}

// writeSourceLine shows the line of pos with a caret under its column.
func writeSourceLine(sb *strings.Builder, st diagnosticStyles, source string, pos parser.Position) {
	line, ok := sourceLine(source, pos.Line)
	if !ok {
		return
	}
	number := fmt.Sprint(pos.Line)
	pad := strings.Repeat(" ", len(number))
	fmt.Fprintf(sb, "  %s %s\n", st.gutter.Render(number+" |"), line)
	fmt.Fprintf(sb, "  %s %s%s\n", st.gutter.Render(pad+" |"), caretPadding(line, pos.Column), st.caret.Render("^"))
}

func sourceLine(source string, n int) (string, bool) {
	if n < 1 {
		return "", false
	}
	lines := strings.Split(source, "\n")
	if n > len(lines) {
		return "", false
	}
	return strings.TrimRight(lines[n-1], "\r"), true
}

// caretPadding keeps tabs so the caret lines up with the source.
func caretPadding(line string, column int) string {
	var sb strings.Builder
	i := 1
	for _, r := range line {
		if i >= column {
			break
		}
		if r == '\t' {
			sb.WriteByte('\t')
		} else {
			sb.WriteByte(' ')
		}
		i++
	}
	for ; i < column; i++ {
		sb.WriteByte(' ')
	}
	return sb.String()
}
