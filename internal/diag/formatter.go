package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Formatter formats diagnostics in a Rust-style format with source code snippets.
type Formatter struct {
	w       io.Writer
	sources map[string]string

	severity *color.Color
	gutter   *color.Color
	caret    *color.Color
}

// NewFormatter creates a formatter writing to w. When useColor is false all
// output is plain text.
func NewFormatter(w io.Writer, useColor bool) *Formatter {
	f := &Formatter{
		w:        w,
		sources:  make(map[string]string),
		severity: color.New(color.FgRed, color.Bold),
		gutter:   color.New(color.FgBlue, color.Bold),
		caret:    color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{f.severity, f.gutter, f.caret} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return f
}

// AddSource registers the text of a source so snippets can be printed for
// diagnostics attributed to filename.
func (f *Formatter) AddSource(filename, src string) {
	f.sources[filename] = src
}

// Format writes d, including a source snippet when the source is known.
func (f *Formatter) Format(d Diagnostic) {
	f.printHeader(d)

	src, ok := f.sources[d.Span.Filename]
	if d.Span.IsValid() && ok {
		f.printSnippet(src, d.Span)
	} else if d.Span.IsValid() {
		fmt.Fprintf(f.w, "  --> %s\n", d.Span)
	}

	f.printHelp(d)
}

// FormatAll formats each diagnostic in order.
func (f *Formatter) FormatAll(ds []Diagnostic) {
	for _, d := range ds {
		f.Format(d)
	}
}

// printHeader prints the error header (error[CODE]: message).
func (f *Formatter) printHeader(d Diagnostic) {
	severity := string(d.Severity)
	if severity == "" {
		severity = string(SeverityError)
	}

	if d.Code != "" {
		fmt.Fprintf(f.w, "%s: %s\n", f.severity.Sprintf("%s[%s]", severity, d.Code), d.Message)
	} else {
		fmt.Fprintf(f.w, "%s: %s\n", f.severity.Sprint(severity), d.Message)
	}
}

func (f *Formatter) printSnippet(src string, span Span) {
	lines := strings.Split(src, "\n")
	if span.StartRow < 0 || span.StartRow >= len(lines) {
		fmt.Fprintf(f.w, "  --> %s\n", span)
		return
	}
	line := strings.TrimRight(lines[span.StartRow], "\r")

	lineNum := fmt.Sprintf("%d", span.StartRow+1)
	pad := strings.Repeat(" ", len(lineNum))

	fmt.Fprintf(f.w, "%s %s\n", f.gutter.Sprint(pad+"-->"), span)
	fmt.Fprintf(f.w, "%s\n", f.gutter.Sprint(pad+" |"))
	fmt.Fprintf(f.w, "%s %s\n", f.gutter.Sprint(lineNum+" |"), line)
	fmt.Fprintf(f.w, "%s %s\n", f.gutter.Sprint(pad+" |"), f.caret.Sprint(underline(line, span)))
}

// underline builds the caret line for span on line. Columns count runes, so
// the caret lines up under multi-byte characters such as λ.
func underline(line string, span Span) string {
	width := len([]rune(line))
	start := min(max(span.StartCol, 0), width)
	end := span.EndCol
	if span.EndRow != span.StartRow {
		end = width - 1
	}
	end = max(end, start)
	return strings.Repeat(" ", start) + strings.Repeat("^", end-start+1)
}

// printHelp prints notes and help text.
func (f *Formatter) printHelp(d Diagnostic) {
	for _, note := range d.Notes {
		fmt.Fprintf(f.w, "  = note: %s\n", note)
	}
	if d.Help != "" {
		fmt.Fprintf(f.w, "help: %s\n", d.Help)
	}
}
