package diagnostics

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/timu-lang/timu/internal/source"
)

const (
	colorReset  = "\x1b[0m"
	colorRed    = "\x1b[31m"
	colorYellow = "\x1b[33m"
	colorCyan   = "\x1b[36m"
	colorBold   = "\x1b[1m"
)

// Renderer writes diagnostics as human-readable text, colorizing
// output only when it detects a real terminal on the other end.
type Renderer struct {
	Sources *source.Map
	Color   bool
}

// NewRenderer builds a Renderer whose Color default follows w: a
// *os.File is colorized only when isatty reports it as a terminal,
// matching how a piped `timuc` invocation loses color automatically.
func NewRenderer(sources *source.Map, w io.Writer) *Renderer {
	color := false
	if f, ok := w.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Renderer{Sources: sources, Color: color}
}

func (r *Renderer) paint(code, text string) string {
	if !r.Color {
		return text
	}
	return code + text + colorReset
}

// Render writes a single diagnostic, including its labels, help text
// and nested sub-diagnostics, to w.
func (r *Renderer) Render(w io.Writer, d *Diagnostic) {
	path, line, col := r.Sources.Position(d.Primary)
	header := fmt.Sprintf("%s [%s]", d.Message, d.Code)
	fmt.Fprintf(w, "%s: %s\n", r.paint(colorRed+colorBold, "error"), header)
	fmt.Fprintf(w, "  --> %s:%d:%d\n", path, line, col)
	if snippet := r.snippet(d.Primary); snippet != "" {
		fmt.Fprintf(w, "      %s\n", snippet)
	}
	for _, l := range d.Labels {
		lp, ll, lc := r.Sources.Position(l.Span)
		fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", r.paint(colorCyan, "note:"), lp, ll, lc, l.Message)
	}
	if d.Help != "" {
		fmt.Fprintf(w, "  %s %s\n", r.paint(colorYellow, "help:"), d.Help)
	}
	for _, n := range d.Nested {
		for _, line := range strings.Split(indent(renderToString(r, n)), "\n") {
			fmt.Fprintln(w, line)
		}
	}
}

func (r *Renderer) snippet(span source.Span) string {
	f := r.Sources.File(span.File)
	if f == nil {
		return ""
	}
	return f.Snippet(span.Start)
}

// RenderCollection writes every item in a Collection, separated by a
// blank line.
func (r *Renderer) RenderCollection(w io.Writer, c *Collection) {
	for i, d := range c.Items {
		if i > 0 {
			fmt.Fprintln(w)
		}
		r.Render(w, d)
	}
}

func renderToString(r *Renderer, d *Diagnostic) string {
	var b strings.Builder
	r.Render(&b, d)
	return b.String()
}

func indent(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = "  " + l
	}
	return strings.Join(lines, "\n")
}
