// Package ui renders pipeline results for the terminal.
package ui

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/Dheerajdoppalapudi/design-generator-sub000/internal/generator"
	"github.com/Dheerajdoppalapudi/design-generator-sub000/internal/wireframe"
)

// ColorEnabled reports whether w is a terminal and NO_COLOR is unset.
func ColorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

// Renderer formats results as human-readable text.
type Renderer struct {
	color bool
}

// NewRenderer returns a renderer that uses colour only when w is a terminal.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{color: ColorEnabled(w)}
}

// NewPlainRenderer returns a renderer that never emits ANSI codes.
func NewPlainRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) paint(style lipgloss.Style, s string) string {
	if !r.color {
		return s
	}
	return style.Render(s)
}

// Report renders a validation report: a status line followed by errors
// and warnings, one per line.
func (r *Renderer) Report(rep wireframe.ValidationReport) string {
	var sb strings.Builder

	counts := fmt.Sprintf("%s, %s", plural(len(rep.Errors), "error"), plural(len(rep.Warnings), "warning"))
	if rep.IsValid {
		sb.WriteString(r.paint(StylePrefixDone, "✓ valid") + r.paint(StyleSubtle, " ("+counts+")") + "\n")
	} else {
		sb.WriteString(r.paint(StylePrefixError, "✗ invalid") + r.paint(StyleSubtle, " ("+counts+")") + "\n")
	}

	for _, e := range rep.Errors {
		sb.WriteString("  " + r.paint(StylePrefixError, "✗") + " " + e + "\n")
	}
	for _, w := range rep.Warnings {
		sb.WriteString("  " + r.paint(StylePrefixWarn, "!") + " " + w + "\n")
	}
	return sb.String()
}

// Document renders the app header, palette and a table of screens.
func (r *Renderer) Document(doc *wireframe.Document) string {
	if doc == nil {
		return ""
	}
	var sb strings.Builder

	if doc.App != nil {
		sb.WriteString(r.paint(StyleTitle, doc.App.Name))
		if doc.App.Nav != nil && doc.App.Nav.Type != "" {
			sb.WriteString(r.paint(StyleSubtle, "  nav: "+doc.App.Nav.Type))
		}
		sb.WriteString("\n")

		var swatches []string
		for _, c := range doc.App.Theme.Palette() {
			mark := c.Value
			if r.color {
				mark = Swatch(c.Value) + " " + c.Value
			}
			swatches = append(swatches, c.Name+"="+mark)
		}
		sb.WriteString(r.paint(StyleSubtle, "palette: ") + strings.Join(swatches, " ") + "\n\n")
	}

	t := &Table{
		Headers:  []string{"Screen", "Title", "Components", "Start", "Next"},
		MaxWidth: 32,
	}
	for _, s := range doc.Screens {
		start := ""
		if s.IsStartPoint {
			start = "yes"
		}
		t.Rows = append(t.Rows, []string{
			s.Name,
			s.Title,
			strconv.Itoa(len(s.Components)),
			start,
			strings.Join(s.NextScreens, ", "),
		})
	}
	sb.WriteString(t.Render(r.paint))
	return sb.String()
}

// Result renders a generated document followed by its report.
func (r *Renderer) Result(res *generator.Result) string {
	if res == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(r.Document(res.Wireframe))
	sb.WriteString("\n")
	sb.WriteString(r.Report(res.Validation))
	meta := fmt.Sprintf("request %s · %s", res.Metadata.RequestID, res.Metadata.Duration.Round(time.Millisecond))
	if res.Metadata.Repaired {
		meta += " · repaired"
	}
	sb.WriteString(r.paint(StyleSubtle, meta) + "\n")
	return sb.String()
}

// Workflow renders the screens of a pages result in position order.
func (r *Renderer) Workflow(screens []generator.WorkflowScreen) string {
	t := &Table{
		Headers:  []string{"#", "ID", "Title", "Next"},
		MaxWidth: 40,
	}
	for _, s := range screens {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(s.Position),
			s.ID,
			s.Title,
			strings.Join(s.NextScreens, ", "),
		})
	}
	return r.paint(StyleSectionTitle, "Workflow") + "\n" + t.Render(r.paint)
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return strconv.Itoa(n) + " " + word + "s"
}
