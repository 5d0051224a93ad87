package mcp

import (
	"fmt"
	"strings"

	"github.com/Dheerajdoppalapudi/design-generator-sub000/internal/generator"
	"github.com/Dheerajdoppalapudi/design-generator-sub000/internal/wireframe"
)

// FormatResult renders a pipeline result as Markdown: a summary, the
// validation report, then the document in a fenced block.
func FormatResult(res *generator.Result, format wireframe.Format) (string, error) {
	if res == nil || res.Wireframe == nil {
		return "No wireframe was produced.", nil
	}

	var sb strings.Builder
	doc := res.Wireframe

	name := "(unnamed app)"
	if doc.App != nil && doc.App.Name != "" {
		name = doc.App.Name
	}
	fmt.Fprintf(&sb, "## Wireframe: %s\n\n", name)
	fmt.Fprintf(&sb, "- Screens: %d\n", len(doc.Screens))
	for _, s := range doc.Screens {
		marker := ""
		if s.IsStartPoint {
			marker = " (start)"
		}
		fmt.Fprintf(&sb, "  - `%s` %s: %d components%s\n", s.Name, s.Title, len(s.Components), marker)
	}
	if res.Metadata.Repaired {
		sb.WriteString("- The model reply needed JSON repair\n")
	}
	sb.WriteString("\n")

	sb.WriteString(FormatReport(res.Validation))
	sb.WriteString("\n")

	body, err := wireframe.Marshal(doc, format)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}
	fence := "json"
	if format == wireframe.FormatYAML {
		fence = "yaml"
	}
	fmt.Fprintf(&sb, "```%s\n%s```\n", fence, ensureNewline(string(body)))
	return sb.String(), nil
}

// FormatReport renders a validation report as Markdown lists.
func FormatReport(rep wireframe.ValidationReport) string {
	var sb strings.Builder
	if rep.IsValid {
		sb.WriteString("## Validation: passed\n")
	} else {
		sb.WriteString("## Validation: failed\n")
	}
	if len(rep.Errors) > 0 {
		sb.WriteString("\n**Errors**\n")
		for _, e := range rep.Errors {
			sb.WriteString("- " + e + "\n")
		}
	}
	if len(rep.Warnings) > 0 {
		sb.WriteString("\n**Warnings**\n")
		for _, w := range rep.Warnings {
			sb.WriteString("- " + w + "\n")
		}
	}
	return sb.String()
}

// FormatPages renders a workflow as a numbered Markdown list.
func FormatPages(res *generator.PagesResult) string {
	if res == nil || len(res.Workflow) == 0 {
		return "No screens were produced."
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "## Workflow (%d screens)\n\n", len(res.Workflow))
	for _, s := range res.Workflow {
		fmt.Fprintf(&sb, "%d. **%s** (`%s`)", s.Position, s.Title, s.ID)
		if s.Description != "" {
			sb.WriteString(": " + s.Description)
		}
		if len(s.NextScreens) > 0 {
			sb.WriteString(" → " + strings.Join(s.NextScreens, ", "))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatError returns a standardized Markdown error message.
func FormatError(message string) string {
	return fmt.Sprintf("## Error\n\n**Details**: %s", message)
}

// FormatValidationError returns a Markdown error for bad tool arguments.
func FormatValidationError(field, message string) string {
	return fmt.Sprintf("## Invalid Arguments\n\n**Field**: `%s`\n**Details**: %s", field, message)
}

func ensureNewline(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
