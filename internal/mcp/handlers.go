package mcp

import (
	"context"
	"errors"
	"strings"

	"github.com/Dheerajdoppalapudi/design-generator-sub000/internal/generator"
	"github.com/Dheerajdoppalapudi/design-generator-sub000/internal/wireframe"
)

// Pipeline is the part of *generator.Generator the tools need.
type Pipeline interface {
	GenerateWireframe(ctx context.Context, req generator.WireframeRequest) (*generator.Result, error)
	GeneratePages(ctx context.Context, description string) (*generator.PagesResult, error)
	ProcessReply(raw, description string) (*generator.Result, error)
}

// HandleGenerateWireframe runs one wireframe generation. Invalid documents
// are returned as content with their report; only fatal pipeline errors set
// ToolResult.Error.
func HandleGenerateWireframe(ctx context.Context, p Pipeline, params GenerateWireframeParams) (*ToolResult, error) {
	out := &ToolResult{Tool: ToolGenerateWireframe}

	if strings.TrimSpace(params.Description) == "" {
		out.Error = FormatValidationError("description", "description is required")
		return out, nil
	}
	format, err := wireframe.ParseFormat(params.Format)
	if err != nil {
		out.Error = FormatValidationError("format", err.Error())
		return out, nil
	}
	if idx := params.TargetScreenIndex; idx != nil && (*idx < 0 || *idx >= len(params.Workflow)) {
		out.Error = FormatValidationError("targetScreenIndex", "must index into workflow")
		return out, nil
	}

	res, err := p.GenerateWireframe(ctx, params.Request())
	if err != nil {
		out.Error = FormatError(describe(err))
		return out, nil
	}
	content, err := FormatResult(res, format)
	if err != nil {
		return nil, err
	}
	out.Content = content
	return out, nil
}

// HandleGeneratePages asks for the workflow screen list.
func HandleGeneratePages(ctx context.Context, p Pipeline, params GeneratePagesParams) (*ToolResult, error) {
	out := &ToolResult{Tool: ToolGeneratePages}

	if strings.TrimSpace(params.Description) == "" {
		out.Error = FormatValidationError("description", "description is required")
		return out, nil
	}
	res, err := p.GeneratePages(ctx, params.Description)
	if err != nil {
		out.Error = FormatError(describe(err))
		return out, nil
	}
	out.Content = FormatPages(res)
	return out, nil
}

// HandleValidateWireframe runs extraction, repair, defaults and validation
// on a supplied document without calling the backend.
func HandleValidateWireframe(_ context.Context, p Pipeline, params ValidateWireframeParams) (*ToolResult, error) {
	out := &ToolResult{Tool: ToolValidateWireframe}

	if strings.TrimSpace(params.Document) == "" {
		out.Error = FormatValidationError("document", "document is required")
		return out, nil
	}
	res, err := p.ProcessReply(params.Document, params.Description)
	if err != nil {
		out.Error = FormatError(describe(err))
		return out, nil
	}
	out.Content = FormatReport(res.Validation)
	return out, nil
}

// describe turns pipeline errors into messages an assistant can act on.
func describe(err error) string {
	switch {
	case errors.Is(err, generator.ErrEmptyDescription):
		return "description is required"
	case generator.IsUnparsableJSON(err):
		return "the model reply could not be parsed as JSON, even after repair. Try again or simplify the description. (" + err.Error() + ")"
	default:
		return err.Error()
	}
}
