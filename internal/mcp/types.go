// Package mcp exposes the wireframe pipeline as MCP tools.
package mcp

import (
	"github.com/Dheerajdoppalapudi/design-generator-sub000/internal/generator"
)

// Tool names.
const (
	ToolGenerateWireframe = "generate_wireframe"
	ToolGeneratePages     = "generate_pages"
	ToolValidateWireframe = "validate_wireframe"
)

// GenerateWireframeParams defines the parameters for generate_wireframe.
type GenerateWireframeParams struct {
	Description string                     `json:"description"`
	Workflow    []generator.WorkflowScreen `json:"workflow,omitempty"`
	// TargetScreenIndex pins generation to one workflow screen; omit for none.
	TargetScreenIndex *int `json:"targetScreenIndex,omitempty"`
	// Format of the embedded document: json (default) or yaml.
	Format string `json:"format,omitempty"`
}

// Request converts the tool arguments into a pipeline request.
func (p GenerateWireframeParams) Request() generator.WireframeRequest {
	idx := -1
	if p.TargetScreenIndex != nil {
		idx = *p.TargetScreenIndex
	}
	return generator.WireframeRequest{
		Description:       p.Description,
		Workflow:          p.Workflow,
		TargetScreenIndex: idx,
	}
}

// GeneratePagesParams defines the parameters for generate_pages.
type GeneratePagesParams struct {
	Description string `json:"description"`
}

// ValidateWireframeParams defines the parameters for validate_wireframe.
type ValidateWireframeParams struct {
	// Document is a wireframe document or raw model reply.
	Document    string `json:"document"`
	Description string `json:"description,omitempty"`
}

// ToolResult is what a handler hands back to the transport layer.
// Error is set for failures the caller should see as a tool error.
type ToolResult struct {
	Tool    string `json:"tool"`
	Content string `json:"content"`
	Error   string `json:"error,omitempty"`
}
