package server

import (
	"encoding/json"

	"github.com/Dheerajdoppalapudi/design-generator-sub000/internal/generator"
)

// WireframeRequest is the payload for POST /api/wireframes.
type WireframeRequest struct {
	Description string                     `json:"description"`
	Workflow    []generator.WorkflowScreen `json:"workflow,omitempty"`
	// TargetScreenIndex is optional; omitted means no pinning.
	TargetScreenIndex *int `json:"targetScreenIndex,omitempty"`
}

func (r WireframeRequest) toGenerator() generator.WireframeRequest {
	idx := -1
	if r.TargetScreenIndex != nil {
		idx = *r.TargetScreenIndex
	}
	return generator.WireframeRequest{
		Description:       r.Description,
		Workflow:          r.Workflow,
		TargetScreenIndex: idx,
	}
}

// PagesRequest is the payload for POST /api/pages.
type PagesRequest struct {
	Description string `json:"description"`
}

// ValidateRequest is the payload for POST /api/wireframes/validate. Exactly
// one of Reply (raw model text) or Document (a JSON object) is used; Reply
// wins when both are set.
type ValidateRequest struct {
	Reply       string          `json:"reply,omitempty"`
	Document    json.RawMessage `json:"document,omitempty"`
	Description string          `json:"description,omitempty"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
