package generator

import (
	"errors"
	"fmt"
	"time"

	"github.com/Dheerajdoppalapudi/design-generator-sub000/internal/wireframe"
)

// WorkflowScreen is the upstream, simpler screen descriptor produced by the
// pages flow and used to pin wireframe generation to one screen.
type WorkflowScreen struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Position    int      `json:"position" yaml:"position"`
	NextScreens []string `json:"nextScreens" yaml:"nextScreens"`
}

// WireframeRequest is the input of GenerateWireframe.
type WireframeRequest struct {
	Description string           `json:"description"`
	Workflow    []WorkflowScreen `json:"workflow,omitempty"`
	// TargetScreenIndex pins generation to Workflow[TargetScreenIndex].
	// A negative or out-of-range index means no pinning.
	TargetScreenIndex int `json:"targetScreenIndex"`
}

// Target returns the pinned workflow screen, or nil.
func (r WireframeRequest) Target() *WorkflowScreen {
	if r.TargetScreenIndex < 0 || r.TargetScreenIndex >= len(r.Workflow) {
		return nil
	}
	return &r.Workflow[r.TargetScreenIndex]
}

// Result is returned whenever a document could be parsed, valid or not.
// Callers decide what to do with an invalid document.
type Result struct {
	Success    bool                       `json:"success" yaml:"success"`
	Wireframe  *wireframe.Document        `json:"wireframe" yaml:"wireframe"`
	Validation wireframe.ValidationReport `json:"validation" yaml:"validation"`
	Metadata   ResultMetadata             `json:"metadata" yaml:"metadata"`
}

// ResultMetadata describes how a result was produced.
type ResultMetadata struct {
	RequestID string        `json:"requestId" yaml:"requestId"`
	Model     string        `json:"model,omitempty" yaml:"model,omitempty"`
	Stages    []Stage       `json:"stages" yaml:"stages"`
	Repaired  bool          `json:"repaired" yaml:"repaired"`
	Duration  time.Duration `json:"durationNs" yaml:"durationNs"`
}

// PagesResult is the output of GeneratePages.
type PagesResult struct {
	Workflow []WorkflowScreen `json:"workflow" yaml:"workflow"`
}

// ErrEmptyDescription is returned before any backend call when the
// description is blank.
var ErrEmptyDescription = errors.New("description is required")

// UnparsableJSONError reports that the model reply could not be parsed, even
// after repair. It is distinct from llm.GenerationError: the backend answered,
// but with something that is not JSON.
type UnparsableJSONError struct {
	Candidate string
	Err       error
}

func (e *UnparsableJSONError) Error() string {
	return fmt.Sprintf("model reply is not valid JSON: %v", e.Err)
}

func (e *UnparsableJSONError) Unwrap() error {
	return e.Err
}

// IsUnparsableJSON returns true if err is or wraps an UnparsableJSONError.
func IsUnparsableJSON(err error) bool {
	var u *UnparsableJSONError
	return errors.As(err, &u)
}
