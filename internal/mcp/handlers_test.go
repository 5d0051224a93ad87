package mcp

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Dheerajdoppalapudi/design-generator-sub000/internal/generator"
	"github.com/Dheerajdoppalapudi/design-generator-sub000/internal/llm"
	"github.com/Dheerajdoppalapudi/design-generator-sub000/internal/wireframe"
)

type fakePipeline struct {
	result   *generator.Result
	pages    *generator.PagesResult
	err      error
	requests []generator.WireframeRequest
	replies  []string
}

func (f *fakePipeline) GenerateWireframe(_ context.Context, req generator.WireframeRequest) (*generator.Result, error) {
	f.requests = append(f.requests, req)
	return f.result, f.err
}

func (f *fakePipeline) GeneratePages(_ context.Context, _ string) (*generator.PagesResult, error) {
	return f.pages, f.err
}

func (f *fakePipeline) ProcessReply(raw, _ string) (*generator.Result, error) {
	f.replies = append(f.replies, raw)
	return f.result, f.err
}

func sampleResult(valid bool) *generator.Result {
	rep := wireframe.ValidationReport{IsValid: valid, Errors: []string{}, Warnings: []string{"Screen name \"Home\" should be kebab-case"}}
	if !valid {
		rep.Errors = []string{"Missing app navigation"}
	}
	return &generator.Result{
		Success: true,
		Wireframe: &wireframe.Document{
			App: &wireframe.App{Name: "Fresh Market", Theme: wireframe.DefaultTheme},
			Screens: []wireframe.Screen{
				{Name: "home", Title: "Home", IsStartPoint: true, Components: []wireframe.Component{{ID: "header-1", Type: "Header"}}},
			},
		},
		Validation: rep,
		Metadata:   generator.ResultMetadata{RequestID: "req-1", Repaired: true},
	}
}

func intPtr(i int) *int { return &i }

func TestHandleGenerateWireframe(t *testing.T) {
	fake := &fakePipeline{result: sampleResult(true)}

	res, err := HandleGenerateWireframe(context.Background(), fake, GenerateWireframeParams{
		Description:       "grocery app",
		Workflow:          []generator.WorkflowScreen{{ID: "home", Title: "Home", Position: 1}},
		TargetScreenIndex: intPtr(0),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Error != "" {
		t.Fatalf("unexpected tool error: %s", res.Error)
	}
	if len(fake.requests) != 1 || fake.requests[0].TargetScreenIndex != 0 {
		t.Errorf("expected one request pinned to index 0, got %+v", fake.requests)
	}
	for _, want := range []string{"## Wireframe: Fresh Market", "`home` Home: 1 components (start)", "JSON repair", "## Validation: passed", "```json\n", `"name": "Fresh Market"`} {
		if !strings.Contains(res.Content, want) {
			t.Errorf("content missing %q:\n%s", want, res.Content)
		}
	}
}

func TestHandleGenerateWireframe_NoTargetByDefault(t *testing.T) {
	fake := &fakePipeline{result: sampleResult(true)}

	if _, err := HandleGenerateWireframe(context.Background(), fake, GenerateWireframeParams{Description: "grocery app"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fake.requests[0].TargetScreenIndex != -1 {
		t.Errorf("expected no pinning (-1), got %d", fake.requests[0].TargetScreenIndex)
	}
}

func TestHandleGenerateWireframe_YAML(t *testing.T) {
	fake := &fakePipeline{result: sampleResult(false)}

	res, err := HandleGenerateWireframe(context.Background(), fake, GenerateWireframeParams{Description: "grocery app", Format: "yaml"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(res.Content, "```yaml\n") || !strings.Contains(res.Content, "name: Fresh Market") {
		t.Errorf("expected YAML document, got:\n%s", res.Content)
	}
	if !strings.Contains(res.Content, "## Validation: failed") || !strings.Contains(res.Content, "- Missing app navigation") {
		t.Errorf("expected failed report in content, got:\n%s", res.Content)
	}
	if res.Error != "" {
		t.Errorf("invalid documents must not be tool errors, got %q", res.Error)
	}
}

func TestHandleGenerateWireframe_ArgumentErrors(t *testing.T) {
	tests := []struct {
		name   string
		params GenerateWireframeParams
		field  string
	}{
		{"empty description", GenerateWireframeParams{Description: " "}, "description"},
		{"bad format", GenerateWireframeParams{Description: "x", Format: "xml"}, "format"},
		{"index out of range", GenerateWireframeParams{Description: "x", TargetScreenIndex: intPtr(2)}, "targetScreenIndex"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakePipeline{result: sampleResult(true)}
			res, err := HandleGenerateWireframe(context.Background(), fake, tt.params)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(res.Error, "`"+tt.field+"`") {
				t.Errorf("expected validation error for %s, got %q", tt.field, res.Error)
			}
			if len(fake.requests) != 0 {
				t.Error("pipeline must not be called for bad arguments")
			}
		})
	}
}

func TestHandleGenerateWireframe_PipelineErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"generation", &llm.GenerationError{Provider: llm.ProviderOpenAI, Err: errors.New("rate limited")}, "rate limited"},
		{"unparsable", &generator.UnparsableJSONError{Err: errors.New("invalid character")}, "could not be parsed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := HandleGenerateWireframe(context.Background(), &fakePipeline{err: tt.err}, GenerateWireframeParams{Description: "x"})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(res.Error, tt.want) {
				t.Errorf("expected error containing %q, got %q", tt.want, res.Error)
			}
		})
	}
}

func TestHandleGeneratePages(t *testing.T) {
	fake := &fakePipeline{pages: &generator.PagesResult{Workflow: []generator.WorkflowScreen{
		{ID: "home", Title: "Home", Description: "Landing", Position: 1, NextScreens: []string{"cart"}},
		{ID: "cart", Title: "Cart", Position: 2},
	}}}

	res, err := HandleGeneratePages(context.Background(), fake, GeneratePagesParams{Description: "grocery app"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(res.Content, "## Workflow (2 screens)") {
		t.Errorf("missing header:\n%s", res.Content)
	}
	if !strings.Contains(res.Content, "1. **Home** (`home`): Landing → cart") {
		t.Errorf("missing first screen:\n%s", res.Content)
	}

	empty, _ := HandleGeneratePages(context.Background(), fake, GeneratePagesParams{})
	if empty.Error == "" {
		t.Error("expected error for empty description")
	}
}

func TestHandleValidateWireframe(t *testing.T) {
	fake := &fakePipeline{result: sampleResult(false)}

	res, err := HandleValidateWireframe(context.Background(), fake, ValidateWireframeParams{Document: `{"screens": []}`})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fake.replies) != 1 || fake.replies[0] != `{"screens": []}` {
		t.Errorf("expected document to be processed, got %v", fake.replies)
	}
	if !strings.Contains(res.Content, "## Validation: failed") {
		t.Errorf("expected failed report, got:\n%s", res.Content)
	}

	missing, _ := HandleValidateWireframe(context.Background(), fake, ValidateWireframeParams{})
	if missing.Error == "" {
		t.Error("expected error for missing document")
	}
}

func TestToolResponse(t *testing.T) {
	ok, err := toolResponse(&ToolResult{Content: "fine"}, nil)
	if err != nil || ok.IsError {
		t.Errorf("expected success response, got %+v, %v", ok, err)
	}

	bad, err := toolResponse(&ToolResult{Error: "boom"}, nil)
	if err != nil || !bad.IsError {
		t.Errorf("expected IsError response, got %+v, %v", bad, err)
	}

	if _, err := toolResponse(nil, errors.New("encode")); err == nil {
		t.Error("expected error to pass through")
	}
}

func TestNewServer_RegistersTools(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("tool registration panicked: %v", r)
		}
	}()
	if NewServer(&fakePipeline{}, "test") == nil {
		t.Fatal("expected server")
	}
}
