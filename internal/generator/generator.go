// Package generator runs the wireframe pipeline: prompt, one backend call,
// JSON extraction and repair, defaults and validation.
package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Dheerajdoppalapudi/design-generator-sub000/internal/llm"
	"github.com/Dheerajdoppalapudi/design-generator-sub000/internal/metrics"
	"github.com/Dheerajdoppalapudi/design-generator-sub000/internal/telemetry"
	"github.com/Dheerajdoppalapudi/design-generator-sub000/internal/utils"
	"github.com/Dheerajdoppalapudi/design-generator-sub000/internal/wireframe"
)

// Stage is a step of one pipeline run.
type Stage string

const (
	StageBuilding      Stage = "building"
	StageAwaitingModel Stage = "awaiting_model"
	StageExtracting    Stage = "extracting"
	StageRepairing     Stage = "repairing"
	StageParsed        Stage = "parsed"
	StageFailed        Stage = "failed"
	StageDefaulting    Stage = "defaulting"
	StageValidating    Stage = "validating"
	StageDone          Stage = "done"
)

// Operation labels for metrics and telemetry.
const (
	OperationWireframe = "wireframe"
	OperationPages     = "pages"
	OperationValidate  = "validate"
)

// EventTracker receives usage events. telemetry.Client satisfies it.
type EventTracker interface {
	Track(event string, properties map[string]any)
}

// Config configures a Generator. Only Completer is required, and only for
// the operations that call the backend.
type Config struct {
	Completer llm.Completer
	// Model labels results and events; it does not select anything.
	Model   string
	Metrics *metrics.Collectors
	Tracker EventTracker
	Now     func() time.Time
	NewID   func() string
}

// Generator holds only immutable collaborators and is safe for concurrent use.
type Generator struct {
	completer llm.Completer
	model     string
	metrics   *metrics.Collectors
	tracker   EventTracker
	now       func() time.Time
	newID     func() string
}

// New creates a Generator.
func New(cfg Config) *Generator {
	g := &Generator{
		completer: cfg.Completer,
		model:     cfg.Model,
		metrics:   cfg.Metrics,
		tracker:   cfg.Tracker,
		now:       cfg.Now,
		newID:     cfg.NewID,
	}
	if g.now == nil {
		g.now = time.Now
	}
	if g.newID == nil {
		g.newID = uuid.NewString
	}
	return g
}

// run tracks the stage trail of one call.
type run struct {
	g         *Generator
	operation string
	requestID string
	start     time.Time
	stages    []Stage
}

func (g *Generator) newRun(operation string) *run {
	return &run{g: g, operation: operation, requestID: g.newID(), start: g.now()}
}

func (r *run) enter(s Stage) {
	r.stages = append(r.stages, s)
	r.g.metrics.ObserveStage(string(s))
	slog.Debug("pipeline stage", "operation", r.operation, "request_id", r.requestID, "stage", s)
}

func (r *run) elapsed() time.Duration {
	return r.g.now().Sub(r.start)
}

// GenerateWireframe produces one wireframe document. A document that parsed
// is always returned, with Success set, even when its validation report
// lists errors. Errors are returned only for empty input, backend failures
// (*llm.GenerationError) and unparsable replies (*UnparsableJSONError).
func (g *Generator) GenerateWireframe(ctx context.Context, req WireframeRequest) (*Result, error) {
	if strings.TrimSpace(req.Description) == "" {
		return nil, ErrEmptyDescription
	}

	r := g.newRun(OperationWireframe)
	target := req.Target()

	r.enter(StageBuilding)
	prompt := BuildWireframePrompt(PromptInput{
		Description: req.Description,
		Workflow:    req.Workflow,
		Target:      target,
	})

	r.enter(StageAwaitingModel)
	raw, err := g.complete(ctx, r, prompt)
	if err != nil {
		g.finishFailed(r, err)
		return nil, err
	}

	var targetID string
	if target != nil {
		targetID = newScreenView(*target, max(target.Position, 1)).ID
	}

	res, err := g.process(r, raw, req.Description, targetID)
	if err != nil {
		g.finishFailed(r, err)
		return nil, err
	}
	g.finish(r, res)
	return res, nil
}

// ProcessReply runs extraction, repair, defaults and validation on a reply
// (or a document) that was produced elsewhere. No backend call is made.
func (g *Generator) ProcessReply(raw, description string) (*Result, error) {
	r := g.newRun(OperationValidate)
	res, err := g.process(r, raw, description, "")
	if err != nil {
		g.metrics.ObserveGeneration(r.operation, metrics.OutcomeFailed)
		return nil, err
	}
	g.metrics.ObserveGeneration(r.operation, outcomeOf(res))
	g.metrics.ObserveValidationErrors(len(res.Validation.Errors))
	return res, nil
}

// GeneratePages asks the backend for the flat list of workflow screens.
// The list is not validated. Fields of the wrong type are dropped rather than
// failing the call.
func (g *Generator) GeneratePages(ctx context.Context, description string) (*PagesResult, error) {
	if strings.TrimSpace(description) == "" {
		return nil, ErrEmptyDescription
	}

	r := g.newRun(OperationPages)

	r.enter(StageBuilding)
	prompt := BuildPagesPrompt(description)

	r.enter(StageAwaitingModel)
	raw, err := g.complete(ctx, r, prompt)
	if err != nil {
		g.metrics.ObserveGeneration(r.operation, metrics.OutcomeFailed)
		return nil, err
	}

	r.enter(StageExtracting)
	candidate := utils.ExtractJSONArray(raw)
	screens, repaired, err := utils.ParseWithRepair(candidate, parseWorkflow)
	if err != nil {
		r.enter(StageRepairing)
		r.enter(StageFailed)
		g.metrics.ObserveGeneration(r.operation, metrics.OutcomeFailed)
		slog.Warn("pages reply not parsable", "request_id", r.requestID, "error", err)
		return nil, &UnparsableJSONError{Candidate: candidate, Err: err}
	}
	if repaired {
		r.enter(StageRepairing)
		g.metrics.ObserveRepair()
	}
	r.enter(StageParsed)
	r.enter(StageDone)

	if screens == nil {
		screens = []WorkflowScreen{}
	}
	g.metrics.ObserveGeneration(r.operation, metrics.OutcomeValid)
	g.track(telemetry.EventPagesGenerated, map[string]any{
		"screens":     len(screens),
		"repaired":    repaired,
		"duration_ms": r.elapsed().Milliseconds(),
		"model":       g.model,
	})
	slog.Info("pages generated", "request_id", r.requestID, "screens", len(screens), "repaired", repaired, "duration", r.elapsed())
	return &PagesResult{Workflow: screens}, nil
}

// parseWorkflow decodes a screen list. Like wireframe.Parse it tolerates
// fields of the wrong type: the field is left empty and the rest of the list
// is kept. A screen left without a position takes its 1-based list order.
func parseWorkflow(data []byte) ([]WorkflowScreen, error) {
	var screens []WorkflowScreen
	err := json.Unmarshal(data, &screens)

	var typeErr *json.UnmarshalTypeError
	switch {
	case err == nil:
	case errors.As(err, &typeErr) && screens != nil:
		slog.Warn("workflow field has the wrong type and was ignored", "field", typeErr.Field, "got", typeErr.Value)
	default:
		return nil, err
	}

	for i := range screens {
		if screens[i].Position <= 0 {
			screens[i].Position = i + 1
		}
	}
	return screens, nil
}

func (g *Generator) complete(ctx context.Context, r *run, prompt string) (string, error) {
	if g.completer == nil {
		return "", &llm.GenerationError{Err: fmt.Errorf("no generation backend configured")}
	}
	start := time.Now()
	raw, err := g.completer.Complete(ctx, prompt)
	g.metrics.ObserveBackendLatency(r.operation, time.Since(start))
	if err != nil {
		if !llm.IsGenerationError(err) {
			err = &llm.GenerationError{Err: err}
		}
		return "", err
	}
	return raw, nil
}

// process is the part of the pipeline after the backend call.
func (g *Generator) process(r *run, raw, description, targetID string) (*Result, error) {
	r.enter(StageExtracting)
	candidate := utils.ExtractJSON(raw)

	doc, repaired, err := utils.ParseWithRepair(candidate, wireframe.Parse)
	if err != nil {
		r.enter(StageRepairing)
		r.enter(StageFailed)
		return nil, &UnparsableJSONError{Candidate: candidate, Err: err}
	}
	if repaired {
		r.enter(StageRepairing)
		g.metrics.ObserveRepair()
		slog.Debug("reply parsed after repair", "request_id", r.requestID)
	}
	r.enter(StageParsed)

	r.enter(StageDefaulting)
	wireframe.ApplyDefaults(doc, description, g.now())
	if doc.Metadata.RequestID == "" {
		doc.Metadata.RequestID = r.requestID
	}
	if doc.Metadata.TargetScreen == "" {
		doc.Metadata.TargetScreen = targetID
	}

	r.enter(StageValidating)
	report := wireframe.Validate(doc)

	r.enter(StageDone)
	return &Result{
		Success:    true,
		Wireframe:  doc,
		Validation: report,
		Metadata: ResultMetadata{
			RequestID: r.requestID,
			Model:     g.model,
			Stages:    r.stages,
			Repaired:  repaired,
			Duration:  r.elapsed(),
		},
	}, nil
}

func outcomeOf(res *Result) string {
	if res.Validation.IsValid {
		return metrics.OutcomeValid
	}
	return metrics.OutcomeInvalid
}

func (g *Generator) finish(r *run, res *Result) {
	outcome := outcomeOf(res)
	g.metrics.ObserveGeneration(r.operation, outcome)
	g.metrics.ObserveValidationErrors(len(res.Validation.Errors))

	slog.Info("wireframe generated",
		"request_id", r.requestID,
		"valid", res.Validation.IsValid,
		"errors", len(res.Validation.Errors),
		"warnings", len(res.Validation.Warnings),
		"screens", len(res.Wireframe.Screens),
		"repaired", res.Metadata.Repaired,
		"duration", res.Metadata.Duration,
	)
	if !res.Validation.IsValid {
		slog.Warn("wireframe failed validation", "request_id", r.requestID, "errors", res.Validation.ErrorSummary())
	}

	g.track(telemetry.EventWireframeGenerated, map[string]any{
		"outcome":     outcome,
		"repaired":    res.Metadata.Repaired,
		"screens":     len(res.Wireframe.Screens),
		"errors":      len(res.Validation.Errors),
		"warnings":    len(res.Validation.Warnings),
		"duration_ms": res.Metadata.Duration.Milliseconds(),
		"model":       g.model,
	})
}

func (g *Generator) finishFailed(r *run, err error) {
	g.metrics.ObserveGeneration(r.operation, metrics.OutcomeFailed)

	kind := "generation"
	if IsUnparsableJSON(err) {
		kind = "unparsable_json"
	}
	slog.Warn("wireframe generation failed", "request_id", r.requestID, "kind", kind, "error", err)

	g.track(telemetry.EventWireframeGenerated, map[string]any{
		"outcome":     metrics.OutcomeFailed,
		"error_kind":  kind,
		"duration_ms": r.elapsed().Milliseconds(),
		"model":       g.model,
	})
}

func (g *Generator) track(event string, props map[string]any) {
	if g.tracker == nil {
		return
	}
	g.tracker.Track(event, props)
}
