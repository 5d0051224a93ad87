/*
Copyright © 2025 The wireframe authors
*/
package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Dheerajdoppalapudi/design-generator-sub000/internal/config"
	"github.com/Dheerajdoppalapudi/design-generator-sub000/internal/generator"
	"github.com/Dheerajdoppalapudi/design-generator-sub000/internal/llm"
	"github.com/Dheerajdoppalapudi/design-generator-sub000/internal/logger"
	"github.com/Dheerajdoppalapudi/design-generator-sub000/internal/metrics"
	"github.com/Dheerajdoppalapudi/design-generator-sub000/internal/telemetry"
)

// newCompleter builds the generation backend. Tests replace it.
var newCompleter = llm.NewCompleter

// pipeline bundles a Generator with the resources it holds.
type pipeline struct {
	gen       *generator.Generator
	telemetry telemetry.Client
	closers   []func() error
}

type pipelineOptions struct {
	// backend is false for commands that never call the model (validate).
	backend bool
	// registerer receives the pipeline metrics; nil keeps them private.
	registerer prometheus.Registerer
	command    string
}

func newPipeline(ctx context.Context, opts pipelineOptions) (*pipeline, error) {
	p := &pipeline{}

	tel, err := newTelemetry()
	if err != nil {
		slog.Debug("telemetry disabled", "error", err)
		tel = telemetry.NewNoopClient()
	}
	p.telemetry = tel
	p.closers = append(p.closers, tel.Close)

	reg := opts.registerer
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	cfg := generator.Config{
		Metrics: metrics.New(reg),
		Tracker: tel,
	}

	if opts.backend {
		llmCfg, err := config.LoadLLMConfig()
		if err != nil {
			return nil, fmt.Errorf("load llm config: %w", err)
		}
		completer, closeFn, err := newCompleter(ctx, llmCfg)
		if err != nil {
			return nil, fmt.Errorf("create %s backend: %w", llmCfg.Provider, err)
		}
		if closeFn != nil {
			p.closers = append(p.closers, closeFn)
		}
		cfg.Completer = &recordingCompleter{next: completer}
		cfg.Model = string(llmCfg.Provider)
		if llmCfg.Model != "" {
			cfg.Model += "/" + llmCfg.Model
		}
		slog.Debug("generation backend ready", "provider", llmCfg.Provider, "model", llmCfg.Model)
	}

	p.gen = generator.New(cfg)
	tel.Track(telemetry.EventCommandExecuted, map[string]any{"command": opts.command})
	return p, nil
}

// Close releases the backend and flushes telemetry.
func (p *pipeline) Close() {
	for i := len(p.closers) - 1; i >= 0; i-- {
		if err := p.closers[i](); err != nil {
			slog.Debug("close pipeline resource", "error", err)
		}
	}
}

func newTelemetry() (telemetry.Client, error) {
	cfg, err := config.LoadTelemetryConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.Enabled {
		return telemetry.NewNoopClient(), nil
	}
	dir, err := config.GetGlobalConfigDir()
	if err != nil {
		return nil, err
	}
	id, err := telemetry.LoadInstallID(appFs, dir)
	if err != nil {
		return nil, err
	}
	return telemetry.New(telemetry.Config{
		Enabled:   cfg.Enabled,
		APIKey:    cfg.APIKey,
		Endpoint:  cfg.Endpoint,
		InstallID: id,
		Version:   version,
	})
}

// recordingCompleter keeps the last prompt in the crash context.
type recordingCompleter struct {
	next llm.Completer
}

func (c *recordingCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	logger.SetLastPrompt(prompt)
	return c.next.Complete(ctx, prompt)
}
