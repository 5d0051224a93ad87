// Package telemetry sends anonymous, opt-in usage events to PostHog.
// Events never carry descriptions, prompts or generated documents.
package telemetry

import (
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/posthog/posthog-go"
)

// Client is the interface for telemetry clients.
type Client interface {
	// Track sends an event asynchronously. Returns immediately without blocking.
	Track(event string, properties map[string]any)

	// Close flushes pending events and closes the client.
	Close() error
}

// enqueuer is the part of the PostHog client we use; tests substitute it.
type enqueuer interface {
	io.Closer
	Enqueue(msg posthog.Message) error
}

// Config holds what New needs to build a client.
type Config struct {
	Enabled bool
	// APIKey is the PostHog project API key.
	APIKey string
	// Endpoint is an optional custom PostHog host (self-hosted).
	Endpoint string
	// InstallID is the anonymous distinct id, see LoadInstallID.
	InstallID string
	Version   string
}

// PostHogClient wraps the PostHog SDK for async telemetry.
type PostHogClient struct {
	client    enqueuer
	installID string
	version   string
	mu        sync.RWMutex
	closed    bool
}

// New returns a PostHog client when telemetry is enabled and configured,
// and a NoopClient otherwise.
func New(cfg Config) (Client, error) {
	if !cfg.Enabled || cfg.APIKey == "" || cfg.InstallID == "" {
		return NewNoopClient(), nil
	}

	phConfig := posthog.Config{
		// Few events per process; flush quickly
		BatchSize: 10,
		Interval:  1 * time.Second,
		// Transport warnings must never reach CLI output
		Logger: quietPostHogLogger{},
	}
	if cfg.Endpoint != "" {
		phConfig.Endpoint = cfg.Endpoint
	}

	client, err := posthog.NewWithConfig(cfg.APIKey, phConfig)
	if err != nil {
		return nil, err
	}
	return newPostHogClient(client, cfg.InstallID, cfg.Version), nil
}

func newPostHogClient(enq enqueuer, installID, version string) *PostHogClient {
	return &PostHogClient{client: enq, installID: installID, version: version}
}

// Track enqueues an event. No-op after Close.
func (c *PostHogClient) Track(event string, properties map[string]any) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return
	}

	props := posthog.NewProperties()
	for k, v := range properties {
		props.Set(k, v)
	}
	props.Set("os", runtime.GOOS)
	props.Set("arch", runtime.GOARCH)
	props.Set("version", c.version)
	// Anonymous events only: no person profiles
	props.Set("$process_person_profile", false)

	_ = c.client.Enqueue(posthog.Capture{
		DistinctId: c.installID,
		Event:      event,
		Properties: props,
	})
}

// Close flushes pending events. Safe to call more than once.
func (c *PostHogClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	return c.client.Close()
}

// NoopClient is a telemetry client that does nothing.
type NoopClient struct{}

// Track is a no-op.
func (c *NoopClient) Track(event string, properties map[string]any) {}

// Close is a no-op.
func (c *NoopClient) Close() error { return nil }

// NewNoopClient returns a client that does nothing.
func NewNoopClient() *NoopClient {
	return &NoopClient{}
}

// quietPostHogLogger suppresses PostHog client logs.
type quietPostHogLogger struct{}

func (quietPostHogLogger) Debugf(string, ...interface{}) {}
func (quietPostHogLogger) Logf(string, ...interface{})   {}
func (quietPostHogLogger) Warnf(string, ...interface{})  {}
func (quietPostHogLogger) Errorf(string, ...interface{}) {}
