package telemetry

import (
	"runtime"
	"sync"
	"testing"

	"github.com/posthog/posthog-go"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockEnqueuer captures events for testing.
type mockEnqueuer struct {
	mu     sync.Mutex
	events []posthog.Capture
	closed int
}

func (m *mockEnqueuer) Enqueue(msg posthog.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if capture, ok := msg.(posthog.Capture); ok {
		m.events = append(m.events, capture)
	}
	return nil
}

func (m *mockEnqueuer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed++
	return nil
}

func (m *mockEnqueuer) getEvents() []posthog.Capture {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]posthog.Capture, len(m.events))
	copy(out, m.events)
	return out
}

func TestPostHogClient_Track(t *testing.T) {
	mock := &mockEnqueuer{}
	client := newPostHogClient(mock, "install-123", "1.2.3")

	client.Track(EventWireframeGenerated, map[string]any{
		"outcome":  "valid",
		"repaired": true,
		"screens":  2,
	})

	events := mock.getEvents()
	require.Len(t, events, 1)
	e := events[0]
	assert.Equal(t, EventWireframeGenerated, e.Event)
	assert.Equal(t, "install-123", e.DistinctId)
	assert.Equal(t, "valid", e.Properties["outcome"])
	assert.Equal(t, true, e.Properties["repaired"])
	assert.Equal(t, 2, e.Properties["screens"])
	assert.Equal(t, runtime.GOOS, e.Properties["os"])
	assert.Equal(t, runtime.GOARCH, e.Properties["arch"])
	assert.Equal(t, "1.2.3", e.Properties["version"])
	assert.Equal(t, false, e.Properties["$process_person_profile"])
}

func TestPostHogClient_NilProperties(t *testing.T) {
	mock := &mockEnqueuer{}
	client := newPostHogClient(mock, "id", "dev")

	client.Track(EventCommandExecuted, nil)

	require.Len(t, mock.getEvents(), 1)
}

func TestPostHogClient_Close(t *testing.T) {
	mock := &mockEnqueuer{}
	client := newPostHogClient(mock, "id", "dev")

	require.NoError(t, client.Close())
	require.NoError(t, client.Close())
	client.Track(EventCommandExecuted, nil)

	assert.Equal(t, 1, mock.closed)
	assert.Empty(t, mock.getEvents())
}

func TestPostHogClient_Track_Concurrent(t *testing.T) {
	mock := &mockEnqueuer{}
	client := newPostHogClient(mock, "id", "dev")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			client.Track(EventPagesGenerated, map[string]any{"n": n})
		}(i)
	}
	wg.Wait()

	assert.Len(t, mock.getEvents(), 20)
}

func TestNew_DisabledOrUnconfigured(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"disabled", Config{Enabled: false, APIKey: "phc_x", InstallID: "id"}},
		{"no api key", Config{Enabled: true, InstallID: "id"}},
		{"no install id", Config{Enabled: true, APIKey: "phc_x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.cfg)
			require.NoError(t, err)
			assert.IsType(t, &NoopClient{}, c)
		})
	}
}

func TestNoopClient(t *testing.T) {
	c := NewNoopClient()
	assert.NotPanics(t, func() { c.Track(EventWireframeGenerated, nil) })
	assert.NoError(t, c.Close())
}

func TestLoadInstallID(t *testing.T) {
	fs := afero.NewMemMapFs()

	first, err := LoadInstallID(fs, "/home/u/.wireframe")
	require.NoError(t, err)
	assert.NotEmpty(t, first)

	second, err := LoadInstallID(fs, "/home/u/.wireframe")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	require.NoError(t, afero.WriteFile(fs, "/home/u/.wireframe/install_id", []byte("garbage"), 0o600))
	third, err := LoadInstallID(fs, "/home/u/.wireframe")
	require.NoError(t, err)
	assert.NotEqual(t, "garbage", third)
}
