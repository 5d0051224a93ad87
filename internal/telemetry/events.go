package telemetry

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// Event names
const (
	EventWireframeGenerated = "wireframe_generated"
	EventPagesGenerated     = "pages_generated"
	EventCommandExecuted    = "command_executed"
)

// InstallIDFileName holds the anonymous install id inside the config dir.
const InstallIDFileName = "install_id"

// LoadInstallID returns the anonymous install id stored in dir, creating
// it on first use. The id is a random UUID unrelated to the user.
func LoadInstallID(fs afero.Fs, dir string) (string, error) {
	path := filepath.Join(dir, InstallIDFileName)

	data, err := afero.ReadFile(fs, path)
	if err == nil {
		if id := strings.TrimSpace(string(data)); id != "" {
			if _, err := uuid.Parse(id); err == nil {
				return id, nil
			}
		}
	}

	id := uuid.NewString()
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}
	if err := afero.WriteFile(fs, path, []byte(id+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("write install id: %w", err)
	}
	return id, nil
}
