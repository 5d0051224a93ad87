package cmd

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_FencedReply(t *testing.T) {
	fc := &fakeCompleter{}
	fs := setupCLI(t, fc)
	require.NoError(t, afero.WriteFile(fs, "reply.txt", []byte("Here you go:\n"+validReply), 0o644))

	stdout, _, err := runCLI(t, "", "validate", "reply.txt")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Fresh Market")
	assert.Contains(t, stdout, "✓ valid")
	assert.Zero(t, fc.calls(), "validate never calls the backend")
}

func TestValidate_ReadsStdin(t *testing.T) {
	setupCLI(t, nil)

	stdout, _, err := runCLI(t, invalidReply, "validate", "-")
	require.NoError(t, err)
	assert.Contains(t, stdout, "✗ invalid")
}

func TestValidate_Strict(t *testing.T) {
	fs := setupCLI(t, nil)
	require.NoError(t, afero.WriteFile(fs, "doc.json", []byte(invalidReply), 0o644))

	_, _, err := runCLI(t, "", "validate", "doc.json", "--strict")
	assert.ErrorIs(t, err, ErrInvalidWireframe)
}

func TestValidate_WritesNormalizedDocument(t *testing.T) {
	fs := setupCLI(t, nil)
	require.NoError(t, afero.WriteFile(fs, "doc.json", []byte(validReply), 0o644))

	stdout, _, err := runCLI(t, "", "validate", "doc.json", "--out", "normalized.yaml")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Saved to normalized.yaml")

	data, err := afero.ReadFile(fs, "normalized.yaml")
	require.NoError(t, err)
	// Missing theme roles are filled with defaults.
	assert.Contains(t, string(data), "secondary:")
	assert.Contains(t, string(data), "#6366F1")
}

func TestValidate_UnparsableReply(t *testing.T) {
	fs := setupCLI(t, nil)
	require.NoError(t, afero.WriteFile(fs, "reply.txt", []byte("sorry, I cannot help with that"), 0o644))

	_, _, err := runCLI(t, "", "validate", "reply.txt")
	require.Error(t, err)
	assert.Contains(t, userMessage(err), "not valid JSON")
}

func TestValidate_MissingFile(t *testing.T) {
	setupCLI(t, nil)

	_, _, err := runCLI(t, "", "validate", "nope.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.json")
}

func TestValidate_WatchNeedsFile(t *testing.T) {
	setupCLI(t, nil)

	_, _, err := runCLI(t, validReply, "validate", "-", "--watch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--watch")
}
