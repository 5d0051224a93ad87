/*
Copyright © 2025 The wireframe authors
*/
package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Dheerajdoppalapudi/design-generator-sub000/internal/generator"
	"github.com/Dheerajdoppalapudi/design-generator-sub000/internal/wireframe"
)

// readInput reads path from appFs, or stdin when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := afero.ReadFile(appFs, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := appFs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := afero.WriteFile(appFs, path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// loadWorkflow reads a workflow file: either the output of `wireframe pages`
// ({"workflow": [...]}) or a bare list of screens, as JSON or YAML.
func loadWorkflow(cmd *cobra.Command, path string) ([]generator.WorkflowScreen, error) {
	data, err := readInput(cmd, path)
	if err != nil {
		return nil, err
	}

	unmarshal := yaml.Unmarshal
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		unmarshal = json.Unmarshal
	}

	var wrapped generator.PagesResult
	if err := unmarshal(data, &wrapped); err == nil && len(wrapped.Workflow) > 0 {
		return wrapped.Workflow, nil
	}
	var screens []generator.WorkflowScreen
	if err := unmarshal(data, &screens); err != nil {
		return nil, fmt.Errorf("parse workflow %s: %w", path, err)
	}
	if len(screens) == 0 {
		return nil, fmt.Errorf("workflow %s has no screens", path)
	}
	return screens, nil
}

// outputFormat resolves --format, falling back to the --out extension.
func outputFormat(flag, out string) (wireframe.Format, error) {
	if flag == "" {
		switch strings.ToLower(filepath.Ext(out)) {
		case ".yaml", ".yml":
			return wireframe.FormatYAML, nil
		}
	}
	return wireframe.ParseFormat(flag)
}

func extension(f wireframe.Format) string {
	if f == wireframe.FormatYAML {
		return ".yaml"
	}
	return ".json"
}
