package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/Dheerajdoppalapudi/design-generator-sub000/internal/llm"
)

// SaveLLMConfig writes the backend provider, model and (optionally) API key
// into the YAML config file at path, keeping every other key in the file.
// The file is created with 0600 permissions since it may hold secrets.
func SaveLLMConfig(fs afero.Fs, path, provider, model, key string) error {
	if provider == "" {
		return fmt.Errorf("provider cannot be empty")
	}
	p, err := llm.ValidateProvider(provider)
	if err != nil {
		return err
	}
	if model == "" {
		model = llm.DefaultModelForProvider(p)
	}

	doc := map[string]any{}
	data, err := afero.ReadFile(fs, path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		if doc == nil {
			doc = map[string]any{}
		}
	case os.IsNotExist(err):
	default:
		return fmt.Errorf("read %s: %w", path, err)
	}

	llmSection, _ := doc["llm"].(map[string]any)
	if llmSection == nil {
		llmSection = map[string]any{}
	}
	llmSection["provider"] = string(p)
	if model != "" {
		llmSection["model"] = model
	}
	if key != "" {
		keys, _ := llmSection["apiKeys"].(map[string]any)
		if keys == nil {
			keys = map[string]any{}
		}
		keys[string(p)] = key
		llmSection["apiKeys"] = keys
	}
	doc["llm"] = llmSection

	out, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return afero.WriteFile(fs, path, out, 0o600)
}
