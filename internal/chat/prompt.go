package chat

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PromptSpec is the assistant's YAML-configured prompt: the system message
// plus generation style knobs.
type PromptSpec struct {
	System string `yaml:"system"`
	Style  struct {
		Temperature float32 `yaml:"temperature"`
		MaxTokens   int     `yaml:"max_tokens"`
	} `yaml:"style"`
}

// LoadPromptSpec reads the prompt spec from disk, applying safe defaults for
// unset style values.
func LoadPromptSpec(path string) (*PromptSpec, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prompt spec: %w", err)
	}
	var spec PromptSpec
	if err := yaml.Unmarshal(b, &spec); err != nil {
		return nil, fmt.Errorf("parse prompt spec: %w", err)
	}
	if spec.System == "" {
		return nil, fmt.Errorf("prompt spec %s has no system prompt", path)
	}
	if spec.Style.Temperature <= 0 {
		spec.Style.Temperature = 0.3
	}
	if spec.Style.MaxTokens <= 0 {
		spec.Style.MaxTokens = 500
	}
	return &spec, nil
}
