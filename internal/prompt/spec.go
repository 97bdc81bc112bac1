package prompt

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed persona.yaml
var defaultSpec []byte

// Spec is the persona/prompt specification driving both the interview and the
// document generation prompts.
type Spec struct {
	System     string   `yaml:"system"`
	Guidelines []string `yaml:"guidelines"`
	Style      struct {
		Temperature    float32 `yaml:"temperature"`
		TopP           float32 `yaml:"top_p"`
		TopK           int     `yaml:"top_k"`
		ChatMaxTokens  int     `yaml:"chat_max_tokens"`
		StoryMaxTokens int     `yaml:"story_max_tokens"`
	} `yaml:"style"`
	Documents map[string]DocumentTemplate `yaml:"documents"`
}

// DocumentTemplate carries the kind-specific structural instructions.
type DocumentTemplate struct {
	Instructions string `yaml:"instructions"`
}

// LoadSpec reads a persona spec from path, or the embedded default when path
// is empty.
func LoadSpec(path string) (Spec, error) {
	b := defaultSpec
	if path != "" {
		var err error
		b, err = os.ReadFile(path)
		if err != nil {
			return Spec{}, fmt.Errorf("read persona spec: %w", err)
		}
	}
	var spec Spec
	if err := yaml.Unmarshal(b, &spec); err != nil {
		return Spec{}, fmt.Errorf("parse persona spec: %w", err)
	}
	if spec.System == "" {
		return Spec{}, fmt.Errorf("persona spec: system block is required")
	}
	for _, kind := range []OutputKind{KindBlog, KindFlyer} {
		if spec.Documents[string(kind)].Instructions == "" {
			return Spec{}, fmt.Errorf("persona spec: missing document template %q", kind)
		}
	}
	applyStyleDefaults(&spec)
	return spec, nil
}

func applyStyleDefaults(spec *Spec) {
	if spec.Style.Temperature <= 0 {
		spec.Style.Temperature = 0.7
	}
	if spec.Style.TopP <= 0 {
		spec.Style.TopP = 0.95
	}
	if spec.Style.TopK <= 0 {
		spec.Style.TopK = 40
	}
	if spec.Style.ChatMaxTokens <= 0 {
		spec.Style.ChatMaxTokens = 1024
	}
	if spec.Style.StoryMaxTokens <= 0 {
		spec.Style.StoryMaxTokens = 2048
	}
}
