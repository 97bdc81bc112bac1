package prompt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lrklep/tale-of-light/internal/types"
)

// ErrInvalidInput marks caller mistakes: blank messages, unknown output
// kinds, empty transcripts. Handlers map it to HTTP 400.
var ErrInvalidInput = errors.New("invalid input")

// OutputKind selects the document template applied during story generation.
type OutputKind string

const (
	KindBlog  OutputKind = "blog"
	KindFlyer OutputKind = "flyer"
)

// ParseOutputKind accepts exactly the literals "blog" and "flyer".
// Case variants are rejected.
func ParseOutputKind(s string) (OutputKind, error) {
	switch s {
	case string(KindBlog):
		return KindBlog, nil
	case string(KindFlyer):
		return KindFlyer, nil
	}
	return "", fmt.Errorf("%w: output type must be \"blog\" or \"flyer\"", ErrInvalidInput)
}

// Composer builds prompts from the loaded persona spec. Both methods are pure
// functions of their inputs.
type Composer struct {
	spec Spec
}

func NewComposer(spec Spec) *Composer {
	return &Composer{spec: spec}
}

func (c *Composer) Spec() Spec { return c.spec }

// Chat assembles the interview-turn prompt: full persona block, the trailing
// conversation window, and the latest user message verbatim.
func (c *Composer) Chat(history []types.Turn, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", fmt.Errorf("%w: message is required", ErrInvalidInput)
	}
	for _, t := range history {
		if t.Role != "user" && t.Role != "assistant" {
			return "", fmt.Errorf("%w: unknown turn role %q", ErrInvalidInput, t.Role)
		}
	}

	var b strings.Builder
	c.writePersona(&b)
	b.WriteString("\nPrevious conversation:\n")
	if len(history) == 0 {
		b.WriteString("None\n")
	} else {
		for _, t := range history {
			b.WriteString(strings.ToUpper(t.Role))
			b.WriteString(": ")
			b.WriteString(strings.TrimSpace(t.Content))
			b.WriteString("\n")
		}
	}
	b.WriteString("\nUser's latest message: \"")
	b.WriteString(message)
	b.WriteString("\"\n")
	b.WriteString("\nRespond as Valdris would, maintaining the dark fantasy atmosphere while conducting a meaningful community interview.\n")
	return b.String(), nil
}

// Story assembles the document-generation prompt from the full interview
// transcript and the kind-specific template.
func (c *Composer) Story(transcript []string, kind OutputKind) (string, error) {
	if _, err := ParseOutputKind(string(kind)); err != nil {
		return "", err
	}
	if len(transcript) == 0 {
		return "", fmt.Errorf("%w: interview data is required", ErrInvalidInput)
	}

	var b strings.Builder
	b.WriteString(c.spec.System)
	fmt.Fprintf(&b, "\nBased on the community interview data below, create a compelling %s that documents this community's needs and calls for action.\n", kind)
	b.WriteString("\nInterview data:\n")
	for i, line := range transcript {
		fmt.Fprintf(&b, "%d. %s\n", i+1, strings.TrimSpace(line))
	}
	b.WriteString("\n")
	b.WriteString(c.spec.Documents[string(kind)].Instructions)
	b.WriteString("\nWrite in a professional, engaging tone that motivates action while maintaining factual accuracy. Output Markdown with a single top-level heading as the headline.\n")
	return b.String(), nil
}

func (c *Composer) writePersona(b *strings.Builder) {
	b.WriteString(c.spec.System)
	if len(c.spec.Guidelines) > 0 {
		b.WriteString("\nINTERVIEW GUIDELINES:\n")
		for i, g := range c.spec.Guidelines {
			fmt.Fprintf(b, "%d. %s\n", i+1, g)
		}
	}
}
