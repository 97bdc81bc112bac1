package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Generator is the boundary to the external generative-model provider. One
// attempt per call; no retries, no streaming.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts Options) (string, error)
}

// Options are sampling parameters the caller may override per call-site.
// Chat uses a shorter max length than document generation.
type Options struct {
	Temperature float32
	TopP        float32
	TopK        int
	MaxTokens   int
}

// ErrNoCredential is returned before any network I/O when the provider key
// is absent.
var ErrNoCredential = errors.New("provider credential not configured")

// Category is a coarse classification of provider error text. The server maps
// each category to a fixed user-facing message.
type Category string

const (
	CategoryCredential Category = "credential"
	CategoryQuota      Category = "quota"
	CategoryModel      Category = "model"
	CategoryUnknown    Category = "unknown"
)

// ProviderError wraps provider-specific failure detail. Detail is logged but
// never forwarded to clients.
type ProviderError struct {
	Category Category
	Detail   string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error (%s): %s", e.Category, e.Detail)
}

// Classify buckets provider error text by substring inspection. It never
// invents detail the provider did not supply.
func Classify(detail string) Category {
	lower := strings.ToLower(detail)
	switch {
	case strings.Contains(detail, "API_KEY") || strings.Contains(lower, "api key"):
		return CategoryCredential
	case strings.Contains(lower, "quota") || strings.Contains(detail, "RESOURCE_EXHAUSTED"):
		return CategoryQuota
	case strings.Contains(lower, "model not found") || strings.Contains(lower, "unknown model") || strings.Contains(detail, "NOT_FOUND"):
		return CategoryModel
	}
	return CategoryUnknown
}

func providerErr(detail string) error {
	return &ProviderError{Category: Classify(detail), Detail: detail}
}
