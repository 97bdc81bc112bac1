package llm

import (
	"context"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient is the alternative provider, selected with LLM_PROVIDER=openai.
// The chat completions surface has no top_k parameter, so Options.TopK is
// ignored here.
type OpenAIClient struct {
	APIKey string
	Model  string
}

func (c *OpenAIClient) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return "", ErrNoCredential
	}
	client := openai.NewClient(c.APIKey)
	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.Model,
		Temperature: opts.Temperature,
		TopP:        opts.TopP,
		MaxTokens:   opts.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt},
		},
	})
	if err != nil {
		return "", providerErr(err.Error())
	}
	if len(resp.Choices) == 0 {
		return "", providerErr("empty choices")
	}
	text := resp.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		return "", providerErr("empty generation")
	}
	return text, nil
}
