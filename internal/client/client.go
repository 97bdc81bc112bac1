// Package client is a thin typed client for the chronicle API, used by the
// terminal frontend and the session controller.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/lrklep/tale-of-light/internal/types"
)

// NetworkError wraps transport-level failures (connection refused, DNS,
// timeouts) as distinct from server-reported errors.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return fmt.Sprintf("network error: %v", e.Err) }
func (e *NetworkError) Unwrap() error { return e.Err }

// APIError carries the server's user-safe error message and HTTP status.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string { return fmt.Sprintf("api error %d: %s", e.Code, e.Message) }

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{BaseURL: strings.TrimRight(baseURL, "/")}
}

func (c *Client) Chat(ctx context.Context, message string, history []types.Turn) (types.ChatResponse, error) {
	var out types.ChatResponse
	err := c.postJSON(ctx, "/api/chat", types.ChatRequest{Message: message, ConversationHistory: history}, &out)
	return out, err
}

func (c *Client) GenerateStory(ctx context.Context, interviewData []string, outputType string) (types.StoryResponse, error) {
	var out types.StoryResponse
	err := c.postJSON(ctx, "/api/generate-story", types.StoryRequest{InterviewData: interviewData, OutputType: outputType}, &out)
	return out, err
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr types.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil || apiErr.Error == "" {
			return &APIError{Code: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return &APIError{Code: resp.StatusCode, Message: apiErr.Error}
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
