// Package session holds the client-side conversation state: the canonical
// turn record, the interview lines collected for document generation, and the
// one-request-at-a-time sequencing contract.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/lrklep/tale-of-light/internal/types"
)

// Trailing turns sent as chat context; the canonical record keeps everything.
const HistoryWindow = 6

// Minimum interview lines before document generation unlocks.
const MinInterviewLines = 2

type State int

const (
	Idle State = iota
	AwaitingChatReply
	AwaitingStory
)

var (
	ErrBusy              = errors.New("a request is already in flight")
	ErrEmptyMessage      = errors.New("message is empty")
	ErrNotEnoughMaterial = errors.New("not enough interview material yet")
)

// API is the slice of the HTTP client the controller depends on.
type API interface {
	Chat(ctx context.Context, message string, history []types.Turn) (types.ChatResponse, error)
	GenerateStory(ctx context.Context, interviewData []string, outputType string) (types.StoryResponse, error)
}

// Record is the session-scoped state value: created on session start,
// discarded on teardown. Both slices are append-only during the session.
type Record struct {
	History   []types.Turn
	Interview []string
}

// Controller owns a Record and sequences requests against the API. Chat and
// story requests are mutually exclusive: at most one outstanding request of
// either kind.
type Controller struct {
	mu    sync.Mutex
	api   API
	rec   Record
	state State
}

func NewController(api API) *Controller {
	return &Controller{api: api}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Snapshot returns a copy of the session record.
func (c *Controller) Snapshot() Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Record{
		History:   append([]types.Turn(nil), c.rec.History...),
		Interview: append([]string(nil), c.rec.Interview...),
	}
}

func (c *Controller) CanGenerateStory() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.rec.Interview) >= MinInterviewLines
}

// Reset discards the session record, as on page teardown.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rec = Record{}
	c.state = Idle
}

// Send appends the user turn and interview line, issues the chat call with
// the trailing history window, and appends the assistant reply on success.
// A failed call leaves the canonical history without the error text.
func (c *Controller) Send(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", ErrEmptyMessage
	}

	c.mu.Lock()
	if c.state != Idle {
		c.mu.Unlock()
		return "", ErrBusy
	}
	c.state = AwaitingChatReply
	c.rec.History = append(c.rec.History, types.Turn{Role: "user", Content: message})
	c.rec.Interview = append(c.rec.Interview, message)
	window := c.window()
	c.mu.Unlock()

	resp, err := c.api.Chat(ctx, message, window)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Idle
	if err != nil {
		return "", err
	}
	c.rec.History = append(c.rec.History, types.Turn{Role: "assistant", Content: resp.Response})
	return resp.Response, nil
}

// GenerateStory requests a document from the accumulated transcript. Rejected
// locally before any network call when the interview is too short.
func (c *Controller) GenerateStory(ctx context.Context, outputType string) (types.StoryResponse, error) {
	c.mu.Lock()
	if c.state != Idle {
		c.mu.Unlock()
		return types.StoryResponse{}, ErrBusy
	}
	if len(c.rec.Interview) < MinInterviewLines {
		c.mu.Unlock()
		return types.StoryResponse{}, ErrNotEnoughMaterial
	}
	c.state = AwaitingStory
	lines := append([]string(nil), c.rec.Interview...)
	c.mu.Unlock()

	resp, err := c.api.GenerateStory(ctx, lines, outputType)

	c.mu.Lock()
	c.state = Idle
	c.mu.Unlock()
	return resp, err
}

// window returns the trailing HistoryWindow turns, including the user turn
// just appended. Callers must hold the lock.
func (c *Controller) window() []types.Turn {
	h := c.rec.History
	if len(h) > HistoryWindow {
		h = h[len(h)-HistoryWindow:]
	}
	return append([]types.Turn(nil), h...)
}
