package session

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lrklep/tale-of-light/internal/types"
)

type fakeAPI struct {
	chatCalls  int
	storyCalls int
	lastWindow []types.Turn
	reply      string
	story      string
	err        error
	// blockUntil lets a test hold a call open to observe the busy state
	blockUntil chan struct{}
}

func (f *fakeAPI) Chat(_ context.Context, _ string, history []types.Turn) (types.ChatResponse, error) {
	f.chatCalls++
	f.lastWindow = append([]types.Turn(nil), history...)
	if f.blockUntil != nil {
		<-f.blockUntil
	}
	if f.err != nil {
		return types.ChatResponse{}, f.err
	}
	return types.ChatResponse{Response: f.reply, Status: "success"}, nil
}

func (f *fakeAPI) GenerateStory(_ context.Context, lines []string, outputType string) (types.StoryResponse, error) {
	f.storyCalls++
	if f.err != nil {
		return types.StoryResponse{}, f.err
	}
	return types.StoryResponse{Story: f.story, Type: outputType, Status: "success"}, nil
}

func TestSendAppendsBothTurns(t *testing.T) {
	api := &fakeAPI{reply: "Tell me more, traveler."}
	c := NewController(api)

	reply, err := c.Send(context.Background(), "We need a community garden")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if reply != "Tell me more, traveler." {
		t.Errorf("unexpected reply %q", reply)
	}

	rec := c.Snapshot()
	if len(rec.History) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(rec.History))
	}
	if rec.History[0].Role != "user" || rec.History[1].Role != "assistant" {
		t.Errorf("unexpected roles: %+v", rec.History)
	}
	if len(rec.Interview) != 1 || rec.Interview[0] != "We need a community garden" {
		t.Errorf("interview line not recorded: %+v", rec.Interview)
	}
	if c.State() != Idle {
		t.Errorf("expected Idle after reply")
	}
}

func TestSendRejectsEmptyMessage(t *testing.T) {
	c := NewController(&fakeAPI{})
	if _, err := c.Send(context.Background(), "   "); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
	if len(c.Snapshot().History) != 0 {
		t.Errorf("empty message mutated history")
	}
}

func TestFailedReplyDoesNotPolluteHistory(t *testing.T) {
	api := &fakeAPI{err: errors.New("The mystical energies are disrupted")}
	c := NewController(api)

	if _, err := c.Send(context.Background(), "hello"); err == nil {
		t.Fatal("expected error")
	}

	rec := c.Snapshot()
	// the user turn stays; no error text enters the canonical record
	if len(rec.History) != 1 {
		t.Fatalf("expected 1 turn after failure, got %d", len(rec.History))
	}
	for _, turn := range rec.History {
		if turn.Role == "assistant" {
			t.Errorf("assistant turn appended on failure: %+v", turn)
		}
	}
	if c.State() != Idle {
		t.Errorf("controller stuck in %v after failure", c.State())
	}

	// and the session recovers for the next send
	api.err = nil
	api.reply = "welcome back"
	if _, err := c.Send(context.Background(), "retry"); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
}

func TestWindowTrailingSixTurns(t *testing.T) {
	api := &fakeAPI{reply: "noted"}
	c := NewController(api)

	for i := 0; i < 5; i++ {
		if _, err := c.Send(context.Background(), fmt.Sprintf("line %d", i)); err != nil {
			t.Fatalf("Send: %v", err)
		}
	}
	// 5 sends -> 9 turns at call time for the last send; window caps at 6
	if len(api.lastWindow) != HistoryWindow {
		t.Fatalf("expected window of %d, got %d", HistoryWindow, len(api.lastWindow))
	}
	// the latest user turn is the last element of the window
	last := api.lastWindow[len(api.lastWindow)-1]
	if last.Role != "user" || last.Content != "line 4" {
		t.Errorf("window does not end with the latest user turn: %+v", last)
	}
	// the canonical record is not truncated
	if got := len(c.Snapshot().History); got != 10 {
		t.Errorf("canonical history truncated: %d turns", got)
	}
}

func TestStoryRequiresTwoInterviewLines(t *testing.T) {
	api := &fakeAPI{reply: "noted", story: "# Chronicle"}
	c := NewController(api)

	if _, err := c.GenerateStory(context.Background(), "flyer"); !errors.Is(err, ErrNotEnoughMaterial) {
		t.Fatalf("expected ErrNotEnoughMaterial, got %v", err)
	}
	if api.storyCalls != 0 {
		t.Errorf("story call issued below threshold")
	}

	if _, err := c.Send(context.Background(), "first"); err != nil {
		t.Fatal(err)
	}
	if c.CanGenerateStory() {
		t.Errorf("one interview line should not unlock generation")
	}
	if _, err := c.Send(context.Background(), "second"); err != nil {
		t.Fatal(err)
	}
	if !c.CanGenerateStory() {
		t.Errorf("two interview lines should unlock generation")
	}

	resp, err := c.GenerateStory(context.Background(), "flyer")
	if err != nil {
		t.Fatalf("GenerateStory: %v", err)
	}
	if resp.Story == "" || resp.Type != "flyer" {
		t.Errorf("unexpected story response: %+v", resp)
	}
	if api.storyCalls != 1 {
		t.Errorf("expected exactly one story call, got %d", api.storyCalls)
	}
}

func TestBusyControllerRejectsConcurrentRequests(t *testing.T) {
	api := &fakeAPI{reply: "noted", blockUntil: make(chan struct{})}
	c := NewController(api)

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := c.Send(context.Background(), "held open"); err != nil {
			t.Errorf("Send: %v", err)
		}
	}()

	// wait for the in-flight call to register
	deadline := time.Now().Add(time.Second)
	for c.State() != AwaitingChatReply {
		if time.Now().After(deadline) {
			t.Fatal("controller never entered AwaitingChatReply")
		}
		time.Sleep(time.Millisecond)
	}

	if _, err := c.Send(context.Background(), "second"); !errors.Is(err, ErrBusy) {
		t.Errorf("expected ErrBusy for concurrent send, got %v", err)
	}
	if _, err := c.GenerateStory(context.Background(), "blog"); !errors.Is(err, ErrBusy) {
		t.Errorf("expected ErrBusy for story during chat, got %v", err)
	}

	close(api.blockUntil)
	<-done
	if c.State() != Idle {
		t.Errorf("expected Idle after completion")
	}
}

func TestReset(t *testing.T) {
	api := &fakeAPI{reply: "noted"}
	c := NewController(api)
	if _, err := c.Send(context.Background(), "hello"); err != nil {
		t.Fatal(err)
	}
	c.Reset()
	rec := c.Snapshot()
	if len(rec.History) != 0 || len(rec.Interview) != 0 {
		t.Errorf("reset did not discard session state")
	}
}
