package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aydinemre/tubesum/internal/core/provider"
	"github.com/aydinemre/tubesum/internal/core/transcript"
)

type stubClient struct {
	reply   string
	err     error
	prompts []string
}

func (s *stubClient) Complete(_ context.Context, p string) (string, error) {
	s.prompts = append(s.prompts, p)
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func (s *stubClient) Name() string { return "stub" }

func TestContextJoinPreservesOrder(t *testing.T) {
	// Retrieval order is relevance order and must not be re-sorted.
	chunks := []transcript.Chunk{{Text: "b"}, {Text: "a"}}
	if got := Context(chunks); got != "b\n\na" {
		t.Errorf("Context() = %q; want %q", got, "b\n\na")
	}
}

func TestContextEmpty(t *testing.T) {
	if got := Context(nil); got != "" {
		t.Errorf("Context(nil) = %q; want empty", got)
	}
}

func TestAnswer(t *testing.T) {
	stub := &stubClient{reply: "the answer"}
	chunks := []transcript.Chunk{{Text: "first"}, {Text: "second"}}
	history := []Turn{
		{Role: RoleUser, Text: "earlier question"},
		{Role: RoleAssistant, Text: "earlier answer"},
	}

	got, err := Answer(context.Background(), "what now?", chunks, history, stub)
	if err != nil {
		t.Fatalf("Answer() error: %v", err)
	}
	if got != "the answer" {
		t.Errorf("Answer() = %q; want provider output verbatim", got)
	}
	if len(stub.prompts) != 1 {
		t.Fatalf("provider invoked %d times; want once", len(stub.prompts))
	}

	p := stub.prompts[0]
	if !strings.Contains(p, "first\n\nsecond") {
		t.Errorf("prompt missing joined context:\n%s", p)
	}
	if !strings.Contains(p, "user: earlier question\nassistant: earlier answer") {
		t.Errorf("prompt missing history:\n%s", p)
	}
	if !strings.Contains(p, "Question: what now?") {
		t.Errorf("prompt missing question:\n%s", p)
	}
}

func TestAnswerNilClient(t *testing.T) {
	_, err := Answer(context.Background(), "q", nil, nil, nil)
	if err == nil {
		t.Fatal("Answer(nil client) = nil error")
	}
}

func TestAnswerEmptyContext(t *testing.T) {
	// Index failures degrade to empty-context chat; the call still goes out.
	stub := &stubClient{reply: "best effort"}
	got, err := Answer(context.Background(), "q", nil, nil, stub)
	if err != nil {
		t.Fatalf("Answer() error: %v", err)
	}
	if got != "best effort" {
		t.Errorf("Answer() = %q", got)
	}
}

func TestAnswerProviderError(t *testing.T) {
	stub := &stubClient{err: errors.New(`{"message": "Rate limit exceeded"}`)}
	_, err := Answer(context.Background(), "q", nil, nil, stub)
	if err == nil {
		t.Fatal("Answer() = nil error on provider failure")
	}
	if err.Error() != "Rate limit exceeded" {
		t.Errorf("diagnostic = %q; want %q", err.Error(), "Rate limit exceeded")
	}

	opaque := &stubClient{err: errors.New("boom")}
	_, err = Answer(context.Background(), "q", nil, nil, opaque)
	if err == nil || err.Error() != provider.FallbackDiagnostic {
		t.Errorf("diagnostic = %v; want fallback", err)
	}
}

func TestConversation(t *testing.T) {
	var c Conversation

	c.Append(RoleUser, "hi")
	c.Append(RoleAssistant, "hello")

	turns := c.Turns()
	if len(turns) != 2 || turns[0].Role != RoleUser || turns[1].Role != RoleAssistant {
		t.Errorf("Turns() = %+v", turns)
	}

	// Turns returns a copy; mutating it must not affect the conversation.
	turns[0].Text = "mutated"
	if c.Turns()[0].Text != "hi" {
		t.Error("Turns() exposed internal state")
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d; want 0", c.Len())
	}
}
