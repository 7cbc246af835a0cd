package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/aydinemre/tubesum/internal/core/chat"
	"github.com/aydinemre/tubesum/internal/core/config"
	"github.com/aydinemre/tubesum/internal/core/prompt"
	"github.com/aydinemre/tubesum/internal/core/provider"
	"github.com/aydinemre/tubesum/internal/core/summarize"
	"github.com/aydinemre/tubesum/internal/core/transcript"
)

type stubFetcher struct {
	chunks map[string][]transcript.Chunk
	err    error
	calls  int
}

func (f *stubFetcher) Fetch(_ context.Context, videoID string) ([]transcript.Chunk, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	chunks, ok := f.chunks[videoID]
	if !ok {
		return nil, fmt.Errorf("no transcript for %s", videoID)
	}
	return chunks, nil
}

type stubIndex struct {
	collections map[string][]transcript.Chunk
	rebuildErr  error
	queryErr    error
	rebuilds    int
}

func (s *stubIndex) Rebuild(_ context.Context, collection string, chunks []transcript.Chunk) error {
	s.rebuilds++
	if s.rebuildErr != nil {
		return s.rebuildErr
	}
	if s.collections == nil {
		s.collections = make(map[string][]transcript.Chunk)
	}
	s.collections[collection] = chunks
	return nil
}

func (s *stubIndex) Query(_ context.Context, collection, _ string, k int) ([]transcript.Chunk, error) {
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	chunks := s.collections[collection]
	if k > len(chunks) {
		k = len(chunks)
	}
	return chunks[:k], nil
}

type stubNarrator struct {
	available bool
	err       error
	calls     int
}

func (n *stubNarrator) Available() bool { return n.available }

func (n *stubNarrator) Synthesize(context.Context, string) (string, error) {
	n.calls++
	if n.err != nil {
		return "", n.err
	}
	return "/tmp/speech.mp3", nil
}

func (n *stubNarrator) OutputPath() string { return "/tmp/speech.mp3" }

type stubClient struct {
	reply   string
	err     error
	prompts []string
}

func (c *stubClient) Complete(_ context.Context, p string) (string, error) {
	c.prompts = append(c.prompts, p)
	if c.err != nil {
		return "", c.err
	}
	return c.reply, nil
}

func (c *stubClient) Name() string { return "stub" }

const (
	videoA = "aaaaaaaaaaa"
	videoB = "bbbbbbbbbbb"
)

func watchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}

func threeChunks(word string) []transcript.Chunk {
	return []transcript.Chunk{
		{Text: word + " one", Start: 0, Duration: 15},
		{Text: word + " two", Start: 15, Duration: 15},
		{Text: word + " three", Start: 30, Duration: 15},
	}
}

func newTestSession(fetcher *stubFetcher, store *stubIndex, narrator *stubNarrator, client provider.ChatClient) *Session {
	s := New(config.DefaultConfig(), fetcher, store, narrator)
	s.instantiate = func(string, *config.Config) provider.ChatClient {
		return client
	}
	return s
}

func TestSetVideoInvalidURL(t *testing.T) {
	s := newTestSession(&stubFetcher{}, &stubIndex{}, &stubNarrator{}, nil)

	if _, err := s.SetVideo(context.Background(), "https://example.com/nope"); err == nil {
		t.Fatal("SetVideo(invalid) = nil error")
	}
}

func TestSetVideoTranscriptFailure(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("captions disabled")}
	s := newTestSession(fetcher, &stubIndex{}, &stubNarrator{}, nil)

	if _, err := s.SetVideo(context.Background(), watchURL(videoA)); err == nil {
		t.Fatal("SetVideo() = nil error when transcript unavailable")
	}
}

func TestSetVideoClearsStateOnChange(t *testing.T) {
	fetcher := &stubFetcher{chunks: map[string][]transcript.Chunk{
		videoA: threeChunks("alpha"),
		videoB: threeChunks("beta"),
	}}
	store := &stubIndex{}
	client := &stubClient{reply: "a summary"}
	s := newTestSession(fetcher, store, &stubNarrator{}, client)
	ctx := context.Background()

	if _, err := s.SetVideo(ctx, watchURL(videoA)); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Summarize(ctx, "openai", summarize.Options{}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Ask(ctx, "openai", "q1"); err != nil {
		t.Fatal(err)
	}
	if len(s.History()) != 2 {
		t.Fatalf("history = %d turns; want 2", len(s.History()))
	}

	// Switching videos clears summary and conversation and rebuilds.
	if _, err := s.SetVideo(ctx, watchURL(videoB)); err != nil {
		t.Fatal(err)
	}
	if s.Summary() != "" {
		t.Error("summary survived video change")
	}
	if len(s.History()) != 0 {
		t.Error("conversation survived video change")
	}
	if store.rebuilds != 2 {
		t.Errorf("rebuilds = %d; want 2", store.rebuilds)
	}

	// Resubmitting the same URL is a no-op.
	if _, err := s.SetVideo(ctx, watchURL(videoB)); err != nil {
		t.Fatal(err)
	}
	if fetcher.calls != 2 {
		t.Errorf("fetch calls = %d; want 2 (same video not refetched)", fetcher.calls)
	}
}

func TestSetVideoIndexFailureIsWarning(t *testing.T) {
	fetcher := &stubFetcher{chunks: map[string][]transcript.Chunk{videoA: threeChunks("x")}}
	store := &stubIndex{rebuildErr: errors.New("disk full")}
	client := &stubClient{reply: "summary anyway"}
	s := newTestSession(fetcher, store, &stubNarrator{}, client)
	ctx := context.Background()

	warning, err := s.SetVideo(ctx, watchURL(videoA))
	if err != nil {
		t.Fatalf("SetVideo() error = %v; index failure must not be fatal", err)
	}
	if warning == "" {
		t.Error("SetVideo() returned no warning for index failure")
	}

	// Summarization and chat still proceed, chat with empty context.
	if _, err := s.Summarize(ctx, "openai", summarize.Options{}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Ask(ctx, "openai", "a question"); err != nil {
		t.Fatal(err)
	}
	lastPrompt := client.prompts[len(client.prompts)-1]
	if !strings.Contains(lastPrompt, "Question: a question") {
		t.Errorf("chat prompt missing question:\n%s", lastPrompt)
	}
}

func TestSummarizeEndToEnd(t *testing.T) {
	fetcher := &stubFetcher{chunks: map[string][]transcript.Chunk{videoA: threeChunks("topic")}}
	narrator := &stubNarrator{available: false}
	client := &stubClient{reply: "This video discusses topics."}
	s := newTestSession(fetcher, &stubIndex{}, narrator, client)
	ctx := context.Background()

	if _, err := s.SetVideo(ctx, watchURL(videoA)); err != nil {
		t.Fatal(err)
	}

	warning, err := s.Summarize(ctx, "openai", summarize.Options{
		Persona:  prompt.ThirdPerson,
		Length:   prompt.Short,
		Language: "English",
	})
	if err != nil {
		t.Fatalf("Summarize() error: %v", err)
	}
	if warning != "" {
		t.Errorf("unexpected warning: %q", warning)
	}

	if len(client.prompts) != 1 {
		t.Fatalf("provider invoked %d times; want once", len(client.prompts))
	}
	p := client.prompts[0]
	if !strings.Contains(p, "2 tenth") {
		t.Errorf("prompt missing short length factor:\n%s", p)
	}
	if !strings.Contains(p, "English") {
		t.Errorf("prompt missing language:\n%s", p)
	}
	if !strings.Contains(p, "topic one topic two topic three") {
		t.Errorf("prompt missing ordered transcript:\n%s", p)
	}

	if s.Summary() != "This video discusses topics." {
		t.Errorf("Summary() = %q; want provider output verbatim", s.Summary())
	}
	if !s.ChatEnabled() {
		t.Error("ChatEnabled() = false after successful summary")
	}

	// TTS credential absent: synthesis never attempted, summary unaffected.
	if narrator.calls != 0 {
		t.Errorf("narrator invoked %d times while unavailable; want 0", narrator.calls)
	}
	if s.AudioPath() != "" {
		t.Errorf("AudioPath() = %q; want empty without narration", s.AudioPath())
	}
}

func TestSummarizeWithNarration(t *testing.T) {
	fetcher := &stubFetcher{chunks: map[string][]transcript.Chunk{videoA: threeChunks("x")}}
	narrator := &stubNarrator{available: true}
	s := newTestSession(fetcher, &stubIndex{}, narrator, &stubClient{reply: "sum"})
	ctx := context.Background()

	if _, err := s.SetVideo(ctx, watchURL(videoA)); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Summarize(ctx, "openai", summarize.Options{}); err != nil {
		t.Fatal(err)
	}

	if narrator.calls != 1 {
		t.Errorf("narrator invoked %d times; want 1", narrator.calls)
	}
	if s.AudioPath() == "" {
		t.Error("AudioPath() empty after narration")
	}
}

func TestSummarizeNarrationFailureIsWarning(t *testing.T) {
	fetcher := &stubFetcher{chunks: map[string][]transcript.Chunk{videoA: threeChunks("x")}}
	narrator := &stubNarrator{available: true, err: errors.New("tts down")}
	s := newTestSession(fetcher, &stubIndex{}, narrator, &stubClient{reply: "sum"})
	ctx := context.Background()

	if _, err := s.SetVideo(ctx, watchURL(videoA)); err != nil {
		t.Fatal(err)
	}

	warning, err := s.Summarize(ctx, "openai", summarize.Options{})
	if err != nil {
		t.Fatalf("Summarize() error = %v; narration failure must not block summary", err)
	}
	if warning == "" {
		t.Error("no warning for narration failure")
	}
	if s.Summary() != "sum" {
		t.Errorf("Summary() = %q; want stored despite narration failure", s.Summary())
	}
}

func TestSummarizeUnavailableProvider(t *testing.T) {
	fetcher := &stubFetcher{chunks: map[string][]transcript.Chunk{videoA: threeChunks("x")}}
	s := newTestSession(fetcher, &stubIndex{}, &stubNarrator{}, nil)
	ctx := context.Background()

	if _, err := s.SetVideo(ctx, watchURL(videoA)); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Summarize(ctx, "openai", summarize.Options{}); err == nil {
		t.Fatal("Summarize() = nil error with unavailable provider")
	}
	if s.Summary() != "" {
		t.Error("summary stored despite failure")
	}
}

func TestAskConversationRules(t *testing.T) {
	fetcher := &stubFetcher{chunks: map[string][]transcript.Chunk{videoA: threeChunks("x")}}
	client := &stubClient{reply: "answer one"}
	s := newTestSession(fetcher, &stubIndex{}, &stubNarrator{}, client)
	ctx := context.Background()

	if _, err := s.SetVideo(ctx, watchURL(videoA)); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Summarize(ctx, "openai", summarize.Options{}); err != nil {
		t.Fatal(err)
	}

	answer, err := s.Ask(ctx, "openai", "first question")
	if err != nil {
		t.Fatal(err)
	}
	if answer != "answer one" {
		t.Errorf("Ask() = %q", answer)
	}

	history := s.History()
	if len(history) != 2 {
		t.Fatalf("history = %d turns; want 2", len(history))
	}
	if history[0].Role != chat.RoleUser || history[0].Text != "first question" {
		t.Errorf("history[0] = %+v; want user question", history[0])
	}
	if history[1].Role != chat.RoleAssistant || history[1].Text != "answer one" {
		t.Errorf("history[1] = %+v; want assistant answer", history[1])
	}

	// On failure the user turn is still recorded, the assistant turn is not.
	client.err = errors.New(`{"message": "Rate limit exceeded"}`)
	if _, err := s.Ask(ctx, "openai", "second question"); err == nil {
		t.Fatal("Ask() = nil error on provider failure")
	} else if err.Error() != "Rate limit exceeded" {
		t.Errorf("diagnostic = %q", err.Error())
	}

	history = s.History()
	if len(history) != 3 {
		t.Fatalf("history = %d turns; want 3 (user turn recorded on failure)", len(history))
	}
	if history[2].Role != chat.RoleUser || history[2].Text != "second question" {
		t.Errorf("history[2] = %+v; want failed user turn", history[2])
	}
}

func TestAskRequiresSummary(t *testing.T) {
	fetcher := &stubFetcher{chunks: map[string][]transcript.Chunk{videoA: threeChunks("x")}}
	s := newTestSession(fetcher, &stubIndex{}, &stubNarrator{}, &stubClient{reply: "a"})
	ctx := context.Background()

	if _, err := s.SetVideo(ctx, watchURL(videoA)); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Ask(ctx, "openai", "too early"); err == nil {
		t.Fatal("Ask() = nil error before summary")
	}
}
