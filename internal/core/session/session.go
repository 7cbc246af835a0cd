// Package session owns the per-user state: current video, summary,
// conversation, and retrieval index binding.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/aydinemre/tubesum/internal/core/chat"
	"github.com/aydinemre/tubesum/internal/core/config"
	"github.com/aydinemre/tubesum/internal/core/provider"
	"github.com/aydinemre/tubesum/internal/core/summarize"
	"github.com/aydinemre/tubesum/internal/core/transcript"
)

// TranscriptFetcher retrieves a video's transcript chunks.
type TranscriptFetcher interface {
	Fetch(ctx context.Context, videoID string) ([]transcript.Chunk, error)
}

// Index is the retrieval index used for chat grounding.
type Index interface {
	Rebuild(ctx context.Context, collection string, chunks []transcript.Chunk) error
	Query(ctx context.Context, collection, question string, k int) ([]transcript.Chunk, error)
}

// Narrator is the optional text-to-speech capability.
type Narrator interface {
	Available() bool
	Synthesize(ctx context.Context, summary string) (string, error)
	OutputPath() string
}

// Session holds all mutable state for one user. State transitions happen only
// in response to explicit actions: SetVideo, Summarize, Ask. A mutex guards
// against concurrent HTTP requests on the same session.
type Session struct {
	mu sync.Mutex

	id       string
	cfg      *config.Config
	fetcher  TranscriptFetcher
	store    Index
	narrator Narrator

	// instantiate is swapped for a stub in tests.
	instantiate func(name string, cfg *config.Config) provider.ChatClient

	videoID      string
	chunks       []transcript.Chunk
	summary      string
	audioPath    string
	conversation chat.Conversation
	indexReady   bool
}

// New creates an empty session with a fresh identifier.
func New(cfg *config.Config, fetcher TranscriptFetcher, store Index, narrator Narrator) *Session {
	return NewWithID(uuid.NewString(), cfg, fetcher, store, narrator)
}

// NewWithID creates a session with a caller-chosen identifier, so callers can
// key per-session resources (narration files, index collections) by the same
// ID before constructing the session.
func NewWithID(id string, cfg *config.Config, fetcher TranscriptFetcher, store Index, narrator Narrator) *Session {
	return &Session{
		id:          id,
		cfg:         cfg,
		fetcher:     fetcher,
		store:       store,
		narrator:    narrator,
		instantiate: provider.Instantiate,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// collection names this session's partition of the vector store. Keying by
// session ID keeps concurrent sessions from clobbering each other's index.
func (s *Session) collection() string {
	return "video-rag-" + s.id
}

// SetVideo loads the transcript for a URL. When the video ID changes, the
// summary and conversation are cleared and the retrieval index is rebuilt.
// An index rebuild failure is returned as a warning, not an error: chat
// degrades to empty context but summarization still works.
func (s *Session) SetVideo(ctx context.Context, rawURL string) (warning string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := transcript.VideoID(rawURL)
	if err != nil {
		return "", fmt.Errorf("please enter a valid YouTube URL")
	}

	if id == s.videoID && len(s.chunks) > 0 {
		return "", nil
	}

	chunks, err := s.fetcher.Fetch(ctx, id)
	if err != nil {
		return "", fmt.Errorf("transcript could not be obtained")
	}

	s.videoID = id
	s.chunks = chunks
	s.summary = ""
	s.audioPath = ""
	s.conversation.Clear()
	s.indexReady = false

	if err := s.store.Rebuild(ctx, s.collection(), chunks); err != nil {
		return fmt.Sprintf("retrieval index unavailable: %v", err), nil
	}
	s.indexReady = true
	return "", nil
}

// Summarize generates and stores the summary for the current video, then
// attempts narration when the TTS credential is present. Narration failure
// never blocks the text summary; it is returned as a warning.
func (s *Session) Summarize(ctx context.Context, providerName string, opts summarize.Options) (warning string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.chunks) == 0 {
		return "", fmt.Errorf("no transcript loaded; submit a video URL first")
	}

	client := s.instantiate(providerName, s.cfg)
	out, err := summarize.Summarize(ctx, s.chunks, opts, client)
	if err != nil {
		return "", err
	}
	s.summary = out
	s.audioPath = ""

	if s.narrator != nil && s.narrator.Available() {
		path, err := s.narrator.Synthesize(ctx, out)
		if err != nil {
			return fmt.Sprintf("audio narration failed: %v", err), nil
		}
		s.audioPath = path
	}

	return "", nil
}

// Ask answers a question about the current video. The user turn is recorded
// unconditionally; the assistant turn only on success. When the retrieval
// index is unavailable the chat degrades to empty context.
func (s *Session) Ask(ctx context.Context, providerName, question string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.summary == "" {
		return "", fmt.Errorf("no summary yet; summarize the video before asking questions")
	}

	var retrieved []transcript.Chunk
	if s.indexReady {
		var err error
		retrieved, err = s.store.Query(ctx, s.collection(), question, s.cfg.TopK())
		if err != nil {
			retrieved = nil
		}
	}

	history := s.conversation.Turns()
	s.conversation.Append(chat.RoleUser, question)

	client := s.instantiate(providerName, s.cfg)
	answer, err := chat.Answer(ctx, question, retrieved, history, client)
	if err != nil {
		return "", err
	}

	s.conversation.Append(chat.RoleAssistant, answer)
	return answer, nil
}

// VideoID returns the active video identifier, or "".
func (s *Session) VideoID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.videoID
}

// Summary returns the current summary, or "".
func (s *Session) Summary() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summary
}

// AudioPath returns the narration file path, or "" when no narration exists.
func (s *Session) AudioPath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.audioPath
}

// ChatEnabled reports whether the chat box should accept questions.
func (s *Session) ChatEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summary != ""
}

// History returns the conversation so far.
func (s *Session) History() []chat.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conversation.Turns()
}
