// Package server exposes the summarization assistant over HTTP.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aydinemre/tubesum/internal/core/config"
	"github.com/aydinemre/tubesum/internal/core/index"
	"github.com/aydinemre/tubesum/internal/core/session"
	"github.com/aydinemre/tubesum/internal/core/transcript"
	"github.com/aydinemre/tubesum/internal/core/voice"
)

// Response is the standard API response structure
type Response struct {
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
}

const sessionCookie = "tubesum_session"

// Server is the HTTP server for tubesum
type Server struct {
	port    int
	dataDir string
	cfg     *config.Config
	store   *index.Store
	fetcher *transcript.Fetcher

	mu       sync.Mutex
	sessions map[string]*session.Session

	server *http.Server
	engine *gin.Engine
}

// NewServer creates a new HTTP server
func NewServer(port int, dataDir string, cfg *config.Config) *Server {
	return &Server{
		port:     port,
		dataDir:  dataDir,
		cfg:      cfg,
		fetcher:  transcript.NewFetcher(cfg.Languages()),
		sessions: make(map[string]*session.Session),
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	if !config.Exists() {
		log.Printf("no config file found, using defaults (run 'tubesum init' to create one)")
	}

	if err := os.MkdirAll(s.dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	store, err := index.Open(filepath.Join(s.dataDir, "index.db"), index.NewOpenAIEmbedder(os.Getenv("OPENAI_API_KEY")))
	if err != nil {
		return fmt.Errorf("failed to open retrieval index: %w", err)
	}
	s.store = store

	gin.SetMode(gin.ReleaseMode)

	s.engine = gin.New()
	s.engine.Use(gin.Recovery())
	s.engine.Use(s.loggingMiddleware())

	s.engine.GET("/", s.handleIndex)
	s.engine.GET("/audio", s.handleAudio)

	api := s.engine.Group("/api")
	api.GET("/health", s.handleHealth)
	api.GET("/providers", s.handleProviders)
	api.POST("/summarize", s.handleSummarize)
	api.POST("/chat", s.handleChat)
	api.GET("/history", s.handleHistory)

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // Summarization calls can be slow
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Starting tubesum server on port %d", s.port)
	log.Printf("Data directory: %s", s.dataDir)

	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server
func (s *Server) Stop(ctx context.Context) error {
	if s.store != nil {
		defer s.store.Close()
	}
	return s.server.Shutdown(ctx)
}

// sessionFor returns the session bound to the request's cookie, creating one
// (and setting the cookie) on first contact.
func (s *Server) sessionFor(c *gin.Context) *session.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, err := c.Cookie(sessionCookie); err == nil {
		if sess, ok := s.sessions[id]; ok {
			return sess
		}
	}

	// Narration files are keyed by session ID so concurrent sessions never
	// overwrite each other's audio.
	id := uuid.NewString()
	narrator := voice.New(filepath.Join(s.dataDir, "audio", id))
	sess := session.NewWithID(id, s.cfg, s.fetcher, s.store, narrator)
	s.sessions[id] = sess
	c.SetCookie(sessionCookie, id, 0, "/", "", false, true)
	return sess
}

// Middleware

func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Printf("%s %s %s", c.Request.Method, c.Request.URL.Path, time.Since(start))
	}
}
