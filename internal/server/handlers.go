package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aydinemre/tubesum/internal/core/prompt"
	"github.com/aydinemre/tubesum/internal/core/provider"
	"github.com/aydinemre/tubesum/internal/core/summarize"
	"github.com/aydinemre/tubesum/internal/core/version"
)

// SummarizeRequest is the request body for POST /api/summarize
type SummarizeRequest struct {
	URL      string `json:"url" binding:"required"`
	Persona  string `json:"persona"`
	Length   string `json:"length"`
	Provider string `json:"provider" binding:"required"`
	Language string `json:"language"`
}

// ChatRequest is the request body for POST /api/chat
type ChatRequest struct {
	Question string `json:"question" binding:"required"`
	Provider string `json:"provider" binding:"required"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Code: 200,
		Data: gin.H{
			"status":  "ok",
			"version": version.Version,
		},
		Message: "everything is good",
	})
}

func (s *Server) handleProviders(c *gin.Context) {
	providers := make([]gin.H, 0, len(provider.List()))
	for _, info := range provider.List() {
		providers = append(providers, gin.H{
			"name":      info.Name,
			"display":   info.Display,
			"available": provider.IsAvailable(info.Name),
		})
	}

	c.JSON(http.StatusOK, Response{
		Code: 200,
		Data: gin.H{
			"providers": providers,
			"languages": prompt.Languages,
		},
		Message: "providers retrieved",
	})
}

func (s *Server) handleSummarize(c *gin.Context) {
	var req SummarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Code: 400, Message: "invalid request: " + err.Error()})
		return
	}

	opts, ok := summarizeOptions(req)
	if !ok {
		c.JSON(http.StatusBadRequest, Response{Code: 400, Message: "invalid persona, length, or language"})
		return
	}

	if !provider.IsAvailable(req.Provider) {
		c.JSON(http.StatusOK, Response{
			Code:    409,
			Message: "no API key was found for the chosen model",
		})
		return
	}

	sess := s.sessionFor(c)
	ctx := c.Request.Context()

	indexWarning, err := sess.SetVideo(ctx, req.URL)
	if err != nil {
		c.JSON(http.StatusOK, Response{Code: 422, Message: err.Error()})
		return
	}

	audioWarning, err := sess.Summarize(ctx, req.Provider, opts)
	if err != nil {
		c.JSON(http.StatusOK, Response{Code: 502, Message: err.Error()})
		return
	}

	warning := indexWarning
	if warning == "" {
		warning = audioWarning
	}

	c.JSON(http.StatusOK, Response{
		Code: 200,
		Data: gin.H{
			"video_id": sess.VideoID(),
			"summary":  sess.Summary(),
			"audio":    sess.AudioPath() != "",
			"warning":  warning,
		},
		Message: "summary generated",
	})
}

func (s *Server) handleChat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Code: 400, Message: "invalid request: " + err.Error()})
		return
	}

	sess := s.sessionFor(c)

	answer, err := sess.Ask(c.Request.Context(), req.Provider, req.Question)
	if err != nil {
		c.JSON(http.StatusOK, Response{Code: 502, Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, Response{
		Code: 200,
		Data: gin.H{
			"answer":  answer,
			"history": sess.History(),
		},
		Message: "answer generated",
	})
}

func (s *Server) handleHistory(c *gin.Context) {
	sess := s.sessionFor(c)
	c.JSON(http.StatusOK, Response{
		Code: 200,
		Data: gin.H{
			"video_id":     sess.VideoID(),
			"summary":      sess.Summary(),
			"audio":        sess.AudioPath() != "",
			"chat_enabled": sess.ChatEnabled(),
			"history":      sess.History(),
		},
		Message: "session state",
	})
}

func (s *Server) handleAudio(c *gin.Context) {
	sess := s.sessionFor(c)
	path := sess.AudioPath()
	if path == "" {
		c.JSON(http.StatusNotFound, Response{Code: 404, Message: "no narration available"})
		return
	}
	c.Header("Content-Type", "audio/mpeg")
	c.File(path)
}

// summarizeOptions maps the request's form values onto summarizer options.
func summarizeOptions(req SummarizeRequest) (summarize.Options, bool) {
	opts := summarize.Options{
		Persona:  prompt.ThirdPerson,
		Length:   prompt.Short,
		Language: req.Language,
	}

	switch req.Persona {
	case "", "Third-Person":
	case "First-Person":
		opts.Persona = prompt.FirstPerson
	default:
		return opts, false
	}

	switch req.Length {
	case "", "Short":
	case "Long":
		opts.Length = prompt.Long
	default:
		return opts, false
	}

	if req.Language != "" && !prompt.IsLanguage(req.Language) {
		return opts, false
	}
	if req.Language == prompt.OriginalLanguage {
		opts.Language = ""
	}

	return opts, true
}
