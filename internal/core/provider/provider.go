// Package provider maps chat-completion providers to credentials and clients.
package provider

import (
	"context"
	"os"

	"github.com/aydinemre/tubesum/internal/core/config"
)

// ChatClient is the capability interface over a chat-completion backend.
type ChatClient interface {
	// Complete sends a rendered prompt and returns the text completion.
	Complete(ctx context.Context, prompt string) (string, error)

	// Name returns the provider name.
	Name() string
}

// Info describes one registry entry.
type Info struct {
	Name       string // registry key, e.g. "openai"
	Display    string // human-readable label shown in the UI
	Credential string // environment variable holding the API key
}

// registry is the fixed provider set, in display order.
var registry = []Info{
	{Name: "openai", Display: "OpenAI GPT-4o", Credential: "OPENAI_API_KEY"},
	{Name: "anthropic", Display: "Anthropic Claude", Credential: "ANTHROPIC_API_KEY"},
	{Name: "gemini", Display: "Google Gemini", Credential: "GOOGLE_API_KEY"},
	{Name: "qwen", Display: "Alibaba Qwen", Credential: "DASHSCOPE_API_KEY"},
}

// List returns all providers in stable registry order.
func List() []Info {
	out := make([]Info, len(registry))
	copy(out, registry)
	return out
}

// Lookup finds a registry entry by name.
func Lookup(name string) (Info, bool) {
	for _, info := range registry {
		if info.Name == name {
			return info, true
		}
	}
	return Info{}, false
}

// IsAvailable reports whether the provider's credential is set and non-empty.
// The environment is read at call time; the value itself is never logged.
func IsAvailable(name string) bool {
	info, ok := Lookup(name)
	if !ok {
		return false
	}
	return os.Getenv(info.Credential) != ""
}

// Instantiate constructs a client for the named provider. It returns nil for
// unknown or unavailable providers; callers treat nil as a normal state, not
// an error.
func Instantiate(name string, cfg *config.Config) ChatClient {
	info, ok := Lookup(name)
	if !ok {
		return nil
	}
	apiKey := os.Getenv(info.Credential)
	if apiKey == "" {
		return nil
	}

	model := cfg.Model(name)

	switch name {
	case "openai":
		return newOpenAI(apiKey, model)
	case "anthropic":
		return newAnthropic(apiKey, model)
	case "gemini":
		return newGemini(apiKey, model)
	case "qwen":
		return newQwen(apiKey, model)
	default:
		return nil
	}
}
