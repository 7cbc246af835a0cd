package provider

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// Anthropic implements ChatClient using Anthropic Claude.
type Anthropic struct {
	client *anthropic.Client
	model  string
}

// newAnthropic creates an Anthropic chat client.
func newAnthropic(apiKey, model string) *Anthropic {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	if model == "" {
		model = "claude-3-opus-20240229"
	}

	return &Anthropic{
		client: &client,
		model:  model,
	}
}

// Name returns the provider name.
func (a *Anthropic) Name() string {
	return "anthropic"
}

// Complete sends the prompt as a single user message.
func (a *Anthropic) Complete(ctx context.Context, prompt string) (string, error) {
	message, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(a.model),
		MaxTokens:   4000,
		Temperature: anthropic.Float(0),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion API error: %w", err)
	}

	var content string
	for _, block := range message.Content {
		if block.Type == "text" {
			content += block.Text
		}
	}

	if content == "" {
		return "", fmt.Errorf("no response from API")
	}

	return content, nil
}
