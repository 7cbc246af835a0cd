package provider

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAI implements ChatClient using the official OpenAI SDK.
type OpenAI struct {
	client openai.Client
	model  openai.ChatModel
	name   string
}

// newOpenAI creates an OpenAI chat client.
func newOpenAI(apiKey, model string) *OpenAI {
	client := openai.NewClient(option.WithAPIKey(apiKey))

	m := openai.ChatModel(model)
	if model == "" {
		m = openai.ChatModelGPT4oMini
	}

	return &OpenAI{
		client: client,
		model:  m,
		name:   "openai",
	}
}

// newCompatible creates a chat client for an OpenAI-compatible endpoint.
func newCompatible(name, apiKey, baseURL, model string) *OpenAI {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
	)

	return &OpenAI{
		client: client,
		model:  openai.ChatModel(model),
		name:   name,
	}
}

// Name returns the provider name.
func (o *OpenAI) Name() string {
	return o.name
}

// Complete sends the prompt as a single user message.
// Temperature is pinned to zero so repeated runs stay as close to
// deterministic as the model allows.
func (o *OpenAI) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: o.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		MaxTokens:   openai.Int(4000),
		Temperature: openai.Float(0),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from API")
	}

	return resp.Choices[0].Message.Content, nil
}
