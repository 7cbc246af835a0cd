package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/aydinemre/tubesum/internal/core/prompt"
	"github.com/aydinemre/tubesum/internal/core/provider"
	"github.com/aydinemre/tubesum/internal/core/transcript"
)

// Context joins retrieved chunk texts with a blank line, preserving the
// order returned by the retrieval index.
func Context(chunks []transcript.Chunk) string {
	parts := make([]string, len(chunks))
	for i, c := range chunks {
		parts[i] = c.Text
	}
	return strings.Join(parts, "\n\n")
}

// Answer binds the question, retrieved context, and conversation history into
// the retrieval-QA prompt and invokes the client once. History is always
// included so multi-turn answers stay coherent. The prompt instructs the
// model to answer in the question's language. A nil client fails immediately;
// provider errors are reduced to a Diagnostic.
func Answer(ctx context.Context, question string, chunks []transcript.Chunk, history []Turn, client provider.ChatClient) (string, error) {
	if client == nil {
		return "", fmt.Errorf("no provider client: no API key was found for the chosen model")
	}

	p := prompt.Answer(question, Context(chunks), formatHistory(history))

	out, err := client.Complete(ctx, p)
	if err != nil {
		return "", fmt.Errorf("%s", provider.Diagnostic(err))
	}
	return out, nil
}

func formatHistory(turns []Turn) string {
	if len(turns) == 0 {
		return ""
	}
	var b strings.Builder
	for i, turn := range turns {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(turn.Role))
		b.WriteString(": ")
		b.WriteString(turn.Text)
	}
	return b.String()
}
