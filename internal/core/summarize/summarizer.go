// Package summarize turns a transcript into a summary via a chat provider.
package summarize

import (
	"context"
	"fmt"

	"github.com/aydinemre/tubesum/internal/core/prompt"
	"github.com/aydinemre/tubesum/internal/core/provider"
	"github.com/aydinemre/tubesum/internal/core/transcript"
)

// Options selects the summary voice, relative length, and output language.
type Options struct {
	Persona  prompt.Persona
	Length   prompt.Length
	Language string // "" or prompt.OriginalLanguage preserves the source language
}

// Summarize renders the persona template over the transcript and invokes the
// client once, returning its output verbatim. A nil client fails immediately
// without any provider call. Provider errors are reduced to a Diagnostic; the
// raw provider error never crosses this boundary.
func Summarize(ctx context.Context, chunks []transcript.Chunk, opts Options, client provider.ChatClient) (string, error) {
	if client == nil {
		return "", fmt.Errorf("no provider client: no API key was found for the chosen model")
	}
	if len(chunks) == 0 {
		return "", fmt.Errorf("transcript is empty")
	}

	p := prompt.Summarize(opts.Persona, opts.Length, opts.Language, transcript.Join(chunks))

	out, err := client.Complete(ctx, p)
	if err != nil {
		return "", fmt.Errorf("%s", provider.Diagnostic(err))
	}
	return out, nil
}
