// Package output provides markdown formatters for one-shot CLI runs.
package output

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aydinemre/tubesum/internal/core/transcript"
)

// WriteTranscript writes the chunked transcript to a markdown file.
func WriteTranscript(outputPath, videoID string, chunks []transcript.Chunk) error {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("# Transcript: %s\n\n", videoID))
	b.WriteString(fmt.Sprintf("**Chunks:** %d × %ds\n", len(chunks), transcript.ChunkSeconds))
	b.WriteString(fmt.Sprintf("**Fetched:** %s\n", time.Now().Format("2006-01-02 15:04:05")))
	b.WriteString("\n---\n\n")

	for _, c := range chunks {
		text := strings.TrimSpace(c.Text)
		if text == "" {
			continue
		}
		b.WriteString(fmt.Sprintf("[%s] %s\n\n", formatTimestamp(c.Start), text))
	}

	return os.WriteFile(outputPath, []byte(b.String()), 0644)
}

// WriteSummary writes a summary to a markdown file.
func WriteSummary(outputPath, videoID, persona, length, language, summary string) error {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("# Summary: %s\n\n", videoID))
	b.WriteString(fmt.Sprintf("**Persona:** %s\n", persona))
	b.WriteString(fmt.Sprintf("**Length:** %s\n", length))
	if language != "" {
		b.WriteString(fmt.Sprintf("**Language:** %s\n", language))
	}
	b.WriteString(fmt.Sprintf("**Summarized:** %s\n", time.Now().Format("2006-01-02 15:04:05")))
	b.WriteString("\n---\n\n")
	b.WriteString(summary)
	b.WriteString("\n")

	return os.WriteFile(outputPath, []byte(b.String()), 0644)
}

// formatTimestamp formats seconds as MM:SS or HH:MM:SS.
func formatTimestamp(seconds float64) string {
	d := time.Duration(seconds * float64(time.Second))
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60

	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
