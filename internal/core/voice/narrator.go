// Package voice synthesizes audio narration for summaries.
package voice

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	mp3 "github.com/hajimehoshi/go-mp3"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// CredentialEnv gates narration. Text-to-speech always goes through OpenAI,
// regardless of which provider produced the summary.
const CredentialEnv = "OPENAI_API_KEY"

// AudioFileName is the fixed narration file name inside the data directory.
const AudioFileName = "speech.mp3"

// Narrator converts summary text to a single mp3 file at a fixed path,
// overwriting the previous narration on every call.
type Narrator struct {
	outputPath string
	synth      func(ctx context.Context, apiKey, text string) (io.ReadCloser, error)
}

// New creates a Narrator writing to dataDir/speech.mp3.
func New(dataDir string) *Narrator {
	return &Narrator{
		outputPath: filepath.Join(dataDir, AudioFileName),
		synth:      openaiSpeech,
	}
}

// Available reports whether the TTS credential is present. Callers must skip
// synthesis entirely when this is false; a missing credential is a gated
// optional feature, not an error.
func (n *Narrator) Available() bool {
	return os.Getenv(CredentialEnv) != ""
}

// OutputPath returns the fixed narration file path.
func (n *Narrator) OutputPath() string {
	return n.outputPath
}

// Synthesize converts the summary to speech and overwrites the output file.
func (n *Narrator) Synthesize(ctx context.Context, summary string) (string, error) {
	apiKey := os.Getenv(CredentialEnv)
	if apiKey == "" {
		return "", fmt.Errorf("narration unavailable: %s is not set", CredentialEnv)
	}

	body, err := n.synth(ctx, apiKey, summary)
	if err != nil {
		return "", fmt.Errorf("speech synthesis failed: %w", err)
	}
	defer body.Close()

	if err := os.MkdirAll(filepath.Dir(n.outputPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create audio directory: %w", err)
	}

	// Write to a temp file first so a failed call never truncates the
	// previous narration.
	tmp := n.outputPath + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return "", fmt.Errorf("failed to create audio file: %w", err)
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", fmt.Errorf("failed to write audio file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", err
	}
	if err := os.Rename(tmp, n.outputPath); err != nil {
		os.Remove(tmp)
		return "", err
	}

	return n.outputPath, nil
}

// openaiSpeech calls the OpenAI text-to-speech API (tts-1, voice alloy, mp3).
func openaiSpeech(ctx context.Context, apiKey, text string) (io.ReadCloser, error) {
	client := openai.NewClient(option.WithAPIKey(apiKey))

	resp, err := client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Model:          openai.SpeechModelTTS1,
		Voice:          openai.AudioSpeechNewParamsVoiceAlloy,
		Input:          text,
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatMP3,
	})
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// Duration decodes the mp3 header to report the narration length.
func Duration(path string) (time.Duration, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return 0, fmt.Errorf("failed to decode mp3: %w", err)
	}

	// Length is in bytes of 16-bit stereo PCM.
	samples := dec.Length() / 4
	seconds := float64(samples) / float64(dec.SampleRate())
	return time.Duration(seconds * float64(time.Second)), nil
}
