package voice

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"
)

func TestAvailable(t *testing.T) {
	n := New(t.TempDir())

	t.Setenv(CredentialEnv, "")
	if n.Available() {
		t.Error("Available() = true with empty credential")
	}

	t.Setenv(CredentialEnv, "sk-test")
	if !n.Available() {
		t.Error("Available() = false with credential set")
	}
}

func TestSynthesizeGating(t *testing.T) {
	t.Setenv(CredentialEnv, "")

	calls := 0
	n := New(t.TempDir())
	n.synth = func(context.Context, string, string) (io.ReadCloser, error) {
		calls++
		return io.NopCloser(strings.NewReader("mp3")), nil
	}

	if _, err := n.Synthesize(context.Background(), "summary"); err == nil {
		t.Fatal("Synthesize() = nil error without credential")
	}
	if calls != 0 {
		t.Errorf("TTS invoked %d times without credential; want 0", calls)
	}
}

func TestSynthesizeOverwrites(t *testing.T) {
	t.Setenv(CredentialEnv, "sk-test")

	var payload string
	n := New(t.TempDir())
	n.synth = func(_ context.Context, _, text string) (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(payload + ":" + text)), nil
	}

	payload = "first"
	path, err := n.Synthesize(context.Background(), "summary one")
	if err != nil {
		t.Fatalf("Synthesize() error: %v", err)
	}
	if path != n.OutputPath() {
		t.Errorf("path = %q; want fixed %q", path, n.OutputPath())
	}

	payload = "second"
	if _, err := n.Synthesize(context.Background(), "summary two"); err != nil {
		t.Fatalf("Synthesize() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "second:summary two" {
		t.Errorf("file content = %q; want fully replaced audio", data)
	}
}
