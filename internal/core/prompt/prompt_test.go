package prompt

import (
	"strings"
	"testing"
)

func TestLengthFactor(t *testing.T) {
	tests := []struct {
		name   string
		length Length
		want   int
	}{
		{name: "Short", length: Short, want: 2},
		{name: "Long", length: Long, want: 7},
		{name: "Unknown falls back to short", length: Length("medium"), want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LengthFactor(tt.length); got != tt.want {
				t.Errorf("LengthFactor(%q) = %d; want %d", tt.length, got, tt.want)
			}
		})
	}
}

func TestSummarizeLengthBinding(t *testing.T) {
	short := Summarize(ThirdPerson, Short, "English", "transcript text")
	long := Summarize(ThirdPerson, Long, "English", "transcript text")

	if !strings.Contains(short, "2 tenth") {
		t.Errorf("short prompt missing factor 2:\n%s", short)
	}
	if !strings.Contains(long, "7 tenth") {
		t.Errorf("long prompt missing factor 7:\n%s", long)
	}

	// Changing only the length must change only the factor.
	if strings.Replace(long, "7 tenth", "2 tenth", 1) != short {
		t.Error("length change altered more than the factor")
	}
}

func TestSummarizePersona(t *testing.T) {
	first := Summarize(FirstPerson, Short, "", "t")
	third := Summarize(ThirdPerson, Short, "", "t")

	if !strings.Contains(first, "you are the creator of the video") {
		t.Error("first-person prompt missing creator framing")
	}
	if !strings.Contains(third, "video summarization assistant") {
		t.Error("third-person prompt missing assistant framing")
	}
	if first == third {
		t.Error("personas rendered identical prompts")
	}
}

func TestSummarizeLanguage(t *testing.T) {
	tests := []struct {
		name     string
		language string
		want     string
	}{
		{name: "Explicit language", language: "Turkish", want: "Write the summary in Turkish."},
		{name: "Original language", language: OriginalLanguage, want: "same language as the transcript"},
		{name: "Unspecified", language: "", want: "same language as the transcript"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(ThirdPerson, Short, tt.language, "t")
			if !strings.Contains(got, tt.want) {
				t.Errorf("prompt missing %q:\n%s", tt.want, got)
			}
		})
	}
}

func TestSummarizeIncludesTranscript(t *testing.T) {
	got := Summarize(FirstPerson, Long, "English", "chunk one chunk two")
	if !strings.HasSuffix(got, "chunk one chunk two") {
		t.Errorf("transcript must end the prompt:\n%s", got)
	}
}

func TestAnswer(t *testing.T) {
	got := Answer("what is discussed?", "some context", "")
	if !strings.Contains(got, "some context") {
		t.Error("answer prompt missing context")
	}
	if !strings.Contains(got, "Question: what is discussed?") {
		t.Error("answer prompt missing question")
	}
	if strings.Contains(got, "Conversation so far") {
		t.Error("empty history must not render a history section")
	}

	withHistory := Answer("and then?", "ctx", "user: hi\nassistant: hello")
	if !strings.Contains(withHistory, "Conversation so far:\nuser: hi\nassistant: hello") {
		t.Errorf("history not rendered:\n%s", withHistory)
	}
}

func TestIsLanguage(t *testing.T) {
	for _, l := range Languages {
		if !IsLanguage(l) {
			t.Errorf("IsLanguage(%q) = false for listed language", l)
		}
	}
	if IsLanguage("Klingon") {
		t.Error("IsLanguage(Klingon) = true")
	}
}
