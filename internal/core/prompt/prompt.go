// Package prompt holds the fixed prompt templates for summarization and chat.
package prompt

import (
	"fmt"
)

// Persona selects the summary voice.
type Persona string

const (
	FirstPerson Persona = "first-person"
	ThirdPerson Persona = "third-person"
)

// Length selects the relative summary length.
type Length string

const (
	Short Length = "short"
	Long  Length = "long"
)

// LengthFactor maps a length code to its relative-length factor in tenths
// of the transcript length. Unknown codes fall back to Short.
func LengthFactor(l Length) int {
	if l == Long {
		return 7
	}
	return 2
}

// OriginalLanguage means the summary keeps the transcript's language.
const OriginalLanguage = "Original Language"

// Languages lists the selectable output languages, OriginalLanguage first.
var Languages = []string{
	OriginalLanguage,
	"English",
	"Turkish",
	"Spanish",
	"French",
	"German",
}

const firstPersonTemplate = `Imagine you are the creator of the video, and you're summarizing its content. Please summarize it in your own words, keeping the important parts intact and highlighting the key moments, arguments, and essential ideas. The summary should provide a clear, concise overview of the video while retaining the main message and purpose of the video, as if you're explaining it to someone who hasn't watched it. The summary should be %d tenth long of the transcript. %s Below is the transcript of your video.

%s`

const thirdPersonTemplate = `You are a video summarization assistant. Please provide a concise and clear summary that captures all the key points, important details, and essential arguments discussed in the video. Ensure that the summary preserves the core ideas and main takeaways without including unnecessary details. Your summary should be easy to read and accurately reflect the content of the transcript. The summary should be %d tenth long of the transcript. %s Below is the transcript of the video.

%s`

const answerTemplate = `You are an assistant answering questions about a video using excerpts of its transcript. Answer using only the context below; if the context does not contain the answer, say you don't know. Answer in the same language as the question.

Context:
%s
%sQuestion: %s`

// Summarize renders the summary prompt for the given persona. The length
// factor is expressed in tenths of the transcript length; language selects
// the output language, with OriginalLanguage preserving the source.
func Summarize(persona Persona, length Length, language, transcript string) string {
	tmpl := thirdPersonTemplate
	if persona == FirstPerson {
		tmpl = firstPersonTemplate
	}
	return fmt.Sprintf(tmpl, LengthFactor(length), languageInstruction(language), transcript)
}

// Answer renders the retrieval-QA prompt. History may be empty.
func Answer(question, context, history string) string {
	h := ""
	if history != "" {
		h = "Conversation so far:\n" + history + "\n\n"
	}
	return fmt.Sprintf(answerTemplate, context, h, question)
}

func languageInstruction(language string) string {
	if language == "" || language == OriginalLanguage {
		return "Ensure the summary is in the same language as the transcript."
	}
	return fmt.Sprintf("Write the summary in %s.", language)
}

// IsLanguage reports whether the given value is a selectable output language.
func IsLanguage(language string) bool {
	for _, l := range Languages {
		if l == language {
			return true
		}
	}
	return false
}

