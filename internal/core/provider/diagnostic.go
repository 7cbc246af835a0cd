package provider

import (
	"errors"
	"regexp"

	"github.com/openai/openai-go"
)

// FallbackDiagnostic is shown when a provider error carries no usable message.
const FallbackDiagnostic = "insufficient balance or unknown error"

// Provider SDKs stringify their structured error payloads in slightly
// different shapes; both JSON and Python-style quoting show up in practice.
var messagePatterns = []*regexp.Regexp{
	regexp.MustCompile(`"message"\s*:\s*"([^"]+)"`),
	regexp.MustCompile(`'message'\s*:\s*'([^']+)'`),
}

// Diagnostic reduces a provider error to a single human-readable string.
// The structured message field is used when present, otherwise the generic
// fallback. A nil error yields the empty string.
func Diagnostic(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}

	text := err.Error()
	for _, re := range messagePatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}

	return FallbackDiagnostic
}
