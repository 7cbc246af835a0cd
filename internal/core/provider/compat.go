package provider

const (
	// GeminiDefaultBaseURL is Google's OpenAI-compatible endpoint for Gemini.
	GeminiDefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"

	// QwenDefaultBaseURL is the OpenAI-compatible endpoint for Qwen.
	QwenDefaultBaseURL = "https://dashscope.aliyuncs.com/compatible-mode/v1"
)

// newGemini creates a Gemini chat client via the OpenAI-compatible endpoint.
func newGemini(apiKey, model string) *OpenAI {
	if model == "" {
		model = "gemini-1.5-pro"
	}
	return newCompatible("gemini", apiKey, GeminiDefaultBaseURL, model)
}

// newQwen creates a Qwen chat client via the DashScope compatible-mode endpoint.
func newQwen(apiKey, model string) *OpenAI {
	if model == "" {
		model = "qwen-plus"
	}
	return newCompatible("qwen", apiKey, QwenDefaultBaseURL, model)
}
