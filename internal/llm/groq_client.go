package llm

const defaultGroqBaseURL = "https://api.groq.com/openai/v1"

// NewGroqClient creates a new Groq LLM client.
func NewGroqClient(apiKey string, options *OpenAIOptions) (*OpenAIClient, error) {
	return newCompatClient("Groq", apiKey, defaultGroqBaseURL, options)
}
