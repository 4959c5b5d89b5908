package llm

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// NewOpenRouterClient creates a new OpenRouter LLM client.
// OpenRouter provides access to many models via a unified API.
func NewOpenRouterClient(apiKey string, options *OpenAIOptions) (*OpenAIClient, error) {
	if options == nil {
		options = &OpenAIOptions{}
	}
	headers := map[string]string{
		"X-Title": "hfchat",
	}
	for k, v := range options.Headers {
		headers[k] = v
	}
	withHeaders := *options
	withHeaders.Headers = headers
	return newCompatClient("OpenRouter", apiKey, defaultOpenRouterBaseURL, &withHeaders)
}
