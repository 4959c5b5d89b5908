package llm

const (
	defaultHuggingFaceBaseURL = "https://router.huggingface.co/v1"
	// DefaultInferenceProvider is the Hugging Face routing target used when
	// none is configured.
	DefaultInferenceProvider = "novita"
)

// NewHuggingFaceClient creates a client for the Hugging Face inference
// router. The router selects the serving provider from a ":provider" suffix
// on the model name; an empty inferenceProvider lets the router choose.
func NewHuggingFaceClient(apiKey, inferenceProvider string, options *OpenAIOptions) (*OpenAIClient, error) {
	client, err := newCompatClient("Hugging Face", apiKey, defaultHuggingFaceBaseURL, options)
	if err != nil {
		return nil, err
	}
	if inferenceProvider != "" {
		client.modelSuffix = ":" + inferenceProvider
	}
	return client, nil
}
