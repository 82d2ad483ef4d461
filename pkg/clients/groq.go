package clients

import (
	"fmt"
	"os"

	"github.com/tmc/langchaingo/llms/openai"
)

// ModelType is an enum for the available Groq-hosted models.
type ModelType string

const (
	// Llama3_70B is the default model to use if none is specified
	Llama3_70B ModelType = "llama3-70b-8192"
	Llama3_8B  ModelType = "llama3-8b-8192"
	Mixtral    ModelType = "mixtral-8x7b-32768"
)

// groqBaseURL points langchaingo's OpenAI-compatible client at the Groq API.
const groqBaseURL = "https://api.groq.com/openai/v1"

// Models lists every supported model identifier, in selector order.
func Models() []ModelType {
	return []ModelType{Llama3_70B, Llama3_8B, Mixtral}
}

// ParseModel validates a model identifier from the UI against the closed set.
func ParseModel(s string) (ModelType, error) {
	switch ModelType(s) {
	case Llama3_70B, Llama3_8B, Mixtral:
		return ModelType(s), nil
	default:
		return "", fmt.Errorf("invalid model type: %s", s)
	}
}

func GroqAI(model ModelType) (*openai.LLM, error) {
	apiKey := os.Getenv("GROQ_API_KEY")

	var modelName string
	switch model {
	case Llama3_70B:
		modelName = string(Llama3_70B)
	case Llama3_8B:
		modelName = string(Llama3_8B)
	case Mixtral:
		modelName = string(Mixtral)
	default:
		return nil, fmt.Errorf("invalid model type: %s", model)
	}

	// See https://console.groq.com/docs/models for possible models
	llm, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithModel(modelName),
		openai.WithBaseURL(groqBaseURL),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to init Groq client: %w", err)
	}

	return llm, nil
}
