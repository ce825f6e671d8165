package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"

	"github.com/xhad/askdocs/internal/models"
)

// ChatConfig represents the configuration for a chat engine.
type ChatConfig struct {
	Model          string
	Temperature    float64
	MaxTokens      int
	SystemTemplate string
	BaseURL        string // Ollama server URL
}

// ChatEngine generates answers over retrieved chunks using an LLM.
type ChatEngine struct {
	config ChatConfig
	llm    llms.Model
}

const defaultSystemTemplate = `Given the following extracted parts of documents and a question, create a final answer using only that content.
After the answer, finish with a line of the form "SOURCES: <source>" naming the source of the part the answer relied on.
If the answer is not in the content, say you don't know and still finish with a SOURCES: line.`

// NewWithConfig creates a new ChatEngine with the given configuration.
func NewWithConfig(config ChatConfig) (*ChatEngine, error) {
	if config.Model == "" {
		config.Model = "mistral" // Default Ollama model
	}
	if config.Temperature < 0 || config.Temperature > 2 {
		return nil, fmt.Errorf("temperature must be between 0 and 2")
	}
	if config.MaxTokens < 0 {
		return nil, fmt.Errorf("max tokens cannot be negative")
	} else if config.MaxTokens == 0 {
		config.MaxTokens = 2000
	}
	if config.SystemTemplate == "" {
		config.SystemTemplate = defaultSystemTemplate
	}
	if config.BaseURL == "" {
		config.BaseURL = "http://localhost:11434" // Default Ollama URL
	}

	llm, err := ollama.New(
		ollama.WithModel(config.Model),
		ollama.WithServerURL(config.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM: %w", err)
	}

	return &ChatEngine{
		config: config,
		llm:    llm,
	}, nil
}

// Answer builds a retrieval-augmented prompt from the chunks, invokes the
// model, and post-processes the completion into answer text plus a single
// source reference.
func (ce *ChatEngine) Answer(ctx context.Context, query string, chunks []models.Chunk) (models.Answer, error) {
	content := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, ce.config.SystemTemplate),
		llms.TextParts(llms.ChatMessageTypeHuman, BuildPrompt(query, chunks)),
	}

	response, err := ce.llm.GenerateContent(ctx, content,
		llms.WithTemperature(ce.config.Temperature),
		llms.WithMaxTokens(ce.config.MaxTokens),
	)
	if err != nil {
		return models.Answer{}, fmt.Errorf("chat error: %w", err)
	}

	if len(response.Choices) == 0 || response.Choices[0] == nil {
		return models.Answer{}, fmt.Errorf("no response from LLM")
	}

	return ParseAnswer(response.Choices[0].Content), nil
}

// BuildPrompt formats the retrieved chunks, each tagged with its source,
// followed by the question.
func BuildPrompt(query string, chunks []models.Chunk) string {
	var b strings.Builder

	for _, chunk := range chunks {
		fmt.Fprintf(&b, "Content: %s\nSource: %s\n\n", chunk.Text, chunk.Source)
	}

	fmt.Fprintf(&b, "Question: %s", query)
	return b.String()
}
