// Package report produces the final research report from raw search text via
// a streamed language-model completion, and persists the downloadable
// artifact.
package report

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"

	"github.com/tmc/langchaingo/llms"

	"github.com/gradhub/research-assistant/pkg/clients"
)

// errStreamStopped aborts the completion when the consumer stops pulling
// fragments. It is not surfaced as a generation failure.
var errStreamStopped = errors.New("stream consumer stopped")

// Generator wraps one model selection and turns search text into a streamed
// report. Construction binds the generator to that model for its lifetime; a
// new model selection requires a new generator.
type Generator struct {
	model  clients.ModelType
	llm    llms.Model
	Logger *slog.Logger
}

// NewGenerator builds a generator bound to the given Groq model.
func NewGenerator(model clients.ModelType) (*Generator, error) {
	llm, err := clients.GroqAI(model)
	if err != nil {
		return nil, fmt.Errorf("failed to init LLM: %w", err)
	}
	return &Generator{model: model, llm: llm, Logger: slog.Default()}, nil
}

// NewGeneratorWithLLM builds a generator over an explicit llms.Model.
func NewGeneratorWithLLM(model clients.ModelType, llm llms.Model) *Generator {
	return &Generator{model: model, llm: llm, Logger: slog.Default()}
}

// Model returns the model this generator is bound to.
func (g *Generator) Model() clients.ModelType {
	return g.model
}

// Generate streams the report as an ordered, finite sequence of text
// fragments. Concatenating the fragments in emission order yields the full
// report. If the completion fails mid-stream, the error is yielded after any
// fragments already emitted, so partial output survives the failure. Empty
// search text is passed through to the model, not rejected.
func (g *Generator) Generate(ctx context.Context, searchText string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		g.Logger.Info("Starting report generation", "model", string(g.model), "input_size", len(searchText))

		prompts := []llms.MessageContent{
			llms.TextParts(llms.ChatMessageTypeSystem, reportWriterPrompt),
			llms.TextParts(llms.ChatMessageTypeHuman, searchText),
		}

		_, err := g.llm.GenerateContent(ctx, prompts,
			llms.WithStreamingFunc(func(_ context.Context, chunk []byte) error {
				if len(chunk) == 0 {
					return nil
				}
				if !yield(string(chunk), nil) {
					return errStreamStopped
				}
				return nil
			}),
		)

		if err != nil && !errors.Is(err, errStreamStopped) {
			g.Logger.Error("Report generation failed", "model", string(g.model), "error", err)
			yield("", fmt.Errorf("report generation failed: %w", err))
			return
		}

		g.Logger.Info("Report generation complete", "model", string(g.model))
	}
}
