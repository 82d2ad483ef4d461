package report

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tmc/langchaingo/llms"

	"github.com/gradhub/research-assistant/pkg/clients"
)

// fakeLLM replays canned chunks through the streaming callback and optionally
// fails after emitting them.
type fakeLLM struct {
	chunks []string
	err    error
}

func (f *fakeLLM) GenerateContent(ctx context.Context, _ []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	opts := llms.CallOptions{}
	for _, opt := range options {
		opt(&opts)
	}

	var full strings.Builder
	for _, chunk := range f.chunks {
		if opts.StreamingFunc != nil {
			if err := opts.StreamingFunc(ctx, []byte(chunk)); err != nil {
				return nil, err
			}
		}
		full.WriteString(chunk)
	}

	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: full.String()}}}, nil
}

func (f *fakeLLM) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return "", errors.New("not implemented")
}

func TestGenerateStreamsFragmentsInOrder(t *testing.T) {
	gen := NewGeneratorWithLLM(clients.Llama3_70B, &fakeLLM{chunks: []string{"## Title", "\n\nBody ", "text."}})

	var fragments []string
	for delta, err := range gen.Generate(context.Background(), "search text") {
		if err != nil {
			t.Fatalf("unexpected stream error: %v", err)
		}
		fragments = append(fragments, delta)
	}

	want := []string{"## Title", "\n\nBody ", "text."}
	if len(fragments) != len(want) {
		t.Fatalf("got %d fragments, want %d", len(fragments), len(want))
	}
	for i := range want {
		if fragments[i] != want[i] {
			t.Errorf("fragment %d = %q, want %q", i, fragments[i], want[i])
		}
	}
}

func TestGenerateFailurePreservesPartialOutput(t *testing.T) {
	gen := NewGeneratorWithLLM(clients.Llama3_70B, &fakeLLM{
		chunks: []string{"partial ", "output"},
		err:    errors.New("upstream closed"),
	})

	var fragments []string
	var streamErr error
	for delta, err := range gen.Generate(context.Background(), "search text") {
		if err != nil {
			streamErr = err
			continue
		}
		fragments = append(fragments, delta)
	}

	if streamErr == nil {
		t.Fatal("expected a stream error, got none")
	}
	if got := strings.Join(fragments, ""); got != "partial output" {
		t.Errorf("partial output = %q, want %q", got, "partial output")
	}
}

func TestGenerateConsumerCanStopEarly(t *testing.T) {
	gen := NewGeneratorWithLLM(clients.Llama3_70B, &fakeLLM{chunks: []string{"a", "b", "c"}})

	var got []string
	for delta, err := range gen.Generate(context.Background(), "") {
		if err != nil {
			t.Fatalf("unexpected stream error: %v", err)
		}
		got = append(got, delta)
		if len(got) == 2 {
			break
		}
	}

	if len(got) != 2 {
		t.Errorf("consumed %d fragments after stopping early, want 2", len(got))
	}
}

func TestStreamConcatenationRoundTripsThroughArtifact(t *testing.T) {
	gen := NewGeneratorWithLLM(clients.Llama3_8B, &fakeLLM{chunks: []string{"Groq ", "is ", "fast."}})

	topic := "Superfast Llama 3 inference on Groq Cloud"
	var sb strings.Builder
	for delta, err := range gen.Generate(context.Background(), "search text") {
		if err != nil {
			t.Fatalf("unexpected stream error: %v", err)
		}
		sb.WriteString(delta)
	}

	path := filepath.Join(t.TempDir(), "report.json")
	artifact := &Artifact{Topic: topic, Report: sb.String()}
	if err := artifact.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := LoadArtifact(path)
	if err != nil {
		t.Fatalf("LoadArtifact: %v", err)
	}
	if loaded.Topic != topic {
		t.Errorf("loaded topic = %q, want %q", loaded.Topic, topic)
	}
	if loaded.Report != "Groq is fast." {
		t.Errorf("loaded report = %q, want %q", loaded.Report, "Groq is fast.")
	}
}
