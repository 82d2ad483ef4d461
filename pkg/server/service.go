package server

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"strings"

	"github.com/gradhub/research-assistant/pkg/archive"
	"github.com/gradhub/research-assistant/pkg/clients"
	"github.com/gradhub/research-assistant/pkg/config"
	"github.com/gradhub/research-assistant/pkg/report"
	"github.com/gradhub/research-assistant/pkg/research"
	"github.com/gradhub/research-assistant/pkg/session"
	"github.com/gradhub/research-assistant/pkg/splitter"
)

// StreamEvent represents a single event in the research stream
type StreamEvent struct {
	Type    string `json:"type"` // "status", "search_results", "content", "error", "done"
	Payload string `json:"payload"`
}

// Service runs the search -> generate pipeline for one topic submission.
type Service struct {
	Orchestrator *research.Orchestrator
	Archive      *archive.Store // nil when no DATABASE_URL is configured
	Cfg          *config.Config

	// BuildGenerator constructs the generator for a model; swapped in tests.
	BuildGenerator func(clients.ModelType) (*report.Generator, error)

	Logger *slog.Logger
}

func NewService(cfg *config.Config, orch *research.Orchestrator, store *archive.Store) *Service {
	return &Service{
		Orchestrator:   orch,
		Archive:        store,
		Cfg:            cfg,
		BuildGenerator: report.NewGenerator,
		Logger:         slog.Default(),
	}
}

// Run submits a topic to the session and streams the pipeline: one search
// call, then one streamed generation, consumed strictly in order. Every
// failure path resolves to a human-readable "error" event; the stream never
// surfaces a raw fault. Fragments already emitted before a generation failure
// stay with the consumer.
func (s *Service) Run(ctx context.Context, sess *session.Session, topic string) iter.Seq2[StreamEvent, error] {
	return func(yield func(StreamEvent, error) bool) {
		if !sess.SubmitTopic(topic) {
			yield(StreamEvent{Type: "error", Payload: "Please enter a topic."}, nil)
			return
		}

		providerName := sess.Provider()
		s.Logger.Info("Starting research run", "provider", string(providerName), "topic", topic)

		if !yield(StreamEvent{Type: "status", Payload: "Searching Web"}, nil) {
			return
		}

		searchText := s.Orchestrator.ConductResearch(ctx, providerName, topic)
		if searchText == research.NoValidAgent {
			yield(StreamEvent{Type: "error", Payload: fmt.Sprintf("No valid research agent for provider %q.", providerName)}, nil)
			return
		}
		if searchText == "" {
			yield(StreamEvent{Type: "error", Payload: "Sorry, report generation failed. Please try again."}, nil)
			return
		}

		if !yield(StreamEvent{Type: "search_results", Payload: searchText}, nil) {
			return
		}
		if !yield(StreamEvent{Type: "status", Payload: "Generating Report"}, nil) {
			return
		}

		gen, err := sess.EnsureGenerator(s.BuildGenerator)
		if err != nil {
			s.Logger.Error("Failed to build generator", "error", err)
			yield(StreamEvent{Type: "error", Payload: "Report generation is unavailable for the selected model."}, err)
			return
		}

		bounded := splitter.BoundText(searchText, s.Cfg.SearchContextSize)

		var finalReport strings.Builder
		for delta, err := range gen.Generate(ctx, bounded) {
			if err != nil {
				// Partial fragments already rendered remain with the consumer.
				yield(StreamEvent{Type: "error", Payload: "Report generation failed. Please try again."}, err)
				return
			}
			finalReport.WriteString(delta)
			if !yield(StreamEvent{Type: "content", Payload: delta}, nil) {
				return
			}
		}

		s.persist(ctx, sess, topic, string(providerName), finalReport.String())
		yield(StreamEvent{Type: "done", Payload: s.Cfg.ReportPath}, nil)
	}
}

// persist writes the artifact file and, when enabled, the archive row.
// Persistence problems are logged, not surfaced; the report already reached
// the consumer.
func (s *Service) persist(ctx context.Context, sess *session.Session, topic, provider, reportText string) {
	artifact := &report.Artifact{Topic: topic, Report: reportText}
	if err := artifact.Save(s.Cfg.ReportPath); err != nil {
		s.Logger.Error("Failed to save report artifact", "path", s.Cfg.ReportPath, "error", err)
	}

	if s.Archive != nil {
		if _, err := s.Archive.Save(ctx, topic, provider, string(sess.Model()), reportText); err != nil {
			s.Logger.Error("Failed to archive report", "error", err)
		}
	}
}
