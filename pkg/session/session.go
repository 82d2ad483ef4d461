// Package session tracks the UI-adjacent state of one research assistant:
// the selected model and provider, the topic history, and the rules that
// decide when the bound report generator must be rebuilt.
package session

import (
	"strings"
	"sync"

	"github.com/gradhub/research-assistant/pkg/clients"
	"github.com/gradhub/research-assistant/pkg/report"
	"github.com/gradhub/research-assistant/pkg/research"
)

// Session lives for the duration of the hosting process; it is created on
// first interaction and never destroyed. Each pipeline run through a session
// is strictly sequential, but the HTTP host serves requests concurrently, so
// state access takes the mutex.
type Session struct {
	mu           sync.Mutex
	model        clients.ModelType
	provider     research.ProviderName
	topicHistory []string
	activeTopic  string

	generator *report.Generator
	stale     bool
}

// Snapshot is a point-in-time copy of the session state for rendering.
type Snapshot struct {
	Model       clients.ModelType     `json:"model"`
	Provider    research.ProviderName `json:"provider"`
	History     []string              `json:"history"`
	ActiveTopic string                `json:"active_topic"`
}

func New(model clients.ModelType, provider research.ProviderName) *Session {
	return &Session{model: model, provider: provider}
}

// SelectModel switches the model selection. A changed selection marks the
// bound generator stale; it is rebuilt before the next generation. Topic
// history and the active topic are untouched.
func (s *Session) SelectModel(m clients.ModelType) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.model == m {
		return false
	}
	s.model = m
	s.stale = true
	return true
}

// SelectProvider switches the provider selection. The generator is not
// affected.
func (s *Session) SelectProvider(p research.ProviderName) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.provider == p {
		return false
	}
	s.provider = p
	return true
}

// SubmitTopic records a topic and makes it active. History keeps insertion
// order and suppresses duplicates. An empty topic is rejected and nothing
// changes; the return value reports whether a pipeline run should start.
func (s *Session) SubmitTopic(topic string) bool {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seen := false
	for _, t := range s.topicHistory {
		if t == topic {
			seen = true
			break
		}
	}
	if !seen {
		s.topicHistory = append(s.topicHistory, topic)
	}
	s.activeTopic = topic
	return true
}

// Restart clears the active topic and abandons any in-flight report state.
// Topic history and the model/provider selections are preserved.
func (s *Session) Restart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeTopic = ""
}

// EnsureGenerator returns the generator bound to the current model, building
// a fresh one when none exists yet or the model selection changed since the
// last build.
func (s *Session) EnsureGenerator(build func(clients.ModelType) (*report.Generator, error)) (*report.Generator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generator == nil || s.stale {
		gen, err := build(s.model)
		if err != nil {
			return nil, err
		}
		s.generator = gen
		s.stale = false
	}
	return s.generator, nil
}

func (s *Session) Model() clients.ModelType {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model
}

func (s *Session) Provider() research.ProviderName {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.provider
}

func (s *Session) ActiveTopic() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeTopic
}

// History returns a copy of the topic history in submission order.
func (s *Session) History() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.topicHistory))
	copy(out, s.topicHistory)
	return out
}

// State returns a snapshot of the session for rendering.
func (s *Session) State() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	history := make([]string, len(s.topicHistory))
	copy(history, s.topicHistory)
	return Snapshot{
		Model:       s.model,
		Provider:    s.provider,
		History:     history,
		ActiveTopic: s.activeTopic,
	}
}
