// Package research dispatches a topic to the selected search backend and
// hands the resulting text onward. It owns the closed set of provider names
// the UI may select from.
package research

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gradhub/research-assistant/pkg/config"
	"github.com/gradhub/research-assistant/pkg/search"
)

// ProviderName identifies one registered search backend.
type ProviderName string

const (
	ProviderTavily      ProviderName = "tavily"
	ProviderExa         ProviderName = "exa"
	ProviderScrapingBee ProviderName = "scrapingbee"
	ProviderDiffbot     ProviderName = "diffbot"
)

// NoValidAgent is the sentinel result for a provider name that is not in the
// registry. It is a soft failure the UI can render directly.
const NoValidAgent = "no valid agent"

// Providers lists every registered provider name, in selector order.
func Providers() []ProviderName {
	return []ProviderName{ProviderTavily, ProviderExa, ProviderScrapingBee, ProviderDiffbot}
}

// ParseProvider validates a provider identifier from the UI against the
// closed set.
func ParseProvider(s string) (ProviderName, error) {
	switch ProviderName(s) {
	case ProviderTavily, ProviderExa, ProviderScrapingBee, ProviderDiffbot:
		return ProviderName(s), nil
	default:
		return "", fmt.Errorf("invalid provider: %s", s)
	}
}

// Orchestrator holds the provider registry and performs the dispatch.
type Orchestrator struct {
	registry map[ProviderName]search.Provider
	Logger   *slog.Logger
}

// NewOrchestrator builds the registry from configuration, one instance per
// supported backend.
func NewOrchestrator(cfg *config.Config) *Orchestrator {
	return &Orchestrator{
		registry: map[ProviderName]search.Provider{
			ProviderTavily:      search.NewTavily(cfg.TavilyApiKey),
			ProviderExa:         search.NewExa(cfg.ExaApiKey),
			ProviderScrapingBee: search.NewScrapingBee(cfg.ScrapingBeeApiKey),
			ProviderDiffbot:     search.NewDiffbot(),
		},
		Logger: slog.Default(),
	}
}

// NewOrchestratorWith builds an orchestrator over an explicit registry.
func NewOrchestratorWith(registry map[ProviderName]search.Provider) *Orchestrator {
	return &Orchestrator{registry: registry, Logger: slog.Default()}
}

// ConductResearch looks up the named provider and runs the search. An
// unregistered name yields NoValidAgent without touching the network. A
// provider transport error is logged and mapped to an empty result, which
// callers treat as "no results". Provider-produced diagnostic text (the
// scraping proxy's failure string) passes through untouched.
func (o *Orchestrator) ConductResearch(ctx context.Context, name ProviderName, topic string) string {
	provider, ok := o.registry[name]
	if !ok {
		o.Logger.Warn("No provider registered", "provider", string(name))
		return NoValidAgent
	}

	o.Logger.Info("Dispatching search", "provider", provider.Name(), "topic", topic)

	result, err := provider.Search(ctx, topic)
	if err != nil {
		o.Logger.Error("Search failed", "provider", provider.Name(), "error", err)
		return ""
	}

	o.Logger.Info("Search complete", "provider", provider.Name(), "size", len(result))
	return result
}
