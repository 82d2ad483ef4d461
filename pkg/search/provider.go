// Package search implements the pluggable web-search backends that turn a
// research topic into raw text for the report writer.
//
// Available providers:
//
//   - Tavily: keyword web search, requires TAVILY_API_KEY
//   - Exa: neural search with page-content extraction, requires EXA_API_KEY
//   - ScrapingBee: scraping proxy over a Google results page, requires SCRAPINGBEE_API_KEY
//   - Diffbot: placeholder organizational-data lookup, no backend wired
package search

import "context"

// Provider is the uniform capability every search backend implements.
// The returned text is an opaque blob for downstream stages; an empty string
// means "no results" rather than a distinct error condition.
type Provider interface {
	// Name returns the provider identifier (e.g. "tavily", "exa").
	Name() string

	// Search performs a web search for the topic and returns best-effort text.
	Search(ctx context.Context, topic string) (string, error)
}
