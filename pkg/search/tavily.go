package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const tavilyBaseURL = "https://api.tavily.com"

// Tavily calls the Tavily keyword-search API.
type Tavily struct {
	APIKey  string
	BaseURL string
	client  *http.Client
}

// NewTavily constructs a Tavily search provider.
func NewTavily(apiKey string) *Tavily {
	return &Tavily{
		APIKey:  apiKey,
		BaseURL: tavilyBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// NewTavilyWithClient constructs a Tavily search provider using the supplied
// HTTP client. This is useful for overriding the default timeout.
func NewTavilyWithClient(apiKey string, client *http.Client) *Tavily {
	return &Tavily{APIKey: apiKey, BaseURL: tavilyBaseURL, client: client}
}

func (t *Tavily) Name() string {
	return "tavily"
}

// Search posts the topic to Tavily and formats the hits into a text blob.
func (t *Tavily) Search(ctx context.Context, topic string) (string, error) {
	if strings.TrimSpace(t.APIKey) == "" {
		return "", errors.New("tavily: API key is missing")
	}

	body := map[string]any{
		"api_key":      t.APIKey,
		"query":        topic,
		"search_depth": "advanced",
		"max_results":  5,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.BaseURL+"/search", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("tavily request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("tavily http %d", resp.StatusCode)
	}

	var response struct {
		Answer  string `json:"answer"`
		Results []struct {
			Title   string `json:"title"`
			URL     string `json:"url"`
			Content string `json:"content"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode tavily response: %w", err)
	}

	var sb strings.Builder
	if response.Answer != "" {
		sb.WriteString(fmt.Sprintf("# Summary: %s\n\n", response.Answer))
	}
	for _, r := range response.Results {
		sb.WriteString(fmt.Sprintf("# Title: %s\n", r.Title))
		sb.WriteString(fmt.Sprintf("## URL: %s\n", r.URL))
		sb.WriteString(fmt.Sprintf("## Content: %s\n\n", r.Content))
	}

	return sb.String(), nil
}
