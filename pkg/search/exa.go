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

const exaBaseURL = "https://api.exa.ai"

// Exa calls the Exa search API with page-content extraction enabled, so the
// result text carries extracted page bodies rather than snippets.
type Exa struct {
	APIKey  string
	BaseURL string
	client  *http.Client
}

// NewExa constructs an Exa search provider.
func NewExa(apiKey string) *Exa {
	return &Exa{
		APIKey:  apiKey,
		BaseURL: exaBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (e *Exa) Name() string {
	return "exa"
}

func (e *Exa) Search(ctx context.Context, topic string) (string, error) {
	if strings.TrimSpace(e.APIKey) == "" {
		return "", errors.New("exa: API key is missing")
	}

	body := map[string]any{
		"query":      topic,
		"numResults": 5,
		"contents": map[string]any{
			"text": map[string]any{
				"maxCharacters": 2000,
			},
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.BaseURL+"/search", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", e.APIKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("exa request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("exa http %d", resp.StatusCode)
	}

	var response struct {
		Results []struct {
			Title string `json:"title"`
			URL   string `json:"url"`
			Text  string `json:"text"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode exa response: %w", err)
	}

	var sb strings.Builder
	for _, r := range response.Results {
		sb.WriteString(fmt.Sprintf("# Title: %s\n", r.Title))
		sb.WriteString(fmt.Sprintf("## URL: %s\n", r.URL))
		sb.WriteString(fmt.Sprintf("## Text: %s\n\n", r.Text))
	}

	return sb.String(), nil
}
