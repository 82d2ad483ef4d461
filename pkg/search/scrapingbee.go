package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const scrapingBeeBaseURL = "https://app.scrapingbee.com/api/v1/"

// ScrapingBee fetches a Google results page for the topic through the
// ScrapingBee proxy and returns the page text.
//
// Unlike the other providers, a non-200 proxy response is reported as a
// literal diagnostic string in the result text rather than an error. The
// downstream pipeline treats that string as search text and hands it to the
// report writer; see DESIGN.md for why this behavior is kept.
type ScrapingBee struct {
	APIKey  string
	BaseURL string
	client  *http.Client
}

// NewScrapingBee constructs a ScrapingBee proxy provider.
func NewScrapingBee(apiKey string) *ScrapingBee {
	return &ScrapingBee{
		APIKey:  apiKey,
		BaseURL: scrapingBeeBaseURL,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (s *ScrapingBee) Name() string {
	return "scrapingbee"
}

func (s *ScrapingBee) Search(ctx context.Context, topic string) (string, error) {
	if strings.TrimSpace(s.APIKey) == "" {
		return "", errors.New("scrapingbee: API key is missing")
	}

	target := "https://www.google.com/search?q=" + url.QueryEscape(topic)

	params := url.Values{}
	params.Set("api_key", s.APIKey)
	params.Set("url", target)
	params.Set("extract_rules", `{"text":"body"}`)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("scrapingbee request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Sprintf("Failed to retrieve the webpage. Status code: %d", resp.StatusCode), nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read scrapingbee response: %w", err)
	}

	return string(body), nil
}
