package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDiffbotSimulatedResult(t *testing.T) {
	provider := NewDiffbot()

	tests := []struct {
		name  string
		topic string
		want  string
	}{
		{"Simple topic", "X", "Simulated Diffbot search results for topic: X"},
		{"Longer topic", "Llama 3 inference", "Simulated Diffbot search results for topic: Llama 3 inference"},
		{"Empty topic", "", "Simulated Diffbot search results for topic: "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := provider.Search(context.Background(), tt.topic)
			if err != nil {
				t.Fatalf("Search(%q) returned error: %v", tt.topic, err)
			}
			if got != tt.want {
				t.Errorf("Search(%q) = %q, want %q", tt.topic, got, tt.want)
			}
		})
	}
}

func TestScrapingBeeNon200ReturnsDiagnosticString(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	provider := NewScrapingBee("test-key")
	provider.BaseURL = srv.URL

	got, err := provider.Search(context.Background(), "any topic")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}

	want := "Failed to retrieve the webpage. Status code: 500"
	if got != want {
		t.Errorf("Search = %q, want %q", got, want)
	}
}

func TestScrapingBeeSuccessReturnsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("api_key") != "test-key" {
			t.Errorf("missing api_key query param")
		}
		if !strings.Contains(r.URL.Query().Get("url"), "google.com/search") {
			t.Errorf("expected google search target, got %q", r.URL.Query().Get("url"))
		}
		_, _ = w.Write([]byte("page text"))
	}))
	defer srv.Close()

	provider := NewScrapingBee("test-key")
	provider.BaseURL = srv.URL

	got, err := provider.Search(context.Background(), "groq cloud")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if got != "page text" {
		t.Errorf("Search = %q, want %q", got, "page text")
	}
}

func TestTavilyFormatsResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if body["query"] != "groq cloud" {
			t.Errorf("query = %v, want %q", body["query"], "groq cloud")
		}
		if body["api_key"] != "test-key" {
			t.Errorf("api_key not forwarded")
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"answer": "Groq runs LPUs.",
			"results": []map[string]string{
				{"title": "Groq Cloud", "url": "https://groq.com", "content": "Fast inference."},
			},
		})
	}))
	defer srv.Close()

	provider := NewTavily("test-key")
	provider.BaseURL = srv.URL

	got, err := provider.Search(context.Background(), "groq cloud")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}

	for _, fragment := range []string{"# Summary: Groq runs LPUs.", "# Title: Groq Cloud", "## URL: https://groq.com", "## Content: Fast inference."} {
		if !strings.Contains(got, fragment) {
			t.Errorf("result missing %q, got:\n%s", fragment, got)
		}
	}
}

func TestTavilyNon200ReturnsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	provider := NewTavily("test-key")
	provider.BaseURL = srv.URL

	if _, err := provider.Search(context.Background(), "anything"); err == nil {
		t.Error("expected error on non-200 response, got nil")
	}
}

func TestExaFormatsResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("x-api-key header not set")
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]string{
				{"title": "Page", "url": "https://example.com", "text": "Extracted body."},
			},
		})
	}))
	defer srv.Close()

	provider := NewExa("test-key")
	provider.BaseURL = srv.URL

	got, err := provider.Search(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if !strings.Contains(got, "## Text: Extracted body.") {
		t.Errorf("result missing extracted text, got:\n%s", got)
	}
}

func TestMissingAPIKeyErrors(t *testing.T) {
	tests := []struct {
		name     string
		provider Provider
	}{
		{"Tavily", NewTavily("")},
		{"Exa", NewExa("")},
		{"ScrapingBee", NewScrapingBee("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.provider.Search(context.Background(), "topic"); err == nil {
				t.Error("expected error for missing API key, got nil")
			}
		})
	}
}
