package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	GroqApiKey        string
	TavilyApiKey      string
	ExaApiKey         string
	ScrapingBeeApiKey string
	DatabaseURL       string
	Port              string
	ReportPath        string
	DefaultModel      string
	SearchContextSize int
}

func Load() *Config {
	return &Config{
		GroqApiKey:        getEnv("GROQ_API_KEY", ""),
		TavilyApiKey:      getEnv("TAVILY_API_KEY", ""),
		ExaApiKey:         getEnv("EXA_API_KEY", ""),
		ScrapingBeeApiKey: getEnv("SCRAPINGBEE_API_KEY", ""),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		Port:              getEnv("PORT", "8081"),
		ReportPath:        getEnv("REPORT_PATH", "report.json"),
		DefaultModel:      getEnv("DEFAULT_MODEL", "llama3-70b-8192"),
		SearchContextSize: getEnvAsInt("SEARCH_CONTEXT_CHARS", 12000),
	}
}

// Validate checks that every credential required to serve requests is present.
// Missing keys are reported all at once rather than one restart at a time.
func (c *Config) Validate() error {
	var missing []string
	if c.GroqApiKey == "" {
		missing = append(missing, "GROQ_API_KEY")
	}
	if c.TavilyApiKey == "" {
		missing = append(missing, "TAVILY_API_KEY")
	}
	if c.ExaApiKey == "" {
		missing = append(missing, "EXA_API_KEY")
	}
	if c.ScrapingBeeApiKey == "" {
		missing = append(missing, "SCRAPINGBEE_API_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
