package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/gradhub/research-assistant/pkg/clients"
	"github.com/gradhub/research-assistant/pkg/config"
	"github.com/gradhub/research-assistant/pkg/report"
	"github.com/gradhub/research-assistant/pkg/research"
	"github.com/gradhub/research-assistant/pkg/splitter"
)

var (
	topic        string
	providerName string
	modelName    string
)

func main() {
	// Setup structured logging
	handler := slog.NewTextHandler(os.Stderr, nil)
	slog.SetDefault(slog.New(handler))

	// Load .env file
	if err := godotenv.Load(); err != nil {
		// It's okay if .env doesn't exist, as long as env vars are set
	}

	cfg := config.Load()

	rootCmd := &cobra.Command{
		Use:   "research-assistant",
		Short: "A terminal-based research report generator",
		Long:  `research-assistant dispatches a topic to a web-search backend, feeds the results to a Groq-hosted report writer, and streams the draft to stdout.`,
		Run: func(cmd *cobra.Command, args []string) {
			if err := cfg.Validate(); err != nil {
				slog.Error("Configuration error", "error", err)
				os.Exit(1)
			}

			if modelName == "" {
				modelName = cfg.DefaultModel
			}
			model, err := clients.ParseModel(modelName)
			if err != nil {
				slog.Error("Invalid model", "error", err)
				os.Exit(1)
			}

			provider, err := research.ParseProvider(providerName)
			if err != nil {
				slog.Error("Invalid provider", "error", err)
				os.Exit(1)
			}

			if !cmd.Flags().Changed("topic") {
				// Interactive Mode
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("Enter a topic: ")
				input, _ := reader.ReadString('\n')
				topic = strings.TrimSpace(input)
			}
			if topic == "" {
				slog.Error("Topic cannot be empty")
				os.Exit(1)
			}

			if err := run(cmd.Context(), cfg, provider, model, topic); err != nil {
				slog.Error("Error generating report", "error", err)
				os.Exit(1)
			}
		},
	}

	rootCmd.Flags().StringVarP(&topic, "topic", "t", "", "The research topic")
	rootCmd.Flags().StringVarP(&providerName, "provider", "p", string(research.ProviderTavily), "The search provider (tavily, exa, scrapingbee, diffbot)")
	rootCmd.Flags().StringVarP(&modelName, "model", "m", "", "The report-writer model")

	if err := rootCmd.Execute(); err != nil {
		slog.Error("Command execution failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, provider research.ProviderName, model clients.ModelType, topic string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	orchestrator := research.NewOrchestrator(cfg)

	slog.Info("Searching web", "provider", string(provider), "topic", topic)
	searchText := orchestrator.ConductResearch(ctx, provider, topic)
	if searchText == research.NoValidAgent {
		return fmt.Errorf("no valid research agent for provider %q", provider)
	}
	if searchText == "" {
		return fmt.Errorf("search returned no results, please try again")
	}

	generator, err := report.NewGenerator(model)
	if err != nil {
		return err
	}

	bounded := splitter.BoundText(searchText, cfg.SearchContextSize)

	var finalReport strings.Builder
	for delta, err := range generator.Generate(ctx, bounded) {
		if err != nil {
			// Whatever streamed before the failure stays on screen.
			fmt.Println()
			return err
		}
		finalReport.WriteString(delta)
		fmt.Print(delta)
	}
	fmt.Println()

	artifact := &report.Artifact{Topic: topic, Report: finalReport.String()}
	if err := artifact.Save(cfg.ReportPath); err != nil {
		return err
	}
	slog.Info("Report saved", "path", cfg.ReportPath)

	return nil
}
