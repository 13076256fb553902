package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/elemental-vibe/internal/elements"
	"github.com/jonathan/elemental-vibe/internal/llm"
	"github.com/jonathan/elemental-vibe/internal/narrative"
	"github.com/jonathan/elemental-vibe/internal/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var readingCmd = &cobra.Command{
	Use:   "reading",
	Short: "Full reading: scores, archetype and a Gemini narrative",
	Long: "Score a birthdate and name, then ask Gemini for a narrative profile consistent with the resolved archetype. " +
		"Rate-limited requests are retried with backoff. If no narrative arrives the reading is still shown with a short apology.",
	RunE: runReading,
}

var (
	readingBirthdate   string
	readingName        string
	readingAPIKey      string
	readingVariant     string
	readingTier        string
	readingModel       string
	readingMinDuration time.Duration
	readingFormat      string
)

// newLLMClient is replaced in tests
var newLLMClient = llm.NewClient

func init() {
	readingCmd.Flags().StringVarP(&readingBirthdate, "birthdate", "b", "", "Birthdate as MM/DD/YYYY (required)")
	readingCmd.Flags().StringVarP(&readingName, "name", "n", "", "Name")
	readingCmd.Flags().StringVar(&readingAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	readingCmd.Flags().StringVar(&readingVariant, "variant", "", "Narrative shape: full or minimal (default from config)")
	readingCmd.Flags().StringVar(&readingTier, "tier", "", "Model tier: lite, standard or advanced (default from config)")
	readingCmd.Flags().StringVar(&readingModel, "model", "", "Model name override for the selected tier")
	readingCmd.Flags().DurationVar(&readingMinDuration, "min-duration", 0, "Minimum time before the narrative is shown (default from config, 4s)")
	readingCmd.Flags().StringVarP(&readingFormat, "format", "f", "text", "Output format: text or json")
	_ = readingCmd.MarkFlagRequired("birthdate")

	rootCmd.AddCommand(readingCmd)
}

func runReading(cmd *cobra.Command, _ []string) error {
	if err := checkFormat(readingFormat, "text", "json"); err != nil {
		return err
	}

	apiKey := firstNonEmpty(readingAPIKey, cfg.APIKey)
	if apiKey == "" {
		return fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
	}
	minDuration := cfg.MinDuration.Std()
	if cmd.Flags().Changed("min-duration") {
		minDuration = readingMinDuration
	}
	tier, opts, err := narrativeOptions(firstNonEmpty(readingVariant, cfg.Variant), firstNonEmpty(readingTier, cfg.Tier), minDuration)
	if err != nil {
		return err
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt)
	defer stop()

	client, err := newClient(ctx, tier, firstNonEmpty(readingModel, cfg.Model), apiKey)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	registry := prometheus.NewRegistry()
	orchestrator := narrative.New(client, append(opts,
		narrative.WithLogger(logger),
		narrative.WithMetrics(narrative.MustNewMetrics(registry)),
		narrative.WithStateObserver(func(s narrative.State) {
			logger.Debug("Narrative state", zap.String("state", string(s)))
		}),
	)...)

	logger.Info("Requesting narrative",
		zap.String("model", client.GetModel(tier)),
		zap.String("variant", firstNonEmpty(readingVariant, cfg.Variant)),
		zap.Duration("min_duration", minDuration))

	sub := narrative.NewSession(orchestrator).Submit(ctx, readingBirthdate, readingName)
	if sub.Stale {
		return nil
	}

	var gatherer prometheus.Gatherer
	if cfg.Verbose {
		gatherer = registry
	}
	return writeSubmission(cmd.OutOrStdout(), sub, assetTable().Lookup(sub.Reading.Archetype.Name), readingFormat, gatherer)
}

// narrativeOptions resolves the orchestrator settings shared by reading and serve
func narrativeOptions(variantName, tierName string, minDuration time.Duration) (llm.ModelTier, []narrative.Option, error) {
	variant, err := narrative.ParseVariant(variantName)
	if err != nil {
		return "", nil, err
	}
	tier, err := llm.ParseTier(tierName)
	if err != nil {
		return "", nil, err
	}
	policy := narrative.RetryPolicy{MaxRetries: cfg.Retries(), BaseDelay: cfg.RetryDelay.Std()}
	if err := validator.New().Struct(policy); err != nil {
		return "", nil, fmt.Errorf("invalid retry policy: %w", err)
	}
	return tier, []narrative.Option{
		narrative.WithTier(tier),
		narrative.WithVariant(variant),
		narrative.WithRetryPolicy(policy),
		narrative.WithMinDuration(minDuration),
	}, nil
}

// newClient builds the Gemini client, applying a configured model override
func newClient(ctx context.Context, tier llm.ModelTier, model, apiKey string) (llm.Client, error) {
	llmConfig := llm.DefaultConfig()
	if model != "" {
		llmConfig = llmConfig.WithModel(tier, model)
	}
	client, err := newLLMClient(ctx, llmConfig, apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return client, nil
}

// submissionOutput is the JSON shape of a finished reading
type submissionOutput struct {
	ID        string             `json:"id"`
	Reading   elements.Reading   `json:"reading"`
	Assets    elements.AssetPair `json:"assets"`
	Narrative *narrative.Outcome `json:"narrative,omitempty"`
	Message   string             `json:"message,omitempty"`
}

// writeSubmission prints the reading, then the narrative or the apology.
// A failed narrative is not a command error. Metrics are printed when gatherer is set.
func writeSubmission(w io.Writer, sub *narrative.Submission, assets elements.AssetPair, format string, gatherer prometheus.Gatherer) error {
	if format == "json" {
		return writeJSON(w, submissionOutput{
			ID:        sub.ID.String(),
			Reading:   sub.Reading,
			Assets:    assets,
			Narrative: sub.Outcome,
			Message:   sub.Message(),
		})
	}

	printer := observability.NewPrinter(w)
	printer.PrintReading(sub.Reading, assets)
	if sub.Err != nil {
		printer.PrintFailure()
	} else {
		printer.PrintNarrative(sub.Outcome)
	}
	if gatherer != nil {
		return printer.PrintMetrics(gatherer)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
