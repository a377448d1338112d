// Package pipeline drives a full screening run: load inputs, screen each
// prompt for PII, categorize the survivors, and write the cleaned CSV.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"

	"github.com/danielrosehill/Prompt-Library-Privacy-Screener/internal/categorize"
	"github.com/danielrosehill/Prompt-Library-Privacy-Screener/internal/config"
	"github.com/danielrosehill/Prompt-Library-Privacy-Screener/internal/library"
	"github.com/danielrosehill/Prompt-Library-Privacy-Screener/internal/llm"
	screenotel "github.com/danielrosehill/Prompt-Library-Privacy-Screener/internal/otel"
	"github.com/danielrosehill/Prompt-Library-Privacy-Screener/internal/screen"
)

var tracer = screenotel.Tracer("github.com/danielrosehill/Prompt-Library-Privacy-Screener/internal/pipeline")

// Result summarizes one completed run.
type Result struct {
	RunID      string
	Kept       int
	Filtered   []string // names of PII-filtered prompts, in input order
	OutputFile string
}

// Pipeline executes screening runs for a given configuration.
type Pipeline struct {
	cfg          *config.Config
	resolverOpts []categorize.ResolverOption
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithResolverOptions passes options through to the category resolver
// (e.g. a seeded random source in tests).
func WithResolverOptions(opts ...categorize.ResolverOption) Option {
	return func(p *Pipeline) { p.resolverOpts = opts }
}

// New creates a Pipeline for the given configuration.
func New(cfg *config.Config, opts ...Option) *Pipeline {
	p := &Pipeline{cfg: cfg}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Run processes the whole prompt library sequentially, one prompt start to
// finish before the next. Input loading errors are fatal and abort before any
// output is written; everything after that is fail-soft per prompt. The
// output file is written once, after all prompts are processed.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	ctx, span := tracer.Start(ctx, "pipeline.run")
	defer span.End()

	runID := uuid.NewString()
	cfg := p.cfg

	log.Info().Str("run_id", runID).Func(screenotel.LogTraceFields(ctx)).Msg("Loading PII filters")
	filters, err := screen.LoadFilterFile(cfg.FiltersFile)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("run_id", runID).Int("filters", len(filters)).Msg("PII filter list loaded (advisory)")

	log.Info().Str("run_id", runID).Msg("Loading system prompts")
	prompts, err := library.LoadPrompts(cfg.PromptsFile)
	if err != nil {
		return nil, err
	}

	log.Info().Str("run_id", runID).Msg("Loading categories")
	taxonomy, err := library.LoadTaxonomy(cfg.TaxonomyFile)
	if err != nil {
		return nil, err
	}

	screener, err := screen.NewScreener()
	if err != nil {
		return nil, err
	}

	provider, err := llm.NewProvider(llm.ProviderConfig{
		Provider: cfg.Provider,
		BaseURL:  p.providerBaseURL(),
		APIKey:   cfg.OpenAIAPIKey,
	})
	if err != nil {
		return nil, err
	}
	resolver := categorize.NewResolver(provider, cfg.Model, taxonomy, p.resolverOpts...)

	log.Info().
		Str("run_id", runID).
		Int("prompts", len(prompts)).
		Str("provider", provider.Name()).
		Str("model", cfg.Model).
		Msg("Processing system prompts")

	var (
		cleaned  []library.CleanedPrompt
		filtered []string
	)

	for _, prompt := range prompts {
		if match := screener.Scan(ctx, prompt.CombinedText()); match != nil {
			log.Warn().
				Str("run_id", runID).
				Str("prompt", prompt.Name).
				Str("entity", match.Entity).
				Msg("Filtering out prompt due to PII content")
			filtered = append(filtered, prompt.Name)
			recordPromptFiltered(ctx, match.Entity)
			continue
		}

		log.Info().Str("run_id", runID).Str("prompt", prompt.Name).Msg("Categorizing prompt")
		categories := resolver.Categorize(ctx, prompt)

		cp := library.CleanedPrompt{Prompt: prompt}
		copy(cp.Categories[:], categories)
		cleaned = append(cleaned, cp)
		recordPromptKept(ctx)
	}

	log.Info().
		Str("run_id", runID).
		Int("clean", len(cleaned)).
		Str("output", cfg.OutputFile).
		Msg("Writing clean prompts")
	if err := library.WriteCleaned(cfg.OutputFile, cleaned); err != nil {
		return nil, fmt.Errorf("writing cleaned prompts: %w", err)
	}

	log.Info().
		Str("run_id", runID).
		Int("filtered", len(filtered)).
		Str("names", strings.Join(filtered, ", ")).
		Msg("Filtered out prompts")

	span.SetAttributes(
		attribute.Int("pipeline.kept", len(cleaned)),
		attribute.Int("pipeline.filtered", len(filtered)),
	)

	return &Result{
		RunID:      runID,
		Kept:       len(cleaned),
		Filtered:   filtered,
		OutputFile: cfg.OutputFile,
	}, nil
}

// providerBaseURL picks the endpoint override matching the configured provider.
func (p *Pipeline) providerBaseURL() string {
	if p.cfg.Provider == "openai" {
		return p.cfg.OpenAIBaseURL
	}
	return p.cfg.OllamaBaseURL
}
