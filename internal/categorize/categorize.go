// Package categorize assigns taxonomy categories to screened prompts.
//
// The primary path asks a text-generation provider to pick up to three
// category names; its free-text answer is validated against the taxonomy.
// When the provider is unreachable or returns nothing usable, a deterministic
// keyword scorer takes over, so every prompt always ends up with 1-3
// categories.
package categorize

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"

	"github.com/danielrosehill/Prompt-Library-Privacy-Screener/internal/library"
	"github.com/danielrosehill/Prompt-Library-Privacy-Screener/internal/llm"
	screenotel "github.com/danielrosehill/Prompt-Library-Privacy-Screener/internal/otel"
)

var tracer = screenotel.Tracer("github.com/danielrosehill/Prompt-Library-Privacy-Screener/internal/categorize")

// Resolver orchestrates classifier calls and fallback scoring for one run.
type Resolver struct {
	provider llm.Provider
	model    string
	taxonomy *library.Taxonomy
	rng      *rand.Rand
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithRand injects the random source used by the all-zero-score fallback
// branch, so tests can make the random pick reproducible.
func WithRand(rng *rand.Rand) ResolverOption {
	return func(r *Resolver) { r.rng = rng }
}

// NewResolver creates a Resolver for the given provider, model, and taxonomy.
func NewResolver(provider llm.Provider, model string, taxonomy *library.Taxonomy, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		provider: provider,
		model:    model,
		taxonomy: taxonomy,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Categorize assigns 1-3 categories to the prompt. The classifier answer is
// parsed and validated first; an unreachable provider or an answer with zero
// valid taxonomy names both fall through to the keyword scorer. A classifier
// failure never propagates to the caller.
func (r *Resolver) Categorize(ctx context.Context, p library.Prompt) []string {
	ctx, span := tracer.Start(ctx, "categorize.resolve")
	defer span.End()

	raw := r.classify(ctx, p)
	categories := r.parseResponse(raw)

	if len(categories) == 0 {
		log.Debug().Str("prompt", p.Name).Msg("Using fallback categorization")
		categories = r.Fallback(p)
		span.SetAttributes(attribute.Bool("categorize.fallback", true))
	}

	span.SetAttributes(attribute.StringSlice("categorize.categories", categories))
	return categories
}

// classify sends the composed instruction to the provider and returns its raw
// answer. Any transport or decode failure is logged and collapsed to the
// empty string.
func (r *Resolver) classify(ctx context.Context, p library.Prompt) string {
	resp, err := r.provider.Generate(ctx, &llm.Request{
		Model:  r.model,
		Prompt: r.buildPrompt(p),
	})
	if err != nil {
		log.Warn().
			Err(err).
			Str("prompt", p.Name).
			Str("provider", r.provider.Name()).
			Msg("Classifier request failed")
		return ""
	}
	return resp.Content
}

// buildPrompt composes the natural-language classification instruction:
// the comma-joined taxonomy, the prompt's fields, and a request for at most
// three matching category names.
func (r *Resolver) buildPrompt(p library.Prompt) string {
	return fmt.Sprintf(`
I need to categorize the following system prompt into at most 3 categories from this list: %s.
Please analyze the prompt and return only the category names that best match, separated by commas.
If fewer than 3 categories apply, return fewer categories.

System Prompt Name: %s
System Prompt Description: %s
System Prompt: %s

Categories:
`, strings.Join(r.taxonomy.Names(), ", "), p.Name, p.Description, p.SystemPrompt)
}

// parseResponse splits the raw answer on commas, trims each segment, and
// keeps only exact (case-sensitive) taxonomy members, capped at three.
// Returns nil when nothing valid remains.
func (r *Resolver) parseResponse(raw string) []string {
	if raw == "" {
		return nil
	}

	var valid []string
	for _, segment := range strings.Split(raw, ",") {
		name := strings.TrimSpace(segment)
		if r.taxonomy.Contains(name) {
			valid = append(valid, name)
			if len(valid) == library.MaxCategories {
				break
			}
		}
	}
	return valid
}
