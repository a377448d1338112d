// Package screen detects high-risk PII markers in prompt text.
//
// The active pattern set is the embedded pii_highrisk.yaml pack, fixed at
// build time. The pii.txt filter file loaded at startup is advisory only:
// its entries are counted and logged but do not participate in matching.
// The screen is selective, not exhaustive; callers must not assume a false
// result means the text is PII-free.
package screen

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	screenotel "github.com/danielrosehill/Prompt-Library-Privacy-Screener/internal/otel"
	"github.com/danielrosehill/Prompt-Library-Privacy-Screener/patterns"
)

var tracer = screenotel.Tracer("github.com/danielrosehill/Prompt-Library-Privacy-Screener/internal/screen")

// Match describes the first recognizer hit in a piece of text.
type Match struct {
	Recognizer string // pattern or marker name
	Entity     string // entity type, e.g. "ssn", "person"
	Value      string // matched text
}

// Screener checks text against the compiled high-risk pattern set.
type Screener struct {
	patterns []Pattern
}

// DefaultPatterns returns the compiled pattern set from the embedded
// high-risk YAML pack.
func DefaultPatterns() ([]Pattern, error) {
	rf, err := ParseRecognizerFile(patterns.PIIHighRiskYAML())
	if err != nil {
		return nil, fmt.Errorf("parsing embedded high-risk patterns: %w", err)
	}
	return CompilePatterns(rf.Recognizers)
}

// NewScreener creates a Screener using the embedded high-risk pattern set.
func NewScreener() (*Screener, error) {
	compiled, err := DefaultPatterns()
	if err != nil {
		return nil, err
	}
	return &Screener{patterns: compiled}, nil
}

// MustNewScreener is like NewScreener but panics on error. The embedded
// defaults are expected to always compile.
func MustNewScreener() *Screener {
	s, err := NewScreener()
	if err != nil {
		panic(fmt.Sprintf("screen.NewScreener: %v", err))
	}
	return s
}

// Scan returns the first pattern match in text, or nil when the text is clean.
// Patterns are checked in pack order but any match short-circuits, so ordering
// only affects which match is reported, not whether text is flagged.
func (s *Screener) Scan(ctx context.Context, text string) *Match {
	_, span := tracer.Start(ctx, "screen.scan")
	defer span.End()

	for _, p := range s.patterns {
		if loc := p.Pattern.FindStringIndex(text); loc != nil {
			span.SetAttributes(
				attribute.Bool("pii.detected", true),
				attribute.String("pii.entity", p.Entity),
			)
			return &Match{
				Recognizer: p.Name,
				Entity:     p.Entity,
				Value:      text[loc[0]:loc[1]],
			}
		}
	}

	span.SetAttributes(attribute.Bool("pii.detected", false))
	return nil
}

// ContainsPII reports whether text matches any high-risk pattern.
func (s *Screener) ContainsPII(ctx context.Context, text string) bool {
	return s.Scan(ctx, text) != nil
}
