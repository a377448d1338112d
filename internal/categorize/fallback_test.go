package categorize

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielrosehill/Prompt-Library-Privacy-Screener/internal/library"
)

func TestFallbackSingleMatch(t *testing.T) {
	resolver := NewResolver(&stubProvider{}, "llama3.2:latest", testTaxonomy(t))

	got := resolver.Fallback(library.Prompt{
		Name:         "Quiz Maker",
		Description:  "tutor",
		SystemPrompt: "study",
	})

	assert.Equal(t, []string{"Educational Support"}, got)
}

func TestFallbackOrdersByScore(t *testing.T) {
	resolver := NewResolver(&stubProvider{}, "llama3.2:latest", testTaxonomy(t))

	// Educational scores 3 (tutor, study, research), Professional scores 2
	// (legal, consult).
	got := resolver.Fallback(library.Prompt{
		Name:         "Research Aid",
		Description:  "legal consult",
		SystemPrompt: "tutor study research",
	})

	assert.Equal(t, []string{"Educational Support", "Professional Services"}, got)
}

func TestFallbackTiesKeepInsertionOrder(t *testing.T) {
	resolver := NewResolver(&stubProvider{}, "llama3.2:latest", testTaxonomy(t))

	// One keyword each: the tie resolves to keyword-map order.
	got := resolver.Fallback(library.Prompt{SystemPrompt: "legal tutor"})

	assert.Equal(t, []string{"Professional Services", "Educational Support"}, got)
}

func TestFallbackCapsAtThree(t *testing.T) {
	resolver := NewResolver(&stubProvider{}, "llama3.2:latest", testTaxonomy(t))

	got := resolver.Fallback(library.Prompt{SystemPrompt: "legal tutor cooking creative"})

	assert.Equal(t, []string{"Professional Services", "Educational Support", "Personal Assistance"}, got)
}

func TestFallbackCountsEachKeywordOnce(t *testing.T) {
	resolver := NewResolver(&stubProvider{}, "llama3.2:latest", testTaxonomy(t))

	// "study" three times still scores 1, so a two-keyword label outranks it.
	got := resolver.Fallback(library.Prompt{SystemPrompt: "study study study legal consult"})

	assert.Equal(t, []string{"Professional Services", "Educational Support"}, got)
}

func TestFallbackCaseInsensitive(t *testing.T) {
	resolver := NewResolver(&stubProvider{}, "llama3.2:latest", testTaxonomy(t))

	got := resolver.Fallback(library.Prompt{SystemPrompt: "TUTOR Study"})

	assert.Equal(t, []string{"Educational Support"}, got)
}

func TestFallbackDeterministicWhenScored(t *testing.T) {
	resolver := NewResolver(&stubProvider{}, "llama3.2:latest", testTaxonomy(t))
	prompt := library.Prompt{SystemPrompt: "fitness coach with legal knowledge"}

	first := resolver.Fallback(prompt)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, resolver.Fallback(prompt))
	}
}

func TestFallbackRandomPickOnZeroScores(t *testing.T) {
	taxonomy, err := library.NewTaxonomy([]string{"Alpha", "Beta", "Gamma"})
	require.NoError(t, err)

	seed := int64(42)
	resolver := NewResolver(&stubProvider{}, "llama3.2:latest", taxonomy,
		WithRand(rand.New(rand.NewSource(seed))))

	got := resolver.Fallback(library.Prompt{Name: "Zzz", Description: "qqq", SystemPrompt: "vvv"})

	require.Len(t, got, 1)
	assert.True(t, taxonomy.Contains(got[0]))

	// Same seed, same pick: the random branch is reproducible under an
	// injected source.
	again := NewResolver(&stubProvider{}, "llama3.2:latest", taxonomy,
		WithRand(rand.New(rand.NewSource(seed)))).
		Fallback(library.Prompt{Name: "Zzz", Description: "qqq", SystemPrompt: "vvv"})
	assert.Equal(t, got, again)
}

func TestFallbackRandomPickDrawsFromFullTaxonomy(t *testing.T) {
	// The zero-score branch draws from the loaded taxonomy, not from the
	// fixed keyword labels.
	taxonomy, err := library.NewTaxonomy([]string{"OnlyCategory"})
	require.NoError(t, err)

	resolver := NewResolver(&stubProvider{}, "llama3.2:latest", taxonomy)
	got := resolver.Fallback(library.Prompt{Name: "Zzz", Description: "qqq", SystemPrompt: "vvv"})

	assert.Equal(t, []string{"OnlyCategory"}, got)
}
