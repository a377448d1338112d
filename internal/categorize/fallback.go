package categorize

import (
	"sort"
	"strings"

	"github.com/danielrosehill/Prompt-Library-Privacy-Screener/internal/library"
)

// keywordEntry pairs a fallback label with its keyword list. The slice order
// is the tie-break order when labels score equally.
type keywordEntry struct {
	label    string
	keywords []string
}

// fallbackKeywords is the fixed keyword map used when the classifier yields
// nothing usable. The labels are constants independent of the loaded taxonomy;
// if a run's taxonomy omits one of them, a scored result can name a category
// the taxonomy doesn't contain. Only the random pick below is taxonomy-safe.
var fallbackKeywords = []keywordEntry{
	{"Professional Services", []string{"medical", "legal", "business", "finance", "consult", "advisor", "technical", "support"}},
	{"Educational Support", []string{"tutor", "learn", "education", "research", "study", "academic", "knowledge"}},
	{"Personal Assistance", []string{"assistant", "help", "personal", "fitness", "coach", "cooking", "daily"}},
	{"Creative and Exploratory", []string{"creative", "write", "travel", "explore", "discover", "environment", "sustainability"}},
}

// Fallback scores the prompt's combined text against the fixed keyword map
// and returns the top-scoring labels (score > 0, at most three, ties kept in
// map order). Each keyword counts at most once no matter how often it occurs.
// When every label scores zero, one category is drawn uniformly from the full
// taxonomy, so the result is never empty.
func (r *Resolver) Fallback(p library.Prompt) []string {
	text := strings.ToLower(p.CombinedText())

	type scored struct {
		label string
		score int
	}
	scores := make([]scored, 0, len(fallbackKeywords))
	for _, entry := range fallbackKeywords {
		count := 0
		for _, kw := range entry.keywords {
			if strings.Contains(text, kw) {
				count++
			}
		}
		scores = append(scores, scored{label: entry.label, score: count})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].score > scores[j].score
	})

	var result []string
	for _, s := range scores {
		if s.score == 0 {
			break
		}
		result = append(result, s.label)
		if len(result) == library.MaxCategories {
			break
		}
	}

	if len(result) == 0 {
		names := r.taxonomy.Names()
		return []string{names[r.rng.Intn(len(names))]}
	}
	return result
}
