package screen

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainsPII(t *testing.T) {
	screener := MustNewScreener()
	ctx := context.Background()

	tests := []struct {
		name       string
		text       string
		wantPII    bool
		wantEntity string
	}{
		{
			name:    "clean text",
			text:    "You are a helpful cooking companion that suggests recipes",
			wantPII: false,
		},
		{
			name:       "SSN shape",
			text:       "The SSN on file is 123-45-6789 for verification",
			wantPII:    true,
			wantEntity: "ssn",
		},
		{
			name:       "account near four digits",
			text:       "Reference the account ending in 4821 when replying",
			wantPII:    true,
			wantEntity: "account_number",
		},
		{
			name:       "student ID marker",
			text:       "Look up the student ID before grading",
			wantPII:    true,
			wantEntity: "identity_marker",
		},
		{
			name:       "case number marker mixed case",
			text:       "Cite the Case Number 12345 in the summary",
			wantPII:    true,
			wantEntity: "identity_marker",
		},
		{
			name:       "medicare number marker",
			text:       "Include the medicare number on the claim",
			wantPII:    true,
			wantEntity: "identity_marker",
		},
		{
			name:       "address marker",
			text:       "Ship it to my home Address please",
			wantPII:    true,
			wantEntity: "identity_marker",
		},
		{
			name:       "named individual",
			text:       "Draft an email as john smith of accounting",
			wantPII:    true,
			wantEntity: "person",
		},
		{
			name:       "another named individual",
			text:       "Summarize Sarah Johnson's quarterly report",
			wantPII:    true,
			wantEntity: "person",
		},
		{
			name:    "digits without account context",
			text:    "List the top 1000 books of 2024",
			wantPII: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match := screener.Scan(ctx, tt.text)
			assert.Equal(t, tt.wantPII, match != nil)
			assert.Equal(t, tt.wantPII, screener.ContainsPII(ctx, tt.text))
			if tt.wantPII {
				require.NotNil(t, match)
				assert.Equal(t, tt.wantEntity, match.Entity)
				assert.NotEmpty(t, match.Value)
			}
		})
	}
}

func TestScanShortCircuits(t *testing.T) {
	screener := MustNewScreener()

	// Text matching several recognizers reports exactly one match.
	match := screener.Scan(context.Background(), "John Smith, SSN 123-45-6789, student ID 99")
	require.NotNil(t, match)
	assert.NotEmpty(t, match.Entity)
}

func TestDefaultPatternsCompile(t *testing.T) {
	patterns, err := DefaultPatterns()
	require.NoError(t, err)
	assert.NotEmpty(t, patterns)
}

func TestLoadFilterFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pii.txt")
	content := `# High-level PII markers
phone number

# names
John Smith
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	filters, err := LoadFilterFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"phone number", "John Smith"}, filters)
}

func TestLoadFilterFileMissing(t *testing.T) {
	_, err := LoadFilterFile(filepath.Join(t.TempDir(), "absent.txt"))
	require.Error(t, err)
}

func TestLoadedFiltersAreAdvisoryOnly(t *testing.T) {
	// An entry in the filter file that is not in the embedded pack must not
	// cause a match: the active matcher runs on the embedded set only.
	dir := t.TempDir()
	path := filepath.Join(dir, "pii.txt")
	require.NoError(t, os.WriteFile(path, []byte("phone number\n"), 0o600))

	filters, err := LoadFilterFile(path)
	require.NoError(t, err)
	require.Contains(t, filters, "phone number")

	screener := MustNewScreener()
	assert.False(t, screener.ContainsPII(context.Background(), "call my phone number later"))
}

func TestParseRecognizerFileInvalidYAML(t *testing.T) {
	_, err := ParseRecognizerFile([]byte("recognizers: [unclosed"))
	require.Error(t, err)
}

func TestCompilePatternsBadRegex(t *testing.T) {
	_, err := CompilePatterns([]RecognizerConfig{
		{
			Name:            "broken",
			SupportedEntity: "broken",
			Patterns:        []PatternConfig{{Name: "bad", Regex: "("}},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compiling pattern")
}

func TestDenyListEntriesAreLiteral(t *testing.T) {
	compiled, err := CompilePatterns([]RecognizerConfig{
		{
			Name:            "markers",
			SupportedEntity: "marker",
			DenyList:        []string{"a.b"},
		},
	})
	require.NoError(t, err)
	require.Len(t, compiled, 1)
	assert.True(t, compiled[0].Pattern.MatchString("contains a.b literally"))
	assert.False(t, compiled[0].Pattern.MatchString("contains aXb only"))
}
