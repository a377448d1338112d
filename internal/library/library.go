// Package library loads and writes the prompt library's tabular files:
// the raw system prompts, the category taxonomy, and the cleaned output.
package library

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Domain errors for input loading.
var (
	ErrMissingColumn = errors.New("required column missing from header")
	ErrEmptyTaxonomy = errors.New("taxonomy contains no categories")
)

// MaxCategories is the fixed number of category slots on an output record.
const MaxCategories = 3

// cleanedHeader is the fixed output column layout.
var cleanedHeader = []string{"name", "description", "system_prompt", "category_1", "category_2", "category_3"}

// Prompt is one raw record from the prompt library.
type Prompt struct {
	Name         string
	Description  string
	SystemPrompt string
}

// CombinedText returns the concatenation used for PII screening and
// fallback keyword scoring.
func (p Prompt) CombinedText() string {
	return p.Name + " " + p.Description + " " + p.SystemPrompt
}

// CleanedPrompt is a screened prompt with its assigned category slots.
// Unassigned slots stay empty strings so the output layout is always 6 columns.
type CleanedPrompt struct {
	Prompt
	Categories [MaxCategories]string
}

// Taxonomy is the ordered, immutable list of valid category names for a run.
type Taxonomy struct {
	names  []string
	member map[string]struct{}
}

// NewTaxonomy builds a Taxonomy from an ordered name list. An empty list is
// rejected so the random-pick fallback branch always has something to draw from.
func NewTaxonomy(names []string) (*Taxonomy, error) {
	if len(names) == 0 {
		return nil, ErrEmptyTaxonomy
	}
	member := make(map[string]struct{}, len(names))
	for _, n := range names {
		member[n] = struct{}{}
	}
	return &Taxonomy{names: names, member: member}, nil
}

// Names returns the category names in load order.
func (t *Taxonomy) Names() []string {
	return t.names
}

// Contains reports whether name is an exact (case-sensitive) taxonomy member.
func (t *Taxonomy) Contains(name string) bool {
	_, ok := t.member[name]
	return ok
}

// Len returns the number of categories.
func (t *Taxonomy) Len() int {
	return len(t.names)
}

// LoadPrompts reads the prompt library CSV. The header must contain at least
// name, description, and system_prompt; extra columns are ignored.
func LoadPrompts(path string) ([]Prompt, error) {
	rows, index, err := readTable(path, "name", "description", "system_prompt")
	if err != nil {
		return nil, fmt.Errorf("loading prompts from %s: %w", path, err)
	}

	prompts := make([]Prompt, 0, len(rows))
	for _, row := range rows {
		prompts = append(prompts, Prompt{
			Name:         row[index["name"]],
			Description:  row[index["description"]],
			SystemPrompt: row[index["system_prompt"]],
		})
	}
	return prompts, nil
}

// LoadTaxonomy reads the category CSV (header must contain "category") and
// returns the taxonomy in file order.
func LoadTaxonomy(path string) (*Taxonomy, error) {
	rows, index, err := readTable(path, "category")
	if err != nil {
		return nil, fmt.Errorf("loading taxonomy from %s: %w", path, err)
	}

	names := make([]string, 0, len(rows))
	for _, row := range rows {
		names = append(names, row[index["category"]])
	}

	t, err := NewTaxonomy(names)
	if err != nil {
		return nil, fmt.Errorf("loading taxonomy from %s: %w", path, err)
	}
	return t, nil
}

// WriteCleaned writes the cleaned prompts to path in the fixed 6-column layout.
func WriteCleaned(path string, prompts []CleanedPrompt) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(cleanedHeader); err != nil {
		return fmt.Errorf("writing output header: %w", err)
	}
	for _, p := range prompts {
		row := []string{p.Name, p.Description, p.SystemPrompt, p.Categories[0], p.Categories[1], p.Categories[2]}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing output row for %s: %w", p.Name, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing output file %s: %w", path, err)
	}
	return f.Close()
}

// ReadCleaned reads a file previously written by WriteCleaned.
func ReadCleaned(path string) ([]CleanedPrompt, error) {
	rows, index, err := readTable(path, cleanedHeader...)
	if err != nil {
		return nil, fmt.Errorf("reading cleaned prompts from %s: %w", path, err)
	}

	prompts := make([]CleanedPrompt, 0, len(rows))
	for _, row := range rows {
		cp := CleanedPrompt{
			Prompt: Prompt{
				Name:         row[index["name"]],
				Description:  row[index["description"]],
				SystemPrompt: row[index["system_prompt"]],
			},
		}
		cp.Categories[0] = row[index["category_1"]]
		cp.Categories[1] = row[index["category_2"]]
		cp.Categories[2] = row[index["category_3"]]
		prompts = append(prompts, cp)
	}
	return prompts, nil
}

// readTable reads a CSV with a header row and verifies the required columns
// are present. Returns the data rows and a column-name → index map.
func readTable(path string, required ...string) ([][]string, map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("parsing CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("%w: empty file", ErrMissingColumn)
	}

	index := make(map[string]int, len(records[0]))
	for i, col := range records[0] {
		index[strings.TrimSpace(col)] = i
	}
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return nil, nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	return records[1:], index, nil
}
