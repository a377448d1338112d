package screen

import (
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"
)

// RecognizerFile is the top-level YAML structure for a recognizer definition file.
type RecognizerFile struct {
	Recognizers []RecognizerConfig `yaml:"recognizers"`
}

// RecognizerConfig defines one recognizer: either a list of regex patterns or
// a deny list of literal markers.
type RecognizerConfig struct {
	Name            string          `yaml:"name"`
	SupportedEntity string          `yaml:"supported_entity"`
	Patterns        []PatternConfig `yaml:"patterns,omitempty"`
	DenyList        []string        `yaml:"deny_list,omitempty"`
}

// PatternConfig is a single regex pattern within a recognizer.
type PatternConfig struct {
	Name  string `yaml:"name"`
	Regex string `yaml:"regex"`
}

// Pattern is a compiled, ready-to-use recognizer pattern. All patterns match
// case-insensitively.
type Pattern struct {
	Name    string
	Entity  string
	Pattern *regexp.Regexp
}

// ParseRecognizerFile parses recognizer YAML bytes into a RecognizerFile.
func ParseRecognizerFile(data []byte) (*RecognizerFile, error) {
	var rf RecognizerFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing recognizer YAML: %w", err)
	}
	return &rf, nil
}

// CompilePatterns converts recognizer configs into the compiled []Pattern slice
// used by the Screener at runtime. Each regex pattern produces one entry; each
// deny-list marker is quoted and compiled as a literal substring match.
func CompilePatterns(recognizers []RecognizerConfig) ([]Pattern, error) {
	var patterns []Pattern

	for _, rec := range recognizers {
		for _, pc := range rec.Patterns {
			re, err := regexp.Compile("(?i)" + pc.Regex)
			if err != nil {
				return nil, fmt.Errorf("compiling pattern %s/%s: %w", rec.Name, pc.Name, err)
			}
			patterns = append(patterns, Pattern{
				Name:    pc.Name,
				Entity:  rec.SupportedEntity,
				Pattern: re,
			})
		}
		for _, marker := range rec.DenyList {
			re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(marker))
			if err != nil {
				return nil, fmt.Errorf("compiling deny-list marker %q in %s: %w", marker, rec.Name, err)
			}
			patterns = append(patterns, Pattern{
				Name:    marker,
				Entity:  rec.SupportedEntity,
				Pattern: re,
			})
		}
	}

	return patterns, nil
}
