package screen

import (
	"fmt"
	"os"
	"strings"
)

// LoadFilterFile reads a line-oriented PII filter list. Blank lines and lines
// starting with '#' are skipped. The returned entries are advisory: the
// matcher runs on the embedded high-risk pack, not on this list.
func LoadFilterFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading PII filter file %s: %w", path, err)
	}

	var filters []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		filters = append(filters, line)
	}
	return filters, nil
}
