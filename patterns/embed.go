// Package patterns provides the embedded high-risk PII recognizer definitions.
// The set is fixed at build time; the pii.txt filter file a run loads is a
// separate, advisory list (see internal/screen).
package patterns

import _ "embed"

//go:embed pii_highrisk.yaml
var piiHighRiskYAML []byte

// PIIHighRiskYAML returns the embedded high-risk PII recognizer definitions.
func PIIHighRiskYAML() []byte { return piiHighRiskYAML }
