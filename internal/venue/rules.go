/**
 * @description
 * Deterministic, local rule-text analysis: the change-detection hash and
 * the risk-flag lexicon scan described in spec.md §4.1. Shared by every
 * venue implementation since it depends only on the extracted rule text,
 * not on any wire format.
 *
 * @dependencies
 * - standard "crypto/sha256", "encoding/hex", "math", "strings"
 */

package venue

import (
	"crypto/sha256"
	"encoding/hex"
	"math"
	"strings"

	"github.com/bankai-project/backend/internal/domain"
)

var severityWeight = map[domain.Severity]float64{
	domain.SeverityHigh:   0.30,
	domain.SeverityMedium: 0.15,
	domain.SeverityLow:    0.05,
}

// ComputeRuleHash returns the SHA-256 hex digest of the UTF-8 bytes of
// text. Pure function of text: invariant 1 of spec.md §8.
func ComputeRuleHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// ExtractRiskFlags scans ruleText against the fixed lexicon in spec.md
// §4.1, case-insensitively, substring-matched. Each code fires at most
// once per call (invariant 2 of spec.md §8). False positives from
// substring matching (e.g. "maybe" containing "may") are accepted as
// authored — see DESIGN.md Open Question (a).
func ExtractRiskFlags(ruleText string) []domain.RiskFlag {
	lower := strings.ToLower(ruleText)
	var flags []domain.RiskFlag

	if strings.Contains(lower, "subjective") || strings.Contains(lower, "discretion") {
		flags = append(flags, domain.RiskFlag{
			Code:     "SUBJECTIVE_RESOLUTION",
			Severity: domain.SeverityHigh,
		})
	}

	if strings.Contains(lower, "unnamed") || strings.Contains(lower, "anonymous") {
		flags = append(flags, domain.RiskFlag{
			Code:     "UNNAMED_SOURCE",
			Severity: domain.SeverityHigh,
		})
	}

	if strings.Contains(lower, "may") || strings.Contains(lower, "might") || strings.Contains(lower, "could") {
		flags = append(flags, domain.RiskFlag{
			Code:     "AMBIGUOUS_LANGUAGE",
			Severity: domain.SeverityMedium,
		})
	}

	return flags
}

// CalculateRiskScore sums severity weights across flags, capped at 1.0.
func CalculateRiskScore(flags []domain.RiskFlag) float64 {
	var total float64
	for _, f := range flags {
		total += severityWeight[f.Severity]
	}
	return math.Min(total, 1.0)
}
