/**
 * @description
 * RuleSnapshot captures a market's settlement rule text and the
 * definition-risk derived from it at the time it was extracted.
 *
 * @dependencies
 * - standard "time"
 */

package domain

import "time"

// Severity is the risk level of a RiskFlag.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// EvidenceSpan locates the substring in RuleSnapshot.RuleText that
// triggered a RiskFlag. May be empty if the flag isn't anchored to a span.
type EvidenceSpan struct {
	Start int
	End   int
}

// RiskFlag is one definition-risk signal extracted from rule text.
type RiskFlag struct {
	Code          string
	Severity      Severity
	EvidenceSpans []EvidenceSpan
}

// RuleSnapshot is the settlement-rule text for a market as of a point in
// time, plus the derived change-detection hash and risk assessment.
// rule_hash is a pure function of rule_text.
type RuleSnapshot struct {
	MarketID             string
	AsOf                 time.Time
	RuleText             string
	RuleHash             string
	SettlementSource     *string
	SettlementWindow     *string
	DefinitionRiskScore  float64
	RiskFlags            []RiskFlag
}
