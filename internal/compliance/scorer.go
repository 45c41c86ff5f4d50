// Package compliance provides the heuristic compliance validation applied
// to every analyzed text. The default scorer is a deterministic placeholder
// derived from text length, kept behind a strategy interface so a real
// model can be substituted without touching the orchestrator.
package compliance

import (
	"strings"
	"unicode/utf8"

	"github.com/lex-ai/internal/domain"
)

// Score bounds and fixed status cut points.
const (
	minScore = 0.35
	maxScore = 0.95

	validThreshold  = 0.85
	reviewThreshold = 0.65

	redFlagsValid  = 0
	redFlagsReview = 2
	redFlagsIssues = 5
)

// vocabulary is the fixed ordered set of legal terms scanned for.
// LegalTermsFound preserves this order regardless of occurrence order.
var vocabulary = []string{
	"agreement", "contract", "party", "liability", "indemnity",
	"term", "clause", "herein", "pursuant", "warrant",
}

// Scorer computes a compliance report for a piece of legal text.
// Implementations must be pure and must never fail.
type Scorer interface {
	Validate(text, analysisType string) domain.ValidationReport
}

// HeuristicScorer is the default Scorer. The score is a pure function of
// the character count mod 100, clamped to [0.35, 0.95]; it is a stand-in,
// not a legal-compliance determination.
type HeuristicScorer struct{}

// NewHeuristicScorer creates the default scorer.
func NewHeuristicScorer() *HeuristicScorer {
	return &HeuristicScorer{}
}

// Validate computes the deterministic report. Empty text scores 0.35 and
// classifies as potential_issues.
func (s *HeuristicScorer) Validate(text, analysisType string) domain.ValidationReport {
	// Characters, not bytes: multi-byte input must score the same as an
	// ASCII text of equal length.
	score := float64(utf8.RuneCountInString(text)%100) / 100
	if score < minScore {
		score = minScore
	}
	if score > maxScore {
		score = maxScore
	}

	var status domain.ComplianceStatus
	var redFlags int
	switch {
	case score > validThreshold:
		status = domain.ComplianceValid
		redFlags = redFlagsValid
	case score > reviewThreshold:
		status = domain.ComplianceReviewRecommended
		redFlags = redFlagsReview
	default:
		status = domain.CompliancePotentialIssues
		redFlags = redFlagsIssues
	}

	lower := strings.ToLower(text)
	terms := []string{}
	for _, term := range vocabulary {
		if strings.Contains(lower, term) {
			terms = append(terms, term)
		}
	}

	return domain.ValidationReport{
		ComplianceStatus: status,
		ComplianceScore:  score,
		LegalTermsFound:  terms,
		RedFlagsCount:    redFlags,
	}
}

// Vocabulary returns a copy of the fixed term list.
func Vocabulary() []string {
	out := make([]string, len(vocabulary))
	copy(out, vocabulary)
	return out
}
