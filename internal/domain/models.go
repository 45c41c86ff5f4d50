// Package domain contains the core domain models and types.
// These models represent the business logic contracts and are independent
// of any infrastructure concerns.
package domain

import "time"

// ComplianceStatus classifies the heuristic compliance check outcome.
type ComplianceStatus string

const (
	ComplianceValid             ComplianceStatus = "valid"
	ComplianceReviewRecommended ComplianceStatus = "review_recommended"
	CompliancePotentialIssues   ComplianceStatus = "potential_issues"
)

// IsValid checks if the status value is one of the allowed values.
func (s ComplianceStatus) IsValid() bool {
	switch s {
	case ComplianceValid, ComplianceReviewRecommended, CompliancePotentialIssues:
		return true
	default:
		return false
	}
}

// ValidationReport is the deterministic heuristic compliance output.
// It is derived from text length and content only; see compliance.Scorer.
type ValidationReport struct {
	// ComplianceStatus classifies the score against fixed thresholds.
	ComplianceStatus ComplianceStatus `json:"compliance_status"`

	// ComplianceScore is always within [0.35, 0.95].
	ComplianceScore float64 `json:"compliance_score"`

	// LegalTermsFound lists matched vocabulary terms in vocabulary order,
	// without duplicates.
	LegalTermsFound []string `json:"legal_terms_found"`

	// RedFlagsCount is 0, 2 or 5, consistent with ComplianceStatus.
	RedFlagsCount int `json:"red_flags_count"`
}

// TextAnalysisRequest represents an inline-text analysis request.
type TextAnalysisRequest struct {
	Text         string `json:"text"`
	AnalysisType string `json:"analysis_type"`
}

// AnalysisResult is the response envelope for both analysis endpoints.
type AnalysisResult struct {
	Status         string           `json:"status"`
	DocumentName   string           `json:"document_name"`
	DocumentLength int              `json:"document_length"`
	AnalysisType   string           `json:"analysis_type"`
	Result         string           `json:"result"`
	Validation     ValidationReport `json:"legal_bert_validation"`
	Timestamp      string           `json:"timestamp"`
}

// GenerationRequest represents a document generation request.
type GenerationRequest struct {
	DocumentType string            `json:"documentType"`
	Fields       map[string]string `json:"fields"`
}

// GenerationResult is the response envelope for document generation.
type GenerationResult struct {
	Status       string `json:"status"`
	DocumentType string `json:"document_type"`
	Document     string `json:"document"`
	Timestamp    string `json:"timestamp"`
}

// SignInRequest carries the client-provided identity fields.
type SignInRequest struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL"`
}

// RequestMeta carries per-request metadata mirrored into the user record.
type RequestMeta struct {
	UserAgent string
	IPAddress string
}

// UserSession is the per-connection session state.
type UserSession struct {
	UserID      string `json:"user_id,omitempty"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	PhotoURL    string `json:"photo_url,omitempty"`
	LoggedIn    bool   `json:"logged_in"`
	LoginTime   string `json:"login_time,omitempty"`
}

// UserRecord mirrors a user into the external identity store.
type UserRecord struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL"`
	LastLogin   string `json:"lastLogin"`
	LastLogout  string `json:"lastLogout,omitempty"`
	LastSeen    string `json:"lastSeen"`
	LoginCount  int    `json:"loginCount"`
	UserAgent   string `json:"userAgent"`
	IPAddress   string `json:"ipAddress"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

// HistoryRoot is the per-user history bookkeeping sub-record.
type HistoryRoot struct {
	Created string `json:"created"`
	Count   int    `json:"count"`
}

// Timestamp returns the current time in the wire format used everywhere.
func Timestamp() string {
	return time.Now().Format(time.RFC3339)
}
