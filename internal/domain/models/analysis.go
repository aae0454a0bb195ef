package models

import "github.com/google/uuid"

// RiskCategory classifies what kind of exposure a finding describes
type RiskCategory string

const (
	CategoryAccount  RiskCategory = "ACCOUNT"
	CategoryLocation RiskCategory = "LOCATION"
	CategoryContact  RiskCategory = "CONTACT"
	CategoryExposure RiskCategory = "EXPOSURE"
	CategoryIdentity RiskCategory = "IDENTITY"
	CategoryOther    RiskCategory = "OTHER"
)

// RiskSeverity represents the severity of a finding
type RiskSeverity string

const (
	SeverityHigh   RiskSeverity = "HIGH"
	SeverityMedium RiskSeverity = "MEDIUM"
	SeverityLow    RiskSeverity = "LOW"
)

// PrivacyLevel is the qualitative tier derived from the clamped score
type PrivacyLevel string

const (
	LevelStrong   PrivacyLevel = "STRONG"
	LevelModerate PrivacyLevel = "MODERATE"
	LevelWeak     PrivacyLevel = "WEAK"
)

// Finding is one categorized, severity-tagged detection result. Findings
// are immutable once created and are never merged or deduplicated; a
// profile may accumulate several findings in the same category.
type Finding struct {
	ID              uuid.UUID    `json:"id"`
	Category        RiskCategory `json:"category"`
	Severity        RiskSeverity `json:"severity"`
	Description     string       `json:"description"`
	SuggestedAction string       `json:"suggested_action"`
}

// EmailExposure summarizes what the collaborators know about the primary
// email. GitHubCommits and KeybaseFound are nil when the corresponding
// lookup was disabled or failed; nil means "unknown", never "false".
type EmailExposure struct {
	Email         string   `json:"email"`
	BreachFound   bool     `json:"breach_found"`
	BreachCount   int      `json:"breach_count"`
	BreachSources []string `json:"breach_sources"`
	GitHubCommits *int     `json:"github_commits"`
	KeybaseFound  *bool    `json:"keybase_found"`
}

// AnalysisResult is the outcome of one profile analysis
type AnalysisResult struct {
	SessionID       uuid.UUID     `json:"session_id"`
	PrivacyScore    int           `json:"privacy_score"`
	HighRiskCount   int           `json:"high_risk_count"`
	MediumRiskCount int           `json:"medium_risk_count"`
	LowRiskCount    int           `json:"low_risk_count"`
	Findings        []Finding     `json:"risks"`
	PrivacyLevel    PrivacyLevel  `json:"privacy_level"`
	Summary         string        `json:"summary"`
	EmailExposure   EmailExposure `json:"email_exposure"`
}
