package services

import (
	"fmt"

	"dataguardian/internal/domain/models"
	"dataguardian/pkg/logger"
)

const (
	baseScore = 100

	// Level thresholds over the clamped score
	strongThreshold   = 80
	moderateThreshold = 50
)

// categoryPhrases maps each risk category to the short phrase used when
// composing the summary sentence
var categoryPhrases = map[models.RiskCategory]string{
	models.CategoryAccount:  "email and account hygiene",
	models.CategoryContact:  "contact details",
	models.CategoryLocation: "location and address sharing",
	models.CategoryExposure: "digital visibility",
	models.CategoryIdentity: "identity and affiliation details",
	models.CategoryOther:    "other areas",
}

const reassuringSummary = "Your overall privacy posture looks quite strong. It is still worth reviewing what you share from time to time."

// Aggregate is the scored outcome over one set of findings
type Aggregate struct {
	Score       int
	HighCount   int
	MediumCount int
	LowCount    int
	Level       models.PrivacyLevel
	Summary     string
}

// Scorer turns findings and penalties into a clamped score, severity
// counts, a qualitative level and a summary sentence
type Scorer struct {
	logger *logger.Logger
}

// NewScorer creates a new Scorer
func NewScorer(log *logger.Logger) *Scorer {
	return &Scorer{
		logger: log.WithComponent("scorer"),
	}
}

// Score aggregates the detector output. The penalty is applied once and
// the result clamped to [0,100]; a floored score never re-enters range.
func (s *Scorer) Score(findings []models.Finding, totalPenalty int) Aggregate {
	agg := Aggregate{
		Score: clampScore(baseScore - totalPenalty),
	}

	for _, f := range findings {
		switch f.Severity {
		case models.SeverityHigh:
			agg.HighCount++
		case models.SeverityMedium:
			agg.MediumCount++
		default:
			agg.LowCount++
		}
	}

	switch {
	case agg.Score >= strongThreshold:
		agg.Level = models.LevelStrong
	case agg.Score >= moderateThreshold:
		agg.Level = models.LevelModerate
	default:
		agg.Level = models.LevelWeak
	}

	agg.Summary = s.summarize(findings, agg.Level)
	return agg
}

// summarize composes the human-readable summary. The dominant categories
// are the first two distinct ones seen walking HIGH findings, then MEDIUM
// findings, in detection order; this walk is deliberately order-dependent
// and must not be re-sorted by frequency.
func (s *Scorer) summarize(findings []models.Finding, level models.PrivacyLevel) string {
	if len(findings) == 0 {
		return reassuringSummary
	}

	var mainCats []models.RiskCategory
	for _, sev := range []models.RiskSeverity{models.SeverityHigh, models.SeverityMedium} {
		for _, f := range findings {
			if f.Severity != sev || containsCategory(mainCats, f.Category) {
				continue
			}
			mainCats = append(mainCats, f.Category)
		}
	}
	if len(mainCats) > 2 {
		mainCats = mainCats[:2]
	}

	if len(mainCats) == 0 {
		return fmt.Sprintf("Your overall privacy level is %s. A few areas could use some improvement.", level)
	}

	catText := categoryPhrases[mainCats[0]]
	if len(mainCats) == 2 {
		catText = categoryPhrases[mainCats[0]] + " and " + categoryPhrases[mainCats[1]]
	}
	return fmt.Sprintf("Your overall privacy level is %s. Being more careful about %s would help the most.", level, catText)
}

func containsCategory(cats []models.RiskCategory, c models.RiskCategory) bool {
	for _, existing := range cats {
		if existing == c {
			return true
		}
	}
	return false
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
