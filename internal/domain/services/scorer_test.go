package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dataguardian/internal/domain/models"
)

func finding(cat models.RiskCategory, sev models.RiskSeverity) models.Finding {
	return models.Finding{Category: cat, Severity: sev}
}

func TestScoreClampAndLevels(t *testing.T) {
	s := NewScorer(testLogger())

	tests := []struct {
		name      string
		penalty   int
		wantScore int
		wantLevel models.PrivacyLevel
	}{
		{"no penalty", 0, 100, models.LevelStrong},
		{"strong boundary", 20, 80, models.LevelStrong},
		{"just below strong", 21, 79, models.LevelModerate},
		{"moderate boundary", 50, 50, models.LevelModerate},
		{"just below moderate", 51, 49, models.LevelWeak},
		{"clamped at zero", 150, 0, models.LevelWeak},
		{"negative penalty clamped", -20, 100, models.LevelStrong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := s.Score(nil, tt.penalty)
			assert.Equal(t, tt.wantScore, agg.Score)
			assert.Equal(t, tt.wantLevel, agg.Level)
		})
	}
}

func TestScoreSeverityCounts(t *testing.T) {
	s := NewScorer(testLogger())

	findings := []models.Finding{
		finding(models.CategoryAccount, models.SeverityHigh),
		finding(models.CategoryLocation, models.SeverityMedium),
		finding(models.CategoryContact, models.SeverityMedium),
		finding(models.CategoryExposure, models.SeverityLow),
	}

	agg := s.Score(findings, 50)
	assert.Equal(t, 1, agg.HighCount)
	assert.Equal(t, 2, agg.MediumCount)
	assert.Equal(t, 1, agg.LowCount)
	assert.Equal(t, len(findings), agg.HighCount+agg.MediumCount+agg.LowCount)
}

func TestSummarizeNoFindings(t *testing.T) {
	s := NewScorer(testLogger())

	agg := s.Score(nil, 0)
	assert.Equal(t, reassuringSummary, agg.Summary)
}

func TestSummarizeHighBeforeMedium(t *testing.T) {
	s := NewScorer(testLogger())

	// MEDIUM appears first in detection order, but the summary walks HIGH
	// findings first.
	findings := []models.Finding{
		finding(models.CategoryLocation, models.SeverityMedium),
		finding(models.CategoryAccount, models.SeverityHigh),
	}

	agg := s.Score(findings, 40)
	assert.Contains(t, agg.Summary, "email and account hygiene and location and address sharing")
}

func TestSummarizeCapsAtTwoCategories(t *testing.T) {
	s := NewScorer(testLogger())

	findings := []models.Finding{
		finding(models.CategoryAccount, models.SeverityHigh),
		finding(models.CategoryLocation, models.SeverityHigh),
		finding(models.CategoryContact, models.SeverityHigh),
	}

	agg := s.Score(findings, 75)
	assert.Contains(t, agg.Summary, "email and account hygiene and location and address sharing")
	assert.NotContains(t, agg.Summary, "contact details")
}

func TestSummarizeDeduplicatesCategories(t *testing.T) {
	s := NewScorer(testLogger())

	findings := []models.Finding{
		finding(models.CategoryLocation, models.SeverityMedium),
		finding(models.CategoryLocation, models.SeverityHigh),
	}

	agg := s.Score(findings, 40)
	assert.Contains(t, agg.Summary, "location and address sharing")
	assert.NotContains(t, agg.Summary, "and location and address sharing and")
}

func TestSummarizeLowOnlyFindings(t *testing.T) {
	s := NewScorer(testLogger())

	findings := []models.Finding{
		finding(models.CategoryExposure, models.SeverityLow),
	}

	agg := s.Score(findings, 5)
	assert.Contains(t, agg.Summary, "A few areas could use some improvement")
}
