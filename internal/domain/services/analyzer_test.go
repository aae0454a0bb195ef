package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataguardian/internal/domain/models"
)

type stubBreach struct {
	found   bool
	sources []string
}

func (s stubBreach) Check(ctx context.Context, email string) (bool, []string) {
	return s.found, s.sources
}

type stubCommits struct{ n *int }

func (s stubCommits) CommitCount(ctx context.Context, email string) *int { return s.n }

type stubIdentity struct{ b *bool }

func (s stubIdentity) ProfileFound(ctx context.Context, email string) *bool { return s.b }

func newTestAnalyzer(breach BreachStore, commits CommitVisibilityClient, identity IdentityLinkClient) *Analyzer {
	log := testLogger()
	return NewAnalyzer(
		NewNormalizer(log),
		NewDetector(log),
		NewScorer(log),
		breach, commits, identity,
		time.Second, log,
	)
}

func newQuietAnalyzer() *Analyzer {
	return newTestAnalyzer(stubBreach{}, stubCommits{}, stubIdentity{})
}

func TestAnalyzeGenericEmailOnly(t *testing.T) {
	a := newQuietAnalyzer()

	result := a.Analyze(context.Background(), models.Profile{
		FullName:     "Ayşe Kaya",
		PrimaryEmail: "test@gmail.com",
	})

	assert.Equal(t, 95, result.PrivacyScore)
	assert.Equal(t, models.LevelStrong, result.PrivacyLevel)
	assert.Equal(t, 0, result.HighRiskCount)
	assert.Equal(t, 0, result.MediumRiskCount)
	assert.Equal(t, 1, result.LowRiskCount)
	require.Len(t, result.Findings, 1)
	assert.Equal(t, models.CategoryAccount, result.Findings[0].Category)
}

func TestAnalyzePhoneNumberAsEmail(t *testing.T) {
	a := newQuietAnalyzer()

	result := a.Analyze(context.Background(), models.Profile{
		FullName:     "Ayşe Kaya",
		PrimaryEmail: "05321234567@gmail.com",
	})

	assert.LessOrEqual(t, result.PrivacyScore, 75)
	assert.GreaterOrEqual(t, result.HighRiskCount, 1)
}

func TestAnalyzeReusedPrimaryEmail(t *testing.T) {
	a := newQuietAnalyzer()
	primary := "ayse.kaya@gmail.com"

	result := a.Analyze(context.Background(), models.Profile{
		FullName:     "Ayşe Kaya",
		PrimaryEmail: primary,
		SocialAccounts: []models.SocialAccount{
			{Platform: "instagram", Email: primary},
			{Platform: "tiktok", Email: primary},
			{Platform: "reddit", Email: primary},
		},
	})

	assert.Equal(t, 85, result.PrivacyScore)
	require.Len(t, result.Findings, 1)
	assert.Contains(t, result.Findings[0].Description, "3")
}

func TestAnalyzeAddressInBio(t *testing.T) {
	a := newQuietAnalyzer()

	result := a.Analyze(context.Background(), models.Profile{
		FullName:     "Ayşe Kaya",
		PrimaryEmail: "ayse.kaya@gmail.com",
		SocialAccounts: []models.SocialAccount{
			{Platform: "instagram", BioText: "Kadıköy Moda Mah. 12. Sok. No:5 Daire 3"},
		},
	})

	assert.Equal(t, 60, result.PrivacyScore)
	locationFindings := 0
	for _, f := range result.Findings {
		if f.Category == models.CategoryLocation {
			locationFindings++
		}
	}
	assert.Equal(t, 2, locationFindings)
}

func TestAnalyzeBreachedEmail(t *testing.T) {
	a := newTestAnalyzer(
		stubBreach{found: true, sources: []string{"collection1", "collection2"}},
		stubCommits{}, stubIdentity{},
	)

	result := a.Analyze(context.Background(), models.Profile{
		FullName:     "Ayşe Kaya",
		PrimaryEmail: "leaked@example.com",
	})

	assert.True(t, result.EmailExposure.BreachFound)
	assert.Equal(t, 2, result.EmailExposure.BreachCount)
	assert.Equal(t, []string{"collection1", "collection2"}, result.EmailExposure.BreachSources)
	assert.Equal(t, 70, result.PrivacyScore)
}

func TestAnalyzeManyAccountsAndPublicProfiles(t *testing.T) {
	a := newQuietAnalyzer()

	accounts := make([]models.SocialAccount, 6)
	for i := range accounts {
		accounts[i] = models.SocialAccount{Platform: "other", IsPublic: i < 4}
	}

	result := a.Analyze(context.Background(), models.Profile{
		FullName:       "Ayşe Kaya",
		PrimaryEmail:   "distinct.name@gmail.com",
		SocialAccounts: accounts,
	})

	require.Len(t, result.Findings, 2)
	assert.Equal(t, 2, result.MediumRiskCount)
	assert.Equal(t, 80, result.PrivacyScore)
}

func TestAnalyzeScoreAlwaysInRange(t *testing.T) {
	a := newTestAnalyzer(
		stubBreach{found: true, sources: []string{"a", "b", "c"}},
		stubCommits{n: intPtr(12)},
		stubIdentity{b: boolPtr(true)},
	)

	// A worst-case profile stacking as many rules as possible
	primary := "05321234567@acmebank.com.tr"
	accounts := make([]models.SocialAccount, 9)
	for i := range accounts {
		accounts[i] = models.SocialAccount{
			Platform: "instagram",
			Username: "ayse_kaya",
			Email:    primary,
			IsPublic: true,
			BioText:  "Kadıköy Mah. No:5, Boğaziçi Üniversitesi",
		}
	}

	result := a.Analyze(context.Background(), models.Profile{
		FullName:       "Ayşe Kaya",
		PrimaryEmail:   primary,
		SocialAccounts: accounts,
	})

	assert.GreaterOrEqual(t, result.PrivacyScore, 0)
	assert.LessOrEqual(t, result.PrivacyScore, 100)
	assert.Equal(t, 0, result.PrivacyScore)
	assert.Equal(t, models.LevelWeak, result.PrivacyLevel)
	assert.Equal(t,
		len(result.Findings),
		result.HighRiskCount+result.MediumRiskCount+result.LowRiskCount,
	)
}

func TestAnalyzeIdempotent(t *testing.T) {
	a := newTestAnalyzer(
		stubBreach{found: true, sources: []string{"collection1"}},
		stubCommits{n: intPtr(3)},
		stubIdentity{b: boolPtr(true)},
	)

	profile := models.Profile{
		FullName:     "Ayşe Kaya",
		PrimaryEmail: "ayse1992@acmebank.com.tr",
		SocialAccounts: []models.SocialAccount{
			{Platform: "instagram", Email: "ayse1992@acmebank.com.tr", IsPublic: true},
		},
	}

	first := a.Analyze(context.Background(), profile)
	second := a.Analyze(context.Background(), profile)

	assert.NotEqual(t, first.SessionID, second.SessionID)
	assert.Equal(t, first.PrivacyScore, second.PrivacyScore)
	assert.Equal(t, first.HighRiskCount, second.HighRiskCount)
	assert.Equal(t, first.MediumRiskCount, second.MediumRiskCount)
	assert.Equal(t, first.LowRiskCount, second.LowRiskCount)
	assert.Equal(t, first.PrivacyLevel, second.PrivacyLevel)
	assert.Equal(t, first.Summary, second.Summary)

	assert.Equal(t, findingsByCategory(first.Findings), findingsByCategory(second.Findings))
}

func TestAnalyzeNormalizesPrimaryEmail(t *testing.T) {
	a := newQuietAnalyzer()

	result := a.Analyze(context.Background(), models.Profile{
		FullName:     "Ayşe Kaya",
		PrimaryEmail: "  Test@Gmail.COM  ",
	})

	assert.Equal(t, "test@gmail.com", result.EmailExposure.Email)
	assert.Equal(t, 95, result.PrivacyScore)
}

func TestAnalyzeEmptyFindingsSerializeAsEmptySlice(t *testing.T) {
	a := newQuietAnalyzer()

	result := a.Analyze(context.Background(), models.Profile{
		FullName:     "Ayşe Kaya",
		PrimaryEmail: "ayse.kaya.dev@gmail.com",
	})

	assert.NotNil(t, result.Findings)
	assert.Empty(t, result.Findings)
	assert.NotNil(t, result.EmailExposure.BreachSources)
	assert.Empty(t, result.EmailExposure.BreachSources)
	assert.Equal(t, 100, result.PrivacyScore)
	assert.Equal(t, reassuringSummary, result.Summary)
}

func TestAnalyzeUnknownCollaboratorsAddNothing(t *testing.T) {
	withAnswers := newTestAnalyzer(stubBreach{}, stubCommits{n: intPtr(0)}, stubIdentity{b: boolPtr(false)})
	withUnknowns := newQuietAnalyzer()

	profile := models.Profile{
		FullName:     "Ayşe Kaya",
		PrimaryEmail: "ayse.kaya.dev@gmail.com",
	}

	answered := withAnswers.Analyze(context.Background(), profile)
	unknown := withUnknowns.Analyze(context.Background(), profile)

	assert.Equal(t, answered.PrivacyScore, unknown.PrivacyScore)
	assert.Nil(t, unknown.EmailExposure.GitHubCommits)
	assert.Nil(t, unknown.EmailExposure.KeybaseFound)
	require.NotNil(t, answered.EmailExposure.GitHubCommits)
	assert.Equal(t, 0, *answered.EmailExposure.GitHubCommits)
}

func intPtr(n int) *int    { return &n }
func boolPtr(b bool) *bool { return &b }
