package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"dataguardian/internal/domain/models"
	"dataguardian/pkg/logger"
)

// BreachStore is the digest-keyed breach membership collaborator. It is
// fail-soft: implementations log their own failures and report not-found.
type BreachStore interface {
	Check(ctx context.Context, email string) (found bool, sources []string)
}

// CommitVisibilityClient reports how many public commits are attributable
// to an email address; nil means the answer could not be determined.
type CommitVisibilityClient interface {
	CommitCount(ctx context.Context, email string) *int
}

// IdentityLinkClient reports whether an identity-linking directory has a
// profile tied to an email address; nil means unknown.
type IdentityLinkClient interface {
	ProfileFound(ctx context.Context, email string) *bool
}

// Analyzer orchestrates one profile analysis: normalization, classifier
// evaluation, collaborator lookups, rule detection and aggregation.
// Analyze is total over all well-typed inputs; it never fails.
type Analyzer struct {
	normalizer *Normalizer
	detector   *Detector
	scorer     *Scorer
	breach     BreachStore
	commits    CommitVisibilityClient
	identity   IdentityLinkClient

	lookupTimeout time.Duration
	logger        *logger.Logger
}

// NewAnalyzer creates a new Analyzer
func NewAnalyzer(
	normalizer *Normalizer,
	detector *Detector,
	scorer *Scorer,
	breach BreachStore,
	commits CommitVisibilityClient,
	identity IdentityLinkClient,
	lookupTimeout time.Duration,
	log *logger.Logger,
) *Analyzer {
	if lookupTimeout <= 0 {
		lookupTimeout = 3 * time.Second
	}
	return &Analyzer{
		normalizer:    normalizer,
		detector:      detector,
		scorer:        scorer,
		breach:        breach,
		commits:       commits,
		identity:      identity,
		lookupTimeout: lookupTimeout,
		logger:        log.WithComponent("analyzer"),
	}
}

// Analyze runs the full pipeline for one profile and assembles the result.
// The three collaborator lookups are independent, so they run concurrently
// under separate timeouts; a timed-out lookup degrades to unknown exactly
// like any other lookup failure.
func (a *Analyzer) Analyze(ctx context.Context, profile models.Profile) models.AnalysisResult {
	start := time.Now()
	sessionID := uuid.New()
	primary := strings.ToLower(strings.TrimSpace(profile.PrimaryEmail))

	var (
		wg            sync.WaitGroup
		breachResult  BreachResult
		commitCount   *int
		identityFound *bool
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		lookupCtx, cancel := context.WithTimeout(ctx, a.lookupTimeout)
		defer cancel()
		found, sources := a.breach.Check(lookupCtx, primary)
		breachResult = BreachResult{Found: found, Sources: sources}
	}()
	go func() {
		defer wg.Done()
		lookupCtx, cancel := context.WithTimeout(ctx, a.lookupTimeout)
		defer cancel()
		commitCount = a.commits.CommitCount(lookupCtx, primary)
	}()
	go func() {
		defer wg.Done()
		lookupCtx, cancel := context.WithTimeout(ctx, a.lookupTimeout)
		defer cancel()
		identityFound = a.identity.ProfileFound(lookupCtx, primary)
	}()
	wg.Wait()

	in := &DetectionInput{
		Profile:       profile,
		PrimaryEmail:  primary,
		NameTokens:    a.normalizer.NameTokens(profile.FullName),
		Breach:        breachResult,
		GitHubCommits: commitCount,
		KeybaseFound:  identityFound,
	}

	findings, totalPenalty := a.detector.Evaluate(in)
	agg := a.scorer.Score(findings, totalPenalty)

	if findings == nil {
		findings = []models.Finding{}
	}

	breachCount := 0
	if breachResult.Found {
		breachCount = len(breachResult.Sources)
	}
	if breachResult.Sources == nil {
		breachResult.Sources = []string{}
	}

	result := models.AnalysisResult{
		SessionID:       sessionID,
		PrivacyScore:    agg.Score,
		HighRiskCount:   agg.HighCount,
		MediumRiskCount: agg.MediumCount,
		LowRiskCount:    agg.LowCount,
		Findings:        findings,
		PrivacyLevel:    agg.Level,
		Summary:         agg.Summary,
		EmailExposure: models.EmailExposure{
			Email:         primary,
			BreachFound:   breachResult.Found,
			BreachCount:   breachCount,
			BreachSources: breachResult.Sources,
			GitHubCommits: commitCount,
			KeybaseFound:  identityFound,
		},
	}

	a.logger.Info().
		Str("session_id", sessionID.String()).
		Int("score", agg.Score).
		Int("findings", len(findings)).
		Str("level", string(agg.Level)).
		Dur("duration", time.Since(start)).
		Msg("analysis completed")

	return result
}
