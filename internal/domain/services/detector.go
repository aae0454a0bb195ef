package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"dataguardian/internal/domain/models"
	"dataguardian/pkg/logger"
)

// BreachResult is the outcome of the local breach-dataset lookup
type BreachResult struct {
	Found   bool
	Sources []string
}

// DetectionInput bundles the normalized profile, classifier inputs and
// collaborator results the detection rules read. Rules never mutate it.
type DetectionInput struct {
	Profile      models.Profile
	PrimaryEmail string // trimmed and lower-cased
	NameTokens   []string

	Breach        BreachResult
	GitHubCommits *int  // nil = unknown
	KeybaseFound  *bool // nil = unknown
}

// profileFacts holds classifier outputs computed once per analysis and
// shared read-only by all rules
type profileFacts struct {
	primaryIsCorporate bool
	primaryReuseCount  int

	phoneLikeAccounts int
	locationAccounts  int
	addressAccounts   int
	orgAccounts       int

	corporateSocialCount   int
	corporateSocialDomains []string

	nameMatchCount  int
	sharedUsernames int
	totalAccounts   int
	publicAccounts  int
}

func buildFacts(in *DetectionInput) *profileFacts {
	f := &profileFacts{
		primaryIsCorporate: IsCorporateEmail(in.PrimaryEmail),
		totalAccounts:      len(in.Profile.SocialAccounts),
	}

	domains := make(map[string]struct{})
	usernamePlatforms := make(map[string]map[string]struct{})

	for _, acc := range in.Profile.SocialAccounts {
		accEmail := strings.ToLower(strings.TrimSpace(acc.Email))

		if accEmail != "" && accEmail == in.PrimaryEmail {
			f.primaryReuseCount++
		}

		if accEmail != "" && LooksLikePhoneNumber(accEmail) {
			f.phoneLikeAccounts++
		}

		// Location: explicit flag or a text match across username+bio+email
		combined := strings.Join([]string{acc.Username, acc.BioText, accEmail}, " ")
		if acc.HasLocationInBio || HasLocationMention(combined) {
			f.locationAccounts++
		}

		if LooksLikeAddress(acc.BioText) {
			f.addressAccounts++
		}

		if HasOrgHint(acc.Username + " " + acc.BioText) {
			f.orgAccounts++
		}

		if accEmail != "" && IsCorporateEmail(accEmail) && isConsumerSocialPlatform(acc.Platform) {
			f.corporateSocialCount++
			_, domain := SplitEmail(accEmail)
			domains[domain] = struct{}{}
		}

		if uname := normalizeText(acc.Username); uname != "" {
			plats, ok := usernamePlatforms[uname]
			if !ok {
				plats = make(map[string]struct{})
				usernamePlatforms[uname] = plats
			}
			plats[acc.Platform] = struct{}{}

			for _, tok := range in.NameTokens {
				if strings.Contains(uname, tok) {
					f.nameMatchCount++
					break
				}
			}
		}

		if acc.IsPublic {
			f.publicAccounts++
		}
	}

	for d := range domains {
		f.corporateSocialDomains = append(f.corporateSocialDomains, d)
	}
	sort.Strings(f.corporateSocialDomains)

	for _, plats := range usernamePlatforms {
		if len(plats) >= 3 {
			f.sharedUsernames++
		}
	}

	return f
}

// ruleHit marks a triggered rule. Zero-valued severity/penalty fall back
// to the rule's defaults; rules with count-dependent descriptions fill
// description per hit.
type ruleHit struct {
	description string
	severity    models.RiskSeverity
	penalty     int
}

// detectionRule is one entry of the ordered rule table: a fixed category,
// default severity and penalty, a fixed suggested action, and a pure
// trigger predicate over the assembled inputs.
type detectionRule struct {
	name     string
	category models.RiskCategory
	severity models.RiskSeverity
	penalty  int
	action   string
	trigger  func(in *DetectionInput, f *profileFacts) *ruleHit
}

// detectionRules is evaluated top to bottom, every rule unconditionally.
// Order is part of the contract: findings keep detection order and the
// summary walks them as appended.
var detectionRules = []detectionRule{
	{
		name:     "email-birth-year",
		category: models.CategoryAccount,
		severity: models.SeverityMedium,
		penalty:  10,
		action:   "Consider switching to a more anonymous email address that does not contain your birth year.",
		trigger: func(in *DetectionInput, f *profileFacts) *ruleHit {
			if ContainsFourDigitYear(in.PrimaryEmail) || ContainsTwoDigitYear(in.PrimaryEmail) {
				return &ruleHit{description: "Your primary email address most likely contains your birth year."}
			}
			return nil
		},
	},
	{
		name:     "email-phone-like",
		category: models.CategoryContact,
		severity: models.SeverityHigh,
		penalty:  25,
		action:   "Prefer a more anonymous combination instead of putting your phone number directly into the email address.",
		trigger: func(in *DetectionInput, f *profileFacts) *ruleHit {
			if LooksLikePhoneNumber(in.PrimaryEmail) {
				return &ruleHit{description: "Your primary email address looks very much like a phone number."}
			}
			return nil
		},
	},
	{
		name:     "email-generic-local",
		category: models.CategoryAccount,
		severity: models.SeverityLow,
		penalty:  5,
		action:   "Consider picking a hard-to-guess username that is unique to you.",
		trigger: func(in *DetectionInput, f *profileFacts) *ruleHit {
			if LocalPartTooGeneric(in.PrimaryEmail) {
				return &ruleHit{description: "The username part of your primary email address looks very short or very generic."}
			}
			return nil
		},
	},
	{
		name:     "email-location-hint",
		category: models.CategoryLocation,
		severity: models.SeverityLow,
		penalty:  5,
		action:   "Using a province, district or plate code in an email address makes where you live easier to guess; prefer neutral combinations.",
		trigger: func(in *DetectionInput, f *profileFacts) *ruleHit {
			if HasLocationMention(in.PrimaryEmail) {
				return &ruleHit{description: "Your email address contains numbers or words that can be tied to a location, such as a province, district or plate code."}
			}
			return nil
		},
	},
	{
		name:     "primary-email-reuse",
		category: models.CategoryAccount,
		severity: models.SeverityMedium,
		penalty:  15,
		action:   "Consider using separate email addresses for critical accounts such as banking or work.",
		trigger: func(in *DetectionInput, f *profileFacts) *ruleHit {
			if f.primaryReuseCount >= 3 {
				return &ruleHit{description: fmt.Sprintf("Your primary email is used on %d different platforms.", f.primaryReuseCount)}
			}
			return nil
		},
	},
	{
		name:     "account-phone-like-email",
		category: models.CategoryContact,
		severity: models.SeverityHigh,
		penalty:  20,
		action:   "Prefer anonymous usernames over raw phone numbers in account email addresses.",
		trigger: func(in *DetectionInput, f *profileFacts) *ruleHit {
			if f.phoneLikeAccounts > 0 {
				return &ruleHit{description: fmt.Sprintf("The email address used on %d of your accounts looks like a phone number.", f.phoneLikeAccounts)}
			}
			return nil
		},
	},
	{
		name:     "account-location-hint",
		category: models.CategoryLocation,
		severity: models.SeverityMedium,
		penalty:  15,
		action:   "Try not to share district, neighbourhood or plate-code details on publicly visible profiles.",
		trigger: func(in *DetectionInput, f *profileFacts) *ruleHit {
			if f.locationAccounts > 0 {
				return &ruleHit{description: fmt.Sprintf("%d of your accounts openly expose city, district or plate-code location details.", f.locationAccounts)}
			}
			return nil
		},
	},
	{
		name:     "account-address",
		category: models.CategoryLocation,
		severity: models.SeverityHigh,
		penalty:  25,
		action:   "Share your full address only when strictly necessary, preferably over private and trusted channels.",
		trigger: func(in *DetectionInput, f *profileFacts) *ruleHit {
			if f.addressAccounts > 0 {
				return &ruleHit{description: fmt.Sprintf("%d of your accounts very likely share neighbourhood, street or door-number address details.", f.addressAccounts)}
			}
			return nil
		},
	},
	{
		name:     "account-org-hint",
		category: models.CategoryIdentity,
		severity: models.SeverityMedium,
		penalty:  10,
		action:   "Exposing school, employer or bank affiliations in several places makes your identity easier to trace; consider sharing less.",
		trigger: func(in *DetectionInput, f *profileFacts) *ruleHit {
			if f.orgAccounts > 0 {
				return &ruleHit{description: fmt.Sprintf("%d of your accounts expose school, employer or bank affiliations.", f.orgAccounts)}
			}
			return nil
		},
	},
	{
		name:     "corporate-primary-on-social",
		category: models.CategoryAccount,
		severity: models.SeverityHigh,
		penalty:  25,
		action:   "Keep your work email for work channels and open a personal address for social platforms.",
		trigger: func(in *DetectionInput, f *profileFacts) *ruleHit {
			if f.primaryIsCorporate && f.primaryReuseCount > 0 {
				return &ruleHit{description: "Your corporate email address is also in use on social platforms."}
			}
			return nil
		},
	},
	{
		name:     "corporate-email-on-social",
		category: models.CategoryAccount,
		severity: models.SeverityMedium,
		penalty:  15,
		action:   "Corporate email on social media can violate workplace security policies; a personal address is the safer choice.",
		trigger: func(in *DetectionInput, f *profileFacts) *ruleHit {
			if f.corporateSocialCount > 0 {
				return &ruleHit{description: fmt.Sprintf("You use corporate email domains on social platforms (%s).", strings.Join(f.corporateSocialDomains, ", "))}
			}
			return nil
		},
	},
	{
		name:     "username-real-name",
		category: models.CategoryIdentity,
		severity: models.SeverityMedium,
		penalty:  10,
		action:   "Using a nickname, or at least usernames that are not close to your real name, reduces traceability.",
		trigger: func(in *DetectionInput, f *profileFacts) *ruleHit {
			if f.nameMatchCount >= 2 && len(in.NameTokens) > 0 {
				return &ruleHit{description: "On more than one account your username closely matches your real name."}
			}
			return nil
		},
	},
	{
		name:     "username-reuse",
		category: models.CategoryExposure,
		severity: models.SeverityMedium,
		penalty:  10,
		action:   "Reusing one username everywhere makes it easy to follow you across platforms; vary it for critical accounts.",
		trigger: func(in *DetectionInput, f *profileFacts) *ruleHit {
			if f.sharedUsernames > 0 {
				return &ruleHit{description: "You use the same username on three or more platforms."}
			}
			return nil
		},
	},
	{
		name:     "account-count",
		category: models.CategoryExposure,
		severity: models.SeverityMedium,
		penalty:  10,
		action:   "Closing accounts you no longer use, or at least making them private, shrinks your attack surface.",
		trigger: func(in *DetectionInput, f *profileFacts) *ruleHit {
			if f.totalAccounts < 5 {
				return nil
			}
			hit := &ruleHit{description: fmt.Sprintf("You entered %d social and digital accounts.", f.totalAccounts)}
			if f.totalAccounts >= 8 {
				hit.severity = models.SeverityHigh
				hit.penalty = 15
			}
			return hit
		},
	},
	{
		name:     "public-accounts",
		category: models.CategoryExposure,
		severity: models.SeverityMedium,
		penalty:  10,
		action:   "Consider making profiles that carry personal details private, or keeping what they share to a minimum.",
		trigger: func(in *DetectionInput, f *profileFacts) *ruleHit {
			if f.publicAccounts >= 3 {
				return &ruleHit{description: fmt.Sprintf("%d of your accounts are publicly visible.", f.publicAccounts)}
			}
			return nil
		},
	},
	{
		name:     "breach-found",
		category: models.CategoryAccount,
		severity: models.SeverityHigh,
		penalty:  30,
		action:   "Renew the passwords of every account tied to this email, enable 2FA where possible, and use distinct email/password combinations for critical services.",
		trigger: func(in *DetectionInput, f *profileFacts) *ruleHit {
			if in.Breach.Found {
				return &ruleHit{description: "Your primary email address appears in known large-scale data breaches."}
			}
			return nil
		},
	},
	{
		name:     "corporate-commit-visibility",
		category: models.CategoryAccount,
		severity: models.SeverityMedium,
		penalty:  10,
		action:   "Prefer a personal email address over your work address for open-source and public repositories.",
		trigger: func(in *DetectionInput, f *profileFacts) *ruleHit {
			if in.GitHubCommits != nil && *in.GitHubCommits > 0 && f.primaryIsCorporate {
				return &ruleHit{description: "Your corporate email address shows up in public GitHub commit history."}
			}
			return nil
		},
	},
	{
		name:     "keybase-profile",
		category: models.CategoryExposure,
		severity: models.SeverityLow,
		penalty:  5,
		action:   "Not a risk on its own, but remember that reusing the same email across platforms makes you traceable.",
		trigger: func(in *DetectionInput, f *profileFacts) *ruleHit {
			if in.KeybaseFound != nil && *in.KeybaseFound {
				return &ruleHit{description: "Your email address is linked to a profile on Keybase."}
			}
			return nil
		},
	},
}

// Detector evaluates the ordered rule table against one analysis input
type Detector struct {
	logger *logger.Logger
}

// NewDetector creates a new Detector
func NewDetector(log *logger.Logger) *Detector {
	return &Detector{
		logger: log.WithComponent("detector"),
	}
}

// Evaluate runs every rule in table order and returns the findings plus
// the total score penalty. Rules never short-circuit each other.
func (d *Detector) Evaluate(in *DetectionInput) ([]models.Finding, int) {
	facts := buildFacts(in)

	var findings []models.Finding
	totalPenalty := 0

	for _, rule := range detectionRules {
		hit := rule.trigger(in, facts)
		if hit == nil {
			continue
		}

		severity := rule.severity
		if hit.severity != "" {
			severity = hit.severity
		}
		penalty := rule.penalty
		if hit.penalty != 0 {
			penalty = hit.penalty
		}

		findings = append(findings, models.Finding{
			ID:              uuid.New(),
			Category:        rule.category,
			Severity:        severity,
			Description:     hit.description,
			SuggestedAction: rule.action,
		})
		totalPenalty += penalty

		d.logger.Debug().
			Str("rule", rule.name).
			Str("severity", string(severity)).
			Int("penalty", penalty).
			Msg("rule triggered")
	}

	return findings, totalPenalty
}
