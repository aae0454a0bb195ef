package services

import (
	"regexp"
	"strconv"
	"strings"
)

// Keyword tables driving the pattern classifiers. All matching happens on
// normalized (lower-cased, diacritic-folded) text, so the entries are
// written in folded form.

// provinceKeywords lists the 81 Turkish provinces
var provinceKeywords = []string{
	"adana", "adiyaman", "afyonkarahisar", "agri", "amasya", "ankara",
	"antalya", "artvin", "aydin", "balikesir", "bilecik", "bingol", "bitlis",
	"bolu", "burdur", "bursa", "canakkale", "cankiri", "corum", "denizli",
	"diyarbakir", "edirne", "elazig", "erzincan", "erzurum", "eskisehir",
	"gaziantep", "giresun", "gumushane", "hakkari", "hatay", "isparta",
	"mersin", "istanbul", "izmir", "kars", "kastamonu", "kayseri",
	"kirklareli", "kirsehir", "kocaeli", "konya", "kutahya", "malatya",
	"manisa", "kahramanmaras", "mardin", "mugla", "mus", "nevsehir", "nigde",
	"ordu", "rize", "sakarya", "samsun", "siirt", "sinop", "sivas",
	"tekirdag", "tokat", "trabzon", "tunceli", "sanliurfa", "usak", "van",
	"yozgat", "zonguldak", "aksaray", "bayburt", "karaman", "kirikkale",
	"batman", "sirnak", "bartin", "ardahan", "igdir", "yalova", "karabuk",
	"kilis", "osmaniye", "duzce",
}

// istanbulDistricts lists frequently shared Istanbul districts
var istanbulDistricts = []string{
	"esenler", "kadikoy", "uskudar", "fatih", "besiktas", "sariyer",
	"bakirkoy", "atasehir", "umraniye", "kartal", "pendik", "maltepe",
	"bayrampasa", "bahcelievler", "bagcilar", "basaksehir", "beylikduzu",
	"kucukcekmece", "buyukcekmece", "zeytinburnu", "gaziosmanpasa",
	"kagithane", "sisli", "beyoglu", "eyupsultan",
}

// addressHints are structural address tokens (neighbourhood, street,
// avenue, door number, flat, block abbreviations)
var addressHints = []string{
	"mah", "mah.", "mahalle",
	"sk", "sk.", "sok", "sokak",
	"cd", "cad", "cadde",
	"no:", "no ", "kapi no", "daire", "blok",
}

// orgKeywords hint at school / employer / bank affiliations
var orgKeywords = []string{
	"universitesi", "lisesi", "koleji", "fakultesi",
	"bank", "banka", "holding", "sigorta",
	"a.s.", "a.s", "anonim", "sanayi", "ticaret",
}

// genericLocalParts are throwaway local-parts that invite guessing
var genericLocalParts = map[string]struct{}{
	"test": {}, "deneme": {}, "qwe": {}, "asdf": {}, "asd": {},
	"abc": {}, "xyz": {}, "user": {}, "kullanici": {},
}

// freeEmailDomains are consumer mail providers; anything else with a dot
// is treated as a corporate domain
var freeEmailDomains = map[string]struct{}{
	"gmail.com": {}, "hotmail.com": {}, "hotmail.com.tr": {},
	"outlook.com": {}, "outlook.com.tr": {}, "yahoo.com": {},
	"yandex.com": {}, "icloud.com": {}, "proton.me": {},
	"protonmail.com": {}, "msn.com": {}, "live.com": {}, "live.com.tr": {},
}

// consumerSocialPlatforms are the platforms where a corporate email
// address is considered out of place
var consumerSocialPlatforms = map[string]struct{}{
	"instagram": {}, "x": {}, "tiktok": {}, "facebook": {},
	"reddit": {}, "youtube": {}, "discord": {}, "other": {},
}

var (
	digitRunRe    = regexp.MustCompile(`[0-9]+`)
	fourDigitRe   = regexp.MustCompile(`[0-9]{4}`)
	twoDigitTokRe = regexp.MustCompile(`(?:^|[^0-9])([0-9]{2})(?:[^0-9]|$)`)
)

// HasLocationMention reports whether the text contains a province name, a
// district name, or a standalone 1-2 digit plate-code token in [1,81].
// Longer digit runs ("123") never count as plate codes.
func HasLocationMention(text string) bool {
	if text == "" {
		return false
	}
	t := normalizeText(text)
	for _, k := range provinceKeywords {
		if strings.Contains(t, k) {
			return true
		}
	}
	for _, k := range istanbulDistricts {
		if strings.Contains(t, k) {
			return true
		}
	}
	for _, run := range digitRunRe.FindAllString(t, -1) {
		if len(run) > 2 {
			continue
		}
		if v, err := strconv.Atoi(run); err == nil && v >= 1 && v <= 81 {
			return true
		}
	}
	return false
}

// LooksLikeAddress reports whether the text carries address-structure tokens
func LooksLikeAddress(text string) bool {
	if text == "" {
		return false
	}
	t := normalizeText(text)
	for _, h := range addressHints {
		if strings.Contains(t, h) {
			return true
		}
	}
	return false
}

// HasOrgHint reports whether the text mentions a school, employer, bank
// or similar institution
func HasOrgHint(text string) bool {
	if text == "" {
		return false
	}
	t := normalizeText(text)
	for _, k := range orgKeywords {
		if strings.Contains(t, k) {
			return true
		}
	}
	return false
}

// SplitEmail splits a (possibly malformed) email into local-part and
// domain. The input is trimmed and lower-cased; a missing '@' yields an
// empty domain, never an error.
func SplitEmail(email string) (local, domain string) {
	email = strings.ToLower(strings.TrimSpace(email))
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i], email[i+1:]
	}
	return email, ""
}

// ContainsFourDigitYear reports whether the local-part contains a 4-digit
// run that reads as a plausible birth year
func ContainsFourDigitYear(email string) bool {
	local, _ := SplitEmail(email)
	for _, d := range fourDigitRe.FindAllString(local, -1) {
		year, _ := strconv.Atoi(d)
		if year >= 1950 && year <= 2035 {
			return true
		}
	}
	return false
}

// ContainsTwoDigitYear reports whether the local-part contains a 2-digit
// token (bounded by non-digits or string edges) that reads as a birth
// year. Values >=50 cover 1950-1999 and values <=24 cover 2000-2024; the
// 25-49 band is the only one that never matches.
func ContainsTwoDigitYear(email string) bool {
	local, _ := SplitEmail(email)
	for _, m := range twoDigitTokRe.FindAllStringSubmatch(local, -1) {
		val, _ := strconv.Atoi(m[1])
		if val >= 50 || val <= 24 {
			return true
		}
	}
	return false
}

// LooksLikePhoneNumber reports whether the local-part contains a digit run
// shaped like a Turkish mobile or landline number (10-11 digits starting
// with 0 or 5)
func LooksLikePhoneNumber(email string) bool {
	local, _ := SplitEmail(email)
	for _, run := range digitRunRe.FindAllString(local, -1) {
		if (len(run) == 10 || len(run) == 11) && (run[0] == '0' || run[0] == '5') {
			return true
		}
	}
	return false
}

// LocalPartTooGeneric reports whether the local-part is in the fixed
// generic set or is three characters or shorter
func LocalPartTooGeneric(email string) bool {
	local, _ := SplitEmail(email)
	if _, ok := genericLocalParts[local]; ok {
		return true
	}
	return len(local) <= 3
}

// IsCorporateEmail reports whether the email's domain looks corporate:
// not empty, not a known free provider, and containing at least one dot
func IsCorporateEmail(email string) bool {
	_, domain := SplitEmail(email)
	if domain == "" {
		return false
	}
	if _, ok := freeEmailDomains[domain]; ok {
		return false
	}
	return strings.Contains(domain, ".")
}

// isConsumerSocialPlatform reports whether the platform name (after
// normalization) belongs to the fixed consumer-social set
func isConsumerSocialPlatform(platform string) bool {
	_, ok := consumerSocialPlatforms[normalizeText(platform)]
	return ok
}
