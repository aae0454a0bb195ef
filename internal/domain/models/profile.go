package models

// SocialAccount is one linked social/digital account supplied with a
// profile. It is owned by the profile for the duration of a single
// analysis and is never persisted.
type SocialAccount struct {
	Platform         string `json:"platform"`
	Username         string `json:"username"`
	Email            string `json:"email,omitempty"`
	IsPublic         bool   `json:"is_public"`
	HasPhoneInBio    bool   `json:"has_phone_in_bio"`
	HasLocationInBio bool   `json:"has_location_in_bio"`
	BioText          string `json:"bio_text,omitempty"`
}

// Profile is the inbound analysis request. PrimaryEmail is expected to be
// non-empty but is never validated as well-formed; malformed addresses
// degrade through the classifiers instead of failing the request.
type Profile struct {
	FullName       string          `json:"full_name"`
	PrimaryEmail   string          `json:"primary_email"`
	Bio            string          `json:"bio,omitempty"`
	SocialAccounts []SocialAccount `json:"social_accounts"`
}
