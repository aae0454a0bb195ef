package reputation

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"dataguardian/internal/infrastructure/cache"
	"dataguardian/pkg/logger"
)

// KeybaseClient checks whether the Keybase directory links a profile to an
// email address. The result is tri-state: true, false, or nil (unknown)
// whenever the lookup fails for any reason.
type KeybaseClient struct {
	baseURL    string
	httpClient *http.Client
	cache      *cache.RedisCache // optional
	cacheTTL   time.Duration
	logger     *logger.Logger
}

// NewKeybaseClient creates a new Keybase identity-link client
func NewKeybaseClient(cfg Config, redisCache *cache.RedisCache, log *logger.Logger) *KeybaseClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	baseURL := cfg.KeybaseBaseURL
	if baseURL == "" {
		baseURL = "https://keybase.io"
	}
	return &KeybaseClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		cache:      redisCache,
		cacheTTL:   cfg.CacheTTL,
		logger:     log.WithComponent("keybase-client"),
	}
}

// ProfileFound returns whether a Keybase profile is tied to the email, or
// nil when the lookup could not be completed. A definitive "no profile"
// answer is false, which is distinct from unknown.
func (c *KeybaseClient) ProfileFound(ctx context.Context, email string) *bool {
	if email == "" {
		return nil
	}

	cacheKey := "reputation:keybase:" + emailKey(email)
	if c.cache != nil {
		var cached bool
		if err := c.cache.GetJSON(ctx, cacheKey, &cached); err == nil {
			return &cached
		}
	}

	endpoint := fmt.Sprintf("%s/_/api/1.0/user/lookup.json?email=%s", c.baseURL, url.QueryEscape(email))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", "dataguardian")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug().Err(err).Msg("keybase lookup failed")
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Debug().Int("status", resp.StatusCode).Msg("keybase lookup returned non-200")
		return nil
	}

	var payload struct {
		Them json.RawMessage `json:"them"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.logger.Debug().Err(err).Msg("keybase payload unparseable")
		return nil
	}

	found := rawMessagePresent(payload.Them)
	if c.cache != nil {
		if err := c.cache.SetJSON(ctx, cacheKey, found, c.cacheTTL); err != nil {
			c.logger.Debug().Err(err).Msg("failed to cache keybase result")
		}
	}
	return &found
}

// rawMessagePresent reports whether a JSON field carries a truthy value.
// Absent, null, false, zero, empty string and empty array/object all count
// as "no profile".
func rawMessagePresent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	switch {
	case len(trimmed) == 0:
		return false
	case bytes.Equal(trimmed, []byte("null")):
		return false
	case bytes.Equal(trimmed, []byte("false")):
		return false
	case bytes.Equal(trimmed, []byte("0")):
		return false
	case bytes.Equal(trimmed, []byte(`""`)):
		return false
	case bytes.Equal(trimmed, []byte("[]")):
		return false
	case bytes.Equal(trimmed, []byte("{}")):
		return false
	}
	return true
}

// emailKey derives a cache key component from an email without storing the
// address itself
func emailKey(email string) string {
	sum := sha1.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return hex.EncodeToString(sum[:])
}
