package reputation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"dataguardian/internal/infrastructure/cache"
	"dataguardian/pkg/logger"
)

// Config holds configuration shared by the reputation clients
type Config struct {
	GitHubBaseURL  string
	KeybaseBaseURL string
	Timeout        time.Duration
	CacheTTL       time.Duration
}

// GitHubClient estimates how visible an email address is in public commit
// history via the GitHub commit search API. Every failure mode (network,
// timeout, non-200, bad payload) maps to an unknown result, never an error.
type GitHubClient struct {
	baseURL    string
	httpClient *http.Client
	cache      *cache.RedisCache // optional
	cacheTTL   time.Duration
	logger     *logger.Logger
}

// NewGitHubClient creates a new GitHub commit-visibility client
func NewGitHubClient(cfg Config, redisCache *cache.RedisCache, log *logger.Logger) *GitHubClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	baseURL := cfg.GitHubBaseURL
	if baseURL == "" {
		baseURL = "https://api.github.com"
	}
	return &GitHubClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		cache:      redisCache,
		cacheTTL:   cfg.CacheTTL,
		logger:     log.WithComponent("github-client"),
	}
}

// CommitCount returns the number of public commits attributable to the
// email, or nil when the lookup could not be completed.
func (c *GitHubClient) CommitCount(ctx context.Context, email string) *int {
	if email == "" {
		return nil
	}

	cacheKey := "reputation:github:" + emailKey(email)
	if c.cache != nil {
		var cached int
		if err := c.cache.GetJSON(ctx, cacheKey, &cached); err == nil {
			return &cached
		}
	}

	endpoint := fmt.Sprintf("%s/search/commits?q=%s", c.baseURL, url.QueryEscape("author-email:"+email))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("Accept", "application/vnd.github.cloak-preview")
	req.Header.Set("User-Agent", "dataguardian")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug().Err(err).Msg("commit search failed")
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Debug().Int("status", resp.StatusCode).Msg("commit search returned non-200")
		return nil
	}

	var payload struct {
		TotalCount int `json:"total_count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.logger.Debug().Err(err).Msg("commit search payload unparseable")
		return nil
	}

	count := payload.TotalCount
	if c.cache != nil {
		if err := c.cache.SetJSON(ctx, cacheKey, count, c.cacheTTL); err != nil {
			c.logger.Debug().Err(err).Msg("failed to cache commit count")
		}
	}
	return &count
}
