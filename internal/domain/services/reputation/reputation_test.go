package reputation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataguardian/pkg/logger"
)

func testLogger() *logger.Logger {
	return &logger.Logger{Logger: zerolog.Nop()}
}

func testConfig(baseURL string) Config {
	return Config{
		GitHubBaseURL:  baseURL,
		KeybaseBaseURL: baseURL,
		Timeout:        time.Second,
	}
}

func TestGitHubCommitCount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/commits", r.URL.Path)
		assert.Equal(t, "author-email:dev@example.com", r.URL.Query().Get("q"))
		assert.Equal(t, "application/vnd.github.cloak-preview", r.Header.Get("Accept"))
		w.Write([]byte(`{"total_count": 42}`))
	}))
	defer srv.Close()

	client := NewGitHubClient(testConfig(srv.URL), nil, testLogger())
	count := client.CommitCount(context.Background(), "dev@example.com")

	require.NotNil(t, count)
	assert.Equal(t, 42, *count)
}

func TestGitHubCommitCountFailuresAreUnknown(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"rate limited", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}},
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"bad payload", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			client := NewGitHubClient(testConfig(srv.URL), nil, testLogger())
			assert.Nil(t, client.CommitCount(context.Background(), "dev@example.com"))
		})
	}
}

func TestGitHubCommitCountEmptyEmail(t *testing.T) {
	client := NewGitHubClient(testConfig("http://127.0.0.1:1"), nil, testLogger())
	assert.Nil(t, client.CommitCount(context.Background(), ""))
}

func TestKeybaseProfileFound(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{"profile present", `{"them": [{"id": "abc"}]}`, true},
		{"them null", `{"them": null}`, false},
		{"them false", `{"status": {"code": 0}, "them": false}`, false},
		{"them zero", `{"them": 0}`, false},
		{"them empty string", `{"them": ""}`, false},
		{"them empty array", `{"them": []}`, false},
		{"them empty object", `{"them": {}}`, false},
		{"them absent", `{"status": {"code": 0}}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/_/api/1.0/user/lookup.json", r.URL.Path)
				assert.Equal(t, "dev@example.com", r.URL.Query().Get("email"))
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewKeybaseClient(testConfig(srv.URL), nil, testLogger())
			found := client.ProfileFound(context.Background(), "dev@example.com")

			require.NotNil(t, found)
			assert.Equal(t, tt.want, *found)
		})
	}
}

func TestKeybaseProfileFoundFailureIsUnknown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewKeybaseClient(testConfig(srv.URL), nil, testLogger())
	assert.Nil(t, client.ProfileFound(context.Background(), "dev@example.com"))
}

func TestDisabledClientsReturnUnknown(t *testing.T) {
	d := Disabled{}
	assert.Nil(t, d.CommitCount(context.Background(), "dev@example.com"))
	assert.Nil(t, d.ProfileFound(context.Background(), "dev@example.com"))
}

func TestEmailKeyStable(t *testing.T) {
	assert.Equal(t, emailKey("Dev@Example.com "), emailKey("dev@example.com"))
	assert.NotEqual(t, emailKey("a@example.com"), emailKey("b@example.com"))
}
