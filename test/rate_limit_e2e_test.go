//go:build e2e

package test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const maxPerMinute = 3 // small quota so we hit 429 quickly

func TestRateLimitE2E(t *testing.T) {
	extraEnv := map[string]string{
		"API_RATE_PER_MIN": fmt.Sprint(maxPerMinute),
	}

	env := SetupTestEnvironmentWithEnv(t, extraEnv)

	t.Run("bad_tokens_do_not_consume_budget", func(t *testing.T) {
		for range maxPerMinute + 2 {
			status := doJSON(t, env, http.MethodGet, foldersEndpoint, nil, map[string]string{"Authorization": "Bearer nope"}, nil)
			require.Equal(t, http.StatusUnauthorized, status)
		}
	})

	t.Run("owner_hits_limit", func(t *testing.T) {
		h := bearer(t, "ratelimit-alice")
		for range maxPerMinute {
			require.Equal(t, http.StatusOK, doJSON(t, env, http.MethodGet, foldersEndpoint, nil, h, nil))
		}
		assert.Equal(t, http.StatusTooManyRequests, doJSON(t, env, http.MethodGet, foldersEndpoint, nil, h, nil))
	})

	t.Run("other_owner_unaffected", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, doJSON(t, env, http.MethodGet, foldersEndpoint, nil, bearer(t, "ratelimit-bob"), nil))
	})

	t.Run("healthz_unlimited", func(t *testing.T) {
		for range maxPerMinute + 2 {
			resp, err := env.Client.Get(env.BaseURL + "/healthz")
			require.NoError(t, err)
			_ = resp.Body.Close()
			require.Equal(t, http.StatusOK, resp.StatusCode)
		}
	})
}
