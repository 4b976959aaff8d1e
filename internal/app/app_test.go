package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/qw-league/internal/config"
	"github.com/riskibarqy/qw-league/internal/platform/logging"
)

func memoryConfig(t *testing.T) config.Config {
	t.Helper()

	t.Setenv("STORAGE_DRIVER", config.StorageMemory)
	cfg, err := config.Load()
	require.NoError(t, err)
	return cfg
}

func TestNewMemoryApp(t *testing.T) {
	a, err := New(context.Background(), memoryConfig(t), logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(a.Close)

	srv, err := a.NewHTTPServer()
	require.NoError(t, err)
	assert.Equal(t, ":8080", srv.Addr)

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "qwleague_http_requests_total")
}

func TestMemoryAppServesSeededTeams(t *testing.T) {
	a, err := New(context.Background(), memoryConfig(t), logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(a.Close)

	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/query?endpoint=teams", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), `[{"Tag":"]sr["`), rec.Body.String())
}

func TestMetricsRouteOffWhenDisabled(t *testing.T) {
	t.Setenv("METRICS_ENABLED", "false")
	a, err := New(context.Background(), memoryConfig(t), logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(a.Close)

	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPassthroughCacheAlwaysLoads(t *testing.T) {
	t.Parallel()

	calls := 0
	loader := func(context.Context) (any, error) {
		calls++
		return calls, nil
	}

	var c passthroughCache
	_, _ = c.GetOrLoad(context.Background(), "k", loader)
	got, err := c.GetOrLoad(context.Background(), "k", loader)
	require.NoError(t, err)
	assert.Equal(t, 2, got)
}
