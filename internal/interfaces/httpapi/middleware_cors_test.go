package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	t.Parallel()

	handler := CORS([]string{"https://qwleague.example"}, okHandler())
	req := httptest.NewRequest(http.MethodGet, pathQuery+"?endpoint=standings", nil)
	req.Header.Set("Origin", "https://qwleague.example")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, "https://qwleague.example", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSPreflight(t *testing.T) {
	t.Parallel()

	handler := CORS([]string{"*"}, okHandler())
	req := httptest.NewRequest(http.MethodOptions, pathIntake, nil)
	req.Header.Set("Origin", "https://qwleague.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSDisallowsUnconfiguredOrigin(t *testing.T) {
	t.Parallel()

	handler := CORS([]string{"https://allowed.example.com"}, okHandler())
	req := httptest.NewRequest(http.MethodGet, pathQuery, nil)
	req.Header.Set("Origin", "https://not-allowed.example.com")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestShouldTraceRequest(t *testing.T) {
	t.Parallel()

	for _, path := range []string{"/healthz", " /healthz ", "/metrics"} {
		assert.False(t, shouldTraceRequest(path), path)
	}
	for _, path := range []string{pathQuery, pathIntake, "/"} {
		assert.True(t, shouldTraceRequest(path), path)
	}
}

func TestRouteLabel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, pathQuery, routeLabel(pathQuery))
	assert.Equal(t, "other", routeLabel("/v1/query/extra"))
}
