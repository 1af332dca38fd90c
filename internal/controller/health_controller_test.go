package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubPinger struct{ err error }

func (p stubPinger) PingContext(context.Context) error { return p.err }
func (p stubPinger) Ping(context.Context) error { return p.err }

func serve(t *testing.T, r http.Handler, req *http.Request) (int, map[string]interface{}) {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func healthRouter(h *HealthController) *gin.Engine {
	r := gin.New()
	r.GET("/", h.Index)
	r.GET("/api/health", h.HealthCheck)
	return r
}

func TestHealthCheck(t *testing.T) {
	cases := []struct {
		name     string
		db       Pinger
		cache    CachePinger
		status   int
		message  string
		database string
		cacheUp  string
	}{
		{"all up", stubPinger{}, stubPinger{}, http.StatusOK, "Server is running", "up", "up"},
		{"cache down", stubPinger{}, stubPinger{err: errors.New("refused")}, http.StatusOK, "Server is running", "up", "down"},
		{"no cache", stubPinger{}, nil, http.StatusOK, "Server is running", "up", "down"},
		{"database down", stubPinger{err: errors.New("refused")}, stubPinger{}, http.StatusServiceUnavailable, "Database unavailable", "down", "up"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := healthRouter(NewHealthController(tc.db, tc.cache))
			code, body := serve(t, r, httptest.NewRequest(http.MethodGet, "/api/health", nil))
			assert.Equal(t, tc.status, code)
			assert.Equal(t, tc.message, body["message"])
			assert.NotEmpty(t, body["timestamp"])

			components := body["components"].(map[string]interface{})
			assert.Equal(t, tc.database, components["database"])
			assert.Equal(t, tc.cacheUp, components["cache"])
		})
	}
}

func TestIndex(t *testing.T) {
	r := healthRouter(NewHealthController(stubPinger{}, nil))
	code, body := serve(t, r, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Job Assessment Platform API", body["message"])

	endpoints := body["endpoints"].(map[string]interface{})
	assert.Equal(t, "/api/task-submissions", endpoints["taskSubmissions"])
	assert.Equal(t, "/api/health", endpoints["health"])
}
