package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chris/hive-timebank/pkg/metrics"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(logger *slog.Logger) chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(NewStructuredLogger(logger))
	r.Use(Metrics)
	r.Get("/members/{memberId}", func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "memberId") == "ghost" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"memberId":"alice"}`))
	})
	r.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	return r
}

func lastLogLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	return entry
}

func TestStructuredLogger(t *testing.T) {
	testCases := []struct {
		name    string
		path    string
		level   string
		message string
		status  float64
	}{
		{"Success", "/members/alice", "INFO", "request completed", http.StatusOK},
		{"Client Error", "/members/ghost", "WARN", "request rejected", http.StatusNotFound},
		{"Server Error", "/boom", "ERROR", "server error", http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			router := newTestRouter(slog.New(slog.NewJSONHandler(&buf, nil)))

			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tc.path, nil))

			entry := lastLogLine(t, &buf)
			assert.Equal(t, tc.level, entry["level"])
			assert.Equal(t, tc.message, entry["msg"])

			request, ok := entry["request"].(map[string]any)
			require.True(t, ok)
			assert.Equal(t, tc.path, request["path"])
			assert.NotEmpty(t, request["id"])

			response, ok := entry["response"].(map[string]any)
			require.True(t, ok)
			assert.Equal(t, tc.status, response["status"])
		})
	}

	t.Run("Route Pattern", func(t *testing.T) {
		var buf bytes.Buffer
		router := newTestRouter(slog.New(slog.NewJSONHandler(&buf, nil)))

		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/members/alice", nil))

		request := lastLogLine(t, &buf)["request"].(map[string]any)
		assert.Equal(t, "/members/{memberId}", request["route"])
	})
}

func TestMetrics(t *testing.T) {
	router := newTestRouter(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	t.Run("Counts By Route Pattern", func(t *testing.T) {
		counter := metrics.HTTPRequests.WithLabelValues(http.MethodGet, "/members/{memberId}", "200")
		before := testutil.ToFloat64(counter)

		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/members/alice", nil))
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/members/bob", nil))

		assert.Equal(t, before+2, testutil.ToFloat64(counter))
	})

	t.Run("Counts Status", func(t *testing.T) {
		counter := metrics.HTTPRequests.WithLabelValues(http.MethodGet, "/members/{memberId}", "404")
		before := testutil.ToFloat64(counter)

		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/members/ghost", nil))

		assert.Equal(t, before+1, testutil.ToFloat64(counter))
	})

	t.Run("Unmatched Route", func(t *testing.T) {
		counter := metrics.HTTPRequests.WithLabelValues(http.MethodGet, "unmatched", "404")
		before := testutil.ToFloat64(counter)

		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

		assert.Equal(t, before+1, testutil.ToFloat64(counter))
	})
}
