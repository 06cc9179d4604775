package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-api/internal/catalog"
	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/db/memory"
	"github.com/gokatarajesh/trivia-api/internal/metrics"
	"github.com/gokatarajesh/trivia-api/internal/quiz"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func testConfig() *config.App {
	return &config.App{
		HTTPAddr: "127.0.0.1:0",
		CORS: config.CORS{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "PUT", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "Authorization"},
			MaxAge:         3600,
		},
	}
}

func newTestRouter(t *testing.T, deps ...Pinger) (http.Handler, *metrics.Collector) {
	t.Helper()
	store := memory.NewSeeded()
	collector := metrics.NewCollector("trivia")
	logger := zerolog.New(io.Discard)

	h := Handlers{
		Catalog: catalog.NewHTTPHandler(catalog.NewService(store, store, nil, catalog.ServiceOptions{Metrics: collector}), logger),
		Quiz:    quiz.NewHTTPHandler(quiz.NewSelector(store, quiz.SelectorOptions{Metrics: collector}), logger),
	}
	return NewRouter(testConfig(), logger, collector, h, deps...), collector
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestUnknownRouteIsJSON404(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, float64(404), body["error"])
}

func TestRoutesAreMounted(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/categories", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(router, httptest.NewRequest(http.MethodPost, "/questions",
		strings.NewReader(`{"question":"Q","answer":"A","category":1,"difficulty":1}`)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"created":1}`, rec.Body.String())

	rec = serve(router, httptest.NewRequest(http.MethodGet, "/categories/1/questions", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(router, httptest.NewRequest(http.MethodPost, "/quizzes",
		strings.NewReader(`{"previous_questions":[],"quiz_category":{"id":0}}`)))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(router, httptest.NewRequest(http.MethodDelete, "/questions/1", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(router, httptest.NewRequest(http.MethodGet, "/questions", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code, "empty catalog has no first page")
}

func TestMethodNotAllowedUses405(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/quizzes", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":405,"message":"method not allowed"}`, rec.Body.String())
}

func TestCORSHeaders(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/categories", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := serve(router, req)
	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	preflight := httptest.NewRequest(http.MethodOptions, "/questions", nil)
	preflight.Header.Set("Origin", "http://localhost:3000")
	preflight.Header.Set("Access-Control-Request-Method", http.MethodDelete)
	rec = serve(router, preflight)
	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodDelete)
}

func TestRequestIDPropagation(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec = serve(router, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	serve(router, httptest.NewRequest(http.MethodGet, "/categories", nil))
	rec := serve(router, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `trivia_http_requests_total{method="GET",route="/categories",status="200"} 1`)
}

func TestPing(t *testing.T) {
	healthy, _ := newTestRouter(t, pingerFunc(func(context.Context) error { return nil }))
	rec := serve(healthy, httptest.NewRequest(http.MethodGet, "/v1/ping", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"pong":true}`, rec.Body.String())

	broken, _ := newTestRouter(t, pingerFunc(func(context.Context) error { return errors.New("down") }))
	rec = serve(broken, httptest.NewRequest(http.MethodGet, "/v1/ping", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
