package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/catalog"
	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/metrics"
	"github.com/gokatarajesh/trivia-api/internal/quiz"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handlers groups the domain handlers mounted on the router.
type Handlers struct {
	Catalog *catalog.HTTPHandler
	Quiz    *quiz.HTTPHandler
}

// NewRouter mounts the API, ops endpoints and middleware.
func NewRouter(cfg *config.App, logger zerolog.Logger, collector *metrics.Collector, h Handlers, deps ...Pinger) http.Handler {
	mux := http.NewServeMux()

	route := func(pattern string, handler http.HandlerFunc) {
		mux.Handle(pattern, instrument(collector, pattern, handler))
	}

	route("/categories", h.Catalog.HandleCategories)
	route("/categories/{category_id}/questions", h.Catalog.HandleCategoryQuestions)
	route("/questions", h.Catalog.HandleQuestions)
	route("/questions/{question_id}", h.Catalog.HandleQuestion)
	route("/quizzes", h.Quiz.HandleNext)

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.HandleFunc("/v1/ping", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		for _, dep := range deps {
			if err := dep.Ping(ctx); err != nil {
				logger := logging.FromContext(ctx)
				logger.Error().Err(err).Msg("dependency ping failed")
				httperrors.RespondServiceUnavailable(w)
				return
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pong":true}`))
	})

	if collector != nil {
		mux.Handle("/metrics", collector.Handler())
	}

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		httperrors.RespondNotFound(w)
	})

	var handler http.Handler = mux
	handler = cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	})(handler)
	handler = recoverer(handler)
	handler = logging.Middleware(logger)(handler)
	return handler
}

// NewHTTPServer wraps the router in an http.Server bound to cfg.HTTPAddr.
func NewHTTPServer(cfg *config.App, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger := logging.FromContext(r.Context())
				logger.Error().Interface("panic", rec).Msg("handler panicked")
				httperrors.RespondInternalError(w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
