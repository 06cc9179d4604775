package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/metrics"
)

// instrument records request count and latency labeled by route pattern, which
// keeps label cardinality bounded regardless of path ids.
func instrument(collector *metrics.Collector, route string, next http.Handler) http.Handler {
	if collector == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &logging.StatusRecorder{ResponseWriter: w, Status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		collector.HTTPDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		collector.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(rec.Status)).Inc()
	})
}
