package middleware

import (
	"net/http"
	"strconv"
	"time"

	"splitledger/pkg/metrics"
)

// Metrics records request counts and latencies per method/path/status.
func Metrics(m *metrics.HTTP) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			status := strconv.Itoa(rec.status)
			m.Requests.WithLabelValues(r.Method, r.URL.Path, status).Inc()
			m.Duration.WithLabelValues(r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
		})
	}
}
