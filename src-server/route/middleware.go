package route

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"caldeck/src-server/utils"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var httpRequestCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "caldeck_http_requests_total",
	Help: "HTTP requests by method and status",
}, []string{"method", "status"})

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// WithTelemetry wraps the whole mux with request logging and the
// request counter.
func WithTelemetry(as *utils.AppState, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		startTimer := time.Now()
		next.ServeHTTP(rec, r)

		httpRequestCount.WithLabelValues(r.Method, strconv.Itoa(rec.status)).Inc()
		slog.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(startTimer),
		)
	})
}
