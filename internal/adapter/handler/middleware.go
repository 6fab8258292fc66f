package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/hanafy/storefront/internal/metrics"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Instrument counts requests and latency per route. Dynamic path segments
// (IDs, codes, names) are collapsed to keep label cardinality bounded.
func Instrument(m *metrics.Server, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		label := routeLabel(r.Method, r.URL.Path)
		m.Requests.WithLabelValues(label, strconv.Itoa(rec.status)).Inc()
		m.LatencyMS.WithLabelValues(label).Observe(float64(time.Since(start).Milliseconds()))
	})
}

func routeLabel(method, path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	for i, p := range parts {
		if !isStaticSegment(p) {
			parts[i] = ":id"
		}
	}
	return method + " /" + strings.Join(parts, "/")
}

func isStaticSegment(s string) bool {
	if s == "" {
		return true
	}
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
