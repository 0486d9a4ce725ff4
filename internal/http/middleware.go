package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-course/internal/logging"
	"github.com/goliatone/go-course/pkg/interfaces"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

const maxRequestIDLength = 128

// RequestLogger assigns a request id (reusing a well-formed inbound one),
// stores it on the request context, echoes it in the response and logs one
// entry per request.
func RequestLogger(logger interfaces.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = logging.NoOp()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := resolveRequestID(r.Header.Get(RequestIDHeader))

			ctx := logging.ContextWithRequestID(r.Context(), requestID)
			w.Header().Set(RequestIDHeader, requestID)

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r.WithContext(ctx))

			entry := logger.WithContext(ctx)
			args := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration", time.Since(start),
			}
			if rec.status >= http.StatusInternalServerError {
				entry.Error("course.http.request", args...)
				return
			}
			entry.Info("course.http.request", args...)
		})
	}
}

func resolveRequestID(inbound string) string {
	trimmed := strings.TrimSpace(inbound)
	if trimmed != "" && len(trimmed) <= maxRequestIDLength && isPrintableASCII(trimmed) {
		return trimmed
	}
	return uuid.NewString()
}

func isPrintableASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x21 || s[i] > 0x7e {
			return false
		}
	}
	return true
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(status int) {
	if !r.wroteHeader {
		r.status = status
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(p []byte) (int, error) {
	r.wroteHeader = true
	return r.ResponseWriter.Write(p)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
