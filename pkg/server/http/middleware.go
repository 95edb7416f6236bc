package http

import (
	"net/http"
	"time"

	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/logging"
)

// loggingResponseWriter captures the status code written by the wrapped
// handler. Only the first WriteHeader call is recorded.
type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	if lrw.wroteHeader {
		return
	}
	lrw.statusCode = code
	lrw.wroteHeader = true
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Write(b []byte) (int, error) {
	if !lrw.wroteHeader {
		lrw.wroteHeader = true
	}
	return lrw.ResponseWriter.Write(b)
}

// RequestMiddleware logs each request with its status and duration. Health
// checks are excluded to keep probe traffic out of the logs.
func RequestMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lrw := &loggingResponseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		start := time.Now()
		next.ServeHTTP(lrw, r)

		if r.URL.Path == healthEndpoint {
			return
		}
		logging.Debug("%s %s %d %s", r.Method, r.URL.Path, lrw.statusCode, time.Since(start))
	})
}
