package httpapi

import (
	"log"
	"net/http"
	"time"
)

// statusRecorder captures the response code so denied scans and store
// faults show up distinguishably in the request log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func loggingMiddleware(logger *log.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now().UTC()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Printf("%s %s from=%s status=%d dur=%s", r.Method, r.URL.Path, r.RemoteAddr, rec.status, time.Since(start))
	})
}
