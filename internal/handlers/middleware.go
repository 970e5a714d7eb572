package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/agent-portal/portal/internal/logger"
)

type ctxKey int

const loggerKey ctxKey = iota

// requestLogger returns the per-request logger installed by
// LoggingMiddleware. Outside it, records are dropped.
func requestLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return l
	}
	return logger.Discard()
}

// LoggingMiddleware tags each request with an ID, hands handlers a logger
// carrying it, and logs the outcome at debug level.
func LoggingMiddleware(base *slog.Logger, next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := base.With(slog.String("request_id", uuid.NewString()))
		r = r.WithContext(context.WithValue(r.Context(), loggerKey, l))

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		l.LogAttrs(r.Context(), slog.LevelDebug, "request served",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.Int64("bytes", rec.bytes),
			slog.Duration("duration", time.Since(start)),
		)
	}
}

// statusRecorder remembers the status code and body size written through it.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	bytes       int64
	wroteHeader bool
}

func (s *statusRecorder) WriteHeader(code int) {
	if !s.wroteHeader {
		s.status = code
		s.wroteHeader = true
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	s.wroteHeader = true
	n, err := s.ResponseWriter.Write(b)
	s.bytes += int64(n)
	return n, err
}

// ReadFrom keeps the wrapped writer's io.ReaderFrom (sendfile) path
// reachable from http.ServeContent.
func (s *statusRecorder) ReadFrom(src io.Reader) (int64, error) {
	s.wroteHeader = true
	n, err := io.Copy(s.ResponseWriter, src)
	s.bytes += n
	return n, err
}

func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}
