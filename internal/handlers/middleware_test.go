package handlers

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agent-portal/portal/internal/logger"
)

// decodeLines parses one JSON log record per line.
func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var recs []map[string]any
	sc := bufio.NewScanner(buf)
	for sc.Scan() {
		var rec map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &rec))
		recs = append(recs, rec)
	}
	require.NoError(t, sc.Err())
	return recs
}

func TestLoggingMiddlewareRecordsOutcome(t *testing.T) {
	var buf bytes.Buffer
	l, err := logger.New(logger.Config{Level: "debug", Format: "json", Output: &buf})
	require.NoError(t, err)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestLogger(r.Context()).Debug("inside handler")
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short"))
	})

	rr := httptest.NewRecorder()
	LoggingMiddleware(l, next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/pot", nil))

	recs := decodeLines(t, &buf)
	require.Len(t, recs, 2)
	inner, served := recs[0], recs[1]

	assert.Equal(t, "inside handler", inner["msg"])
	id, ok := inner["request_id"].(string)
	require.True(t, ok)
	_, err = uuid.Parse(id)
	require.NoError(t, err)

	assert.Equal(t, "request served", served["msg"])
	assert.Equal(t, id, served["request_id"])
	assert.Equal(t, "GET", served["method"])
	assert.Equal(t, "/pot", served["path"])
	assert.EqualValues(t, http.StatusTeapot, served["status"])
	assert.EqualValues(t, 5, served["bytes"])

	assert.Empty(t, rr.Header().Get("X-Request-Id"))
}

func TestLoggingMiddlewareDistinctIDs(t *testing.T) {
	var buf bytes.Buffer
	l, err := logger.New(logger.Config{Level: "debug", Format: "json", Output: &buf})
	require.NoError(t, err)

	h := LoggingMiddleware(l, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	recs := decodeLines(t, &buf)
	require.Len(t, recs, 2)
	assert.NotEqual(t, recs[0]["request_id"], recs[1]["request_id"])
	assert.EqualValues(t, http.StatusOK, recs[0]["status"])
}

func TestLoggingMiddlewareSilentAtInfo(t *testing.T) {
	var buf bytes.Buffer
	l, err := logger.New(logger.Config{Output: &buf})
	require.NoError(t, err)

	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	LoggingMiddleware(l, next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Empty(t, buf.String())
}

func TestRequestLoggerOutsideMiddleware(t *testing.T) {
	l := requestLogger(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	require.NotNil(t, l)
	l.Info("dropped")
}

// readerFromRecorder records whether ReadFrom was reached.
type readerFromRecorder struct {
	*httptest.ResponseRecorder
	used bool
}

func (r *readerFromRecorder) ReadFrom(src io.Reader) (int64, error) {
	r.used = true
	return io.Copy(r.ResponseRecorder, src)
}

func TestStatusRecorderForwardsReadFrom(t *testing.T) {
	inner := &readerFromRecorder{ResponseRecorder: httptest.NewRecorder()}
	rec := &statusRecorder{ResponseWriter: inner, status: http.StatusOK}

	var w http.ResponseWriter = rec
	rf, ok := w.(io.ReaderFrom)
	require.True(t, ok)

	n, err := rf.ReadFrom(strings.NewReader("payload"))
	require.NoError(t, err)
	assert.EqualValues(t, 7, n)
	assert.EqualValues(t, 7, rec.bytes)
	assert.True(t, inner.used)
	assert.Equal(t, "payload", inner.Body.String())
}
