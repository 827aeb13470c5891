package http

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-pacs-sync/internal/logger"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- withTraceID ----

func TestWithTraceID(t *testing.T) {
	tests := []struct {
		name           string
		requestTraceID string
		wantSame       bool
	}{
		{name: "generated when missing"},
		{name: "caller id is preserved", requestTraceID: "550e8400-e29b-41d4-a716-446655440000", wantSame: true},
		{name: "custom id is preserved", requestTraceID: "nightly-sync-42", wantSame: true},
		{name: "oversized id is replaced", requestTraceID: strings.Repeat("x", maxTraceIDLength+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(nil, logger.Nop())
			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
			})

			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tt.requestTraceID != "" {
				req.Header.Set(traceIDHeader, tt.requestTraceID)
			}
			rec := httptest.NewRecorder()
			h.withTraceID(next).ServeHTTP(rec, req)

			got := rec.Header().Get(traceIDHeader)
			require.NotEmpty(t, got)
			assert.True(t, nextCalled)
			if tt.wantSame {
				assert.Equal(t, tt.requestTraceID, got)
				return
			}
			parsed, err := uuid.Parse(got)
			require.NoError(t, err)
			assert.Equal(t, uuid.Version(7), parsed.Version())
		})
	}
}

// Trace ID попадает в логгер из контекста запроса.
func TestWithTraceID_LoggerInContext(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(nil, &logger.Logger{Logger: zerolog.New(&buf)})

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.FromRequest(r).Info().Msg("inside")
	})
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(traceIDHeader, "trace-1")
	h.withTraceID(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.Contains(t, buf.String(), `"trace_id":"trace-1"`)
	assert.Contains(t, buf.String(), `"message":"inside"`)
}

// ---- withLogging ----

func TestWithLogging_WritesAccessLine(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   []string
	}{
		{"ok", http.StatusOK, "OK", []string{`"status":200`, `"size":2`}},
		{"not found", http.StatusNotFound, "", []string{`"status":404`, `"size":0`}},
		{"conflict", http.StatusConflict, "busy!", []string{`"status":409`, `"size":5`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := NewHandler(nil, logger.Nop())
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			})

			req := httptest.NewRequest(http.MethodPost, "/api/sync/replicate", nil)
			req = req.WithContext(zerolog.New(&buf).WithContext(req.Context()))
			rec := httptest.NewRecorder()
			h.withLogging(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			out := buf.String()
			assert.Contains(t, out, `"method":"POST"`)
			assert.Contains(t, out, `"uri":"/api/sync/replicate"`)
			assert.Contains(t, out, `"duration":`)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

// ---- responseWriter ----

func TestResponseWriter_HeaderWrittenOnce(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rec}

	rw.WriteHeader(http.StatusAccepted)
	rw.WriteHeader(http.StatusTeapot)
	n, err := rw.Write([]byte("abc"))
	require.NoError(t, err)
	_, _ = rw.Write([]byte("de"))

	assert.Equal(t, 3, n)
	assert.Equal(t, http.StatusAccepted, rw.status)
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, 5, rw.size)
}

func TestResponseWriter_ImplicitOK(t *testing.T) {
	rw := &responseWriter{ResponseWriter: httptest.NewRecorder()}

	_, _ = rw.Write([]byte("x"))

	assert.Equal(t, http.StatusOK, rw.status)
	assert.True(t, rw.wroteHeader)
}

// ---- withGZip ----

func TestWithGZip(t *testing.T) {
	payload := strings.Repeat(`{"item_id":"1.2.840.10008"}`, 50)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, payload)
	})

	t.Run("compresses when accepted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/runs", nil)
		req.Header.Set("Accept-Encoding", "gzip, deflate")
		rec := httptest.NewRecorder()

		withGZip(next).ServeHTTP(rec, req)

		assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
		assert.Equal(t, "Accept-Encoding", rec.Header().Get("Vary"))
		assert.Less(t, rec.Body.Len(), len(payload))
		zr, err := gzip.NewReader(rec.Body)
		require.NoError(t, err)
		got, err := io.ReadAll(zr)
		require.NoError(t, err)
		assert.Equal(t, payload, string(got))
	})

	t.Run("plain when not accepted", func(t *testing.T) {
		rec := httptest.NewRecorder()

		withGZip(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs", nil))

		assert.Empty(t, rec.Header().Get("Content-Encoding"))
		assert.Equal(t, payload, rec.Body.String())
	})
}
