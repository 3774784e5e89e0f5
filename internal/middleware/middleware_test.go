package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"landmark-catalog/internal/logger"
	"landmark-catalog/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestAdminMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		headers        map[string]string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "correct token",
			headers:        map[string]string{"Authorization": "Bearer admin_token"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "wrong token",
			headers:        map[string]string{"Authorization": "Bearer wrong"},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"detail":"Access forbidden: Admin privileges required"}`,
		},
		{
			name:           "empty header",
			headers:        map[string]string{"Authorization": ""},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"detail":"Access forbidden: Admin privileges required"}`,
		},
		{
			name:           "missing header",
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"detail":[{"loc":["header","authorization"],"msg":"field required","type":"missing"}]}`,
		},
	}

	handler := AdminMiddleware(services.NewStaticTokenVerifier("admin_token"))(http.HandlerFunc(okHandler))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodDelete, "/landmarks/1", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			}
		})
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = services.RequestIDFromContext(r.Context())
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, seen, 36)
	assert.Equal(t, seen, w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger.Setup("info", "json", &buf)

	handler := RequestIDMiddleware(LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})))

	req := httptest.NewRequest(http.MethodPost, "/landmarks", nil)
	req.Header.Set(RequestIDHeader, "req-7")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Request handled", entry["msg"])
	assert.Equal(t, "req-7", entry["request_id"])
	assert.Equal(t, "POST", entry["method"])
	assert.Equal(t, "/landmarks", entry["url"])
	assert.Equal(t, float64(http.StatusTeapot), entry["status_code"])
}

func TestRecoveryMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger.Setup("info", "json", &buf)

	handler := RecoveryMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"detail":"Internal Server Error"}`, w.Body.String())
	assert.Contains(t, buf.String(), "Handler panicked")
}

func TestNewCORS(t *testing.T) {
	handler := NewCORS([]string{"http://localhost:3000"}).Handler(http.HandlerFunc(okHandler))

	preflight := httptest.NewRequest(http.MethodOptions, "/landmarks/1", nil)
	preflight.Header.Set("Origin", "http://localhost:3000")
	preflight.Header.Set("Access-Control-Request-Method", http.MethodDelete)
	preflight.Header.Set("Access-Control-Request-Headers", "authorization,x-custom")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, preflight)

	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodDelete)
	assert.Contains(t, strings.ToLower(w.Header().Get("Access-Control-Allow-Headers")), "x-custom")

	req := httptest.NewRequest(http.MethodGet, "/landmarks", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_AllowsAnyMethod(t *testing.T) {
	handler := NewCORS([]string{"http://localhost:3000"}).Handler(http.HandlerFunc(okHandler))

	tests := []struct {
		name          string
		origin        string
		expectedAllow string
	}{
		{name: "allowed origin", origin: "http://localhost:3000", expectedAllow: "http://localhost:3000"},
		{name: "other origin", origin: "http://evil.example", expectedAllow: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			preflight := httptest.NewRequest(http.MethodOptions, "/landmarks", nil)
			preflight.Header.Set("Origin", tt.origin)
			preflight.Header.Set("Access-Control-Request-Method", "PROPFIND")
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, preflight)

			assert.Equal(t, tt.expectedAllow, w.Header().Get("Access-Control-Allow-Origin"))
			if tt.expectedAllow != "" {
				assert.Equal(t, "PROPFIND", w.Header().Get("Access-Control-Allow-Methods"))
			}

			req := httptest.NewRequest("PROPFIND", "/landmarks", nil)
			req.Header.Set("Origin", tt.origin)
			w = httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.expectedAllow, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}
