package proxy

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"school-menu/internal/config"
	"school-menu/internal/nutrislice"
)

func newProxy(upstream http.HandlerFunc) (*Handler, *httptest.Server) {
	server := httptest.NewServer(upstream)
	client := nutrislice.NewClient(&config.Config{MenuAPIBaseURL: server.URL})
	return NewHandler(client), server
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode error envelope: %v", err)
	}
	return body["error"]
}

func TestProxy(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		h, server := newProxy(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/lunch/2025/10/07" {
				t.Errorf("Unexpected upstream path '%s'", r.URL.Path)
			}
			w.Write([]byte(`{"days": []}`))
		})
		defer server.Close()

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/menu?mealType=lunch&date=2025-10-07", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", rec.Code)
		}
		if rec.Body.String() != `{"days": []}` {
			t.Errorf("Expected verbatim upstream body, got %q", rec.Body.String())
		}
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("Expected permissive CORS origin, got %q", got)
		}
	})

	t.Run("MissingParameters", func(t *testing.T) {
		h, server := newProxy(func(w http.ResponseWriter, r *http.Request) {
			t.Error("Upstream must not be called for invalid requests")
		})
		defer server.Close()

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/menu?mealType=lunch", nil))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d", rec.Code)
		}
		if got := decodeError(t, rec); got != "Missing mealType or date parameter" {
			t.Errorf("Unexpected error message %q", got)
		}
	})

	t.Run("MethodNotAllowed", func(t *testing.T) {
		h, server := newProxy(func(w http.ResponseWriter, r *http.Request) {})
		defer server.Close()

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/menu?mealType=lunch&date=2025-10-07", nil))

		if rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("Expected 405, got %d", rec.Code)
		}
		if got := decodeError(t, rec); got != "Method not allowed" {
			t.Errorf("Unexpected error message %q", got)
		}
	})

	t.Run("PreflightShortCircuits", func(t *testing.T) {
		h, server := newProxy(func(w http.ResponseWriter, r *http.Request) {
			t.Error("Upstream must not be called for preflight")
		})
		defer server.Close()

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/menu", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200 for OPTIONS, got %d", rec.Code)
		}
		if got := rec.Header().Get("Access-Control-Allow-Methods"); got != "GET, OPTIONS" {
			t.Errorf("Expected GET, OPTIONS allowed, got %q", got)
		}
	})

	t.Run("UpstreamNotFound", func(t *testing.T) {
		h, server := newProxy(func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		})
		defer server.Close()

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/menu?mealType=lunch&date=2025-10-07", nil))

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("Expected 500, got %d", rec.Code)
		}
		if got := decodeError(t, rec); got != "Failed to fetch menu data" {
			t.Errorf("Unexpected error message %q", got)
		}
	})

	t.Run("UpstreamNonJSON", func(t *testing.T) {
		h, server := newProxy(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>maintenance</html>"))
		})
		defer server.Close()

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/menu?mealType=breakfast&date=2025-10-07", nil))

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("Expected 500 for non-JSON upstream, got %d", rec.Code)
		}
	})
}
