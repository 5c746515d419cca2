package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/geocoder89/userhub/internal/http/handlers"
)

func TestReadyz(t *testing.T) {
	tests := []struct {
		name string
		ping func(ctx context.Context) error
		want int
	}{
		{"no_ping", nil, http.StatusOK},
		{"store_up", func(ctx context.Context) error { return nil }, http.StatusOK},
		{"store_down", func(ctx context.Context) error { return errors.New("no reachable servers") }, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			h := handlers.NewHealthHandler(tt.ping)
			r := setupRouter(http.MethodGet, "/readyz", h.Readyz)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			if w.Code != tt.want {
				t.Fatalf("got status %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestHome(t *testing.T) {
	r := setupRouter(http.MethodGet, "/", handlers.Home)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d", w.Code)
	}
	if !strings.HasPrefix(w.Header().Get("Content-Type"), "text/html") {
		t.Fatalf("expected html, got %q", w.Header().Get("Content-Type"))
	}
	if !strings.Contains(w.Body.String(), "Hello, World!") {
		t.Fatalf("unexpected body %q", w.Body.String())
	}
}
