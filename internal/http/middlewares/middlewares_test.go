package middlewares_test

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/geocoder89/userhub/internal/http/middlewares"
	"github.com/geocoder89/userhub/internal/observability"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequireJSON(t *testing.T) {
	tests := []struct {
		name        string
		method      string
		contentType string
		wantStatus  int
	}{
		{"post_json", http.MethodPost, "application/json", http.StatusOK},
		{"post_json_charset", http.MethodPost, "application/json; charset=utf-8", http.StatusOK},
		{"post_form", http.MethodPost, "application/x-www-form-urlencoded", http.StatusUnsupportedMediaType},
		{"put_missing", http.MethodPut, "", http.StatusUnsupportedMediaType},
		{"get_ignored", http.MethodGet, "", http.StatusOK},
		{"delete_ignored", http.MethodDelete, "", http.StatusOK},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(middlewares.RequireJSON())
			r.Handle(tt.method, "/x", func(c *gin.Context) { c.Status(http.StatusOK) })

			req := httptest.NewRequest(tt.method, "/x", strings.NewReader(`{}`))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("got status %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(middlewares.RequestID())
	r.GET("/x", func(c *gin.Context) {
		id, _ := c.Get(middlewares.CtxRequestID)
		c.String(http.StatusOK, "%v", id)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	generated := w.Header().Get("X-Request-Id")
	if generated == "" || w.Body.String() != generated {
		t.Fatalf("expected generated id echoed in header and context, header=%q body=%q", generated, w.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-Id"); got != "abc-123" {
		t.Fatalf("expected caller id to be kept, got %q", got)
	}
}

func TestRequestLogger_WritesOneLinePerRequest(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(observability.NewContextHandler(slog.NewJSONHandler(&buf, nil)))

	r := gin.New()
	r.Use(middlewares.RequestID(), middlewares.RequestLogger(log))
	r.GET("/users/:id", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/1", nil))

	out := buf.String()
	for _, want := range []string{`"msg":"http_request"`, `"route":"/users/:id"`, `"status":418`, `"request_id"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("log line missing %s: %s", want, out)
		}
	}
}

func TestMaxBodyBytes(t *testing.T) {
	r := gin.New()
	r.Use(middlewares.MaxBodyBytes(8))
	r.POST("/x", func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", strings.NewReader("small")))
	if w.Code != http.StatusOK {
		t.Fatalf("small body: got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", strings.NewReader("definitely too large")))
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("large body: got %d", w.Code)
	}
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(middlewares.CORSMiddleware([]string{"http://app.test"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://app.test")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://app.test" {
		t.Fatalf("allowed origin not echoed, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://evil.test")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("unexpected allow origin %q", got)
	}

	req = httptest.NewRequest(http.MethodOptions, "/x", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight: got %d", w.Code)
	}
}

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(middlewares.SecurityHeaders())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatalf("missing nosniff header")
	}
	if w.Header().Get("Content-Security-Policy") == "" {
		t.Fatalf("missing CSP header")
	}
}

func TestMaxBodyBytes_DeclaredLengthRefusedUpFront(t *testing.T) {
	r := gin.New()
	r.Use(middlewares.RequestID(), middlewares.MaxBodyBytes(4))
	r.POST("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", strings.NewReader("0123456789")))

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"payload_too_large"`) || !strings.Contains(w.Body.String(), `"requestId"`) {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}

func TestMaxBodyBytes_ZeroDisablesCap(t *testing.T) {
	r := gin.New()
	r.Use(middlewares.MaxBodyBytes(0))
	r.POST("/x", func(c *gin.Context) {
		b, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.String(http.StatusOK, "%d", len(b))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(strings.Repeat("a", 4096))))

	if w.Code != http.StatusOK || w.Body.String() != "4096" {
		t.Fatalf("got %d body=%s", w.Code, w.Body.String())
	}
}
