package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, RequestIDFromContext(c))
	})

	cases := []struct {
		name    string
		inbound string
		keep    bool
	}{
		{"reuses inbound", "req-123", true},
		{"mints when missing", "", false},
		{"rejects spaces", "bad id", false},
		{"rejects oversized", strings.Repeat("x", maxRequestIDLength+1), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tc.inbound != "" {
				req.Header.Set("X-Request-Id", tc.inbound)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			got := w.Header().Get("X-Request-Id")
			if got != w.Body.String() {
				t.Fatalf("header %q and context %q differ", got, w.Body.String())
			}
			if tc.keep {
				if got != tc.inbound {
					t.Fatalf("expected %q, got %q", tc.inbound, got)
				}
				return
			}
			if _, err := uuid.Parse(got); err != nil {
				t.Fatalf("expected generated uuid, got %q", got)
			}
		})
	}
}
