package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestIdentityAllowsOptionsWithoutIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Identity())
	router.OPTIONS("/api/v1/documents", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/documents", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
}

func TestIdentityResolvesHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name      string
		header    string
		value     string
		wantCode  int
		wantUser  string
		wantGuest bool
	}{
		{name: "user", header: "X-User-Id", value: "u-1", wantCode: http.StatusOK, wantUser: "u-1"},
		{name: "guest", header: "X-Guest-Id", value: "g-1", wantCode: http.StatusOK, wantUser: "guest:g-1", wantGuest: true},
		{name: "missing", wantCode: http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var gotUser string
			var gotGuest bool
			router := gin.New()
			router.Use(Identity())
			router.GET("/whoami", func(c *gin.Context) {
				gotUser = UserIDFromContext(c)
				gotGuest = IsGuest(c)
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tc.header != "" {
				req.Header.Set(tc.header, tc.value)
			}
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)

			if resp.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, resp.Code)
			}
			if gotUser != tc.wantUser {
				t.Fatalf("expected user %q, got %q", tc.wantUser, gotUser)
			}
			if gotGuest != tc.wantGuest {
				t.Fatalf("expected guest=%v, got %v", tc.wantGuest, gotGuest)
			}
		})
	}
}
