package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"triage-backend/internal/shared/auth"
)

func newAuthRouter(t *testing.T, keys *auth.Keys) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Auth(keys))
	router.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": UserIDFromContext(c), "name": UserNameFromContext(c)})
	})
	router.OPTIONS("/whoami", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return router
}

func TestAuthAllowsOptionsWithoutIdentity(t *testing.T) {
	keys, _ := auth.NewKeys("secret", "dev")
	router := newAuthRouter(t, keys)

	req := httptest.NewRequest(http.MethodOptions, "/whoami", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
}

func TestAuthAllowsAnonymous(t *testing.T) {
	keys, _ := auth.NewKeys("secret", "dev")
	router := newAuthRouter(t, keys)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/whoami", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if resp.Body.String() != `{"name":"","user":""}` {
		t.Fatalf("unexpected body: %s", resp.Body.String())
	}
}

func TestAuthGuestHeader(t *testing.T) {
	keys, _ := auth.NewKeys("secret", "dev")
	router := newAuthRouter(t, keys)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("X-Guest-Id", "abc")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Body.String() != `{"name":"","user":"guest:abc"}` {
		t.Fatalf("unexpected body: %s", resp.Body.String())
	}
}

func TestAuthBearerToken(t *testing.T) {
	keys, _ := auth.NewKeys("secret", "dev")
	router := newAuthRouter(t, keys)
	token, err := keys.Sign("user-7", "Sam", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if resp.Body.String() != `{"name":"Sam","user":"user-7"}` {
		t.Fatalf("unexpected body: %s", resp.Body.String())
	}
}

func TestAuthRejectsBadToken(t *testing.T) {
	keys, _ := auth.NewKeys("secret", "dev")
	router := newAuthRouter(t, keys)

	for _, header := range []string{"Bearer not-a-jwt", "Basic abc", "Bearer "} {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", header)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, resp.Code)
		}
	}
}
