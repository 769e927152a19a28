package httpauth

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/launchpad/internal/services"
	"github.com/adanyl0v/launchpad/internal/services/servicestest"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newContext(req *http.Request) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}

func TestAuthenticateBearerToken(t *testing.T) {
	auth, sessions := servicestest.SignedIn("token", "user-1", servicestest.HTTPTestFingerprint)
	a := NewAuthenticator(zerolog.Nop(), auth, sessions, false)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer token")
	c, _ := newContext(req)

	session, err := a.Authenticate(c)
	require.NoError(t, err)
	assert.Equal(t, "user-1", session.UserID)

	userID, ok := UserID(c)
	require.True(t, ok)
	assert.Equal(t, "user-1", userID)
}

func TestAuthenticateCookieToken(t *testing.T) {
	auth, sessions := servicestest.SignedIn("token", "user-1", servicestest.HTTPTestFingerprint)
	a := NewAuthenticator(zerolog.Nop(), auth, sessions, false)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "token"})
	c, _ := newContext(req)

	_, err := a.Authenticate(c)
	require.NoError(t, err)
}

func TestAuthenticateRejects(t *testing.T) {
	tests := []struct {
		name        string
		header      string
		fingerprint string
	}{
		{name: "missing token", fingerprint: servicestest.HTTPTestFingerprint},
		{name: "malformed header", header: "Token token", fingerprint: servicestest.HTTPTestFingerprint},
		{name: "unknown token", header: "Bearer other", fingerprint: servicestest.HTTPTestFingerprint},
		{name: "fingerprint mismatch", header: "Bearer token", fingerprint: `{"client_ip":"10.0.0.1","user_agent":"curl"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth, sessions := servicestest.SignedIn("token", "user-1", tt.fingerprint)
			a := NewAuthenticator(zerolog.Nop(), auth, sessions, false)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			c, _ := newContext(req)

			_, err := a.Authenticate(c)
			require.ErrorIs(t, err, ErrUnauthenticated)
		})
	}
}

func TestAuthenticateRefreshesExpiredToken(t *testing.T) {
	auth, sessions := servicestest.SignedIn("fresh", "user-1", servicestest.HTTPTestFingerprint)
	parseFresh := auth.ParseJWTTokenFunc
	auth.ParseJWTTokenFunc = func(token string) (*jwt.RegisteredClaims, error) {
		if token == "stale" {
			return nil, fmt.Errorf("token is expired: %w", jwt.ErrTokenExpired)
		}
		return parseFresh(token)
	}
	auth.RefreshFunc = func(_ context.Context, params services.RefreshParams) (*services.LoginResult, error) {
		assert.Equal(t, "refresh", params.RefreshToken)
		assert.Equal(t, servicestest.HTTPTestFingerprint, params.Fingerprint)
		now := time.Now()
		return &services.LoginResult{
			UserID:                "user-1",
			AccessToken:           "fresh",
			AccessTokenExpiresAt:  now.Add(time.Minute),
			RefreshToken:          "refresh-2",
			RefreshTokenExpiresAt: now.Add(time.Hour),
		}, nil
	}
	a := NewAuthenticator(zerolog.Nop(), auth, sessions, false)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "stale"})
	req.AddCookie(&http.Cookie{Name: RefreshTokenCookie, Value: "refresh"})
	c, w := newContext(req)

	session, err := a.Authenticate(c)
	require.NoError(t, err)
	assert.Equal(t, "user-1", session.UserID)

	cookies := map[string]string{}
	for _, cookie := range w.Result().Cookies() {
		cookies[cookie.Name] = cookie.Value
	}
	assert.Equal(t, "fresh", cookies[AccessTokenCookie])
	assert.Equal(t, "refresh-2", cookies[RefreshTokenCookie])
}

func TestAuthenticateExpiredWithoutRefreshCookie(t *testing.T) {
	auth, sessions := servicestest.SignedIn("token", "user-1", servicestest.HTTPTestFingerprint)
	auth.ParseJWTTokenFunc = func(string) (*jwt.RegisteredClaims, error) {
		return nil, jwt.ErrTokenExpired
	}
	a := NewAuthenticator(zerolog.Nop(), auth, sessions, false)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer token")
	c, _ := newContext(req)

	_, err := a.Authenticate(c)
	require.ErrorIs(t, err, ErrUnauthenticated)
}
