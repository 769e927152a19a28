// Package httpauth resolves the caller's session from JWT access tokens
// carried in the Authorization header or in cookies, refreshing them
// from the refresh-token cookie once they expire.
package httpauth

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/launchpad/internal/models"
	"github.com/adanyl0v/launchpad/internal/services"
)

const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"

	UserIDCtxKey    = "user_id"
	SessionIDCtxKey = "session_id"
)

// ErrUnauthenticated wraps every failure caused by missing, invalid or
// stale credentials. Other errors returned by Authenticate are internal.
var ErrUnauthenticated = errors.New("unauthenticated")

type Authenticator struct {
	logger        zerolog.Logger
	auth          services.AuthService
	sessions      services.SessionService
	secureCookies bool
}

func NewAuthenticator(
	logger zerolog.Logger,
	authService services.AuthService,
	sessionService services.SessionService,
	secureCookies bool,
) *Authenticator {
	return &Authenticator{
		logger:        logger,
		auth:          authService,
		sessions:      sessionService,
		secureCookies: secureCookies,
	}
}

// Authenticate returns the session behind the request's access token and
// stores its IDs in the gin context.
func (a *Authenticator) Authenticate(c *gin.Context) (*models.Session, error) {
	accessToken := accessTokenFromRequest(c)

	var claims *jwt.RegisteredClaims
	var err error
	if accessToken != "" {
		claims, err = a.auth.ParseJWTToken(accessToken)
		if err != nil && !errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
		}
	}

	// Browsers drop the access cookie once it expires, so a missing token
	// is treated like an expired one.
	if claims == nil {
		result, err := a.Refresh(c)
		if err != nil {
			return nil, err
		}

		claims, err = a.auth.ParseJWTToken(result.AccessToken)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
		}
	}

	session, err := a.sessions.GetSessionByID(c, claims.Subject)
	if err != nil {
		if errors.Is(err, services.ErrSessionNotFound) || errors.Is(err, services.ErrSessionExpired) {
			return nil, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
		}
		return nil, err
	}

	fingerprint, err := Fingerprint(c)
	if err != nil {
		return nil, err
	}
	if fingerprint != session.Fingerprint {
		a.logger.Warn().
			Str("session_id", session.ID).
			Msg("fingerprint mismatch")
		return nil, fmt.Errorf("%w: fingerprint mismatch", ErrUnauthenticated)
	}

	c.Set(UserIDCtxKey, session.UserID)
	c.Set(SessionIDCtxKey, session.ID)
	return session, nil
}

// Refresh rotates the session behind the refresh-token cookie and sets
// the new token cookies.
func (a *Authenticator) Refresh(c *gin.Context) (*services.LoginResult, error) {
	refreshToken, err := c.Cookie(RefreshTokenCookie)
	if err != nil || refreshToken == "" {
		return nil, fmt.Errorf("%w: refresh token required", ErrUnauthenticated)
	}

	fingerprint, err := Fingerprint(c)
	if err != nil {
		return nil, err
	}

	result, err := a.auth.Refresh(c, services.RefreshParams{
		RefreshToken: refreshToken,
		Fingerprint:  fingerprint,
	})
	if err != nil {
		if errors.Is(err, services.ErrSessionNotFound) || errors.Is(err, services.ErrSessionExpired) {
			return nil, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
		}
		return nil, err
	}

	a.SetSessionCookies(c, result)
	return result, nil
}

func (a *Authenticator) SetSessionCookies(c *gin.Context, result *services.LoginResult) {
	now := time.Now()
	// The access token cookie is readable by client-side scripts so they
	// can send it in the Authorization header.
	c.SetCookie(AccessTokenCookie, result.AccessToken, int(result.AccessTokenExpiresAt.Sub(now).Seconds()),
		"/", "", a.secureCookies, false)
	c.SetCookie(RefreshTokenCookie, result.RefreshToken, int(result.RefreshTokenExpiresAt.Sub(now).Seconds()),
		"/", "", a.secureCookies, true)
}

func (a *Authenticator) ClearSessionCookies(c *gin.Context) {
	c.SetCookie(AccessTokenCookie, "", -1, "/", "", a.secureCookies, false)
	c.SetCookie(RefreshTokenCookie, "", -1, "/", "", a.secureCookies, true)
}

// UserID returns the ID stored by Authenticate.
func UserID(c *gin.Context) (string, bool) {
	return stringFromContext(c, UserIDCtxKey)
}

func SessionID(c *gin.Context) (string, bool) {
	return stringFromContext(c, SessionIDCtxKey)
}

// Fingerprint binds a session to the client address and user agent.
func Fingerprint(c *gin.Context) (string, error) {
	fingerprintBytes, err := json.Marshal(map[string]string{
		"client_ip":  c.ClientIP(),
		"user_agent": c.Request.UserAgent(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal json: %w", err)
	}
	return string(fingerprintBytes), nil
}

func accessTokenFromRequest(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header != "" {
		const bearerPrefix = "Bearer"
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && parts[0] == bearerPrefix {
			return parts[1]
		}
		return ""
	}

	token, err := c.Cookie(AccessTokenCookie)
	if err != nil {
		return ""
	}
	return token
}

func stringFromContext(c *gin.Context, key string) (string, bool) {
	value, exists := c.Get(key)
	if !exists {
		return "", false
	}
	str, ok := value.(string)
	return str, ok
}
