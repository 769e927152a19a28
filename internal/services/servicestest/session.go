package servicestest

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/adanyl0v/launchpad/internal/models"
	"github.com/adanyl0v/launchpad/internal/services"
)

// HTTPTestFingerprint is the fingerprint of requests built by
// httptest.NewRequest without a User-Agent header.
const HTTPTestFingerprint = `{"client_ip":"192.0.2.1","user_agent":""}`

// SignedIn returns auth and session fakes that accept token as the
// access token of a session owned by userID. Requests must present the
// given fingerprint.
func SignedIn(token, userID, fingerprint string) (*Auth, *Sessions) {
	const sessionID = "session-test"

	auth := &Auth{
		ParseJWTTokenFunc: func(t string) (*jwt.RegisteredClaims, error) {
			if t != token {
				return nil, fmt.Errorf("failed to parse token: %w", jwt.ErrTokenMalformed)
			}
			return &jwt.RegisteredClaims{Subject: sessionID}, nil
		},
		RefreshFunc: func(context.Context, services.RefreshParams) (*services.LoginResult, error) {
			return nil, services.ErrSessionNotFound
		},
		LogoutFunc: func(context.Context, string) error {
			return nil
		},
	}
	sessions := &Sessions{
		GetSessionByIDFunc: func(_ context.Context, id string) (*models.Session, error) {
			if id != sessionID {
				return nil, services.ErrSessionNotFound
			}
			return &models.Session{
				ID:          sessionID,
				UserID:      userID,
				Fingerprint: fingerprint,
			}, nil
		},
	}
	return auth, sessions
}

