package services

import (
	"context"
	"testing"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cheapArgon2Params = &argon2id.Params{
	Memory:      1024,
	Iterations:  1,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

func newTestAuthService(pool pgxPool) AuthService {
	return NewAuthService(testLogger(), pool, "launchpad-test", []byte("secret"), 15*time.Minute, time.Hour)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	mock := newMockPool(t)
	svc := newTestAuthService(mock)

	mock.ExpectBegin()
	mock.ExpectExec(sql("INSERT INTO profiles")).
		WithArgs(
			pgxmock.AnyArg(),
			"jane@example.com",
			pgxmock.AnyArg(),
			pgxmock.AnyArg(),
			"employee",
			pgxmock.AnyArg(),
			pgxmock.AnyArg(),
			pgxmock.AnyArg(),
		).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})
	mock.ExpectRollback()

	_, err := svc.Register(context.Background(), RegisterParams{
		LoginParams: LoginParams{
			Email:       "  Jane@Example.com ",
			Password:    "hunter2",
			Fingerprint: "fp",
		},
	})
	require.ErrorIs(t, err, ErrUserAlreadyExists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginUnknownEmail(t *testing.T) {
	mock := newMockPool(t)
	svc := newTestAuthService(mock)

	mock.ExpectQuery(sql("FROM profiles")).
		WithArgs("nobody@example.com").
		WillReturnError(pgx.ErrNoRows)

	_, err := svc.Login(context.Background(), LoginParams{
		Email:    "nobody@example.com",
		Password: "x",
	})
	require.ErrorIs(t, err, ErrUserNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginWrongPassword(t *testing.T) {
	mock := newMockPool(t)
	svc := newTestAuthService(mock)

	hash, err := argon2id.CreateHash("correct horse", cheapArgon2Params)
	require.NoError(t, err)

	mock.ExpectQuery(sql("FROM profiles")).
		WithArgs("jane@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "password"}).AddRow("user-1", hash))

	_, err = svc.Login(context.Background(), LoginParams{
		Email:    "jane@example.com",
		Password: "battery staple",
	})
	require.ErrorIs(t, err, ErrUserPasswordMismatch)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginIssuesSessionTokens(t *testing.T) {
	mock := newMockPool(t)
	svc := newTestAuthService(mock)

	hash, err := argon2id.CreateHash("correct horse", cheapArgon2Params)
	require.NoError(t, err)

	mock.ExpectQuery(sql("FROM profiles")).
		WithArgs("jane@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "password"}).AddRow("user-1", hash))
	mock.ExpectBegin()
	mock.ExpectExec(sql("DELETE FROM sessions")).
		WithArgs("user-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(sql("INSERT INTO sessions")).
		WithArgs(
			pgxmock.AnyArg(),
			"user-1",
			"fp",
			pgxmock.AnyArg(),
			pgxmock.AnyArg(),
			pgxmock.AnyArg(),
			pgxmock.AnyArg(),
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	result, err := svc.Login(context.Background(), LoginParams{
		Email:       "jane@example.com",
		Password:    "correct horse",
		Fingerprint: "fp",
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	assert.Equal(t, "user-1", result.UserID)
	assert.NotEmpty(t, result.RefreshToken)
	assert.True(t, result.RefreshTokenExpiresAt.After(result.AccessTokenExpiresAt))

	claims, err := svc.ParseJWTToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, result.SessionID, claims.Subject)
	assert.Equal(t, "launchpad-test", claims.Issuer)
}

func TestParseJWTTokenRejectsForeignKey(t *testing.T) {
	svc := newTestAuthService(newMockPool(t))

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    "launchpad-test",
		Subject:   "session-1",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
		IssuedAt:  jwt.NewNumericDate(now),
	})
	signed, err := token.SignedString([]byte("other-secret"))
	require.NoError(t, err)

	_, err = svc.ParseJWTToken(signed)
	require.Error(t, err)
}

func TestRefreshExpiredSession(t *testing.T) {
	mock := newMockPool(t)
	svc := newTestAuthService(mock)

	mock.ExpectQuery(sql("FROM sessions")).
		WithArgs("refresh", "fp").
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "expires_at"}).
			AddRow("session-1", "user-1", time.Now().Add(-time.Minute)))

	_, err := svc.Refresh(context.Background(), RefreshParams{
		RefreshToken: "refresh",
		Fingerprint:  "fp",
	})
	require.ErrorIs(t, err, ErrSessionExpired)
	require.NoError(t, mock.ExpectationsWereMet())
}
