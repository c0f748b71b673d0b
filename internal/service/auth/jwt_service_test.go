package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/phrazzld/scry-visual/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-long-enough-for-testing"

func newTestService(t *testing.T, secret string, now func() time.Time) *hmacJWTService {
	t.Helper()
	svc, err := newHMACJWTService(config.AuthConfig{
		JWTSecret:            secret,
		TokenLifetimeMinutes: 60,
	}, now)
	require.NoError(t, err)
	return svc
}

func signRaw(t *testing.T, claims jwtCustomClaims, secret string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	_, err := NewJWTService(config.AuthConfig{JWTSecret: "short", TokenLifetimeMinutes: 60})
	assert.Error(t, err)

	_, err = NewJWTService(config.AuthConfig{JWTSecret: testSecret, TokenLifetimeMinutes: 0})
	assert.Error(t, err)

	svc, err := NewJWTService(config.AuthConfig{JWTSecret: testSecret, TokenLifetimeMinutes: 60})
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(t, testSecret, func() time.Time { return fixedTime })

	token, err := svc.GenerateToken(context.Background(), 42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, accessTokenType, claims.TokenType)
	assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, fixedTime.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.ID)

	_, err = svc.GenerateToken(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidUserID)
}

func TestValidateToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	issuer := newTestService(t, testSecret, func() time.Time { return fixedTime })
	validToken, err := issuer.GenerateToken(context.Background(), 7)
	require.NoError(t, err)

	wrongKeyIssuer := newTestService(t, "wrong-secret-that-is-long-enough-for-testing", func() time.Time { return fixedTime })
	wrongKeyToken, err := wrongKeyIssuer.GenerateToken(context.Background(), 7)
	require.NoError(t, err)

	refreshToken := signRaw(t, jwtCustomClaims{
		UserID:    7,
		TokenType: "refresh",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(fixedTime.Add(time.Hour)),
		},
	}, testSecret)

	noUserToken := signRaw(t, jwtCustomClaims{
		TokenType: accessTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(fixedTime.Add(time.Hour)),
		},
	}, testSecret)

	tests := []struct {
		name    string
		token   string
		now     time.Time
		wantErr error
	}{
		{name: "valid token", token: validToken, now: fixedTime},
		{name: "within clock skew after expiry", token: validToken, now: fixedTime.Add(61 * time.Minute)},
		{name: "expired token", token: validToken, now: fixedTime.Add(2 * time.Hour), wantErr: ErrExpiredToken},
		{name: "wrong signing key", token: wrongKeyToken, now: fixedTime, wantErr: ErrInvalidToken},
		{name: "malformed token", token: "not.a.jwt", now: fixedTime, wantErr: ErrInvalidToken},
		{name: "refresh token", token: refreshToken, now: fixedTime, wantErr: ErrWrongTokenType},
		{name: "missing user id", token: noUserToken, now: fixedTime, wantErr: ErrInvalidUserID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			now := tt.now
			svc := newTestService(t, testSecret, func() time.Time { return now })

			claims, err := svc.ValidateToken(context.Background(), tt.token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(7), claims.UserID)
		})
	}
}
