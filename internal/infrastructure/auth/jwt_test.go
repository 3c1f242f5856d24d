package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/packmart/backend/internal/domain/identity"
	"github.com/packmart/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-with-enough-entropy-for-hs256",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "storefront-backend",
	})
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{
		UserID: userID,
		Email:  "admin@packmart.tn",
		Role:   identity.RoleAdmin,
	})
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "admin@packmart.tn", claims.Email)
	assert.Equal(t, identity.RoleAdmin, claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)

	parsed, err := claims.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestJWTService_TokenTypeMismatch(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{
		Secret:                 "access-secret-with-enough-entropy-hs256",
		RefreshSecret:          "refresh-secret-with-enough-entropy-256",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "storefront-backend",
	})

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{
		UserID: uuid.New(),
		Email:  "admin@packmart.tn",
		Role:   identity.RoleEditor,
	})
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken, "refresh token signed with refresh secret fails access validation")

	_, err = svc.ValidateRefreshToken(pair.RefreshToken)
	assert.NoError(t, err)
}

func TestJWTService_SharedSecretTypeCheck(t *testing.T) {
	// With a single secret the type claim is the only thing keeping a
	// refresh token out of the Authorization header.
	svc := newTestJWTService()

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{
		UserID: uuid.New(),
		Email:  "admin@packmart.tn",
		Role:   identity.RoleViewer,
	})
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidTokenType)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-with-enough-entropy-for-hs256",
		AccessTokenExpiration:  -1 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "storefront-backend",
	})

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{
		UserID: uuid.New(),
		Email:  "admin@packmart.tn",
		Role:   identity.RoleAdmin,
	})
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_GarbageToken(t *testing.T) {
	svc := newTestJWTService()

	_, err := svc.ValidateAccessToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestInMemoryTokenBlacklist(t *testing.T) {
	ctx := context.Background()
	bl := NewInMemoryTokenBlacklist()

	blacklisted, err := bl.IsBlacklisted(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, blacklisted)

	require.NoError(t, bl.AddToBlacklist(ctx, "jti-1", time.Minute))

	blacklisted, err = bl.IsBlacklisted(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, blacklisted)
}

func TestInMemoryTokenBlacklist_ExpiredEntry(t *testing.T) {
	ctx := context.Background()
	bl := NewInMemoryTokenBlacklist()

	require.NoError(t, bl.AddToBlacklist(ctx, "jti-2", -time.Second))

	blacklisted, err := bl.IsBlacklisted(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, blacklisted, "entry past its TTL is dropped")
}

func TestInMemoryTokenBlacklist_UserInvalidation(t *testing.T) {
	ctx := context.Background()
	bl := NewInMemoryTokenBlacklist()
	userID := uuid.New().String()

	issuedBefore := time.Now().Add(-time.Minute)
	require.NoError(t, bl.AddUserTokensToBlacklist(ctx, userID, time.Hour))

	invalidated, err := bl.IsUserTokenInvalidated(ctx, userID, issuedBefore)
	require.NoError(t, err)
	assert.True(t, invalidated)

	invalidated, err = bl.IsUserTokenInvalidated(ctx, userID, time.Now().Add(time.Minute))
	require.NoError(t, err)
	assert.False(t, invalidated)
}
