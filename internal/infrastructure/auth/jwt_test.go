package auth

import (
	"testing"
	"time"

	"github.com/retailpos/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "test-secret-at-least-32-characters!!",
		AccessTokenExpiration: time.Hour,
		Issuer:                "retailpos-test",
	})
}

func TestJWTService(t *testing.T) {
	service := newTestService()
	userID := uuid.New()
	ownerID := uuid.New()
	outletID := uuid.New()

	t.Run("round trip preserves scope claims", func(t *testing.T) {
		token, expiresAt, err := service.GenerateAccessToken(GenerateTokenInput{
			UserID:   userID,
			OwnerID:  ownerID,
			OutletID: &outletID,
		})
		require.NoError(t, err)
		assert.True(t, expiresAt.After(time.Now()))

		claims, err := service.ValidateAccessToken(token)
		require.NoError(t, err)
		assert.Equal(t, userID.String(), claims.UserID)
		assert.Equal(t, ownerID.String(), claims.OwnerID)
		assert.Equal(t, outletID.String(), claims.OutletID)
		assert.False(t, claims.SuperAdmin)

		actor, err := claims.Actor()
		require.NoError(t, err)
		assert.Equal(t, userID, actor.UserID)
		assert.Equal(t, ownerID, actor.OwnerID)
		require.NotNil(t, actor.OutletID)
		assert.Equal(t, outletID, *actor.OutletID)
	})

	t.Run("super admin flag survives the round trip", func(t *testing.T) {
		token, _, err := service.GenerateAccessToken(GenerateTokenInput{
			UserID:     userID,
			OwnerID:    ownerID,
			SuperAdmin: true,
		})
		require.NoError(t, err)

		claims, err := service.ValidateAccessToken(token)
		require.NoError(t, err)
		assert.True(t, claims.SuperAdmin)

		actor, err := claims.Actor()
		require.NoError(t, err)
		assert.True(t, actor.SuperAdmin)
		assert.Nil(t, actor.OutletID)
	})

	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret:                "another-secret-entirely-0123456789",
			AccessTokenExpiration: time.Hour,
			Issuer:                "retailpos-test",
		})
		token, _, err := other.GenerateAccessToken(GenerateTokenInput{
			UserID:  userID,
			OwnerID: ownerID,
		})
		require.NoError(t, err)

		_, err = service.ValidateAccessToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		expired := NewJWTService(config.JWTConfig{
			Secret:                "test-secret-at-least-32-characters!!",
			AccessTokenExpiration: -time.Minute,
			Issuer:                "retailpos-test",
		})
		token, _, err := expired.GenerateAccessToken(GenerateTokenInput{
			UserID:  userID,
			OwnerID: ownerID,
		})
		require.NoError(t, err)

		_, err = service.ValidateAccessToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := service.ValidateAccessToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
