package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshlink/backend/internal/infrastructure/config"
)

func newTestService(expiration time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-that-is-long-enough",
		AccessTokenExpiration: expiration,
		Issuer:                "freshlink-test",
	})
}

func TestJWTService_GenerateToken(t *testing.T) {
	service := newTestService(15 * time.Minute)

	t.Run("should generate a valid session token", func(t *testing.T) {
		buyerID := uuid.New()

		token, err := service.GenerateToken(GenerateTokenInput{
			BuyerID:   buyerID,
			BuyerName: "Green Grocer Co",
			Email:     "orders@greengrocer.test",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, token.Token)
		assert.Equal(t, "Bearer", token.TokenType)
		assert.WithinDuration(t, time.Now().Add(15*time.Minute), token.ExpiresAt, 5*time.Second)

		claims, err := service.ValidateToken(token.Token)
		require.NoError(t, err)
		assert.Equal(t, buyerID.String(), claims.BuyerID)
		assert.Equal(t, "Green Grocer Co", claims.BuyerName)
		assert.Equal(t, "orders@greengrocer.test", claims.Email)
		assert.Equal(t, "freshlink-test", claims.Issuer)
	})
}

func TestJWTService_ValidateToken(t *testing.T) {
	service := newTestService(15 * time.Minute)

	t.Run("should reject a garbage token", func(t *testing.T) {
		_, err := service.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("should reject an expired token", func(t *testing.T) {
		expired := newTestService(-1 * time.Minute)
		token, err := expired.GenerateToken(GenerateTokenInput{BuyerID: uuid.New()})
		require.NoError(t, err)

		_, err = expired.ValidateToken(token.Token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("should reject a token signed with a different secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret:                "another-secret-key-that-is-long-enough",
			AccessTokenExpiration: 15 * time.Minute,
			Issuer:                "freshlink-test",
		})
		token, err := other.GenerateToken(GenerateTokenInput{BuyerID: uuid.New()})
		require.NoError(t, err)

		_, err = service.ValidateToken(token.Token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestClaims_GetBuyerUUID(t *testing.T) {
	service := newTestService(15 * time.Minute)
	buyerID := uuid.New()

	token, err := service.GenerateToken(GenerateTokenInput{BuyerID: buyerID})
	require.NoError(t, err)

	claims, err := service.ValidateToken(token.Token)
	require.NoError(t, err)

	parsed, err := claims.GetBuyerUUID()
	require.NoError(t, err)
	assert.Equal(t, buyerID, parsed)
}

func TestClaims_GetRemainingTTL(t *testing.T) {
	service := newTestService(15 * time.Minute)

	token, err := service.GenerateToken(GenerateTokenInput{BuyerID: uuid.New()})
	require.NoError(t, err)

	claims, err := service.ValidateToken(token.Token)
	require.NoError(t, err)

	ttl := claims.GetRemainingTTL()
	assert.Greater(t, ttl, 14*time.Minute)
	assert.LessOrEqual(t, ttl, 15*time.Minute)
}
