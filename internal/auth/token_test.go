package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService(t *testing.T) {
	ts := NewTokenService("test-secret", 24*60*60)

	t.Run("round trip preserves entity claims", func(t *testing.T) {
		entityID := uuid.New()

		tokenStr, err := ts.GenerateAccessToken(entityID, EntityTypeUser)
		require.NoError(t, err)
		require.NotEmpty(t, tokenStr)

		isValid, claims, err := ts.ValidateAccessToken(tokenStr)
		require.NoError(t, err)
		require.True(t, isValid)
		assert.Equal(t, entityID.String(), claims.EntityID)
		assert.Equal(t, EntityTypeUser, claims.EntityType)
	})

	t.Run("expired token is invalid", func(t *testing.T) {
		expiredTS := NewTokenService("test-secret", -60)

		tokenStr, err := expiredTS.GenerateAccessToken(uuid.New(), EntityTypeUser)
		require.NoError(t, err)

		isValid, claims, err := expiredTS.ValidateAccessToken(tokenStr)
		require.NoError(t, err)
		assert.False(t, isValid)
		assert.Nil(t, claims)
	})

	t.Run("token signed with another secret is invalid", func(t *testing.T) {
		otherTS := NewTokenService("another-secret", 24*60*60)

		tokenStr, err := otherTS.GenerateAccessToken(uuid.New(), EntityTypeAdmin)
		require.NoError(t, err)

		isValid, _, err := ts.ValidateAccessToken(tokenStr)
		require.NoError(t, err)
		assert.False(t, isValid)
	})

	t.Run("garbage token is invalid", func(t *testing.T) {
		isValid, claims, err := ts.ValidateAccessToken("not.a.token")
		require.NoError(t, err)
		assert.False(t, isValid)
		assert.Nil(t, claims)
	})
}
