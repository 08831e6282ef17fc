package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *Manager {
	return NewManager("access-secret", "refresh-secret", time.Minute, time.Hour)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := newTestManager()
	userID := uuid.New()

	token, err := m.GenerateAccessToken(userID, "tanaka@example.com", "manager")
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "tanaka@example.com", claims.Email)
	assert.Equal(t, "manager", claims.Role)
}

func TestRefreshTokenCarriesSession(t *testing.T) {
	m := newTestManager()
	userID, sessionID := uuid.New(), uuid.New()

	token, err := m.GenerateRefreshToken(userID, sessionID)
	require.NoError(t, err)

	claims, err := m.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, sessionID, claims.SessionID)
}

func TestTokensAreNotInterchangeable(t *testing.T) {
	m := newTestManager()

	refresh, err := m.GenerateRefreshToken(uuid.New(), uuid.New())
	require.NoError(t, err)
	_, err = m.ValidateAccessToken(refresh)
	assert.Error(t, err)

	access, err := m.GenerateAccessToken(uuid.New(), "a@example.com", "member")
	require.NoError(t, err)
	_, err = m.ValidateRefreshToken(access)
	assert.Error(t, err)
}

func TestExpiredAccessToken(t *testing.T) {
	m := NewManager("access-secret", "refresh-secret", -time.Minute, time.Hour)

	token, err := m.GenerateAccessToken(uuid.New(), "a@example.com", "member")
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestHashToken(t *testing.T) {
	m := newTestManager()

	a, err := m.HashToken("token")
	require.NoError(t, err)
	b, err := m.HashToken("token")
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)

	_, err = m.HashToken("")
	assert.Error(t, err)
}
