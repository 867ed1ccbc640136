package token

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chordbook/internal/apperr"
)

func TestIssueAndVerify(t *testing.T) {
	j := NewJWT("test-secret", time.Hour)

	signed, err := j.Issue("u1")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	userID, err := j.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
}

func TestVerify_WrongSecret(t *testing.T) {
	signed, err := NewJWT("secret-a", time.Hour).Issue("u1")
	require.NoError(t, err)

	_, err = NewJWT("secret-b", time.Hour).Verify(signed)
	assert.True(t, errors.Is(err, apperr.ErrUnauthenticated), "got %v", err)
}

func TestVerify_Expired(t *testing.T) {
	j := NewJWT("test-secret", -time.Minute)
	signed, err := j.Issue("u1")
	require.NoError(t, err)

	_, err = j.Verify(signed)
	assert.True(t, errors.Is(err, apperr.ErrUnauthenticated), "got %v", err)
}

func TestVerify_Garbage(t *testing.T) {
	j := NewJWT("test-secret", time.Hour)
	_, err := j.Verify("not.a.token")
	assert.True(t, errors.Is(err, apperr.ErrUnauthenticated), "got %v", err)
}
