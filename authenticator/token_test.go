package authenticator

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	tokens, err := NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)

	raw, err := tokens.Issue("7", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := tokens.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, "7", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	tokens, err := NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)

	raw, err := tokens.Issue("7", "user")
	require.NoError(t, err)

	// Flip a character in the signature segment
	parts := strings.Split(raw, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = tokens.Verify(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer, err := NewTokenManager("secret-one", time.Hour)
	require.NoError(t, err)
	verifier, err := NewTokenManager("secret-two", time.Hour)
	require.NoError(t, err)

	raw, err := issuer.Issue("7", "user")
	require.NoError(t, err)

	_, err = verifier.Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	// Issue with a TTL in the past so the token arrives already expired
	expired := &TokenManager{secret: []byte("test-secret"), ttl: -time.Minute}

	raw, err := expired.Issue("7", "user")
	require.NoError(t, err)

	tokens, err := NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)

	_, err = tokens.Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	tokens, err := NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)

	_, err = tokens.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewTokenManagerRequiresSecret(t *testing.T) {
	_, err := NewTokenManager("", time.Hour)
	assert.Error(t, err)
}
