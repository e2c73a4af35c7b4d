package auth

import (
	"testing"
	"time"

	"github.com/guncedev/gunce/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func TestGenerateAndVerify(t *testing.T) {
	token, err := GenerateToken(secret, time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.NoError(t, VerifyToken(token, secret))
}

func TestVerify_WrongSecret(t *testing.T) {
	token, err := GenerateToken(secret, time.Minute)
	require.NoError(t, err)

	assert.ErrorIs(t, VerifyToken(token, []byte("other-secret")), common.ErrInvalidToken)
}

func TestVerify_Expired(t *testing.T) {
	token, err := GenerateToken(secret, -time.Minute)
	require.NoError(t, err)

	assert.ErrorIs(t, VerifyToken(token, secret), common.ErrInvalidToken)
}

func TestVerify_Garbage(t *testing.T) {
	assert.ErrorIs(t, VerifyToken("not.a.token", secret), common.ErrInvalidToken)
}
