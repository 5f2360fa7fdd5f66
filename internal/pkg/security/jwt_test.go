package security

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MealHub/internal/api/config"
)

func TestMain(m *testing.M) {
	config.Cfg = &config.Config{
		JWT: config.JWTConfig{
			Secret:      "test-secret",
			Issuer:      "mealhub",
			ExpireHours: 1,
		},
	}
	os.Exit(m.Run())
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(42, "mika@example.com", "mika")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)
	assert.Equal(t, "mika@example.com", claims.Email)
	assert.Equal(t, "mika", claims.Username)
	assert.Equal(t, "mealhub", claims.Issuer)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(42, "mika@example.com", "mika")
	require.NoError(t, err)

	config.Cfg.JWT.Secret = "rotated"
	defer func() { config.Cfg.JWT.Secret = "test-secret" }()

	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	_, err := ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestExtractSignature(t *testing.T) {
	token, err := GenerateToken(42, "mika@example.com", "mika")
	require.NoError(t, err)

	signature, err := ExtractSignature(token)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(token, "."+signature))

	_, err = ExtractSignature("malformed")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("sup3rsecret")
	require.NoError(t, err)
	assert.NotEqual(t, "sup3rsecret", hash)

	assert.NoError(t, CheckPasswordHash("sup3rsecret", hash))
	assert.Error(t, CheckPasswordHash("wrong", hash))
}
