package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer  = "vaultstore"
	testSignKey = "test-sign-key"
)

func TestGenerateAndValidateJWTToken(t *testing.T) {
	token, err := GenerateJWTToken(testIssuer, "addr1", time.Hour, testSignKey)
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)
	assert.Equal(t, "addr1", token.Space)

	parsed, err := ValidateAndParseJWTToken(token.SignedString, testSignKey, testIssuer)
	require.NoError(t, err)
	assert.Equal(t, "addr1", parsed.Space)
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	_, err := GenerateJWTToken("", "addr1", time.Hour, testSignKey)
	require.Error(t, err)
	_, err = GenerateJWTToken(testIssuer, "", time.Hour, testSignKey)
	require.Error(t, err)
	_, err = GenerateJWTToken(testIssuer, "addr1", 0, testSignKey)
	require.Error(t, err)
	_, err = GenerateJWTToken(testIssuer, "addr1", time.Hour, "")
	require.Error(t, err)
}

func TestValidateAndParseJWTToken_WrongKey(t *testing.T) {
	token, err := GenerateJWTToken(testIssuer, "addr1", time.Hour, testSignKey)
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(token.SignedString, "other-key", testIssuer)
	require.Error(t, err)
}

func TestValidateAndParseJWTToken_WrongIssuer(t *testing.T) {
	token, err := GenerateJWTToken("someone-else", "addr1", time.Hour, testSignKey)
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(token.SignedString, testSignKey, testIssuer)
	require.Error(t, err)
}

func TestValidateAndParseJWTToken_Expired(t *testing.T) {
	token, err := GenerateJWTToken(testIssuer, "addr1", -time.Minute, testSignKey)
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(token.SignedString, testSignKey, testIssuer)
	require.Error(t, err)
}

func TestParseBearerToken(t *testing.T) {
	token, err := ParseBearerToken("Bearer abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	_, err = ParseBearerToken("abc123")
	require.Error(t, err)
	_, err = ParseBearerToken("Bearer ")
	require.Error(t, err)
	_, err = ParseBearerToken("")
	require.Error(t, err)
}

func TestSecretsEqual(t *testing.T) {
	assert.True(t, SecretsEqual("s3cret", "s3cret"))
	assert.False(t, SecretsEqual("s3cret", "S3cret"))
	assert.False(t, SecretsEqual("s3cret", ""))
}
