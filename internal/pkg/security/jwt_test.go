package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken("M1A2B3C4")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "M1A2B3C4", claims.MemberID)
	assert.Equal(t, "Trellis", claims.Issuer)
}

func TestValidateTokenRejectsTampered(t *testing.T) {
	token, err := GenerateToken("M1A2B3C4")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + ".AAAA" + parts[2][4:]

	_, err = ValidateToken(tampered)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := ValidateToken("not-a-token")
	assert.Error(t, err)

	_, err = ValidateToken("")
	assert.Error(t, err)
}

func TestExtractSignature(t *testing.T) {
	token, err := GenerateToken("M1A2B3C4")
	require.NoError(t, err)

	signature, err := ExtractSignature(token)
	require.NoError(t, err)
	assert.Equal(t, strings.Split(token, ".")[2], signature)

	_, err = ExtractSignature("two.parts")
	assert.Error(t, err)
}
