package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParse_RoundTrip(t *testing.T) {
	token, err := Generate("secreto", "user-1", "notario", "notaria-api", 10)
	require.NoError(t, err)

	uid, role, err := Parse("secreto", token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", uid)
	assert.Equal(t, "notario", role)
}

func TestParse_TokenExpirado(t *testing.T) {
	token, err := Generate("secreto", "user-1", "admin", "notaria-api", -5)
	require.NoError(t, err)

	_, _, err = Parse("secreto", token)
	assert.Error(t, err)
}

func TestParse_SecretIncorrecto(t *testing.T) {
	token, err := Generate("secreto", "user-1", "admin", "notaria-api", 10)
	require.NoError(t, err)

	_, _, err = Parse("otro", token)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := Generate("", "user-1", "admin", "notaria-api", 10)
	assert.Error(t, err)
}
