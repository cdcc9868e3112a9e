package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/bbh-hotel/lavanderia/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func TestGenerateAndParse_ConRole(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, 7, "camareira", "staff", "lavanderia-test", 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "camareira", claims.Username)
	assert.Equal(t, "staff", claims.Role)
	assert.Equal(t, "lavanderia-test", claims.Issuer)
	assert.NotEmpty(t, claims.ID, "cada token lleva jti")
}

func TestGenerate_UniqueJTI(t *testing.T) {
	a, err := pkgjwt.Generate(testSecret, 1, "admin", "admin", "x", 60)
	require.NoError(t, err)
	b, err := pkgjwt.Generate(testSecret, 1, "admin", "admin", "x", 60)
	require.NoError(t, err)

	ca, err := pkgjwt.Parse(testSecret, a)
	require.NoError(t, err)
	cb, err := pkgjwt.Parse(testSecret, b)
	require.NoError(t, err)
	assert.NotEqual(t, ca.ID, cb.ID)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, 1, "admin", "admin", "x", -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, 1, "admin", "admin", "x", 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}

func TestSecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", 1, "admin", "admin", "x", 60)
	assert.Error(t, err)
	_, err = pkgjwt.Parse("", "a.b.c")
	assert.Error(t, err)
}
