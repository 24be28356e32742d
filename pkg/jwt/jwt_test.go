package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/recepciones-api/pkg/jwt"
)

func TestGenerateParse(t *testing.T) {
	token, err := jwt.Generate("s3cret", "user-1", "Store Supervisor", "recepciones", 5)
	require.NoError(t, err)

	claims, err := jwt.Parse("s3cret", token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "Store Supervisor", claims.Role)
	assert.Equal(t, "recepciones", claims.Issuer)
}

func TestParse_Rechazos(t *testing.T) {
	token, err := jwt.Generate("s3cret", "user-1", "administrador", "recepciones", 5)
	require.NoError(t, err)

	_, err = jwt.Parse("otro", token)
	assert.Error(t, err, "firma incorrecta")

	expired, err := jwt.Generate("s3cret", "user-1", "administrador", "recepciones", -1)
	require.NoError(t, err)
	_, err = jwt.Parse("s3cret", expired)
	assert.Error(t, err, "token expirado")

	_, err = jwt.Parse("", token)
	assert.Error(t, err)

	_, err = jwt.Generate("", "user-1", "administrador", "recepciones", 5)
	assert.Error(t, err)
}
