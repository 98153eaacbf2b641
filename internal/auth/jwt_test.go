package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rodrigolessa1980/Cupom-Transporte/internal/usuario"
)

func TestGerarEValidarToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-de-teste")
	require.NoError(t, CarregarSegredo())

	token, err := GerarToken(7, usuario.PapelAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidarToken(token)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, usuario.PapelAdmin, claims.Papel)
}

func TestValidarTokenAdulterado(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-de-teste")
	require.NoError(t, CarregarSegredo())

	token, err := GerarToken(7, usuario.PapelOperador)
	require.NoError(t, err)

	_, err = ValidarToken(token + "x")
	assert.Error(t, err)

	_, err = ValidarToken("nem-um-jwt")
	assert.Error(t, err)
}

func TestCarregarSegredoAusente(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	assert.Error(t, CarregarSegredo())
}
