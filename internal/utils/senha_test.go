package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rodrigolessa1980/Cupom-Transporte/internal/utils"
)

func TestVerificarSenha(t *testing.T) {
	hash, err := utils.HashSenha("segredo123")
	require.NoError(t, err)
	require.NotEqual(t, "segredo123", hash)

	assert.True(t, utils.VerificarSenha(hash, "segredo123"))
	assert.False(t, utils.VerificarSenha(hash, "outra"))

	// cadastros antigos no webhook guardam a senha em claro
	assert.True(t, utils.VerificarSenha("segredo123", "segredo123"))
	assert.False(t, utils.VerificarSenha("segredo123", "Segredo123"))
}

func TestGerarSenhaTemporaria(t *testing.T) {
	a, err := utils.GerarSenhaTemporaria()
	require.NoError(t, err)
	b, err := utils.GerarSenhaTemporaria()
	require.NoError(t, err)

	assert.Len(t, a, 12)
	assert.NotEqual(t, a, b)
}
