package motorista_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rodrigolessa1980/Cupom-Transporte/internal/motorista"
)

func TestPorTelefone(t *testing.T) {
	motoristas := []motorista.Motorista{
		{ID: "1", Nome: "Carlos", Telefone: "(11) 98765-4321"},
		{ID: "2", Nome: "Ana", Telefone: "11912345678"},
	}

	encontrado := motorista.PorTelefone(motoristas, "11987654321")
	require.NotNil(t, encontrado)
	assert.Equal(t, "1", encontrado.ID, "máscara não atrapalha a comparação")

	encontrado = motorista.PorTelefone(motoristas, "(11) 91234-5678")
	require.NotNil(t, encontrado)
	assert.Equal(t, "2", encontrado.ID)

	assert.Nil(t, motorista.PorTelefone(motoristas, "11900000000"))
	assert.Nil(t, motorista.PorTelefone(motoristas, ""))
}

func TestMesclarServidorPrevalece(t *testing.T) {
	servidor := []motorista.Motorista{
		{ID: "1", Nome: "Carlos Silva", Telefone: "11987654321"},
	}
	locais := []motorista.Motorista{
		{ID: "1", Nome: "Carlos", Telefone: "11900000000"},
		{ID: "c0ffee00-0000-0000-0000-000000000001", Nome: "Ana", Telefone: "11912345678"},
	}

	mesclados := motorista.Mesclar(servidor, locais)
	require.Len(t, mesclados, 2)

	porID := make(map[string]motorista.Motorista)
	for _, m := range mesclados {
		porID[m.ID] = m
	}
	assert.Equal(t, "Carlos Silva", porID["1"].Nome, "colisão de id fica com a versão do servidor")
	assert.Equal(t, "Ana", porID["c0ffee00-0000-0000-0000-000000000001"].Nome,
		"registro local ainda não sincronizado sobrevive")
}

func TestMesclarOrdenaPorNome(t *testing.T) {
	mesclados := motorista.Mesclar(
		[]motorista.Motorista{{ID: "2", Nome: "Zeca"}},
		[]motorista.Motorista{{ID: "a", Nome: "Ana"}},
	)
	require.Len(t, mesclados, 2)
	assert.Equal(t, "Ana", mesclados[0].Nome)
	assert.Equal(t, "Zeca", mesclados[1].Nome)
}

func TestNumerico(t *testing.T) {
	assert.True(t, motorista.Motorista{ID: "42"}.Numerico())
	assert.False(t, motorista.Motorista{ID: "c0ffee00"}.Numerico())
}
