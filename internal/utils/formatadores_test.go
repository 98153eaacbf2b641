package utils_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rodrigolessa1980/Cupom-Transporte/internal/utils"
)

func TestValidarCNPJ(t *testing.T) {
	tests := []struct {
		name   string
		cnpj   string
		valido bool
	}{
		{name: "válido com máscara", cnpj: "45.170.289/0001-25", valido: true},
		{name: "válido sem máscara", cnpj: "45170289000125", valido: true},
		{name: "dígito verificador errado", cnpj: "45.170.289/0001-24", valido: false},
		{name: "sequência repetida", cnpj: "11.111.111/1111-11", valido: false},
		{name: "tamanho errado", cnpj: "4517028900012", valido: false},
		{name: "vazio", cnpj: "", valido: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valido, utils.ValidarCNPJ(tt.cnpj))
		})
	}
}

func TestValidarCPF(t *testing.T) {
	tests := []struct {
		name   string
		cpf    string
		valido bool
	}{
		{name: "válido com máscara", cpf: "529.982.247-25", valido: true},
		{name: "válido sem máscara", cpf: "52998224725", valido: true},
		{name: "dígito verificador errado", cpf: "529.982.247-24", valido: false},
		{name: "sequência repetida", cpf: "111.111.111-11", valido: false},
		{name: "tamanho errado", cpf: "5299822472", valido: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valido, utils.ValidarCPF(tt.cpf))
		})
	}
}

func TestFormatadores(t *testing.T) {
	assert.Equal(t, "45.170.289/0001-25", utils.FormatarCNPJ("45170289000125"))
	assert.Equal(t, "4517028", utils.FormatarCNPJ("4517028"), "entrada parcial volta inalterada")
	assert.Equal(t, "529.982.247-25", utils.FormatarCPF("52998224725"))
	assert.Equal(t, "(11) 98765-4321", utils.FormatarTelefone("11987654321"))
	assert.Equal(t, "(11) 3210-9876", utils.FormatarTelefone("1132109876"))
	assert.Equal(t, "123", utils.FormatarTelefone("123"))
	assert.Equal(t, "12345", utils.ApenasDigitos("a1b2c3d4e5"))
	assert.Equal(t, "25/12/2024", utils.FormatarData(time.Date(2024, 12, 25, 10, 30, 0, 0, time.UTC)))
}

func TestFormatarMoeda(t *testing.T) {
	assert.Equal(t, "R$ 1.234,56", utils.FormatarMoeda(1234.56))
	assert.Equal(t, "R$ 0,00", utils.FormatarMoeda(0))
}
