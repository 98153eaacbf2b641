package cupom_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rodrigolessa1980/Cupom-Transporte/internal/cupom"
)

var base = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

func novoCupom(id, cnpj, numero string, criadoEm time.Time) cupom.CupomFiscal {
	return cupom.CupomFiscal{
		ID: id,
		DadosEstabelecimento: cupom.DadosEstabelecimento{
			RazaoSocial: "Posto Estrela Ltda",
			CNPJ:        cnpj,
		},
		InformacoesTransacao: cupom.InformacoesTransacao{
			NumeroCupom: numero,
			Data:        criadoEm,
		},
		DadosMotorista: cupom.DadosMotorista{Celular: "11987654321"},
		Itens: []cupom.ItemCompra{
			{Codigo: "001", Descricao: "Diesel S10", Quantidade: 1, Unidade: "UN",
				ValorUnitario: 100, ValorTotal: 100, PermiteReembolso: true},
		},
		Totais:   cupom.TotaisPagamento{ValorTotal: 100, FormaPagamento: "Dinheiro"},
		Status:   cupom.StatusPendente,
		CriadoEm: criadoEm,
	}
}

func TestDetectarDuplicatas(t *testing.T) {
	cupons := []cupom.CupomFiscal{
		novoCupom("3", "11.111.111/0001-11", "CF-1", base.Add(2*time.Hour)),
		novoCupom("1", "11.111.111/0001-11", "CF-1", base),
		novoCupom("2", "11.111.111/0001-11", "CF-1", base.Add(time.Hour)),
		novoCupom("4", "22.222.222/0001-22", "CF-1", base),
		novoCupom("5", "11.111.111/0001-11", "CF-2", base),
	}

	grupos := cupom.DetectarDuplicatas(cupons)

	require.Len(t, grupos, 1, "grupos com um único membro não aparecem")
	grupo, ok := grupos["11.111.111/0001-11-CF-1"]
	require.True(t, ok)
	require.Len(t, grupo, 3)
	assert.Equal(t, "1", grupo[0].ID, "grupo ordenado por criadoEm")
	assert.Equal(t, "2", grupo[1].ID)
	assert.Equal(t, "3", grupo[2].ID)
}

func TestDetectarDuplicatasChaveEstrita(t *testing.T) {
	// CNPJ com e sem máscara são chaves diferentes; a comparação é literal.
	cupons := []cupom.CupomFiscal{
		novoCupom("1", "11.111.111/0001-11", "CF-1", base),
		novoCupom("2", "11111111000111", "CF-1", base),
	}
	assert.Empty(t, cupom.DetectarDuplicatas(cupons))
}

func TestVerificarDuplicado(t *testing.T) {
	todos := []cupom.CupomFiscal{
		novoCupom("1", "11.111.111/0001-11", "CF-1", base),
		novoCupom("2", "11.111.111/0001-11", "CF-1", base.Add(time.Hour)),
		novoCupom("3", "22.222.222/0001-22", "CF-9", base),
	}

	primeiro := cupom.VerificarDuplicado(todos[0], todos)
	assert.True(t, primeiro.Duplicado)
	assert.True(t, primeiro.Primeiro, "membro mais antigo é o principal")
	assert.Equal(t, 2, primeiro.TotalDuplicatas)

	copia := cupom.VerificarDuplicado(todos[1], todos)
	assert.True(t, copia.Duplicado)
	assert.False(t, copia.Primeiro)
	assert.Equal(t, 2, copia.TotalDuplicatas)

	unico := cupom.VerificarDuplicado(todos[2], todos)
	assert.False(t, unico.Duplicado)
	assert.False(t, unico.Primeiro)
	assert.Zero(t, unico.TotalDuplicatas)
}

func TestValorReembolso(t *testing.T) {
	c := novoCupom("1", "11.111.111/0001-11", "CF-1", base)
	c.Itens = []cupom.ItemCompra{
		{Codigo: "001", Descricao: "Diesel S10", Quantidade: 1, Unidade: "UN",
			ValorUnitario: 10, ValorTotal: 10, PermiteReembolso: true},
		{Codigo: "002", Descricao: "Cerveja lata", Quantidade: 1, Unidade: "UN",
			ValorUnitario: 5, ValorTotal: 5, PermiteReembolso: false},
	}
	assert.InDelta(t, 10.0, cupom.ValorReembolso(c), 1e-9,
		"itens não reembolsáveis ficam de fora da soma")

	c.Itens = nil
	assert.Zero(t, cupom.ValorReembolso(c))
}
