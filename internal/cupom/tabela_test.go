package cupom_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rodrigolessa1980/Cupom-Transporte/internal/cupom"
)

func cuponsDeExemplo() []cupom.CupomFiscal {
	a := novoCupom("1", "11.111.111/0001-11", "CF-2", base)
	a.Totais.ValorTotal = 50
	b := novoCupom("2", "22.222.222/0001-22", "CF-1", base.Add(time.Hour))
	b.Totais.ValorTotal = 200
	c := novoCupom("3", "33.333.333/0001-33", "CF-3", base.Add(2*time.Hour))
	c.Totais.ValorTotal = 120
	return []cupom.CupomFiscal{a, b, c}
}

func TestAlternarOrdenacao(t *testing.T) {
	tab := cupom.NovaTabela()

	tab.AlternarOrdenacao(cupom.ColunaValorTotal)
	col, desc := tab.Ordenacao()
	assert.Equal(t, cupom.ColunaValorTotal, col)
	assert.False(t, desc)

	tab.AlternarOrdenacao(cupom.ColunaValorTotal)
	_, desc = tab.Ordenacao()
	assert.True(t, desc, "mesma coluna inverte a direção")

	tab.AlternarOrdenacao(cupom.ColunaData)
	col, desc = tab.Ordenacao()
	assert.Equal(t, cupom.ColunaData, col)
	assert.False(t, desc, "coluna nova recomeça ascendente")
}

func TestOrdenarPor(t *testing.T) {
	cupons := cuponsDeExemplo()

	asc := cupom.OrdenarPor(cupons, cupom.ColunaValorTotal, false)
	assert.Equal(t, []string{"1", "3", "2"}, ids(asc))

	desc := cupom.OrdenarPor(cupons, cupom.ColunaValorTotal, true)
	assert.Equal(t, []string{"2", "3", "1"}, ids(desc))

	// a fatia original não muda
	assert.Equal(t, []string{"1", "2", "3"}, ids(cupons))
}

func ids(cupons []cupom.CupomFiscal) []string {
	out := make([]string, len(cupons))
	for i, c := range cupons {
		out[i] = c.ID
	}
	return out
}

func TestSelecaoRestritaAosVisiveis(t *testing.T) {
	cupons := cuponsDeExemplo()
	tab := cupom.NovaTabela()

	tab.AlternarSelecao("1")
	tab.AlternarSelecao("2")

	// com o filtro escondendo o cupom 2, a seleção dele não conta
	visiveis := cupons[:1]
	selecionados := tab.Selecionados(visiveis)
	require.Len(t, selecionados, 1)
	assert.Equal(t, "1", selecionados[0].ID)
	assert.InDelta(t, 50.0, tab.ValorTotalSelecionado(visiveis), 1e-9)

	// filtro removido, os dois voltam
	assert.Len(t, tab.Selecionados(cupons), 2)
	assert.InDelta(t, 250.0, tab.ValorTotalSelecionado(cupons), 1e-9)
}

func TestAlternarSelecaoVisiveis(t *testing.T) {
	cupons := cuponsDeExemplo()
	tab := cupom.NovaTabela()

	tab.AlternarSelecaoVisiveis(cupons)
	assert.Len(t, tab.Selecionados(cupons), 3)

	// todas já selecionadas: a mesma operação limpa
	tab.AlternarSelecaoVisiveis(cupons)
	assert.Empty(t, tab.Selecionados(cupons))

	// seleção parcial vira seleção total
	tab.AlternarSelecao("1")
	tab.AlternarSelecaoVisiveis(cupons)
	assert.Len(t, tab.Selecionados(cupons), 3)

	tab.LimparSelecao()
	assert.Empty(t, tab.Selecionados(cupons))
}

func TestSelecionadosNaoRepeteID(t *testing.T) {
	c := novoCupom("1", "11.111.111/0001-11", "CF-1", base)
	c.Totais.ValorTotal = 80
	visiveis := []cupom.CupomFiscal{c, c}

	tab := cupom.NovaTabela()
	tab.AlternarSelecao("1")

	assert.Len(t, tab.Selecionados(visiveis), 1)
	assert.InDelta(t, 80.0, tab.ValorTotalSelecionado(visiveis), 1e-9)
}
