package cupom_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rodrigolessa1980/Cupom-Transporte/internal/cupom"
)

func TestFiltroBuscaLivre(t *testing.T) {
	c := novoCupom("1", "45.170.289/0001-25", "CF-0042", base)
	c.Observacoes = "Abastecimento rota Sul"

	tests := []struct {
		name  string
		busca string
		casa  bool
	}{
		{name: "número do cupom", busca: "cf-0042", casa: true},
		{name: "cnpj parcial", busca: "45.170", casa: true},
		{name: "razão social sem caixa", busca: "posto estrela", casa: true},
		{name: "celular do motorista", busca: "11987", casa: true},
		{name: "observações", busca: "rota sul", casa: true},
		{name: "sem correspondência", busca: "inexistente", casa: false},
		{name: "busca vazia liga tudo", busca: "", casa: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := cupom.Filtro{Busca: tt.busca}
			assert.Equal(t, tt.casa, f.Casa(c))
		})
	}
}

func TestFiltroPeriodoIgnoraHora(t *testing.T) {
	// Cupom emitido às 23h do dia limite ainda pertence ao período.
	c := novoCupom("1", "45.170.289/0001-25", "CF-1",
		time.Date(2024, 6, 10, 23, 30, 0, 0, time.UTC))

	inicio := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	fim := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	f := cupom.Filtro{DataInicio: &inicio, DataFim: &fim}
	assert.True(t, f.Casa(c))

	anterior := time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC)
	f = cupom.Filtro{DataInicio: &anterior}
	assert.False(t, f.Casa(c))
}

func TestFiltroStatusETelefone(t *testing.T) {
	c := novoCupom("1", "45.170.289/0001-25", "CF-1", base)
	c.Status = cupom.StatusPago

	assert.True(t, cupom.Filtro{Status: "PAGO"}.Casa(c))
	assert.True(t, cupom.Filtro{Status: cupom.StatusTodos}.Casa(c), "sentinela desliga o predicado")
	assert.False(t, cupom.Filtro{Status: "Pendente"}.Casa(c))
	assert.True(t, cupom.Filtro{Motorista: "98765"}.Casa(c))
	assert.False(t, cupom.Filtro{Motorista: "99999"}.Casa(c))
}

func TestFiltroConjuncao(t *testing.T) {
	c := novoCupom("1", "45.170.289/0001-25", "CF-1", base)

	// todos os predicados ativos precisam casar ao mesmo tempo
	f := cupom.Filtro{Busca: "cf-1", CNPJ: "45.170", Status: "Pendente"}
	assert.True(t, f.Casa(c))

	f.CNPJ = "99.999"
	assert.False(t, f.Casa(c))
}

func TestFiltroAplicarPreservaOrdem(t *testing.T) {
	cupons := []cupom.CupomFiscal{
		novoCupom("1", "45.170.289/0001-25", "CF-1", base),
		novoCupom("2", "22.222.222/0001-22", "CF-2", base),
		novoCupom("3", "45.170.289/0001-25", "CF-3", base),
	}
	visiveis := cupom.Filtro{CNPJ: "45.170"}.Aplicar(cupons)
	assert.Len(t, visiveis, 2)
	assert.Equal(t, "1", visiveis[0].ID)
	assert.Equal(t, "3", visiveis[1].ID)
}
