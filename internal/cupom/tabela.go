package cupom

import (
	"sort"
	"strings"
)

// Coluna identifica uma coluna ordenável da tabela de cupons.
type Coluna string

const (
	ColunaNumeroCupom     Coluna = "numeroCupom"
	ColunaTransportadora  Coluna = "transportadora"
	ColunaTelefone        Coluna = "telefone"
	ColunaEstabelecimento Coluna = "estabelecimento"
	ColunaCNPJ            Coluna = "cnpj"
	ColunaData            Coluna = "data"
	ColunaValorTotal      Coluna = "valorTotal"
	ColunaReembolso       Coluna = "reembolso"
	ColunaFormaPagamento  Coluna = "formaPagamento"
	ColunaStatus          Coluna = "status"
)

// menorQue compara dois cupons pela coluna, em ordem ascendente.
func menorQue(a, b CupomFiscal, col Coluna) bool {
	switch col {
	case ColunaNumeroCupom:
		return a.InformacoesTransacao.NumeroCupom < b.InformacoesTransacao.NumeroCupom
	case ColunaTransportadora:
		return strings.ToLower(a.DadosMotorista.Nome) < strings.ToLower(b.DadosMotorista.Nome)
	case ColunaTelefone:
		return a.DadosMotorista.Celular < b.DadosMotorista.Celular
	case ColunaEstabelecimento:
		return strings.ToLower(a.DadosEstabelecimento.RazaoSocial) < strings.ToLower(b.DadosEstabelecimento.RazaoSocial)
	case ColunaCNPJ:
		return a.DadosEstabelecimento.CNPJ < b.DadosEstabelecimento.CNPJ
	case ColunaData:
		if !a.InformacoesTransacao.Data.Equal(b.InformacoesTransacao.Data) {
			return a.InformacoesTransacao.Data.Before(b.InformacoesTransacao.Data)
		}
		return a.InformacoesTransacao.Hora < b.InformacoesTransacao.Hora
	case ColunaValorTotal:
		return a.Totais.ValorTotal < b.Totais.ValorTotal
	case ColunaReembolso:
		return ValorReembolso(a) < ValorReembolso(b)
	case ColunaFormaPagamento:
		return strings.ToLower(a.Totais.FormaPagamento) < strings.ToLower(b.Totais.FormaPagamento)
	case ColunaStatus:
		return a.Status < b.Status
	}
	return false
}

// OrdenarPor devolve uma cópia ordenada pela coluna. A ordenação é estável:
// empates preservam a ordem de chegada.
func OrdenarPor(cupons []CupomFiscal, col Coluna, descendente bool) []CupomFiscal {
	ordenados := make([]CupomFiscal, len(cupons))
	copy(ordenados, cupons)
	if col == "" {
		return ordenados
	}
	sort.SliceStable(ordenados, func(i, j int) bool {
		if descendente {
			return menorQue(ordenados[j], ordenados[i], col)
		}
		return menorQue(ordenados[i], ordenados[j], col)
	})
	return ordenados
}

// Tabela guarda o estado de visão da listagem: no máximo uma coluna ordenada
// por vez e o conjunto de linhas selecionadas, sempre restrito ao
// subconjunto visível (filtrado).
type Tabela struct {
	coluna       Coluna
	descendente  bool
	selecionados map[string]bool
}

func NovaTabela() *Tabela {
	return &Tabela{selecionados: make(map[string]bool)}
}

// AlternarOrdenacao cicla ascendente → descendente na mesma coluna; trocar
// de coluna recomeça em ascendente.
func (t *Tabela) AlternarOrdenacao(col Coluna) {
	if t.coluna == col {
		t.descendente = !t.descendente
		return
	}
	t.coluna = col
	t.descendente = false
}

// Ordenacao expõe a coluna ativa e a direção atual.
func (t *Tabela) Ordenacao() (Coluna, bool) {
	return t.coluna, t.descendente
}

// Ordenar aplica o estado de ordenação corrente sobre as linhas visíveis.
func (t *Tabela) Ordenar(visiveis []CupomFiscal) []CupomFiscal {
	return OrdenarPor(visiveis, t.coluna, t.descendente)
}

// AlternarSelecao liga/desliga a seleção de uma linha.
func (t *Tabela) AlternarSelecao(id string) {
	if t.selecionados[id] {
		delete(t.selecionados, id)
		return
	}
	t.selecionados[id] = true
}

// AlternarSelecaoVisiveis seleciona todas as linhas visíveis; se todas já
// estiverem selecionadas, limpa a seleção delas. Linhas fora do filtro nunca
// entram.
func (t *Tabela) AlternarSelecaoVisiveis(visiveis []CupomFiscal) {
	todas := len(visiveis) > 0
	for _, c := range visiveis {
		if !t.selecionados[c.ID] {
			todas = false
			break
		}
	}
	for _, c := range visiveis {
		if todas {
			delete(t.selecionados, c.ID)
		} else {
			t.selecionados[c.ID] = true
		}
	}
}

// LimparSelecao esvazia o conjunto sem nenhum outro efeito.
func (t *Tabela) LimparSelecao() {
	t.selecionados = make(map[string]bool)
}

// Selecionados devolve os cupons selecionados dentre os visíveis, sem
// repetir ids (um id repetido na listagem conta uma vez só).
func (t *Tabela) Selecionados(visiveis []CupomFiscal) []CupomFiscal {
	vistos := make(map[string]bool, len(t.selecionados))
	var escolhidos []CupomFiscal
	for _, c := range visiveis {
		if t.selecionados[c.ID] && !vistos[c.ID] {
			vistos[c.ID] = true
			escolhidos = append(escolhidos, c)
		}
	}
	return escolhidos
}

// ValorTotalSelecionado soma o valor total dos cupons selecionados visíveis.
func (t *Tabela) ValorTotalSelecionado(visiveis []CupomFiscal) float64 {
	total := 0.0
	for _, c := range t.Selecionados(visiveis) {
		total += c.Totais.ValorTotal
	}
	return total
}
