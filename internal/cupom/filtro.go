package cupom

import (
	"strings"
	"time"
)

// StatusTodos é o valor sentinela que desliga o predicado de status.
const StatusTodos = "todos"

// Filtro é a conjunção de predicados aplicada sobre a coleção completa.
// Campos zerados desativam o predicado correspondente.
type Filtro struct {
	Busca      string
	DataInicio *time.Time
	DataFim    *time.Time
	Status     string
	Motorista  string
	CNPJ       string
}

// somenteData descarta o componente de hora para que os limites do período
// sejam inclusivos no nível de dia.
func somenteData(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func contemInsensivel(campo, busca string) bool {
	return strings.Contains(strings.ToLower(campo), strings.ToLower(busca))
}

// casaBusca procura o texto livre em número do cupom, CNPJ, razão social,
// celular do motorista e observações.
func casaBusca(c CupomFiscal, busca string) bool {
	return contemInsensivel(c.InformacoesTransacao.NumeroCupom, busca) ||
		contemInsensivel(c.DadosEstabelecimento.CNPJ, busca) ||
		contemInsensivel(c.DadosEstabelecimento.RazaoSocial, busca) ||
		contemInsensivel(c.DadosMotorista.Celular, busca) ||
		contemInsensivel(c.Observacoes, busca)
}

// Casa avalia todos os predicados ativos (semântica E).
func (f Filtro) Casa(c CupomFiscal) bool {
	if busca := strings.TrimSpace(f.Busca); busca != "" && !casaBusca(c, busca) {
		return false
	}

	data := somenteData(c.InformacoesTransacao.Data)
	if f.DataInicio != nil && data.Before(somenteData(*f.DataInicio)) {
		return false
	}
	if f.DataFim != nil && data.After(somenteData(*f.DataFim)) {
		return false
	}

	if f.Status != "" && f.Status != StatusTodos && c.Status != Status(f.Status) {
		return false
	}
	if f.Motorista != "" && !contemInsensivel(c.DadosMotorista.Celular, f.Motorista) {
		return false
	}
	if f.CNPJ != "" && !contemInsensivel(c.DadosEstabelecimento.CNPJ, f.CNPJ) {
		return false
	}
	return true
}

// Aplicar devolve o subconjunto visível, na ordem original da coleção.
func (f Filtro) Aplicar(cupons []CupomFiscal) []CupomFiscal {
	visiveis := make([]CupomFiscal, 0, len(cupons))
	for _, c := range cupons {
		if f.Casa(c) {
			visiveis = append(visiveis, c)
		}
	}
	return visiveis
}
