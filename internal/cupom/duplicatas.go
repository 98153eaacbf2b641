package cupom

import "sort"

// ChaveDuplicata monta a chave natural composta de um cupom. A comparação é
// por igualdade estrita de string: CNPJ e número entram como foram digitados.
func ChaveDuplicata(c CupomFiscal) string {
	return c.DadosEstabelecimento.CNPJ + "-" + c.InformacoesTransacao.NumeroCupom
}

// DetectarDuplicatas agrupa a coleção inteira pela chave composta e devolve
// apenas os grupos com 2+ membros, cada grupo ordenado por criadoEm (empate
// preserva a ordem original da coleção).
func DetectarDuplicatas(cupons []CupomFiscal) map[string][]CupomFiscal {
	grupos := make(map[string][]CupomFiscal)
	for _, c := range cupons {
		chave := ChaveDuplicata(c)
		grupos[chave] = append(grupos[chave], c)
	}

	for chave, grupo := range grupos {
		if len(grupo) <= 1 {
			delete(grupos, chave)
			continue
		}
		sort.SliceStable(grupo, func(i, j int) bool {
			return grupo[i].CriadoEm.Before(grupo[j].CriadoEm)
		})
	}
	return grupos
}

// InfoDuplicata classifica um cupom dentro do seu grupo de duplicatas.
type InfoDuplicata struct {
	Duplicado       bool `json:"isDuplicado"`
	Primeiro        bool `json:"isPrimeiro"`
	TotalDuplicatas int  `json:"totalDuplicatas"`
}

// VerificarDuplicado responde, para um cupom contra a coleção inteira: ele é
// duplicado; se for, é o membro mais antigo (primeiro) ou uma cópia; e
// quantos cupons compartilham a chave.
func VerificarDuplicado(c CupomFiscal, todos []CupomFiscal) InfoDuplicata {
	chave := ChaveDuplicata(c)

	var mesmos []CupomFiscal
	for _, outro := range todos {
		if ChaveDuplicata(outro) == chave {
			mesmos = append(mesmos, outro)
		}
	}
	if len(mesmos) <= 1 {
		return InfoDuplicata{}
	}

	sort.SliceStable(mesmos, func(i, j int) bool {
		return mesmos[i].CriadoEm.Before(mesmos[j].CriadoEm)
	})

	return InfoDuplicata{
		Duplicado:       true,
		Primeiro:        mesmos[0].ID == c.ID,
		TotalDuplicatas: len(mesmos),
	}
}
