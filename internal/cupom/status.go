package cupom

import (
	"context"
	"fmt"
	"sync"
)

// AplicarStatus muda o status de um cupom no sistema remoto e, somente após
// confirmação, troca a entrada local pela representação devolvida pelo
// servidor (o remoto é a fonte de verdade para campos derivados). Em caso de
// falha a coleção local fica intacta e o erro sobe para o chamador; não há
// retry automático. Qualquer transição entre os três status é permitida.
func AplicarStatus(ctx context.Context, api AtualizadorStatus, store *Store, id string, novo Status) (*CupomFiscal, error) {
	if !StatusValido(novo) {
		return nil, fmt.Errorf("status %q inválido", novo)
	}

	confirmado, err := api.AtualizarStatusCupom(ctx, id, novo)
	if err != nil {
		return nil, fmt.Errorf("não foi possível atualizar o status do cupom %s: %w", id, err)
	}
	store.Substituir(id, *confirmado)
	return confirmado, nil
}

// FalhaBaixa registra um cupom cuja atualização falhou dentro do lote.
type FalhaBaixa struct {
	ID   string `json:"id"`
	Erro string `json:"erro"`
}

// ResultadoBaixa relata o desfecho da baixa em lote item a item: os cupons
// confirmados como PAGO e as falhas individuais. Sucessos parciais são
// refletidos na coleção local; não há compensação de estorno.
type ResultadoBaixa struct {
	Atualizados []CupomFiscal `json:"atualizados"`
	Falhas      []FalhaBaixa  `json:"falhas"`
}

// RealizarBaixa marca cada cupom selecionado como PAGO, com uma chamada
// remota independente por cupom, todas concorrentes. Ids repetidos contam
// uma vez só.
func RealizarBaixa(ctx context.Context, api AtualizadorStatus, store *Store, ids []string) ResultadoBaixa {
	vistos := make(map[string]bool, len(ids))
	unicos := make([]string, 0, len(ids))
	for _, id := range ids {
		if !vistos[id] {
			vistos[id] = true
			unicos = append(unicos, id)
		}
	}

	type desfecho struct {
		cupom *CupomFiscal
		err   error
	}
	desfechos := make([]desfecho, len(unicos))

	var wg sync.WaitGroup
	for i, id := range unicos {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			c, err := AplicarStatus(ctx, api, store, id, StatusPago)
			desfechos[i] = desfecho{cupom: c, err: err}
		}(i, id)
	}
	wg.Wait()

	resultado := ResultadoBaixa{}
	for i, d := range desfechos {
		if d.err != nil {
			resultado.Falhas = append(resultado.Falhas, FalhaBaixa{ID: unicos[i], Erro: d.err.Error()})
			continue
		}
		resultado.Atualizados = append(resultado.Atualizados, *d.cupom)
	}
	return resultado
}
