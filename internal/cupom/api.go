package cupom

import (
	"context"
	"errors"
)

// ErrIndisponivel sinaliza falha de rede ou timeout ao falar com o webhook.
// A listagem degrada para coleção vazia em modo offline; nunca derruba o
// serviço.
var ErrIndisponivel = errors.New("serviço de cupons indisponível")

// API é a fatia do colaborador remoto (webhook trans_cupom) que o domínio de
// cupons consome. A implementação concreta vive em internal/webhook.
type API interface {
	ListarCupons(ctx context.Context) ([]CupomFiscal, error)
	CriarCupom(ctx context.Context, in *CupomFiscalInput) (*CupomFiscal, error)
	AtualizarCupom(ctx context.Context, id string, in *CupomFiscalInput) (*CupomFiscal, error)
	ExcluirCupom(ctx context.Context, id string) error
	AtualizarStatusCupom(ctx context.Context, id string, novo Status) (*CupomFiscal, error)
}

// AtualizadorStatus é o subconjunto da API usado pela transição de status e
// pela baixa em lote.
type AtualizadorStatus interface {
	AtualizarStatusCupom(ctx context.Context, id string, novo Status) (*CupomFiscal, error)
}
