package cupom

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// AlertaDuplicata notifica um canal externo quando um cadastro é bloqueado
// por colisão de chave (implementado em internal/notificacao).
type AlertaDuplicata interface {
	EnviarAlertaDuplicata(cnpj, numeroCupom string)
}

// Handler encapsula store, API remota e alertas
type Handler struct {
	Store   *Store
	API     API
	Alertas AlertaDuplicata
	Log     *logrus.Entry
}

// NewHandler retorna um handler inicializado
func NewHandler(store *Store, api API, alertas AlertaDuplicata, log *logrus.Entry) *Handler {
	return &Handler{Store: store, API: api, Alertas: alertas, Log: log}
}

type respostaLista struct {
	Data    []CupomFiscal `json:"data"`
	Total   int           `json:"total"`
	Offline bool          `json:"offline"`
}

type resumoDTO struct {
	TotalCupons      int     `json:"totalCupons"`
	ValorTotal       float64 `json:"valorTotal"`
	ValorReembolso   float64 `json:"valorReembolso"`
	ComObservacoes   int     `json:"comObservacoes"`
	TotalDuplicatas  int     `json:"totalDuplicatas"`
	GruposDuplicatas int     `json:"gruposDuplicatas"`
	Offline          bool    `json:"offline"`
}

type atualizarStatusRequest struct {
	Status Status `json:"status"`
}

type baixaRequest struct {
	IDs []string `json:"ids"`
}

func responderJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// CarregarCupons busca a coleção inteira do webhook e substitui o snapshot
// local. Falha de rede degrada para coleção vazia em modo offline.
func (h *Handler) CarregarCupons(ctx context.Context) error {
	cupons, err := h.API.ListarCupons(ctx)
	if err != nil {
		if errors.Is(err, ErrIndisponivel) {
			h.Log.WithError(err).Warn("API indisponível; entrando em modo offline")
			h.Store.DefinirTodos(nil)
			h.Store.DefinirOffline(true)
			return nil
		}
		return err
	}
	h.Store.DefinirTodos(cupons)
	h.Store.DefinirOffline(false)
	return nil
}

// Recarregar força uma nova carga da API ("Reconectar API").
func (h *Handler) Recarregar(w http.ResponseWriter, r *http.Request) {
	if err := h.CarregarCupons(r.Context()); err != nil {
		h.Log.WithError(err).Error("erro ao recarregar cupons")
		http.Error(w, "não foi possível carregar os cupons da API", http.StatusBadGateway)
		return
	}
	responderJSON(w, http.StatusOK, respostaLista{
		Data:    h.Store.Snapshot(),
		Total:   h.Store.Tamanho(),
		Offline: h.Store.Offline(),
	})
}

func filtroDaQuery(r *http.Request) Filtro {
	q := r.URL.Query()
	f := Filtro{
		Busca:     q.Get("q"),
		Status:    q.Get("status"),
		Motorista: q.Get("motorista"),
		CNPJ:      q.Get("cnpj"),
	}
	if v := q.Get("dataInicio"); v != "" {
		if d, err := time.Parse("2006-01-02", v); err == nil {
			f.DataInicio = &d
		}
	}
	if v := q.Get("dataFim"); v != "" {
		if d, err := time.Parse("2006-01-02", v); err == nil {
			f.DataFim = &d
		}
	}
	return f
}

// Listar devolve o subconjunto visível: filtro conjuntivo + ordenação por
// uma única coluna, tudo calculado sobre um snapshot consistente.
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	visiveis := filtroDaQuery(r).Aplicar(h.Store.Snapshot())

	if col := r.URL.Query().Get("ordenarPor"); col != "" {
		descendente := strings.EqualFold(r.URL.Query().Get("direcao"), "desc")
		visiveis = OrdenarPor(visiveis, Coluna(col), descendente)
	}

	responderJSON(w, http.StatusOK, respostaLista{
		Data:    visiveis,
		Total:   len(visiveis),
		Offline: h.Store.Offline(),
	})
}

// Resumo alimenta os cartões do painel.
func (h *Handler) Resumo(w http.ResponseWriter, r *http.Request) {
	cupons := h.Store.Snapshot()

	resumo := resumoDTO{TotalCupons: len(cupons), Offline: h.Store.Offline()}
	for _, c := range cupons {
		resumo.ValorTotal += c.Totais.ValorTotal
		resumo.ValorReembolso += ValorReembolso(c)
		if strings.TrimSpace(c.Observacoes) != "" {
			resumo.ComObservacoes++
		}
	}

	grupos := DetectarDuplicatas(cupons)
	resumo.GruposDuplicatas = len(grupos)
	for _, grupo := range grupos {
		resumo.TotalDuplicatas += len(grupo)
	}

	responderJSON(w, http.StatusOK, resumo)
}

// Duplicatas devolve os grupos de duplicatas (2+ membros por chave).
func (h *Handler) Duplicatas(w http.ResponseWriter, r *http.Request) {
	responderJSON(w, http.StatusOK, DetectarDuplicatas(h.Store.Snapshot()))
}

// BuscarPorID retorna um cupom pelo ID, anotado com a classificação de
// duplicata.
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	c, ok := h.Store.BuscarPorID(id)
	if !ok {
		http.Error(w, "cupom não encontrado", http.StatusNotFound)
		return
	}
	responderJSON(w, http.StatusOK, struct {
		CupomFiscal
		Duplicata InfoDuplicata `json:"duplicata"`
	}{c, VerificarDuplicado(c, h.Store.Snapshot())})
}

// Criar valida o formulário, bloqueia duplicatas pela chave composta e só
// então envia ao webhook; o cupom entra na coleção local apenas depois da
// confirmação.
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var in CupomFiscalInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if in.Status == "" {
		in.Status = StatusPendente
	}

	if err := ValidarCupom(&in); err != nil {
		var ev *ErroValidacao
		if errors.As(err, &ev) {
			responderJSON(w, http.StatusBadRequest, map[string]any{
				"erro":      "validação falhou",
				"mensagens": ev.Mensagens,
			})
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := VerificarDuplicataNoCadastro(&in, h.Store.Snapshot()); err != nil {
		if h.Alertas != nil {
			h.Alertas.EnviarAlertaDuplicata(in.DadosEstabelecimento.CNPJ, in.InformacoesTransacao.NumeroCupom)
		}
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	novo, err := h.API.CriarCupom(r.Context(), &in)
	if err != nil {
		h.Log.WithError(err).Error("erro ao criar cupom")
		http.Error(w, "não foi possível cadastrar o cupom", http.StatusBadGateway)
		return
	}
	h.Store.Adicionar(*novo)

	responderJSON(w, http.StatusCreated, novo)
}

// Atualizar altera um cupom existente. Na edição a checagem de duplicata não
// se aplica (o próprio cupom colidiria consigo mesmo).
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, ok := h.Store.BuscarPorID(id); !ok {
		http.Error(w, "cupom não encontrado", http.StatusNotFound)
		return
	}

	var in CupomFiscalInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if in.Status == "" {
		in.Status = StatusPendente
	}

	if err := ValidarCupom(&in); err != nil {
		var ev *ErroValidacao
		if errors.As(err, &ev) {
			responderJSON(w, http.StatusBadRequest, map[string]any{
				"erro":      "validação falhou",
				"mensagens": ev.Mensagens,
			})
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	atualizado, err := h.API.AtualizarCupom(r.Context(), id, &in)
	if err != nil {
		h.Log.WithError(err).Error("erro ao atualizar cupom")
		http.Error(w, "não foi possível atualizar o cupom", http.StatusBadGateway)
		return
	}
	h.Store.Substituir(id, *atualizado)

	responderJSON(w, http.StatusOK, atualizado)
}

// Deletar remove o cupom no servidor e só então poda a coleção local.
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.API.ExcluirCupom(r.Context(), id); err != nil {
		h.Log.WithError(err).Error("erro ao excluir cupom")
		http.Error(w, "não foi possível excluir o cupom", http.StatusBadGateway)
		return
	}
	h.Store.Remover(id)
	responderJSON(w, http.StatusOK, map[string]string{"mensagem": "cupom excluído com sucesso"})
}

// AtualizarStatus aplica uma transição explícita de status a um cupom.
func (h *Handler) AtualizarStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req atualizarStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if !StatusValido(req.Status) {
		http.Error(w, "status inválido: use PAGO, Pendente ou Cancelado", http.StatusBadRequest)
		return
	}

	confirmado, err := AplicarStatus(r.Context(), h.API, h.Store, id, req.Status)
	if err != nil {
		h.Log.WithError(err).Error("erro ao atualizar status")
		http.Error(w, "não foi possível atualizar o status do cupom na API", http.StatusBadGateway)
		return
	}
	responderJSON(w, http.StatusOK, confirmado)
}

// RealizarBaixa marca os cupons selecionados como PAGO em chamadas
// concorrentes e relata o desfecho item a item; sucessos parciais ficam
// aplicados.
func (h *Handler) RealizarBaixa(w http.ResponseWriter, r *http.Request) {
	var req baixaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if len(req.IDs) == 0 {
		http.Error(w, "nenhum cupom selecionado", http.StatusBadRequest)
		return
	}

	resultado := RealizarBaixa(r.Context(), h.API, h.Store, req.IDs)
	if len(resultado.Falhas) > 0 {
		h.Log.WithField("falhas", len(resultado.Falhas)).Warn("baixa em lote com falhas parciais")
	}
	responderJSON(w, http.StatusOK, resultado)
}
