package itemproibido

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// API é a fatia do webhook trans_cupom consumida pelas regras de itens
// proibidos.
type API interface {
	ListarItensProibidos(ctx context.Context) ([]ItemProibido, error)
	CriarItemProibido(ctx context.Context, in *ItemProibidoInput) (*ItemProibido, error)
	AtualizarItemProibido(ctx context.Context, id string, in *ItemProibidoInput) (*ItemProibido, error)
	ExcluirItemProibido(ctx context.Context, id string) error
}

// Handler combina a API remota com o espelho local em SQLite.
type Handler struct {
	DB   *gorm.DB
	Repo Repository
	API  API
	Log  *logrus.Entry
}

// NewHandler retorna um handler inicializado
func NewHandler(db *gorm.DB, api API, log *logrus.Entry) *Handler {
	return &Handler{DB: db, Repo: NewRepository(), API: api, Log: log}
}

func decodificarInput(w http.ResponseWriter, r *http.Request) (*ItemProibidoInput, bool) {
	var in ItemProibidoInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return nil, false
	}
	in.Produto = strings.TrimSpace(in.Produto)
	in.Grupo = strings.TrimSpace(in.Grupo)
	if in.Produto == "" && in.Grupo == "" {
		http.Error(w, "informe produto ou grupo", http.StatusBadRequest)
		return nil, false
	}
	return &in, true
}

// Carregar busca as regras remotas, atualizando o espelho local. Se o
// webhook falhar, devolve somente o espelho.
func (h *Handler) Carregar(ctx context.Context) ([]ItemProibido, bool, error) {
	remotas, err := h.API.ListarItensProibidos(ctx)
	if err != nil {
		h.Log.WithError(err).Warn("webhook indisponível, usando espelho local de itens proibidos")
		locais, errLocal := h.Repo.ListarTodos(h.DB)
		return locais, true, errLocal
	}
	if err := h.Repo.SalvarTodos(h.DB, remotas); err != nil {
		h.Log.WithError(err).Warn("falha ao atualizar espelho local de itens proibidos")
	}
	return remotas, false, nil
}

// Listar retorna todas as regras de itens proibidos
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	regras, offline, err := h.Carregar(r.Context())
	if err != nil {
		h.Log.WithError(err).Error("erro ao listar itens proibidos")
		http.Error(w, "não foi possível carregar os itens proibidos", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(struct {
		Data    []ItemProibido `json:"data"`
		Offline bool           `json:"offline"`
	}{Data: regras, Offline: offline})
}

// Verificar informa se um nome de produto cai em alguma regra vigente
func (h *Handler) Verificar(w http.ResponseWriter, r *http.Request) {
	produto := strings.TrimSpace(r.URL.Query().Get("produto"))
	if produto == "" {
		http.Error(w, "produto é obrigatório", http.StatusBadRequest)
		return
	}
	regras, _, err := h.Carregar(r.Context())
	if err != nil {
		h.Log.WithError(err).Error("erro ao verificar item proibido")
		http.Error(w, "não foi possível verificar o produto", http.StatusInternalServerError)
		return
	}
	regra := ProdutoProibido(regras, produto)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(struct {
		Proibido bool          `json:"proibido"`
		Regra    *ItemProibido `json:"regra,omitempty"`
	}{Proibido: regra != nil, Regra: regra})
}

// Criar cadastra nova regra
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	in, ok := decodificarInput(w, r)
	if !ok {
		return
	}

	agora := time.Now()
	nova, err := h.API.CriarItemProibido(r.Context(), in)
	if err != nil {
		h.Log.WithError(err).Warn("webhook indisponível, gravando regra apenas no espelho local")
		nova = &ItemProibido{
			ID:           uuid.NewString(),
			Produto:      in.Produto,
			Grupo:        in.Grupo,
			Motivo:       in.Motivo,
			CriadoEm:     agora,
			AtualizadoEm: agora,
		}
	}

	if err := h.Repo.Salvar(h.DB, nova); err != nil {
		h.Log.WithError(err).Error("erro ao gravar regra no espelho local")
		http.Error(w, "não foi possível criar o item proibido", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(nova)
}

// Atualizar altera uma regra existente
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	in, ok := decodificarInput(w, r)
	if !ok {
		return
	}

	atualizada, err := h.API.AtualizarItemProibido(r.Context(), id, in)
	if err != nil {
		h.Log.WithError(err).Warn("webhook indisponível, atualizando apenas o espelho local")
		atualizada = &ItemProibido{
			ID:           id,
			Produto:      in.Produto,
			Grupo:        in.Grupo,
			Motivo:       in.Motivo,
			AtualizadoEm: time.Now(),
		}
	}

	if err := h.Repo.Salvar(h.DB, atualizada); err != nil {
		h.Log.WithError(err).Error("erro ao gravar regra no espelho local")
		http.Error(w, "não foi possível atualizar o item proibido", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(atualizada)
}

// Deletar remove uma regra
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.API.ExcluirItemProibido(r.Context(), id); err != nil {
		h.Log.WithError(err).Warn("webhook indisponível, removendo apenas do espelho local")
	}
	if err := h.Repo.Deletar(h.DB, id); err != nil {
		h.Log.WithError(err).Error("erro ao remover regra do espelho local")
		http.Error(w, "não foi possível excluir o item proibido", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("item proibido excluído com sucesso"))
}
