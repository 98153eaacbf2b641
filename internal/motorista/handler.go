package motorista

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

	"github.com/rodrigolessa1980/Cupom-Transporte/internal/utils"
)

// API é a fatia do webhook trans_cupom consumida pelo cadastro de motoristas.
type API interface {
	ListarMotoristas(ctx context.Context) ([]Motorista, error)
	CriarMotorista(ctx context.Context, in *MotoristaInput) (*Motorista, error)
	AtualizarMotorista(ctx context.Context, id string, in *MotoristaInput) (*Motorista, error)
	ExcluirMotorista(ctx context.Context, id string) error
}

// Handler combina a API remota com o espelho local em SQLite. O espelho
// mantém o cadastro utilizável quando o webhook está fora do ar; na volta,
// o servidor prevalece em colisões de ID.
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

func decodificarInput(w http.ResponseWriter, r *http.Request) (*MotoristaInput, bool) {
	var in MotoristaInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return nil, false
	}
	in.Nome = strings.TrimSpace(in.Nome)
	if in.Nome == "" {
		http.Error(w, "nome é obrigatório", http.StatusBadRequest)
		return nil, false
	}
	if len(utils.ApenasDigitos(in.Telefone)) < 10 {
		http.Error(w, "telefone inválido", http.StatusBadRequest)
		return nil, false
	}
	return &in, true
}

// Carregar busca a lista remota, mescla com o espelho local e regrava o
// resultado no cache. Se o webhook falhar, devolve somente o espelho.
func (h *Handler) Carregar(ctx context.Context) ([]Motorista, bool, error) {
	locais, err := h.Repo.ListarTodos(h.DB)
	if err != nil {
		return nil, false, err
	}

	remotos, err := h.API.ListarMotoristas(ctx)
	if err != nil {
		h.Log.WithError(err).Warn("webhook indisponível, usando espelho local de motoristas")
		return locais, true, nil
	}

	mesclados := Mesclar(remotos, locais)
	if err := h.Repo.SalvarTodos(h.DB, mesclados); err != nil {
		h.Log.WithError(err).Warn("falha ao atualizar espelho local de motoristas")
	}
	return mesclados, false, nil
}

// Listar retorna todos os motoristas, mesclando servidor e cache local
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	motoristas, offline, err := h.Carregar(r.Context())
	if err != nil {
		h.Log.WithError(err).Error("erro ao listar motoristas")
		http.Error(w, "não foi possível carregar os motoristas", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(struct {
		Data    []Motorista `json:"data"`
		Offline bool        `json:"offline"`
	}{Data: motoristas, Offline: offline})
}

// BuscarPorTelefone resolve o motorista dono de um celular, ignorando máscara
func (h *Handler) BuscarPorTelefone(w http.ResponseWriter, r *http.Request) {
	telefone := r.URL.Query().Get("telefone")
	if utils.ApenasDigitos(telefone) == "" {
		http.Error(w, "telefone é obrigatório", http.StatusBadRequest)
		return
	}
	motoristas, _, err := h.Carregar(r.Context())
	if err != nil {
		h.Log.WithError(err).Error("erro ao buscar motorista")
		http.Error(w, "não foi possível buscar o motorista", http.StatusInternalServerError)
		return
	}
	encontrado := PorTelefone(motoristas, telefone)
	if encontrado == nil {
		http.Error(w, "motorista não encontrado", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(encontrado)
}

// Criar cadastra novo motorista. Com o webhook fora do ar o registro fica
// só no espelho local, com ID sintético, até a próxima sincronização.
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	in, ok := decodificarInput(w, r)
	if !ok {
		return
	}

	agora := time.Now()
	novo, err := h.API.CriarMotorista(r.Context(), in)
	if err != nil {
		h.Log.WithError(err).Warn("webhook indisponível, gravando motorista apenas no espelho local")
		novo = &Motorista{
			ID:           uuid.NewString(),
			Nome:         in.Nome,
			Telefone:     in.Telefone,
			EmpresaID:    in.EmpresaID,
			CriadoEm:     agora,
			AtualizadoEm: agora,
		}
	}

	if err := h.Repo.Salvar(h.DB, novo); err != nil {
		h.Log.WithError(err).Error("erro ao gravar motorista no espelho local")
		http.Error(w, "não foi possível criar o motorista", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(novo)
}

// Atualizar altera dados de um motorista existente
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	in, ok := decodificarInput(w, r)
	if !ok {
		return
	}

	atualizado, err := h.API.AtualizarMotorista(r.Context(), id, in)
	if err != nil {
		h.Log.WithError(err).Warn("webhook indisponível, atualizando apenas o espelho local")
		atualizado = &Motorista{
			ID:           id,
			Nome:         in.Nome,
			Telefone:     in.Telefone,
			EmpresaID:    in.EmpresaID,
			AtualizadoEm: time.Now(),
		}
	}

	if err := h.Repo.Salvar(h.DB, atualizado); err != nil {
		h.Log.WithError(err).Error("erro ao gravar motorista no espelho local")
		http.Error(w, "não foi possível atualizar o motorista", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(atualizado)
}

// Deletar remove um motorista do servidor e do espelho local
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.API.ExcluirMotorista(r.Context(), id); err != nil {
		h.Log.WithError(err).Warn("webhook indisponível, removendo apenas do espelho local")
	}
	if err := h.Repo.Deletar(h.DB, id); err != nil {
		h.Log.WithError(err).Error("erro ao remover motorista do espelho local")
		http.Error(w, "não foi possível excluir o motorista", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("motorista excluído com sucesso"))
}
