package empresa

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/rodrigolessa1980/Cupom-Transporte/internal/utils"
)

// API é a fatia do webhook trans_cupom consumida pelo cadastro de empresas.
type API interface {
	ListarEmpresas(ctx context.Context) ([]Empresa, error)
	CriarEmpresa(ctx context.Context, in *EmpresaInput) (*Empresa, error)
	AtualizarEmpresa(ctx context.Context, id int, in *EmpresaInput) (*Empresa, error)
	ExcluirEmpresa(ctx context.Context, id int) error
}

// Handler encapsula a API remota
type Handler struct {
	API API
	Log *logrus.Entry
}

// NewHandler retorna um handler inicializado
func NewHandler(api API, log *logrus.Entry) *Handler {
	return &Handler{API: api, Log: log}
}

func decodificarInput(w http.ResponseWriter, r *http.Request) (*EmpresaInput, bool) {
	var in EmpresaInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return nil, false
	}
	if in.Nome == "" {
		http.Error(w, "nome é obrigatório", http.StatusBadRequest)
		return nil, false
	}
	if !utils.ValidarCNPJ(in.CNPJ) {
		http.Error(w, "CNPJ inválido", http.StatusBadRequest)
		return nil, false
	}
	return &in, true
}

func idDaRota(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// Listar retorna todas as empresas cadastradas
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	empresas, err := h.API.ListarEmpresas(r.Context())
	if err != nil {
		h.Log.WithError(err).Error("erro ao listar empresas")
		http.Error(w, "não foi possível carregar as empresas", http.StatusBadGateway)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(empresas)
}

// Criar cadastra nova empresa
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	in, ok := decodificarInput(w, r)
	if !ok {
		return
	}

	nova, err := h.API.CriarEmpresa(r.Context(), in)
	if err != nil {
		h.Log.WithError(err).Error("erro ao criar empresa")
		http.Error(w, "não foi possível criar a empresa", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(nova)
}

// Atualizar altera dados de uma empresa existente
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, ok := idDaRota(w, r)
	if !ok {
		return
	}
	in, ok := decodificarInput(w, r)
	if !ok {
		return
	}

	atualizada, err := h.API.AtualizarEmpresa(r.Context(), id, in)
	if err != nil {
		h.Log.WithError(err).Error("erro ao atualizar empresa")
		http.Error(w, "não foi possível atualizar a empresa", http.StatusBadGateway)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(atualizada)
}

// Deletar remove uma empresa
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, ok := idDaRota(w, r)
	if !ok {
		return
	}
	if err := h.API.ExcluirEmpresa(r.Context(), id); err != nil {
		h.Log.WithError(err).Error("erro ao excluir empresa")
		http.Error(w, "não foi possível excluir a empresa", http.StatusBadGateway)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("empresa excluída com sucesso"))
}
