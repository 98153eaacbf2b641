package cliente

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

// API é a fatia do webhook trans_cupom consumida pela consulta de clientes.
type API interface {
	ListarClientes(ctx context.Context) ([]Cliente, error)
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

// Listar retorna todos os clientes cadastrados
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	clientes, err := h.API.ListarClientes(r.Context())
	if err != nil {
		h.Log.WithError(err).Error("erro ao listar clientes")
		http.Error(w, "não foi possível carregar os clientes", http.StatusBadGateway)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(clientes)
}
