package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/rodrigolessa1980/Cupom-Transporte/internal/usuario"
	"github.com/rodrigolessa1980/Cupom-Transporte/internal/utils"
)

// UsuarioAPI é a fatia do webhook usada para conferir credenciais.
type UsuarioAPI interface {
	ListarUsuarios(ctx context.Context) ([]usuario.Usuario, error)
}

// Handler encapsula o fluxo de login contra o cadastro remoto de usuários
type Handler struct {
	API UsuarioAPI
	Log *logrus.Entry
}

// NewHandler retorna um handler inicializado
func NewHandler(api UsuarioAPI, log *logrus.Entry) *Handler {
	return &Handler{API: api, Log: log}
}

type credenciais struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type usuarioLogado struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Nome     string `json:"nome"`
	Papel    string `json:"role"`
}

type respostaLogin struct {
	Success bool           `json:"success"`
	User    *usuarioLogado `json:"user,omitempty"`
	Token   string         `json:"token,omitempty"`
	Message string         `json:"message,omitempty"`
}

func responderLogin(w http.ResponseWriter, status int, resp respostaLogin) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// Login confere as credenciais contra o cadastro de usuários do webhook.
// Só usuários ativos autenticam; credenciais erradas sempre retornam 401,
// sem atalho de acesso.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var cred credenciais
	if err := json.NewDecoder(r.Body).Decode(&cred); err != nil {
		responderLogin(w, http.StatusBadRequest, respostaLogin{Success: false, Message: "payload inválido"})
		return
	}
	cred.Username = strings.TrimSpace(cred.Username)
	if cred.Username == "" || cred.Password == "" {
		responderLogin(w, http.StatusBadRequest, respostaLogin{Success: false, Message: "usuário e senha são obrigatórios"})
		return
	}

	usuarios, err := h.API.ListarUsuarios(r.Context())
	if err != nil {
		h.Log.WithError(err).Error("erro ao consultar usuários para login")
		responderLogin(w, http.StatusBadGateway, respostaLogin{Success: false, Message: "erro interno do servidor"})
		return
	}

	for _, u := range usuarios {
		if u.User != cred.Username || !u.Ativo() {
			continue
		}
		if !utils.VerificarSenha(u.Senha, cred.Password) {
			break
		}
		token, err := GerarToken(u.ID, u.Papel())
		if err != nil {
			h.Log.WithError(err).Error("erro ao gerar token")
			responderLogin(w, http.StatusInternalServerError, respostaLogin{Success: false, Message: "erro interno do servidor"})
			return
		}
		responderLogin(w, http.StatusOK, respostaLogin{
			Success: true,
			User: &usuarioLogado{
				ID:       u.ID,
				Username: u.User,
				Nome:     u.Nome,
				Papel:    u.Papel(),
			},
			Token: token,
		})
		return
	}

	responderLogin(w, http.StatusUnauthorized, respostaLogin{Success: false, Message: "Credenciais inválidas"})
}

// Me devolve o usuário dono do token apresentado
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	id, _ := r.Context().Value(CtxUserID).(int)
	if id == 0 {
		http.Error(w, "Token inválido", http.StatusUnauthorized)
		return
	}

	usuarios, err := h.API.ListarUsuarios(r.Context())
	if err != nil {
		h.Log.WithError(err).Error("erro ao consultar usuários")
		http.Error(w, "erro interno do servidor", http.StatusBadGateway)
		return
	}
	for _, u := range usuarios {
		if u.ID == id && u.Ativo() {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(usuarioLogado{
				ID:       u.ID,
				Username: u.User,
				Nome:     u.Nome,
				Papel:    u.Papel(),
			})
			return
		}
	}
	http.Error(w, "usuário não encontrado ou inativo", http.StatusUnauthorized)
}
