package usuario

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/rodrigolessa1980/Cupom-Transporte/internal/utils"
)

// API é a fatia do webhook trans_cupom consumida pelo cadastro de usuários.
type API interface {
	ListarUsuarios(ctx context.Context) ([]Usuario, error)
	CriarUsuario(ctx context.Context, in *UsuarioInput) (*Usuario, error)
	AtualizarUsuario(ctx context.Context, id int, in *UsuarioInput) (*Usuario, error)
	ExcluirUsuario(ctx context.Context, id int) error
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

type respostaSenha struct {
	Usuario     *Usuario `json:"usuario"`
	SenhaGerada string   `json:"senhaGerada,omitempty"`
}

func decodificarInput(w http.ResponseWriter, r *http.Request) (*UsuarioInput, bool) {
	var in UsuarioInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return nil, false
	}
	in.User = strings.TrimSpace(in.User)
	in.Nome = strings.TrimSpace(in.Nome)
	in.Email = strings.TrimSpace(in.Email)
	if in.User == "" || in.Nome == "" {
		http.Error(w, "usuário e nome são obrigatórios", http.StatusBadRequest)
		return nil, false
	}
	if in.Status < StatusAdminAtivo || in.Status > StatusOperadorInativo {
		in.Status = StatusOperadorAtivo
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

// adminsAtivosRestantes conta administradores ativos desconsiderando o id
// informado. Usado nas proteções de último admin.
func (h *Handler) adminsAtivosRestantes(ctx context.Context, excetoID int) (int, error) {
	usuarios, err := h.API.ListarUsuarios(ctx)
	if err != nil {
		return 0, err
	}
	restantes := 0
	for _, u := range usuarios {
		if u.ID == excetoID {
			continue
		}
		if u.Papel() == PapelAdmin && u.Ativo() {
			restantes++
		}
	}
	return restantes, nil
}

// Listar retorna todos os usuários cadastrados
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	usuarios, err := h.API.ListarUsuarios(r.Context())
	if err != nil {
		h.Log.WithError(err).Error("erro ao listar usuários")
		http.Error(w, "não foi possível carregar os usuários", http.StatusBadGateway)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(usuarios)
}

// Criar cadastra novo usuário. Quando a senha vem vazia uma temporária é
// gerada e devolvida em claro uma única vez na resposta.
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	in, ok := decodificarInput(w, r)
	if !ok {
		return
	}

	senhaGerada := ""
	if in.Senha == "" {
		temporaria, err := utils.GerarSenhaTemporaria()
		if err != nil {
			h.Log.WithError(err).Error("erro ao gerar senha temporária")
			http.Error(w, "não foi possível criar o usuário", http.StatusInternalServerError)
			return
		}
		senhaGerada = temporaria
		in.Senha = temporaria
	}
	hash, err := utils.HashSenha(in.Senha)
	if err != nil {
		h.Log.WithError(err).Error("erro ao gerar hash de senha")
		http.Error(w, "não foi possível criar o usuário", http.StatusInternalServerError)
		return
	}
	in.Senha = hash

	novo, err := h.API.CriarUsuario(r.Context(), in)
	if err != nil {
		h.Log.WithError(err).Error("erro ao criar usuário")
		http.Error(w, "não foi possível criar o usuário", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(respostaSenha{Usuario: novo, SenhaGerada: senhaGerada})
}

// Atualizar altera dados de um usuário existente. Senha vazia preserva a
// senha atual.
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, ok := idDaRota(w, r)
	if !ok {
		return
	}
	in, ok := decodificarInput(w, r)
	if !ok {
		return
	}

	papel, ativo := PapelAtivo(in.Status)
	if papel != PapelAdmin || !ativo {
		restantes, err := h.adminsAtivosRestantes(r.Context(), id)
		if err != nil {
			h.Log.WithError(err).Error("erro ao verificar administradores")
			http.Error(w, "não foi possível atualizar o usuário", http.StatusBadGateway)
			return
		}
		if restantes == 0 {
			http.Error(w, "não é possível rebaixar o último administrador ativo", http.StatusConflict)
			return
		}
	}

	if in.Senha != "" {
		hash, err := utils.HashSenha(in.Senha)
		if err != nil {
			h.Log.WithError(err).Error("erro ao gerar hash de senha")
			http.Error(w, "não foi possível atualizar o usuário", http.StatusInternalServerError)
			return
		}
		in.Senha = hash
	}

	atualizado, err := h.API.AtualizarUsuario(r.Context(), id, in)
	if err != nil {
		h.Log.WithError(err).Error("erro ao atualizar usuário")
		http.Error(w, "não foi possível atualizar o usuário", http.StatusBadGateway)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(atualizado)
}

// AlternarAtivo inverte o bit de atividade do usuário preservando o papel.
func (h *Handler) AlternarAtivo(w http.ResponseWriter, r *http.Request) {
	id, ok := idDaRota(w, r)
	if !ok {
		return
	}

	usuarios, err := h.API.ListarUsuarios(r.Context())
	if err != nil {
		h.Log.WithError(err).Error("erro ao listar usuários")
		http.Error(w, "não foi possível alterar o usuário", http.StatusBadGateway)
		return
	}
	var alvo *Usuario
	for i := range usuarios {
		if usuarios[i].ID == id {
			alvo = &usuarios[i]
			break
		}
	}
	if alvo == nil {
		http.Error(w, "usuário não encontrado", http.StatusNotFound)
		return
	}

	if alvo.Papel() == PapelAdmin && alvo.Ativo() {
		restantes, err := h.adminsAtivosRestantes(r.Context(), id)
		if err != nil {
			h.Log.WithError(err).Error("erro ao verificar administradores")
			http.Error(w, "não foi possível alterar o usuário", http.StatusBadGateway)
			return
		}
		if restantes == 0 {
			http.Error(w, "não é possível desativar o último administrador ativo", http.StatusConflict)
			return
		}
	}

	in := &UsuarioInput{
		User:   alvo.User,
		Nome:   alvo.Nome,
		Email:  alvo.Email,
		Status: AlternarStatus(alvo.Status),
	}
	atualizado, err := h.API.AtualizarUsuario(r.Context(), id, in)
	if err != nil {
		h.Log.WithError(err).Error("erro ao alterar status do usuário")
		http.Error(w, "não foi possível alterar o usuário", http.StatusBadGateway)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(atualizado)
}

// Deletar remove um usuário
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, ok := idDaRota(w, r)
	if !ok {
		return
	}

	usuarios, err := h.API.ListarUsuarios(r.Context())
	if err == nil {
		for _, u := range usuarios {
			if u.ID == id && u.Papel() == PapelAdmin && u.Ativo() {
				restantes, errAdm := h.adminsAtivosRestantes(r.Context(), id)
				if errAdm == nil && restantes == 0 {
					http.Error(w, "não é possível excluir o último administrador ativo", http.StatusConflict)
					return
				}
				break
			}
		}
	}

	if err := h.API.ExcluirUsuario(r.Context(), id); err != nil {
		h.Log.WithError(err).Error("erro ao excluir usuário")
		http.Error(w, "não foi possível excluir o usuário", http.StatusBadGateway)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("usuário excluído com sucesso"))
}
