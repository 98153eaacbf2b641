package usuario

// Papéis de acesso do sistema.
const (
	PapelAdmin    = "admin"
	PapelOperador = "user"
)

// Codificação de status usada pelo webhook: papel × ativo em um inteiro.
const (
	StatusAdminAtivo      = 1
	StatusOperadorAtivo   = 2
	StatusAdminInativo    = 3
	StatusOperadorInativo = 4
)

// Usuario é o registro do cadastro de usuários do sistema, que também serve
// de base para a autenticação.
type Usuario struct {
	ID     int    `json:"id"`
	User   string `json:"user"`
	Nome   string `json:"nome"`
	Email  string `json:"email"`
	Senha  string `json:"-"`
	Status int    `json:"status"`
}

// UsuarioInput é o payload de criação/edição.
type UsuarioInput struct {
	User   string `json:"user"`
	Nome   string `json:"nome"`
	Email  string `json:"email"`
	Senha  string `json:"senha,omitempty"`
	Status int    `json:"status"`
}

// PapelAtivo decodifica o inteiro de status em (papel, ativo). Valores fora
// de 1..4 caem em operador ativo.
func PapelAtivo(status int) (papel string, ativo bool) {
	switch status {
	case StatusAdminAtivo:
		return PapelAdmin, true
	case StatusOperadorAtivo:
		return PapelOperador, true
	case StatusAdminInativo:
		return PapelAdmin, false
	case StatusOperadorInativo:
		return PapelOperador, false
	}
	return PapelOperador, true
}

// StatusDe codifica (papel, ativo) de volta para o inteiro do webhook.
func StatusDe(papel string, ativo bool) int {
	switch {
	case papel == PapelAdmin && ativo:
		return StatusAdminAtivo
	case papel == PapelAdmin:
		return StatusAdminInativo
	case ativo:
		return StatusOperadorAtivo
	}
	return StatusOperadorInativo
}

// AlternarStatus inverte somente o bit de atividade, preservando o papel
// (1↔3, 2↔4).
func AlternarStatus(status int) int {
	papel, ativo := PapelAtivo(status)
	return StatusDe(papel, !ativo)
}

// Ativo informa se o usuário pode autenticar.
func (u Usuario) Ativo() bool {
	_, ativo := PapelAtivo(u.Status)
	return ativo
}

// Papel devolve o papel de acesso decodificado.
func (u Usuario) Papel() string {
	papel, _ := PapelAtivo(u.Status)
	return papel
}
