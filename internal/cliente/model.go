package cliente

// Cliente é um registro de cliente vindo do webhook, usado apenas para
// consulta nos cadastros de apoio.
type Cliente struct {
	ID       int    `json:"id"`
	Nome     string `json:"nome"`
	CNPJ     string `json:"cnpj,omitempty"`
	Telefone string `json:"telefone,omitempty"`
	Email    string `json:"email,omitempty"`
}
