package empresa

// Empresa é a transportadora associada a um motorista. Entidade de
// referência independente; o vínculo com o cupom se dá pelo motorista.
type Empresa struct {
	ID       int    `json:"id"`
	Nome     string `json:"nome"`
	CNPJ     string `json:"cnpj"`
	Telefone string `json:"telefone"`
}

// EmpresaInput é o payload de criação/edição.
type EmpresaInput struct {
	Nome     string `json:"nome" validate:"required,max=200"`
	CNPJ     string `json:"cnpj" validate:"required,cnpj"`
	Telefone string `json:"telefone" validate:"max=20"`
}
