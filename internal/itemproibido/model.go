package itemproibido

import (
	"strings"
	"time"
)

// ItemProibido marca um produto ou grupo de produtos como não reembolsável.
// Produto casa por nome exato; Grupo casa por substring nos dois sentidos,
// para que "cerveja" bloqueie "cerveja lata 350ml" e vice-versa.
type ItemProibido struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Produto      string    `json:"produto"`
	Grupo        string    `json:"grupo"`
	Motivo       string    `json:"motivo,omitempty"`
	CriadoEm     time.Time `json:"criadoEm"`
	AtualizadoEm time.Time `json:"atualizadoEm"`
}

// ItemProibidoInput é o payload de criação/edição.
type ItemProibidoInput struct {
	Produto string `json:"produto"`
	Grupo   string `json:"grupo"`
	Motivo  string `json:"motivo,omitempty"`
}

// TableName fixa o nome da tabela no cache local.
func (ItemProibido) TableName() string {
	return "itens_proibidos"
}

func normalizar(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Bloqueia avalia se o nome de um produto de cupom cai nesta regra.
func (p ItemProibido) Bloqueia(nomeProduto string) bool {
	nome := normalizar(nomeProduto)
	if nome == "" {
		return false
	}
	if produto := normalizar(p.Produto); produto != "" && produto == nome {
		return true
	}
	if grupo := normalizar(p.Grupo); grupo != "" {
		if strings.Contains(nome, grupo) || strings.Contains(grupo, nome) {
			return true
		}
	}
	return false
}

// ProdutoProibido percorre as regras e devolve a primeira que bloqueia o
// produto, ou nil quando o item é reembolsável.
func ProdutoProibido(regras []ItemProibido, nomeProduto string) *ItemProibido {
	for i := range regras {
		if regras[i].Bloqueia(nomeProduto) {
			return &regras[i]
		}
	}
	return nil
}
