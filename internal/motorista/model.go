package motorista

import (
	"sort"
	"strconv"
	"time"

	"github.com/rodrigolessa1980/Cupom-Transporte/internal/utils"
)

// Motorista vincula um telefone celular a um nome de motorista e,
// opcionalmente, a uma transportadora. O ID é string porque registros
// criados localmente em modo offline recebem identificadores sintéticos
// que só viram numéricos depois de sincronizados.
type Motorista struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Nome         string    `json:"nome"`
	Telefone     string    `json:"telefone"`
	EmpresaID    *int      `json:"empresa_id,omitempty"`
	CriadoEm     time.Time `json:"criadoEm"`
	AtualizadoEm time.Time `json:"atualizadoEm"`
}

// MotoristaInput é o payload de criação/edição.
type MotoristaInput struct {
	Nome      string `json:"nome"`
	Telefone  string `json:"telefone"`
	EmpresaID *int   `json:"empresa_id,omitempty"`
}

// TableName fixa o nome da tabela no cache local.
func (Motorista) TableName() string {
	return "motoristas"
}

// Numerico informa se o ID veio do servidor (inteiro) ou é sintético local.
func (m Motorista) Numerico() bool {
	_, err := strconv.Atoi(m.ID)
	return err == nil
}

// PorTelefone localiza um motorista comparando apenas os dígitos do
// telefone, ignorando máscara.
func PorTelefone(motoristas []Motorista, telefone string) *Motorista {
	alvo := utils.ApenasDigitos(telefone)
	if alvo == "" {
		return nil
	}
	for i := range motoristas {
		if utils.ApenasDigitos(motoristas[i].Telefone) == alvo {
			return &motoristas[i]
		}
	}
	return nil
}

// Mesclar combina a lista vinda do servidor com a lista do cache local.
// Registros do servidor prevalecem quando há colisão de ID numérico;
// registros locais com ID sintético sobrevivem até serem sincronizados.
func Mesclar(servidor, locais []Motorista) []Motorista {
	vistos := make(map[string]bool, len(servidor))
	resultado := make([]Motorista, 0, len(servidor)+len(locais))
	for _, m := range servidor {
		vistos[m.ID] = true
		resultado = append(resultado, m)
	}
	for _, m := range locais {
		if vistos[m.ID] {
			continue
		}
		resultado = append(resultado, m)
	}
	sort.SliceStable(resultado, func(i, j int) bool {
		return resultado[i].Nome < resultado[j].Nome
	})
	return resultado
}
