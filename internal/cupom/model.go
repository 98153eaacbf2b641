package cupom

import (
	"strings"
	"time"
)

// Status do cupom fiscal. Todo cupom nasce Pendente; a baixa muda para PAGO.
type Status string

const (
	StatusPago      Status = "PAGO"
	StatusPendente  Status = "Pendente"
	StatusCancelado Status = "Cancelado"
)

// StatusValido informa se o valor corresponde a um dos três status aceitos.
func StatusValido(s Status) bool {
	return s == StatusPago || s == StatusPendente || s == StatusCancelado
}

// NormalizarStatus converte a representação textual vinda da API (qualquer
// caixa) para o enum; retorna Pendente quando não reconhece o valor.
func NormalizarStatus(s string) Status {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PAGO":
		return StatusPago
	case "PENDENTE":
		return StatusPendente
	case "CANCELADO":
		return StatusCancelado
	}
	return StatusPendente
}

// DadosEstabelecimento identifica o emissor do cupom. Sem papel de
// identidade além de exibição e filtro.
type DadosEstabelecimento struct {
	RazaoSocial  string `json:"razaoSocial" validate:"required,max=200"`
	Endereco     string `json:"endereco" validate:"max=300"`
	Cidade       string `json:"cidade" validate:"max=100"`
	Telefone     string `json:"telefone" validate:"max=20"`
	CNPJ         string `json:"cnpj" validate:"required,cnpj"`
	IE           string `json:"ie" validate:"max=20"`
	IM           string `json:"im" validate:"max=20"`
	NomeFantasia string `json:"nomeFantasia" validate:"max=200"`
}

// InformacoesTransacao traz os dados impressos do cupom. O número do cupom
// NÃO é único globalmente; duplicatas são sinalizadas, nunca rejeitadas na
// carga.
type InformacoesTransacao struct {
	Data        time.Time `json:"data" validate:"required"`
	Hora        string    `json:"hora" validate:"omitempty,hora"`
	COO         string    `json:"coo" validate:"max=10"`
	ECF         string    `json:"ecf" validate:"max=10"`
	NumeroECF   string    `json:"numeroEcf" validate:"max=10"`
	NumeroCupom string    `json:"numeroCupom" validate:"required,max=20"`
}

type DadosConsumidor struct {
	CPF  string `json:"cpf,omitempty" validate:"omitempty,cpf"`
	Nome string `json:"nome,omitempty" validate:"max=200"`
}

// DadosMotorista liga o cupom a um motorista pelo celular. O nome em geral
// carrega a transportadora, não o motorista.
type DadosMotorista struct {
	Celular string `json:"celular" validate:"required,min=10,max=15"`
	Nome    string `json:"nome,omitempty" validate:"max=200"`
}

type ItemCompra struct {
	Codigo           string  `json:"codigo" validate:"required,max=50"`
	Descricao        string  `json:"descricao" validate:"required,max=200"`
	Quantidade       float64 `json:"quantidade" validate:"gt=0"`
	Unidade          string  `json:"unidade" validate:"required,max=10"`
	ValorUnitario    float64 `json:"valorUnitario" validate:"gt=0"`
	ValorTotal       float64 `json:"valorTotal" validate:"gt=0"`
	PermiteReembolso bool    `json:"permiteReembolso"`
}

type TotaisPagamento struct {
	ValorTotal     float64 `json:"valorTotal" validate:"gt=0"`
	FormaPagamento string  `json:"formaPagamento" validate:"required,max=50"`
	Troco          float64 `json:"troco,omitempty" validate:"gte=0"`
	Desconto       float64 `json:"desconto,omitempty" validate:"gte=0"`
}

// CupomFiscal é a entidade principal do sistema. O ID é opaco: vem do
// sistema remoto ou de um fallback local quando a criação não confirma.
type CupomFiscal struct {
	ID                   string               `json:"id"`
	DadosEstabelecimento DadosEstabelecimento `json:"dadosEstabelecimento"`
	InformacoesTransacao InformacoesTransacao `json:"informacoesTransacao"`
	DadosConsumidor      *DadosConsumidor     `json:"dadosConsumidor,omitempty"`
	DadosMotorista       DadosMotorista       `json:"dadosMotorista"`
	Itens                []ItemCompra         `json:"itens"`
	Totais               TotaisPagamento      `json:"totais"`
	Observacoes          string               `json:"observacoes,omitempty"`
	Status               Status               `json:"status"`
	CriadoEm             time.Time            `json:"criadoEm"`
	AtualizadoEm         time.Time            `json:"atualizadoEm"`
}

// CupomFiscalInput é o payload de criação/edição vindo do formulário.
type CupomFiscalInput struct {
	DadosEstabelecimento DadosEstabelecimento `json:"dadosEstabelecimento" validate:"required"`
	InformacoesTransacao InformacoesTransacao `json:"informacoesTransacao" validate:"required"`
	DadosConsumidor      *DadosConsumidor     `json:"dadosConsumidor,omitempty"`
	DadosMotorista       DadosMotorista       `json:"dadosMotorista" validate:"required"`
	Itens                []ItemCompra         `json:"itens" validate:"min=1,dive"`
	Totais               TotaisPagamento      `json:"totais" validate:"required"`
	Observacoes          string               `json:"observacoes,omitempty" validate:"max=1000"`
	Status               Status               `json:"status,omitempty"`
	DonoCupomID          *int                 `json:"dono_cupom_id,omitempty"`
}

// ValorReembolso soma os itens marcados como reembolsáveis. Itens não
// reembolsáveis não influenciam o resultado, qualquer que seja o valor.
func ValorReembolso(c CupomFiscal) float64 {
	total := 0.0
	for _, item := range c.Itens {
		if item.PermiteReembolso {
			total += item.ValorTotal
		}
	}
	return total
}
