package webhook

import (
	"strconv"
	"time"

	"github.com/rodrigolessa1980/Cupom-Transporte/internal/cupom"
	"github.com/rodrigolessa1980/Cupom-Transporte/internal/itemproibido"
	"github.com/rodrigolessa1980/Cupom-Transporte/internal/motorista"
)

// apiCupom é a linha achatada que o webhook guarda para cada cupom. Valores
// monetários chegam como string.
type apiCupom struct {
	ID              int     `json:"id"`
	NCupom          string  `json:"n_cupom"`
	Estabelecimento string  `json:"estabelecimento"`
	CNPJ            string  `json:"cnpj"`
	ValorTotal      string  `json:"valor_total"`
	ValorReembolso  string  `json:"valor_reembolso"`
	FormaPgto       string  `json:"form_pgto"`
	DataRegistro    string  `json:"data_registro"`
	Transportadora  *string `json:"transportadora"`
	Telefone        *string `json:"telefone"`
	Status          string  `json:"status,omitempty"`
}

// apiMotorista é o vínculo telefone↔motorista como o webhook devolve.
type apiMotorista struct {
	ID           int    `json:"id"`
	Nome         string `json:"nome"`
	Telefone     string `json:"telefone"`
	EmpresaID    *int   `json:"empresa_id"`
	DataRegistro string `json:"data_registro,omitempty"`
}

// apiItemProibido é a regra de item não reembolsável no formato do webhook.
type apiItemProibido struct {
	Codigo    int     `json:"codigo"`
	Descricao string  `json:"descricao"`
	Categoria *string `json:"categoria"`
}

func numeroDe(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// dataDe aceita os formatos de data que o webhook emite. Valor irreconhecível
// vira zero, nunca erro; a listagem não pode quebrar por uma linha suja.
func dataDe(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func textoDe(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// paraCupomFiscal converte a linha achatada da API para a entidade completa.
// O status explícito prevalece; na ausência dele, reembolso positivo indica
// cupom já pago. A API não guarda itens, então um item sintético único
// representa o total.
func (a apiCupom) paraCupomFiscal() cupom.CupomFiscal {
	registro := dataDe(a.DataRegistro)
	valorTotal := numeroDe(a.ValorTotal)
	valorReembolso := numeroDe(a.ValorReembolso)

	status := cupom.StatusPendente
	if a.Status != "" {
		status = cupom.NormalizarStatus(a.Status)
	} else if valorReembolso > 0 {
		status = cupom.StatusPago
	}

	hora := ""
	if !registro.IsZero() {
		hora = registro.Format("15:04:05")
	}

	return cupom.CupomFiscal{
		ID: strconv.Itoa(a.ID),
		DadosEstabelecimento: cupom.DadosEstabelecimento{
			RazaoSocial:  a.Estabelecimento,
			NomeFantasia: a.Estabelecimento,
			CNPJ:         a.CNPJ,
		},
		InformacoesTransacao: cupom.InformacoesTransacao{
			NumeroCupom: a.NCupom,
			Data:        registro,
			Hora:        hora,
		},
		DadosMotorista: cupom.DadosMotorista{
			Celular: textoDe(a.Telefone),
			Nome:    textoDe(a.Transportadora),
		},
		Itens: []cupom.ItemCompra{
			{
				Codigo:           "001",
				Descricao:        "Item do cupom",
				Quantidade:       1,
				Unidade:          "UN",
				ValorUnitario:    valorTotal,
				ValorTotal:       valorTotal,
				PermiteReembolso: valorReembolso > 0,
			},
		},
		Totais: cupom.TotaisPagamento{
			ValorTotal:     valorTotal,
			FormaPagamento: a.FormaPgto,
		},
		Status:       status,
		CriadoEm:     registro,
		AtualizadoEm: registro,
	}
}

func (a apiMotorista) paraMotorista() motorista.Motorista {
	registro := dataDe(a.DataRegistro)
	return motorista.Motorista{
		ID:           strconv.Itoa(a.ID),
		Nome:         a.Nome,
		Telefone:     a.Telefone,
		EmpresaID:    a.EmpresaID,
		CriadoEm:     registro,
		AtualizadoEm: registro,
	}
}

func (a apiItemProibido) paraItemProibido() itemproibido.ItemProibido {
	return itemproibido.ItemProibido{
		ID:      strconv.Itoa(a.Codigo),
		Produto: a.Descricao,
		Grupo:   textoDe(a.Categoria),
	}
}
