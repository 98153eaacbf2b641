package webhook

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/rodrigolessa1980/Cupom-Transporte/internal/cupom"
)

// envelopeCupons é o envelope {data: [...]} da listagem de cupons.
type envelopeCupons struct {
	Data []apiCupom `json:"data"`
}

// cupomPayload é o corpo achatado enviado nas mutações de cupom.
type cupomPayload struct {
	ID              string `json:"id,omitempty"`
	NCupom          string `json:"n_cupom"`
	Estabelecimento string `json:"estabelecimento"`
	CNPJ            string `json:"cnpj"`
	ValorTotal      string `json:"valor_total"`
	ValorReembolso  string `json:"valor_reembolso"`
	FormaPgto       string `json:"form_pgto"`
	DataRegistro    string `json:"data_registro"`
	Transportadora  string `json:"transportadora"`
	Telefone        string `json:"telefone"`
	Status          string `json:"status"`
	DonoCupomID     *int   `json:"dono_cupom_id,omitempty"`
}

// produtoPayload é o corpo do cadastro de um item de compra avulso.
type produtoPayload struct {
	NCupom           string  `json:"n_cupom"`
	CNPJ             string  `json:"cnpj"`
	Codigo           string  `json:"codigo"`
	Descricao        string  `json:"descricao"`
	Quantidade       float64 `json:"quantidade"`
	Unidade          string  `json:"unidade"`
	ValorUnitario    float64 `json:"valor_unitario"`
	ValorTotal       float64 `json:"valor_total"`
	PermiteReembolso bool    `json:"permite_reembolso"`
}

func moeda(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func registroDe(in *cupom.CupomFiscalInput) string {
	data := in.InformacoesTransacao.Data
	if in.InformacoesTransacao.Hora != "" {
		if hora, err := time.Parse("15:04:05", in.InformacoesTransacao.Hora); err == nil {
			data = time.Date(data.Year(), data.Month(), data.Day(),
				hora.Hour(), hora.Minute(), hora.Second(), 0, data.Location())
		}
	}
	return data.Format(time.RFC3339)
}

func payloadDe(id string, in *cupom.CupomFiscalInput) cupomPayload {
	status := in.Status
	if status == "" {
		status = cupom.StatusPendente
	}
	reembolso := 0.0
	for _, item := range in.Itens {
		if item.PermiteReembolso {
			reembolso += item.ValorTotal
		}
	}
	return cupomPayload{
		ID:              id,
		NCupom:          in.InformacoesTransacao.NumeroCupom,
		Estabelecimento: in.DadosEstabelecimento.RazaoSocial,
		CNPJ:            in.DadosEstabelecimento.CNPJ,
		ValorTotal:      moeda(in.Totais.ValorTotal),
		ValorReembolso:  moeda(reembolso),
		FormaPgto:       in.Totais.FormaPagamento,
		DataRegistro:    registroDe(in),
		Transportadora:  in.DadosMotorista.Nome,
		Telefone:        in.DadosMotorista.Celular,
		Status:          string(status),
		DonoCupomID:     in.DonoCupomID,
	}
}

// cupomDoInput monta a entidade a partir do formulário, para quando a API
// não devolve (nem permite recuperar) o registro recém-escrito.
func cupomDoInput(id string, in *cupom.CupomFiscalInput, criadoEm time.Time) *cupom.CupomFiscal {
	status := in.Status
	if status == "" {
		status = cupom.StatusPendente
	}
	return &cupom.CupomFiscal{
		ID:                   id,
		DadosEstabelecimento: in.DadosEstabelecimento,
		InformacoesTransacao: in.InformacoesTransacao,
		DadosConsumidor:      in.DadosConsumidor,
		DadosMotorista:       in.DadosMotorista,
		Itens:                in.Itens,
		Totais:               in.Totais,
		Observacoes:          in.Observacoes,
		Status:               status,
		CriadoEm:             criadoEm,
		AtualizadoEm:         time.Now(),
	}
}

// ListarCupons busca todos os cupons. Erro de transporte sobe com
// cupom.ErrIndisponivel para a camada de cima degradar para modo offline.
func (c *Client) ListarCupons(ctx context.Context) ([]cupom.CupomFiscal, error) {
	var envelope envelopeCupons
	if err := c.fazer(ctx, "GET", "cupom", nil, &envelope); err != nil {
		return nil, err
	}
	cupons := make([]cupom.CupomFiscal, 0, len(envelope.Data))
	for _, linha := range envelope.Data {
		cupons = append(cupons, linha.paraCupomFiscal())
	}
	return cupons, nil
}

func (c *Client) buscarRemoto(ctx context.Context, id string) (*cupom.CupomFiscal, error) {
	var envelope envelopeCupons
	if err := c.fazer(ctx, "GET", "cupom", nil, &envelope); err != nil {
		return nil, err
	}
	for _, linha := range envelope.Data {
		if strconv.Itoa(linha.ID) == id {
			encontrado := linha.paraCupomFiscal()
			return &encontrado, nil
		}
	}
	return nil, fmt.Errorf("cupom %s não encontrado no webhook", id)
}

// CriarCupom envia o cupom achatado e tenta recuperar o registro confirmado
// pelo par (número, CNPJ). Se a API não devolver o registro, um ID local é
// gerado e a criação fica pendente de reconciliação na próxima carga. Os
// itens de compra vão em seguida, um a um, como melhor esforço.
func (c *Client) CriarCupom(ctx context.Context, in *cupom.CupomFiscalInput) (*cupom.CupomFiscal, error) {
	if err := c.fazer(ctx, "POST", "cupom", payloadDe("", in), nil); err != nil {
		return nil, fmt.Errorf("criar cupom: %w", err)
	}

	criado := c.localizarCriado(ctx, in)
	if criado == nil {
		criado = cupomDoInput(uuid.NewString(), in, time.Now())
	} else {
		// A linha achatada perde itens e observações; o formulário manda.
		criado.Itens = in.Itens
		criado.DadosConsumidor = in.DadosConsumidor
		criado.Observacoes = in.Observacoes
		criado.DadosEstabelecimento = in.DadosEstabelecimento
		criado.InformacoesTransacao = in.InformacoesTransacao
	}

	c.enviarItens(ctx, in)
	return criado, nil
}

func (c *Client) localizarCriado(ctx context.Context, in *cupom.CupomFiscalInput) *cupom.CupomFiscal {
	todos, err := c.ListarCupons(ctx)
	if err != nil {
		c.log.WithError(err).Warn("cupom criado mas a releitura falhou")
		return nil
	}
	var candidato *cupom.CupomFiscal
	for i := range todos {
		atual := todos[i]
		if atual.InformacoesTransacao.NumeroCupom == in.InformacoesTransacao.NumeroCupom &&
			atual.DadosEstabelecimento.CNPJ == in.DadosEstabelecimento.CNPJ {
			if candidato == nil || atual.CriadoEm.After(candidato.CriadoEm) {
				candidato = &atual
			}
		}
	}
	return candidato
}

func (c *Client) enviarItens(ctx context.Context, in *cupom.CupomFiscalInput) {
	for _, item := range in.Itens {
		payload := produtoPayload{
			NCupom:           in.InformacoesTransacao.NumeroCupom,
			CNPJ:             in.DadosEstabelecimento.CNPJ,
			Codigo:           item.Codigo,
			Descricao:        item.Descricao,
			Quantidade:       item.Quantidade,
			Unidade:          item.Unidade,
			ValorUnitario:    item.ValorUnitario,
			ValorTotal:       item.ValorTotal,
			PermiteReembolso: item.PermiteReembolso,
		}
		if err := c.fazer(ctx, "POST", "produto", payload, nil); err != nil {
			c.log.WithError(err).WithField("codigo", item.Codigo).
				Warn("falha ao registrar item do cupom")
		}
	}
}

// AtualizarCupom regrava a linha achatada e devolve o registro confirmado,
// com itens e observações do formulário preservados.
func (c *Client) AtualizarCupom(ctx context.Context, id string, in *cupom.CupomFiscalInput) (*cupom.CupomFiscal, error) {
	if err := c.fazer(ctx, "PUT", "cupom", payloadDe(id, in), nil); err != nil {
		return nil, fmt.Errorf("atualizar cupom %s: %w", id, err)
	}

	atualizado, err := c.buscarRemoto(ctx, id)
	if err != nil {
		c.log.WithError(err).Warn("cupom atualizado mas a releitura falhou")
		return cupomDoInput(id, in, time.Now()), nil
	}
	atualizado.Itens = in.Itens
	atualizado.DadosConsumidor = in.DadosConsumidor
	atualizado.Observacoes = in.Observacoes
	atualizado.DadosEstabelecimento = in.DadosEstabelecimento
	atualizado.InformacoesTransacao = in.InformacoesTransacao
	atualizado.AtualizadoEm = time.Now()
	return atualizado, nil
}

// AtualizarStatusCupom grava a transição e devolve o cupom confirmado com o
// novo status aplicado.
func (c *Client) AtualizarStatusCupom(ctx context.Context, id string, novo cupom.Status) (*cupom.CupomFiscal, error) {
	corpo := struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}{ID: id, Status: string(novo)}
	if err := c.fazer(ctx, "PUT", "cupom", corpo, nil); err != nil {
		return nil, fmt.Errorf("atualizar status do cupom %s: %w", id, err)
	}

	atualizado, err := c.buscarRemoto(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reler cupom %s após transição: %w", id, err)
	}
	atualizado.Status = novo
	atualizado.AtualizadoEm = time.Now()
	return atualizado, nil
}

// ExcluirCupom remove o cupom. A API expõe a exclusão num recurso próprio e
// recebe o ID no corpo da requisição.
func (c *Client) ExcluirCupom(ctx context.Context, id string) error {
	corpo := struct {
		ID string `json:"id"`
	}{ID: id}
	if err := c.fazer(ctx, "DELETE", "excluir", corpo, nil); err != nil {
		return fmt.Errorf("excluir cupom %s: %w", id, err)
	}
	return nil
}
