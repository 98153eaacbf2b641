package cupom_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rodrigolessa1980/Cupom-Transporte/internal/cupom"
)

func inputValido() *cupom.CupomFiscalInput {
	return &cupom.CupomFiscalInput{
		DadosEstabelecimento: cupom.DadosEstabelecimento{
			RazaoSocial: "Posto Estrela Ltda",
			CNPJ:        "45.170.289/0001-25",
		},
		InformacoesTransacao: cupom.InformacoesTransacao{
			NumeroCupom: "CF-0042",
			Data:        time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
			Hora:        "14:32:07",
		},
		DadosMotorista: cupom.DadosMotorista{Celular: "11987654321"},
		Itens: []cupom.ItemCompra{
			{Codigo: "001", Descricao: "Diesel S10", Quantidade: 50, Unidade: "L",
				ValorUnitario: 6, ValorTotal: 300, PermiteReembolso: true},
		},
		Totais: cupom.TotaisPagamento{ValorTotal: 300, FormaPagamento: "Dinheiro"},
	}
}

func TestValidarCupomAceitaFormularioCompleto(t *testing.T) {
	assert.NoError(t, cupom.ValidarCupom(inputValido()))
}

func TestValidarCupomCamposObrigatorios(t *testing.T) {
	tests := []struct {
		name     string
		mudar    func(*cupom.CupomFiscalInput)
		mensagem string
	}{
		{
			name:     "razão social vazia",
			mudar:    func(in *cupom.CupomFiscalInput) { in.DadosEstabelecimento.RazaoSocial = "" },
			mensagem: "Razão Social é obrigatória",
		},
		{
			name:     "cnpj sem dígito verificador válido",
			mudar:    func(in *cupom.CupomFiscalInput) { in.DadosEstabelecimento.CNPJ = "45.170.289/0001-99" },
			mensagem: "CNPJ inválido",
		},
		{
			name:     "número do cupom vazio",
			mudar:    func(in *cupom.CupomFiscalInput) { in.InformacoesTransacao.NumeroCupom = "" },
			mensagem: "Número do cupom é obrigatório",
		},
		{
			name:     "hora fora do formato",
			mudar:    func(in *cupom.CupomFiscalInput) { in.InformacoesTransacao.Hora = "25:99:00" },
			mensagem: "Hora deve estar no formato HH:mm:ss",
		},
		{
			name:     "celular curto",
			mudar:    func(in *cupom.CupomFiscalInput) { in.DadosMotorista.Celular = "119" },
			mensagem: "Celular deve ter entre 10 e 15 caracteres",
		},
		{
			name:     "sem itens",
			mudar:    func(in *cupom.CupomFiscalInput) { in.Itens = nil },
			mensagem: "Pelo menos um item é obrigatório",
		},
		{
			name:     "cpf do consumidor inválido",
			mudar:    func(in *cupom.CupomFiscalInput) { in.DadosConsumidor = &cupom.DadosConsumidor{CPF: "123.456.789-00"} },
			mensagem: "CPF inválido",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := inputValido()
			tt.mudar(in)

			err := cupom.ValidarCupom(in)
			require.Error(t, err)
			var ev *cupom.ErroValidacao
			require.ErrorAs(t, err, &ev)
			assert.Contains(t, ev.Mensagens, tt.mensagem)
		})
	}
}

func TestValidarCupomSomaDosItens(t *testing.T) {
	in := inputValido()
	in.Totais.ValorTotal = 301

	err := cupom.ValidarCupom(in)
	require.Error(t, err)
	var ev *cupom.ErroValidacao
	require.ErrorAs(t, err, &ev)
	assert.Contains(t, ev.Mensagens, "O valor total deve ser igual à soma dos itens")

	// diferença abaixo de um centavo passa
	in.Totais.ValorTotal = 300.009
	assert.NoError(t, cupom.ValidarCupom(in))
}

func TestVerificarDuplicataNoCadastro(t *testing.T) {
	in := inputValido()
	existentes := []cupom.CupomFiscal{
		novoCupom("1", "45.170.289/0001-25", "CF-0042", base),
	}

	err := cupom.VerificarDuplicataNoCadastro(in, existentes)
	require.Error(t, err)
	var ed *cupom.ErroDuplicata
	require.ErrorAs(t, err, &ed)
	assert.Equal(t, "45.170.289/0001-25", ed.CNPJ)
	assert.Equal(t, "CF-0042", ed.NumeroCupom)
	assert.Contains(t, ed.Error(), "CF-0042")

	in.InformacoesTransacao.NumeroCupom = "CF-0043"
	assert.NoError(t, cupom.VerificarDuplicataNoCadastro(in, existentes))
}
