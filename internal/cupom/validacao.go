package cupom

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/rodrigolessa1980/Cupom-Transporte/internal/utils"
)

// Tolerância de centavos entre a soma dos itens e o valor total declarado.
const toleranciaCentavos = 0.01

var regexHora = regexp.MustCompile(`^([0-1][0-9]|2[0-3]):[0-5][0-9]:[0-5][0-9]$`)

var validar = novoValidador()

func novoValidador() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("cnpj", func(fl validator.FieldLevel) bool {
		return utils.ValidarCNPJ(fl.Field().String())
	})
	_ = v.RegisterValidation("cpf", func(fl validator.FieldLevel) bool {
		return utils.ValidarCPF(fl.Field().String())
	})
	_ = v.RegisterValidation("hora", func(fl validator.FieldLevel) bool {
		return regexHora.MatchString(fl.Field().String())
	})
	return v
}

var mensagensCampo = map[string]string{
	"DadosEstabelecimento.RazaoSocial": "Razão Social é obrigatória",
	"DadosEstabelecimento.CNPJ":        "CNPJ inválido",
	"InformacoesTransacao.Data":        "Data é obrigatória",
	"InformacoesTransacao.Hora":        "Hora deve estar no formato HH:mm:ss",
	"InformacoesTransacao.NumeroCupom": "Número do cupom é obrigatório",
	"DadosMotorista.Celular":           "Celular deve ter entre 10 e 15 caracteres",
	"DadosConsumidor.CPF":              "CPF inválido",
	"Itens":                            "Pelo menos um item é obrigatório",
	"Totais.ValorTotal":                "Valor total deve ser maior que R$ 0,00",
	"Totais.FormaPagamento":            "Forma de pagamento é obrigatória",
}

// ErroValidacao carrega as mensagens por campo para exibição no formulário.
type ErroValidacao struct {
	Mensagens []string
}

func (e *ErroValidacao) Error() string {
	return strings.Join(e.Mensagens, "; ")
}

func mensagemPara(fe validator.FieldError) string {
	// StructNamespace vem como "CupomFiscalInput.Grupo.Campo"
	ns := fe.StructNamespace()
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	ns = regexp.MustCompile(`\[\d+\]`).ReplaceAllString(ns, "")
	if msg, ok := mensagensCampo[ns]; ok {
		return msg
	}
	return fmt.Sprintf("campo %s inválido", ns)
}

// ValidarCupom aplica as regras do formulário sobre o payload: restrições de
// campo, dígitos verificadores de CNPJ/CPF e a checagem cruzada de que o
// valor total declarado bate com a soma dos itens dentro da tolerância de um
// centavo. Erros bloqueiam a submissão.
func ValidarCupom(in *CupomFiscalInput) error {
	var mensagens []string

	if err := validar.Struct(in); err != nil {
		var invalido *validator.InvalidValidationError
		if errors.As(err, &invalido) {
			return fmt.Errorf("payload inválido: %w", err)
		}
		for _, fe := range err.(validator.ValidationErrors) {
			mensagens = append(mensagens, mensagemPara(fe))
		}
	}

	somaItens := 0.0
	for _, item := range in.Itens {
		somaItens += item.ValorTotal
	}
	if len(in.Itens) > 0 && math.Abs(somaItens-in.Totais.ValorTotal) >= toleranciaCentavos {
		mensagens = append(mensagens, "O valor total deve ser igual à soma dos itens")
	}

	if in.Status != "" && !StatusValido(in.Status) {
		mensagens = append(mensagens, fmt.Sprintf("status %q inválido", in.Status))
	}

	if len(mensagens) > 0 {
		return &ErroValidacao{Mensagens: mensagens}
	}
	return nil
}

// ErroDuplicata sinaliza que já existe um cupom com a mesma chave natural.
// É um aviso de cliente, não uma restrição do servidor.
type ErroDuplicata struct {
	CNPJ        string
	NumeroCupom string
}

func (e *ErroDuplicata) Error() string {
	return fmt.Sprintf(
		"já existe um cupom com o mesmo CNPJ (%s) e número (%s); verifique os dados antes de continuar",
		e.CNPJ, e.NumeroCupom,
	)
}

// VerificarDuplicataNoCadastro bloqueia a criação quando o payload colide com
// um cupom existente pela chave composta.
func VerificarDuplicataNoCadastro(in *CupomFiscalInput, existentes []CupomFiscal) error {
	candidato := CupomFiscal{
		DadosEstabelecimento: in.DadosEstabelecimento,
		InformacoesTransacao: in.InformacoesTransacao,
	}
	chave := ChaveDuplicata(candidato)
	for _, c := range existentes {
		if ChaveDuplicata(c) == chave {
			return &ErroDuplicata{
				CNPJ:        in.DadosEstabelecimento.CNPJ,
				NumeroCupom: in.InformacoesTransacao.NumeroCupom,
			}
		}
	}
	return nil
}
