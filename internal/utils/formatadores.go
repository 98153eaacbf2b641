package utils

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var impressoraPtBR = message.NewPrinter(language.BrazilianPortuguese)

// ApenasDigitos remove tudo que não for dígito decimal.
func ApenasDigitos(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			out = append(out, s[i])
		}
	}
	return string(out)
}

// FormatarMoeda formata um valor em reais no padrão pt-BR (R$ 1.234,56).
func FormatarMoeda(valor float64) string {
	return impressoraPtBR.Sprintf("R$ %.2f", valor)
}

// FormatarData formata somente a data, no padrão brasileiro.
func FormatarData(data time.Time) string {
	return data.Format("02/01/2006")
}

// FormatarCNPJ aplica a pontuação canônica (00.000.000/0000-00) quando a
// entrada tem exatamente 14 dígitos; entradas parciais voltam inalteradas.
func FormatarCNPJ(cnpj string) string {
	d := ApenasDigitos(cnpj)
	if len(d) != 14 {
		return cnpj
	}
	return fmt.Sprintf("%s.%s.%s/%s-%s", d[0:2], d[2:5], d[5:8], d[8:12], d[12:14])
}

// FormatarCPF aplica a pontuação canônica (000.000.000-00) quando a entrada
// tem exatamente 11 dígitos; entradas parciais voltam inalteradas.
func FormatarCPF(cpf string) string {
	d := ApenasDigitos(cpf)
	if len(d) != 11 {
		return cpf
	}
	return fmt.Sprintf("%s.%s.%s-%s", d[0:3], d[3:6], d[6:9], d[9:11])
}

// FormatarTelefone formata números de 10 ou 11 dígitos no padrão (11) 99999-0000.
func FormatarTelefone(telefone string) string {
	d := ApenasDigitos(telefone)
	switch len(d) {
	case 10:
		return fmt.Sprintf("(%s) %s-%s", d[0:2], d[2:6], d[6:10])
	case 11:
		return fmt.Sprintf("(%s) %s-%s", d[0:2], d[2:7], d[7:11])
	}
	return telefone
}

func todosIguais(d string) bool {
	for i := 1; i < len(d); i++ {
		if d[i] != d[0] {
			return false
		}
	}
	return true
}

// ValidarCNPJ confere os dois dígitos verificadores (módulo 11). Sequências
// de dígitos repetidos e entradas de tamanho errado são inválidas.
func ValidarCNPJ(cnpj string) bool {
	d := ApenasDigitos(cnpj)
	if len(d) != 14 || todosIguais(d) {
		return false
	}

	soma := 0
	peso := 2
	for i := 11; i >= 0; i-- {
		soma += int(d[i]-'0') * peso
		if peso == 9 {
			peso = 2
		} else {
			peso++
		}
	}
	digito := 0
	if soma%11 >= 2 {
		digito = 11 - soma%11
	}
	if int(d[12]-'0') != digito {
		return false
	}

	soma = 0
	peso = 2
	for i := 12; i >= 0; i-- {
		soma += int(d[i]-'0') * peso
		if peso == 9 {
			peso = 2
		} else {
			peso++
		}
	}
	digito = 0
	if soma%11 >= 2 {
		digito = 11 - soma%11
	}
	return int(d[13]-'0') == digito
}

// ValidarCPF confere os dois dígitos verificadores do CPF.
func ValidarCPF(cpf string) bool {
	d := ApenasDigitos(cpf)
	if len(d) != 11 || todosIguais(d) {
		return false
	}

	soma := 0
	for i := 0; i < 9; i++ {
		soma += int(d[i]-'0') * (10 - i)
	}
	digito := 0
	if soma%11 >= 2 {
		digito = 11 - soma%11
	}
	if int(d[9]-'0') != digito {
		return false
	}

	soma = 0
	for i := 0; i < 10; i++ {
		soma += int(d[i]-'0') * (11 - i)
	}
	digito = 0
	if soma%11 >= 2 {
		digito = 11 - soma%11
	}
	return int(d[10]-'0') == digito
}
