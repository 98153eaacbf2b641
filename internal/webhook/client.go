// Package webhook implementa o cliente tipado da API trans_cupom, o sistema
// remoto que guarda cupons e cadastros de apoio. Todas as chamadas usam
// timeout de 10s; falhas de transporte são marcadas com cupom.ErrIndisponivel
// para que as camadas de cima possam degradar para modo offline.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rodrigolessa1980/Cupom-Transporte/internal/cupom"
)

const timeoutPadrao = 10 * time.Second

// Client fala com a API trans_cupom. Os recursos ficam sob
// <base>/trans_cupom/<recurso>.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logrus.Entry
}

// NewClient retorna um cliente inicializado apontando para baseURL.
func NewClient(baseURL string, log *logrus.Entry) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeoutPadrao},
		log:     log,
	}
}

// respostaComando é o envelope devolvido pelas mutações de empresa e usuário.
type respostaComando struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (c *Client) url(recurso string) string {
	return c.baseURL + "/trans_cupom/" + recurso
}

// fazer executa uma chamada JSON contra o recurso. Erros de transporte
// (conexão, timeout) voltam embrulhados em cupom.ErrIndisponivel; respostas
// HTTP de erro voltam como erro comum com o status.
func (c *Client) fazer(ctx context.Context, metodo, recurso string, corpo, saida interface{}) error {
	var leitor io.Reader
	if corpo != nil {
		dados, err := json.Marshal(corpo)
		if err != nil {
			return fmt.Errorf("serializar corpo para %s %s: %w", metodo, recurso, err)
		}
		leitor = bytes.NewReader(dados)
	}

	req, err := http.NewRequestWithContext(ctx, metodo, c.url(recurso), leitor)
	if err != nil {
		return fmt.Errorf("montar requisição %s %s: %w", metodo, recurso, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", cupom.ErrIndisponivel, metodo, recurso, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		trecho, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s %s respondeu %d: %s", metodo, recurso, resp.StatusCode, strings.TrimSpace(string(trecho)))
	}

	if saida == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(saida); err != nil {
		return fmt.Errorf("decodificar resposta de %s %s: %w", metodo, recurso, err)
	}
	return nil
}

// executarComando dispara uma mutação que responde no envelope
// {success, message, data?} e valida o campo success.
func (c *Client) executarComando(ctx context.Context, metodo, recurso string, corpo interface{}) (*respostaComando, error) {
	var resp respostaComando
	if err := c.fazer(ctx, metodo, recurso, corpo, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		msg := resp.Message
		if msg == "" {
			msg = "operação recusada pelo webhook"
		}
		return nil, fmt.Errorf("%s %s: %s", metodo, recurso, msg)
	}
	return &resp, nil
}
