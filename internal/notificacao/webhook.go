package notificacao

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Notificador dispara alertas operacionais para um webhook externo. URL
// vazia desliga o envio.
type Notificador struct {
	URL  string
	HTTP *http.Client
	Log  *logrus.Entry
}

// NewNotificador retorna um notificador inicializado
func NewNotificador(url string, log *logrus.Entry) *Notificador {
	return &Notificador{
		URL:  url,
		HTTP: &http.Client{Timeout: 5 * time.Second},
		Log:  log,
	}
}

// EnviarAlertaDuplicata avisa que um cupom com o mesmo par CNPJ + número já
// existe no cadastro. Melhor esforço: falha só gera log.
func (n *Notificador) EnviarAlertaDuplicata(cnpj, numeroCupom string) {
	if n.URL == "" {
		return
	}
	payload := map[string]string{
		"mensagem":    "Alerta: cupom cadastrado com CNPJ e número já existentes",
		"cnpj":        cnpj,
		"numeroCupom": numeroCupom,
	}
	body, _ := json.Marshal(payload)

	resp, err := n.HTTP.Post(n.URL, "application/json", bytes.NewBuffer(body))
	if err != nil {
		n.Log.WithError(err).Warn("erro ao enviar webhook de alerta")
		return
	}
	defer resp.Body.Close()
}
