package cupom_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rodrigolessa1980/Cupom-Transporte/internal/cupom"
)

// apiCompleta implementa cupom.API em memória para os testes de handler.
type apiCompleta struct {
	apiFalsa
	listarErro error
	criados    []cupom.CupomFiscalInput
}

func (a *apiCompleta) ListarCupons(ctx context.Context) ([]cupom.CupomFiscal, error) {
	if a.listarErro != nil {
		return nil, a.listarErro
	}
	return nil, nil
}

func (a *apiCompleta) CriarCupom(ctx context.Context, in *cupom.CupomFiscalInput) (*cupom.CupomFiscal, error) {
	a.criados = append(a.criados, *in)
	c := novoCupom("100", in.DadosEstabelecimento.CNPJ, in.InformacoesTransacao.NumeroCupom, time.Now())
	c.Itens = in.Itens
	c.Totais = in.Totais
	return &c, nil
}

func (a *apiCompleta) AtualizarCupom(ctx context.Context, id string, in *cupom.CupomFiscalInput) (*cupom.CupomFiscal, error) {
	c := novoCupom(id, in.DadosEstabelecimento.CNPJ, in.InformacoesTransacao.NumeroCupom, base)
	c.Itens = in.Itens
	c.Totais = in.Totais
	return &c, nil
}

func (a *apiCompleta) ExcluirCupom(ctx context.Context, id string) error {
	return nil
}

type alertaMemoria struct {
	chamadas [][2]string
}

func (a *alertaMemoria) EnviarAlertaDuplicata(cnpj, numeroCupom string) {
	a.chamadas = append(a.chamadas, [2]string{cnpj, numeroCupom})
}

func servidorTeste(api cupom.API, store *cupom.Store, alertas cupom.AlertaDuplicata) *mux.Router {
	log := logrus.New()
	log.SetOutput(io.Discard)
	h := cupom.NewHandler(store, api, alertas, logrus.NewEntry(log))

	r := mux.NewRouter()
	r.HandleFunc("/cupons", h.Listar).Methods("GET")
	r.HandleFunc("/cupons", h.Criar).Methods("POST")
	r.HandleFunc("/cupons/{id}", h.BuscarPorID).Methods("GET")
	r.HandleFunc("/cupons/{id}", h.Deletar).Methods("DELETE")
	return r
}

func TestListarComFiltroDeQuery(t *testing.T) {
	store := cupom.NovoStore()
	store.DefinirTodos([]cupom.CupomFiscal{
		novoCupom("1", "45.170.289/0001-25", "CF-1", base),
		novoCupom("2", "22.222.222/0001-22", "CF-2", base),
	})
	r := servidorTeste(&apiCompleta{}, store, nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/cupons?cnpj=45.170", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data    []cupom.CupomFiscal `json:"data"`
		Total   int                 `json:"total"`
		Offline bool                `json:"offline"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "1", resp.Data[0].ID)
	assert.False(t, resp.Offline)
}

func TestCriarBloqueiaDuplicataEAvisa(t *testing.T) {
	store := cupom.NovoStore()
	store.DefinirTodos([]cupom.CupomFiscal{
		novoCupom("1", "45.170.289/0001-25", "CF-0042", base),
	})
	alertas := &alertaMemoria{}
	api := &apiCompleta{}
	r := servidorTeste(api, store, alertas)

	corpo, _ := json.Marshal(inputValido())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("POST", "/cupons", bytes.NewReader(corpo)))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "CF-0042")
	require.Len(t, alertas.chamadas, 1, "colisão dispara o alerta externo")
	assert.Empty(t, api.criados, "nada chega ao webhook")
	assert.Equal(t, 1, store.Tamanho())
}

func TestCriarValidaAntesDeEnviar(t *testing.T) {
	api := &apiCompleta{}
	r := servidorTeste(api, cupom.NovoStore(), nil)

	in := inputValido()
	in.DadosEstabelecimento.CNPJ = "00.000.000/0000-01"
	corpo, _ := json.Marshal(in)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("POST", "/cupons", bytes.NewReader(corpo)))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp struct {
		Mensagens []string `json:"mensagens"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Mensagens, "CNPJ inválido")
	assert.Empty(t, api.criados)
}

func TestCriarEntraNaColecao(t *testing.T) {
	store := cupom.NovoStore()
	r := servidorTeste(&apiCompleta{}, store, nil)

	corpo, _ := json.Marshal(inputValido())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("POST", "/cupons", bytes.NewReader(corpo)))

	require.Equal(t, http.StatusCreated, rec.Code)
	criado, ok := store.BuscarPorID("100")
	require.True(t, ok)
	assert.Equal(t, "CF-0042", criado.InformacoesTransacao.NumeroCupom)
}

func TestBuscarPorIDAnotaDuplicata(t *testing.T) {
	store := cupom.NovoStore()
	store.DefinirTodos([]cupom.CupomFiscal{
		novoCupom("1", "45.170.289/0001-25", "CF-1", base),
		novoCupom("2", "45.170.289/0001-25", "CF-1", base.Add(time.Hour)),
	})
	r := servidorTeste(&apiCompleta{}, store, nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/cupons/2", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		ID        string              `json:"id"`
		Duplicata cupom.InfoDuplicata `json:"duplicata"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2", resp.ID)
	assert.True(t, resp.Duplicata.Duplicado)
	assert.False(t, resp.Duplicata.Primeiro)
	assert.Equal(t, 2, resp.Duplicata.TotalDuplicatas)
}

func TestCarregarCuponsDegradaParaOffline(t *testing.T) {
	store := cupom.NovoStore()
	store.DefinirTodos([]cupom.CupomFiscal{novoCupom("1", "45.170.289/0001-25", "CF-1", base)})

	log := logrus.New()
	log.SetOutput(io.Discard)
	api := &apiCompleta{listarErro: fmt.Errorf("%w: connection refused", cupom.ErrIndisponivel)}
	h := cupom.NewHandler(store, api, nil, logrus.NewEntry(log))

	require.NoError(t, h.CarregarCupons(context.Background()))
	assert.True(t, store.Offline())
	assert.Zero(t, store.Tamanho(), "modo offline troca a coleção por vazia")
}
