package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/rodrigolessa1980/Cupom-Transporte/internal/cliente"
	"github.com/rodrigolessa1980/Cupom-Transporte/internal/empresa"
	"github.com/rodrigolessa1980/Cupom-Transporte/internal/itemproibido"
	"github.com/rodrigolessa1980/Cupom-Transporte/internal/motorista"
	"github.com/rodrigolessa1980/Cupom-Transporte/internal/usuario"
)

// ===== EMPRESAS (TRANSPORTADORAS) =====

// ListarEmpresas busca todas as transportadoras cadastradas.
func (c *Client) ListarEmpresas(ctx context.Context) ([]empresa.Empresa, error) {
	var empresas []empresa.Empresa
	if err := c.fazer(ctx, "GET", "empresa", nil, &empresas); err != nil {
		return nil, fmt.Errorf("listar empresas: %w", err)
	}
	return empresas, nil
}

// CriarEmpresa cadastra uma transportadora. Quando o envelope não traz o
// registro criado, ele é recuperado pelo par (nome, CNPJ).
func (c *Client) CriarEmpresa(ctx context.Context, in *empresa.EmpresaInput) (*empresa.Empresa, error) {
	resp, err := c.executarComando(ctx, "POST", "empresa", in)
	if err != nil {
		return nil, fmt.Errorf("criar empresa: %w", err)
	}
	if len(resp.Data) > 0 {
		var nova empresa.Empresa
		if err := json.Unmarshal(resp.Data, &nova); err == nil && nova.ID != 0 {
			return &nova, nil
		}
	}

	empresas, err := c.ListarEmpresas(ctx)
	if err != nil {
		return nil, fmt.Errorf("empresa criada mas a releitura falhou: %w", err)
	}
	for i := range empresas {
		if empresas[i].Nome == in.Nome && empresas[i].CNPJ == in.CNPJ {
			return &empresas[i], nil
		}
	}
	return nil, fmt.Errorf("empresa criada mas não foi possível recuperar os dados")
}

// AtualizarEmpresa regrava a transportadora; o ID vai no corpo.
func (c *Client) AtualizarEmpresa(ctx context.Context, id int, in *empresa.EmpresaInput) (*empresa.Empresa, error) {
	corpo := struct {
		ID int `json:"id"`
		*empresa.EmpresaInput
	}{ID: id, EmpresaInput: in}
	if _, err := c.executarComando(ctx, "PUT", "empresa", corpo); err != nil {
		return nil, fmt.Errorf("atualizar empresa %d: %w", id, err)
	}

	empresas, err := c.ListarEmpresas(ctx)
	if err != nil {
		return nil, fmt.Errorf("empresa atualizada mas a releitura falhou: %w", err)
	}
	for i := range empresas {
		if empresas[i].ID == id {
			return &empresas[i], nil
		}
	}
	return nil, fmt.Errorf("empresa %d não encontrada após atualização", id)
}

// ExcluirEmpresa remove a transportadora; o ID vai no corpo.
func (c *Client) ExcluirEmpresa(ctx context.Context, id int) error {
	corpo := struct {
		ID int `json:"id"`
	}{ID: id}
	if _, err := c.executarComando(ctx, "DELETE", "empresa", corpo); err != nil {
		return fmt.Errorf("excluir empresa %d: %w", id, err)
	}
	return nil
}

// ===== USUÁRIOS DO SISTEMA =====

type apiUsuario struct {
	ID     int    `json:"id"`
	User   string `json:"user"`
	Nome   string `json:"nome"`
	Email  string `json:"email"`
	Senha  string `json:"senha"`
	Status int    `json:"status"`
}

func (a apiUsuario) paraUsuario() usuario.Usuario {
	return usuario.Usuario{
		ID:     a.ID,
		User:   a.User,
		Nome:   a.Nome,
		Email:  a.Email,
		Senha:  a.Senha,
		Status: a.Status,
	}
}

// ListarUsuarios busca todos os usuários do sistema, incluindo o campo de
// senha usado pela autenticação.
func (c *Client) ListarUsuarios(ctx context.Context) ([]usuario.Usuario, error) {
	var linhas []apiUsuario
	if err := c.fazer(ctx, "GET", "usuario", nil, &linhas); err != nil {
		return nil, fmt.Errorf("listar usuários: %w", err)
	}
	usuarios := make([]usuario.Usuario, 0, len(linhas))
	for _, linha := range linhas {
		usuarios = append(usuarios, linha.paraUsuario())
	}
	return usuarios, nil
}

// CriarUsuario cadastra um usuário e recupera o registro pelo par
// (user, nome) quando o envelope não o devolve.
func (c *Client) CriarUsuario(ctx context.Context, in *usuario.UsuarioInput) (*usuario.Usuario, error) {
	resp, err := c.executarComando(ctx, "POST", "usuario", in)
	if err != nil {
		return nil, fmt.Errorf("criar usuário: %w", err)
	}
	if len(resp.Data) > 0 {
		var linha apiUsuario
		if err := json.Unmarshal(resp.Data, &linha); err == nil && linha.ID != 0 {
			novo := linha.paraUsuario()
			return &novo, nil
		}
	}

	usuarios, err := c.ListarUsuarios(ctx)
	if err != nil {
		return nil, fmt.Errorf("usuário criado mas a releitura falhou: %w", err)
	}
	for i := range usuarios {
		if usuarios[i].User == in.User && usuarios[i].Nome == in.Nome {
			return &usuarios[i], nil
		}
	}
	return nil, fmt.Errorf("usuário criado mas não foi possível recuperar os dados")
}

// AtualizarUsuario regrava o usuário; o ID vai no corpo. Senha vazia é
// omitida para preservar a atual.
func (c *Client) AtualizarUsuario(ctx context.Context, id int, in *usuario.UsuarioInput) (*usuario.Usuario, error) {
	corpo := map[string]interface{}{
		"id":     id,
		"user":   in.User,
		"nome":   in.Nome,
		"email":  in.Email,
		"status": in.Status,
	}
	if in.Senha != "" {
		corpo["senha"] = in.Senha
	}
	if _, err := c.executarComando(ctx, "PUT", "usuario", corpo); err != nil {
		return nil, fmt.Errorf("atualizar usuário %d: %w", id, err)
	}

	usuarios, err := c.ListarUsuarios(ctx)
	if err != nil {
		return nil, fmt.Errorf("usuário atualizado mas a releitura falhou: %w", err)
	}
	for i := range usuarios {
		if usuarios[i].ID == id {
			return &usuarios[i], nil
		}
	}
	return nil, fmt.Errorf("usuário %d não encontrado após atualização", id)
}

// ExcluirUsuario remove o usuário; o ID vai no corpo.
func (c *Client) ExcluirUsuario(ctx context.Context, id int) error {
	corpo := struct {
		ID int `json:"id"`
	}{ID: id}
	if _, err := c.executarComando(ctx, "DELETE", "usuario", corpo); err != nil {
		return fmt.Errorf("excluir usuário %d: %w", id, err)
	}
	return nil
}

// ===== MOTORISTAS (VÍNCULO TELEFONE) =====

// ListarMotoristas busca os vínculos telefone↔motorista do servidor.
func (c *Client) ListarMotoristas(ctx context.Context) ([]motorista.Motorista, error) {
	var linhas []apiMotorista
	if err := c.fazer(ctx, "GET", "motorista", nil, &linhas); err != nil {
		return nil, fmt.Errorf("listar motoristas: %w", err)
	}
	motoristas := make([]motorista.Motorista, 0, len(linhas))
	for _, linha := range linhas {
		motoristas = append(motoristas, linha.paraMotorista())
	}
	return motoristas, nil
}

// CriarMotorista cadastra o vínculo e o recupera pelo telefone.
func (c *Client) CriarMotorista(ctx context.Context, in *motorista.MotoristaInput) (*motorista.Motorista, error) {
	if err := c.fazer(ctx, "POST", "motorista", in, nil); err != nil {
		return nil, fmt.Errorf("criar motorista: %w", err)
	}

	motoristas, err := c.ListarMotoristas(ctx)
	if err != nil {
		return nil, fmt.Errorf("motorista criado mas a releitura falhou: %w", err)
	}
	if encontrado := motorista.PorTelefone(motoristas, in.Telefone); encontrado != nil {
		return encontrado, nil
	}

	agora := time.Now()
	return &motorista.Motorista{
		ID:           uuid.NewString(),
		Nome:         in.Nome,
		Telefone:     in.Telefone,
		EmpresaID:    in.EmpresaID,
		CriadoEm:     agora,
		AtualizadoEm: agora,
	}, nil
}

// AtualizarMotorista regrava o vínculo; o ID vai no corpo.
func (c *Client) AtualizarMotorista(ctx context.Context, id string, in *motorista.MotoristaInput) (*motorista.Motorista, error) {
	numero, err := strconv.Atoi(id)
	if err != nil {
		return nil, fmt.Errorf("motorista %s ainda não sincronizado com o webhook", id)
	}
	corpo := struct {
		ID int `json:"id"`
		*motorista.MotoristaInput
	}{ID: numero, MotoristaInput: in}
	if err := c.fazer(ctx, "PUT", "motorista", corpo, nil); err != nil {
		return nil, fmt.Errorf("atualizar motorista %s: %w", id, err)
	}

	return &motorista.Motorista{
		ID:           id,
		Nome:         in.Nome,
		Telefone:     in.Telefone,
		EmpresaID:    in.EmpresaID,
		AtualizadoEm: time.Now(),
	}, nil
}

// ExcluirMotorista remove o vínculo; o ID vai no corpo. IDs sintéticos
// locais nunca chegaram ao servidor e são tratados como já removidos.
func (c *Client) ExcluirMotorista(ctx context.Context, id string) error {
	numero, err := strconv.Atoi(id)
	if err != nil {
		return nil
	}
	corpo := struct {
		ID int `json:"id"`
	}{ID: numero}
	if err := c.fazer(ctx, "DELETE", "motorista", corpo, nil); err != nil {
		return fmt.Errorf("excluir motorista %s: %w", id, err)
	}
	return nil
}

// ===== ITENS PROIBIDOS =====

// ListarItensProibidos busca as regras de itens não reembolsáveis.
func (c *Client) ListarItensProibidos(ctx context.Context) ([]itemproibido.ItemProibido, error) {
	var linhas []apiItemProibido
	if err := c.fazer(ctx, "GET", "item_proibido", nil, &linhas); err != nil {
		return nil, fmt.Errorf("listar itens proibidos: %w", err)
	}
	regras := make([]itemproibido.ItemProibido, 0, len(linhas))
	for _, linha := range linhas {
		regras = append(regras, linha.paraItemProibido())
	}
	return regras, nil
}

func payloadItemProibido(in *itemproibido.ItemProibidoInput) map[string]interface{} {
	corpo := map[string]interface{}{
		"descricao": in.Produto,
	}
	if in.Grupo != "" {
		corpo["categoria"] = in.Grupo
	} else {
		corpo["categoria"] = nil
	}
	return corpo
}

// CriarItemProibido cadastra a regra e a recupera pela descrição.
func (c *Client) CriarItemProibido(ctx context.Context, in *itemproibido.ItemProibidoInput) (*itemproibido.ItemProibido, error) {
	if err := c.fazer(ctx, "POST", "item_proibido", payloadItemProibido(in), nil); err != nil {
		return nil, fmt.Errorf("criar item proibido: %w", err)
	}

	regras, err := c.ListarItensProibidos(ctx)
	if err != nil {
		return nil, fmt.Errorf("item proibido criado mas a releitura falhou: %w", err)
	}
	for i := range regras {
		if regras[i].Produto == in.Produto && regras[i].Grupo == in.Grupo {
			return &regras[i], nil
		}
	}

	agora := time.Now()
	return &itemproibido.ItemProibido{
		ID:           uuid.NewString(),
		Produto:      in.Produto,
		Grupo:        in.Grupo,
		Motivo:       in.Motivo,
		CriadoEm:     agora,
		AtualizadoEm: agora,
	}, nil
}

// AtualizarItemProibido regrava a regra; o código vai no corpo.
func (c *Client) AtualizarItemProibido(ctx context.Context, id string, in *itemproibido.ItemProibidoInput) (*itemproibido.ItemProibido, error) {
	codigo, err := strconv.Atoi(id)
	if err != nil {
		return nil, fmt.Errorf("item proibido %s ainda não sincronizado com o webhook", id)
	}
	corpo := payloadItemProibido(in)
	corpo["codigo"] = codigo
	if err := c.fazer(ctx, "PUT", "item_proibido", corpo, nil); err != nil {
		return nil, fmt.Errorf("atualizar item proibido %s: %w", id, err)
	}

	return &itemproibido.ItemProibido{
		ID:           id,
		Produto:      in.Produto,
		Grupo:        in.Grupo,
		Motivo:       in.Motivo,
		AtualizadoEm: time.Now(),
	}, nil
}

// ExcluirItemProibido remove a regra; o código vai no corpo.
func (c *Client) ExcluirItemProibido(ctx context.Context, id string) error {
	codigo, err := strconv.Atoi(id)
	if err != nil {
		return nil
	}
	corpo := struct {
		Codigo int `json:"codigo"`
	}{Codigo: codigo}
	if err := c.fazer(ctx, "DELETE", "item_proibido", corpo, nil); err != nil {
		return fmt.Errorf("excluir item proibido %s: %w", id, err)
	}
	return nil
}

// ===== CLIENTES =====

// ListarClientes busca os clientes cadastrados no servidor.
func (c *Client) ListarClientes(ctx context.Context) ([]cliente.Cliente, error) {
	var clientes []cliente.Cliente
	if err := c.fazer(ctx, "GET", "cliente", nil, &clientes); err != nil {
		return nil, fmt.Errorf("listar clientes: %w", err)
	}
	return clientes, nil
}
