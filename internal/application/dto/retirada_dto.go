package dto

import (
	"github.com/shopspring/decimal"
	"github.com/itamind/descongela-api/internal/domain/entity"
)

// CriarRetiradaRequest registro de uma nova retirada do freezer.
// Datas no formato YYYY-MM-DD. Lote e data de venda prevista são derivados se ausentes.
type CriarRetiradaRequest struct {
	ProdutoID         int             `json:"id_produto"`
	DataDecisao       string          `json:"data_decisao"`
	DataRetirada      string          `json:"data_retirada"`
	QuantidadeKg      decimal.Decimal `json:"quantidade_kg"`
	Lote              string          `json:"lote"`
	DataVendaPrevista string          `json:"data_venda_prevista"`
	Observacoes       string          `json:"observacoes"`
}

// AtualizarEstagioRequest atualização de estágio; vazio = recalcular automaticamente.
type AtualizarEstagioRequest struct {
	Estagio string `json:"estagio_atual"`
}

// RegistrarVendaRequest registro da venda de um lote.
type RegistrarVendaRequest struct {
	QuantidadeVendida decimal.Decimal `json:"quantidade_vendida"`
	DataVendaReal     string          `json:"data_venda_real"`
}

// ListarRetiradasRequest filtros de consulta (query string).
type ListarRetiradasRequest struct {
	ProdutoID  int    `query:"id_produto"`
	Estagio    string `query:"estagio"`
	Status     string `query:"status"`
	Lote       string `query:"lote"`
	DataInicio string `query:"data_inicio"`
	DataFim    string `query:"data_fim"`
	PageRequest
}

// RetiradaResponse retirada serializada para a API.
type RetiradaResponse struct {
	ID                string          `json:"id"`
	ProdutoID         int             `json:"id_produto"`
	DataDecisao       string          `json:"data_decisao"`
	DataRetirada      string          `json:"data_retirada"`
	QuantidadeKg      decimal.Decimal `json:"quantidade_kg"`
	Lote              string          `json:"lote"`
	DataVendaPrevista string          `json:"data_venda_prevista"`
	Estagio           string          `json:"estagio_atual"`
	IdadeDias         int             `json:"idade_dias"`
	Status            string          `json:"status"`
	QuantidadeVendida decimal.Decimal `json:"quantidade_vendida"`
	DataVendaReal     *string         `json:"data_venda_real,omitempty"`
	Observacoes       string          `json:"observacoes,omitempty"`
}

// InfoAtualResponse bloco de informações vivas de um lote (recalculadas na leitura).
type InfoAtualResponse struct {
	IdadeAtual                int             `json:"idade_atual"`
	EstagioAtual              string          `json:"estagio_atual"`
	NoPrazo                   bool            `json:"no_prazo"`
	QuantidadeLiquidaEstimada decimal.Decimal `json:"quantidade_liquida_estimada"`
}

// ResumoProdutoResponse linha do relatório por período.
type ResumoProdutoResponse struct {
	ProdutoID          int             `json:"id_produto"`
	TotalRetiradas     int64           `json:"total_retiradas"`
	QuantidadeRetirada decimal.Decimal `json:"quantidade_retirada"`
	QuantidadeVendida  decimal.Decimal `json:"quantidade_vendida"`
	QuantidadeEstoque  decimal.Decimal `json:"quantidade_em_estoque"`
}

// ListaRetiradasResponse página de retiradas.
type ListaRetiradasResponse struct {
	Total     int64              `json:"total"`
	Page      int                `json:"page"`
	Limit     int                `json:"limit"`
	Retiradas []RetiradaResponse `json:"retiradas"`
}

// ObterRetiradaResponse retirada mais o bloco de informações vivas.
type ObterRetiradaResponse struct {
	Retirada  RetiradaResponse  `json:"retirada"`
	InfoAtual InfoAtualResponse `json:"info_atual"`
}

// RelatorioPeriodoResponse relatório agregado do período.
type RelatorioPeriodoResponse struct {
	DataInicio              string                  `json:"data_inicio"`
	DataFim                 string                  `json:"data_fim"`
	Detalhes                []ResumoProdutoResponse `json:"detalhes"`
	TotalGeralRetiradas     int64                   `json:"total_geral_retiradas"`
	QuantidadeGeralRetirada decimal.Decimal         `json:"quantidade_geral_retirada"`
	QuantidadeGeralVendida  decimal.Decimal         `json:"quantidade_geral_vendida"`
}

// FromRetirada converte a entidade para o DTO de resposta.
func FromRetirada(r *entity.Retirada) RetiradaResponse {
	resp := RetiradaResponse{
		ID:                r.ID,
		ProdutoID:         r.ProdutoID,
		DataDecisao:       r.DataDecisao.Format(LayoutData),
		DataRetirada:      r.DataRetirada.Format(LayoutData),
		QuantidadeKg:      r.QuantidadeKg,
		Lote:              r.Lote,
		DataVendaPrevista: r.DataVendaPrevista.Format(LayoutData),
		Estagio:           r.Estagio,
		IdadeDias:         r.IdadeDias,
		Status:            r.Status,
		QuantidadeVendida: r.QuantidadeVendida,
		Observacoes:       r.Observacoes,
	}
	if r.DataVendaReal != nil {
		s := r.DataVendaReal.Format(LayoutData)
		resp.DataVendaReal = &s
	}
	return resp
}

// FromRetiradas converte uma lista de entidades.
func FromRetiradas(rs []*entity.Retirada) []RetiradaResponse {
	out := make([]RetiradaResponse, 0, len(rs))
	for _, r := range rs {
		out = append(out, FromRetirada(r))
	}
	return out
}
