package dto

import (
	"github.com/shopspring/decimal"
	"github.com/itamind/descongela-api/internal/domain/entity"
)

// CalcularRetiradaRequest planejamento: quanto retirar do freezer para obter
// a quantidade líquida prevista, compensando a perda base.
type CalcularRetiradaRequest struct {
	QuantidadePrevista *decimal.Decimal `json:"quantidade_prevista"`
	PercentualPerda    *decimal.Decimal `json:"percentual_perda"`
}

// CalcularRetiradaResponse resultado do planejamento.
type CalcularRetiradaResponse struct {
	RetiradaKg decimal.Decimal `json:"retirada_kg"`
}

// CalcularIdadeLoteRequest classifica o intervalo retirada→venda no ciclo.
type CalcularIdadeLoteRequest struct {
	DataRetirada string `json:"data_retirada"`
	DataVenda    string `json:"data_venda"`
}

// CalcularIdadeLoteResponse rótulo do dia do ciclo.
type CalcularIdadeLoteResponse struct {
	IdadeLote string `json:"idade_lote"`
}

// ObterEstagioLoteRequest estágio humano de um lote retirado na data informada.
type ObterEstagioLoteRequest struct {
	DataRetirada string `json:"data_retirada"`
}

// ObterEstagioLoteResponse rótulo do estágio.
type ObterEstagioLoteResponse struct {
	EstagioLote string `json:"estagio_lote"`
}

// PrevisaoCustomRequest geração de previsão com histórico fornecido pelo chamador.
type PrevisaoCustomRequest struct {
	CSVData string `json:"csvData"`
}

// PrevisaoResponse resultado de uma geração (default ou custom).
type PrevisaoResponse struct {
	Fonte    string                   `json:"fonte"` // "cache" ou "fresh"
	GeradaEm string                   `json:"gerada_em"`
	Produtos []entity.PrevisaoProduto `json:"produtos"`
}

// PrevisaoAceitaResponse sinal de "tente de novo": já há geração em andamento.
type PrevisaoAceitaResponse struct {
	Accepted bool   `json:"accepted"`
	Message  string `json:"message"`
}

// PrevisaoSalvaResponse metadados de uma previsão persistida.
type PrevisaoSalvaResponse struct {
	ID           string                   `json:"id"`
	GeradaEm     string                   `json:"gerada_em"`
	VersaoModelo string                   `json:"versao_modelo"`
	Parametros   map[string]any           `json:"parametros_modelo,omitempty"`
	Produtos     []entity.PrevisaoProduto `json:"produtos"`
}

// ListarPrevisoesRequest filtros para previsões salvas (query string).
type ListarPrevisoesRequest struct {
	SKU        int    `query:"sku"`
	DataInicio string `query:"data_inicio"`
	DataFim    string `query:"data_fim"`
	PageRequest
}

// ListaPrevisoesResponse página de previsões salvas.
type ListaPrevisoesResponse struct {
	Total     int64                   `json:"total"`
	Page      int                     `json:"page"`
	Limit     int                     `json:"limit"`
	Previsoes []PrevisaoSalvaResponse `json:"previsoes"`
}

// RelatorioDiarioResponse visão operacional do dia para um produto.
// Campos nulos indicam ausência de previsão para a data necessária;
// o relatório parcial é preferível à falha total.
type RelatorioDiarioResponse struct {
	ProdutoID           int              `json:"id_produto"`
	DataAlvo            string           `json:"data_alvo"`
	KgARetirarHoje      *decimal.Decimal `json:"kg_a_retirar_hoje"`
	KgDescongelando     *decimal.Decimal `json:"kg_descongelando"`
	KgDisponivelBruto   decimal.Decimal  `json:"kg_disponivel_bruto"`
	KgDisponivelLiquido decimal.Decimal  `json:"kg_disponivel_liquido"`
}

// FromPrevisao converte a entidade persistida para o DTO de resposta.
func FromPrevisao(p *entity.Previsao) PrevisaoSalvaResponse {
	return PrevisaoSalvaResponse{
		ID:           p.ID,
		GeradaEm:     p.GeradaEm.Format("2006-01-02T15:04:05Z07:00"),
		VersaoModelo: p.VersaoModelo,
		Parametros:   p.Parametros,
		Produtos:     p.Produtos,
	}
}
