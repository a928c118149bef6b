package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/itamind/descongela-api/internal/application/dto"
	"github.com/itamind/descongela-api/internal/application/forecast"
	"github.com/itamind/descongela-api/internal/domain"
	"github.com/itamind/descongela-api/internal/domain/lote"
)

// PrevisaoHandler trata previsões de venda, calculadoras de planejamento e o
// relatório diário (protegido).
type PrevisaoHandler struct {
	uc        *forecast.UseCase
	relDiario *forecast.RelatorioDiarioUseCase
}

// NewPrevisaoHandler constrói o handler.
func NewPrevisaoHandler(uc *forecast.UseCase, relDiario *forecast.RelatorioDiarioUseCase) *PrevisaoHandler {
	return &PrevisaoHandler{uc: uc, relDiario: relDiario}
}

// Default godoc
// @Summary      Previsão default (com cache)
// @Tags         previsao
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PrevisaoResponse
// @Success      202  {object}  dto.PrevisaoAceitaResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/previsao [get]
func (h *PrevisaoHandler) Default(c *fiber.Ctx) error {
	res, err := h.uc.Default(c.Context(), GetUserID(c))
	if err != nil {
		if errors.Is(err, domain.ErrGeracaoEmAndamento) {
			return c.Status(fiber.StatusAccepted).JSON(dto.PrevisaoAceitaResponse{
				Accepted: true,
				Message:  "geração de previsão em andamento; tente novamente em instantes",
			})
		}
		return respondErro(c, err)
	}
	return c.JSON(previsaoResponse(res))
}

// Custom godoc
// @Summary      Previsão com histórico fornecido pelo chamador
// @Tags         previsao
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PrevisaoCustomRequest  true  "Histórico em CSV (ds,y,sku)"
// @Success      200   {object}  dto.PrevisaoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/previsao/custom [post]
func (h *PrevisaoHandler) Custom(c *fiber.Ctx) error {
	var in dto.PrevisaoCustomRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	res, err := h.uc.Custom(c.Context(), GetUserID(c), in.CSVData)
	if err != nil {
		return respondErro(c, err)
	}
	return c.JSON(previsaoResponse(res))
}

// CalcularRetirada godoc
// @Summary      Quanto retirar do freezer para a venda prevista
// @Tags         previsao
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CalcularRetiradaRequest  true  "Quantidade prevista e perda opcional"
// @Success      200   {object}  dto.CalcularRetiradaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/previsao/calcular-retirada [post]
func (h *PrevisaoHandler) CalcularRetirada(c *fiber.Ctx) error {
	var in dto.CalcularRetiradaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.QuantidadePrevista == nil || in.QuantidadePrevista.IsNegative() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantidade_prevista é obrigatória e não pode ser negativa"})
	}
	perda := lote.PercentualPerdaBase
	if in.PercentualPerda != nil {
		perda = *in.PercentualPerda
	}
	bruta, err := lote.QuantidadeBruta(*in.QuantidadePrevista, perda)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "percentual_perda deve ser menor que 100"})
	}
	return c.JSON(dto.CalcularRetiradaResponse{RetiradaKg: bruta})
}

// CalcularIdadeLote godoc
// @Summary      Classificar o intervalo retirada até venda no ciclo
// @Tags         previsao
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CalcularIdadeLoteRequest  true  "Datas YYYY-MM-DD"
// @Success      200   {object}  dto.CalcularIdadeLoteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/previsao/calcular-idade-lote [post]
func (h *PrevisaoHandler) CalcularIdadeLote(c *fiber.Ctx) error {
	var in dto.CalcularIdadeLoteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	dataRetirada, err := dto.ParseData(in.DataRetirada)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "data_retirada inválida (YYYY-MM-DD)"})
	}
	dataVenda, err := dto.ParseData(in.DataVenda)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "data_venda inválida (YYYY-MM-DD)"})
	}
	return c.JSON(dto.CalcularIdadeLoteResponse{IdadeLote: lote.RotuloCiclo(dataRetirada, dataVenda)})
}

// ObterEstagioLote godoc
// @Summary      Estágio humano de um lote retirado na data informada
// @Tags         previsao
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ObterEstagioLoteRequest  true  "Data YYYY-MM-DD"
// @Success      200   {object}  dto.ObterEstagioLoteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/previsao/estagio-lote [post]
func (h *PrevisaoHandler) ObterEstagioLote(c *fiber.Ctx) error {
	var in dto.ObterEstagioLoteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	dataRetirada, err := dto.ParseData(in.DataRetirada)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "data_retirada inválida (YYYY-MM-DD)"})
	}
	return c.JSON(dto.ObterEstagioLoteResponse{EstagioLote: lote.RotuloEstagio(dataRetirada, time.Now())})
}

// ListarSalvas godoc
// @Summary      Listar previsões salvas
// @Tags         previsao
// @Security     Bearer
// @Produce      json
// @Param        sku          query  int     false  "Filtrar por SKU"
// @Param        data_inicio  query  string  false  "YYYY-MM-DD"
// @Param        data_fim     query  string  false  "YYYY-MM-DD"
// @Param        page         query  int     false  "Página"  default(1)
// @Param        limit        query  int     false  "Limite"  default(10)
// @Success      200  {object}  dto.ListaPrevisoesResponse
// @Router       /api/previsao/salvas [get]
func (h *PrevisaoHandler) ListarSalvas(c *fiber.Ctx) error {
	var in dto.ListarPrevisoesRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parâmetros de consulta inválidos"})
	}
	previsoes, total, err := h.uc.ListarSalvas(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondErro(c, err)
	}
	out := dto.ListaPrevisoesResponse{
		Total:     total,
		Page:      in.Page,
		Limit:     in.Limit,
		Previsoes: make([]dto.PrevisaoSalvaResponse, 0, len(previsoes)),
	}
	for _, p := range previsoes {
		out.Previsoes = append(out.Previsoes, dto.FromPrevisao(p))
	}
	return c.JSON(out)
}

// ObterSalva godoc
// @Summary      Obter previsão salva
// @Tags         previsao
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID da previsão"
// @Success      200  {object}  dto.PrevisaoSalvaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/previsao/salvas/{id} [get]
func (h *PrevisaoHandler) ObterSalva(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id é obrigatório"})
	}
	p, err := h.uc.ObterSalva(c.Context(), GetUserID(c), id)
	if err != nil {
		return respondErro(c, err)
	}
	return c.JSON(dto.FromPrevisao(p))
}

// RemoverSalva godoc
// @Summary      Remover previsão salva
// @Tags         previsao
// @Security     Bearer
// @Param        id  path  string  true  "ID da previsão"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/previsao/salvas/{id} [delete]
func (h *PrevisaoHandler) RemoverSalva(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id é obrigatório"})
	}
	if err := h.uc.RemoverSalva(c.Context(), GetUserID(c), id); err != nil {
		return respondErro(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RelatorioDiario godoc
// @Summary      Relatório operacional do dia para um produto
// @Tags         previsao
// @Security     Bearer
// @Produce      json
// @Param        id_produto  query  int     true   "Produto"
// @Param        data_alvo   query  string  false  "YYYY-MM-DD (default hoje)"
// @Success      200  {object}  dto.RelatorioDiarioResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/previsao/relatorio-diario [get]
func (h *PrevisaoHandler) RelatorioDiario(c *fiber.Ctx) error {
	produtoID := c.QueryInt("id_produto", 0)
	dataAlvo := time.Now()
	if s := c.Query("data_alvo"); s != "" {
		t, err := dto.ParseData(s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "data_alvo inválida (YYYY-MM-DD)"})
		}
		dataAlvo = t
	}
	rel, err := h.relDiario.Montar(c.Context(), GetUserID(c), produtoID, dataAlvo)
	if err != nil {
		return respondErro(c, err)
	}
	return c.JSON(rel)
}

func previsaoResponse(res *forecast.Resultado) dto.PrevisaoResponse {
	return dto.PrevisaoResponse{
		Fonte:    res.Fonte,
		GeradaEm: res.GeradaEm.Format(time.RFC3339),
		Produtos: res.Produtos,
	}
}
