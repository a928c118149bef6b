package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/itamind/descongela-api/internal/application/dto"
	"github.com/itamind/descongela-api/internal/application/retirada"
	"github.com/itamind/descongela-api/internal/infrastructure/pdf"
)

// RetiradaHandler trata o ciclo de vida das retiradas (protegido).
type RetiradaHandler struct {
	uc     *retirada.UseCase
	pdfGen *pdf.RelatorioPDFGenerator
}

// NewRetiradaHandler constrói o handler.
func NewRetiradaHandler(uc *retirada.UseCase, pdfGen *pdf.RelatorioPDFGenerator) *RetiradaHandler {
	return &RetiradaHandler{uc: uc, pdfGen: pdfGen}
}

// Criar godoc
// @Summary      Registrar retirada do freezer
// @Tags         retiradas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CriarRetiradaRequest  true  "Dados da retirada"
// @Success      201   {object}  dto.RetiradaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/retiradas [post]
func (h *RetiradaHandler) Criar(c *fiber.Ctx) error {
	var in dto.CriarRetiradaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	r, err := h.uc.Criar(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondErro(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromRetirada(r))
}

// Listar godoc
// @Summary      Listar retiradas
// @Tags         retiradas
// @Security     Bearer
// @Produce      json
// @Param        id_produto   query  int     false  "Produto"
// @Param        estagio      query  string  false  "Estágio"
// @Param        status       query  string  false  "Status"
// @Param        lote         query  string  false  "Lote"
// @Param        data_inicio  query  string  false  "YYYY-MM-DD"
// @Param        data_fim     query  string  false  "YYYY-MM-DD"
// @Param        page         query  int     false  "Página"  default(1)
// @Param        limit        query  int     false  "Limite"  default(10)
// @Success      200  {object}  dto.ListaRetiradasResponse
// @Router       /api/retiradas [get]
func (h *RetiradaHandler) Listar(c *fiber.Ctx) error {
	var in dto.ListarRetiradasRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parâmetros de consulta inválidos"})
	}
	registros, total, err := h.uc.Listar(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondErro(c, err)
	}
	return c.JSON(dto.ListaRetiradasResponse{
		Total:     total,
		Page:      in.Page,
		Limit:     in.Limit,
		Retiradas: dto.FromRetiradas(registros),
	})
}

// Obter godoc
// @Summary      Obter retirada com informações vivas
// @Tags         retiradas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID da retirada"
// @Success      200  {object}  dto.ObterRetiradaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/retiradas/{id} [get]
func (h *RetiradaHandler) Obter(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id é obrigatório"})
	}
	r, info, err := h.uc.Obter(c.Context(), GetUserID(c), id)
	if err != nil {
		return respondErro(c, err)
	}
	return c.JSON(dto.ObterRetiradaResponse{Retirada: dto.FromRetirada(r), InfoAtual: *info})
}

// AtualizarEstagio godoc
// @Summary      Recalcular ou sobrescrever o estágio de um lote
// @Tags         retiradas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID da retirada"
// @Param        body  body  dto.AtualizarEstagioRequest  true  "Estágio manual (vazio = recalcular)"
// @Success      200   {object}  dto.RetiradaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/retiradas/{id}/estagio [patch]
func (h *RetiradaHandler) AtualizarEstagio(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id é obrigatório"})
	}
	var in dto.AtualizarEstagioRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	r, err := h.uc.AtualizarEstagio(c.Context(), GetUserID(c), id, in.Estagio)
	if err != nil {
		return respondErro(c, err)
	}
	return c.JSON(dto.FromRetirada(r))
}

// RegistrarVenda godoc
// @Summary      Registrar venda de um lote
// @Tags         retiradas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID da retirada"
// @Param        body  body  dto.RegistrarVendaRequest  true  "Quantidade vendida e data"
// @Success      200   {object}  dto.RetiradaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/retiradas/{id}/venda [post]
func (h *RetiradaHandler) RegistrarVenda(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id é obrigatório"})
	}
	var in dto.RegistrarVendaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	r, err := h.uc.RegistrarVenda(c.Context(), GetUserID(c), id, in)
	if err != nil {
		return respondErro(c, err)
	}
	return c.JSON(dto.FromRetirada(r))
}

// Relatorio godoc
// @Summary      Relatório agregado por período
// @Tags         retiradas
// @Security     Bearer
// @Produce      json
// @Param        data_inicio  query  string  true   "YYYY-MM-DD"
// @Param        data_fim     query  string  true   "YYYY-MM-DD"
// @Param        id_produto   query  int     false  "Produto"
// @Success      200  {object}  dto.RelatorioPeriodoResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/retiradas/relatorio [get]
func (h *RetiradaHandler) Relatorio(c *fiber.Ctx) error {
	rel, err := h.uc.Relatorio(
		c.Context(), GetUserID(c),
		c.Query("data_inicio"), c.Query("data_fim"),
		c.QueryInt("id_produto", 0),
	)
	if err != nil {
		return respondErro(c, err)
	}
	return c.JSON(rel)
}

// RelatorioPDF godoc
// @Summary      Relatório por período em PDF
// @Tags         retiradas
// @Security     Bearer
// @Produce      application/pdf
// @Param        data_inicio  query  string  true   "YYYY-MM-DD"
// @Param        data_fim     query  string  true   "YYYY-MM-DD"
// @Param        id_produto   query  int     false  "Produto"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/retiradas/relatorio/pdf [get]
func (h *RetiradaHandler) RelatorioPDF(c *fiber.Ctx) error {
	rel, err := h.uc.Relatorio(
		c.Context(), GetUserID(c),
		c.Query("data_inicio"), c.Query("data_fim"),
		c.QueryInt("id_produto", 0),
	)
	if err != nil {
		return respondErro(c, err)
	}
	pdfBytes, err := h.pdfGen.GerarRelatorioPeriodo(rel, GetUserName(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PDF", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(
		`attachment; filename="relatorio_retiradas_%s_%s.pdf"`, rel.DataInicio, rel.DataFim,
	))
	return c.Send(pdfBytes)
}
