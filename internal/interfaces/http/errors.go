package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/itamind/descongela-api/internal/application/dto"
	"github.com/itamind/descongela-api/internal/domain"
)

// respondErro mapeia os erros sentinela do domínio para respostas HTTP.
// Casos com semântica própria de rota (202 de geração em andamento)
// são tratados antes, no handler.
func respondErro(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "dados inválidos"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "autenticação obrigatória"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "registro não encontrado"})
	case errors.Is(err, domain.ErrPrevisaoIndisponivel):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "FORECAST_UNAVAILABLE", Message: "não foi possível gerar a previsão"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
