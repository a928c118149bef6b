package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/itamind/descongela-api/internal/application/auth"
	"github.com/itamind/descongela-api/internal/application/forecast"
	"github.com/itamind/descongela-api/internal/application/retirada"
	"github.com/itamind/descongela-api/internal/infrastructure/pdf"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	RetiradaUC      *retirada.UseCase
	PrevisaoUC      *forecast.UseCase
	RelatorioDiario *forecast.RelatorioDiarioUseCase
	PDFGen          *pdf.RelatorioPDFGenerator
	JWTSecret       string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rotas protegidas (exigem Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Retiradas (protegido)
	retiradas := protected.Group("/retiradas")
	retiradaHandler := NewRetiradaHandler(deps.RetiradaUC, deps.PDFGen)
	retiradas.Post("/", retiradaHandler.Criar)
	retiradas.Get("/", retiradaHandler.Listar)
	// rotas fixas antes de /:id
	retiradas.Get("/relatorio", retiradaHandler.Relatorio)
	retiradas.Get("/relatorio/pdf", retiradaHandler.RelatorioPDF)
	retiradas.Get("/:id", retiradaHandler.Obter)
	retiradas.Patch("/:id/estagio", retiradaHandler.AtualizarEstagio)
	retiradas.Post("/:id/venda", retiradaHandler.RegistrarVenda)

	// Previsões e calculadoras de planejamento (protegido)
	previsao := protected.Group("/previsao")
	previsaoHandler := NewPrevisaoHandler(deps.PrevisaoUC, deps.RelatorioDiario)
	previsao.Get("/", previsaoHandler.Default)
	previsao.Post("/custom", previsaoHandler.Custom)
	previsao.Post("/calcular-retirada", previsaoHandler.CalcularRetirada)
	previsao.Post("/calcular-idade-lote", previsaoHandler.CalcularIdadeLote)
	previsao.Post("/estagio-lote", previsaoHandler.ObterEstagioLote)
	previsao.Get("/relatorio-diario", previsaoHandler.RelatorioDiario)
	previsao.Get("/salvas", previsaoHandler.ListarSalvas)
	previsao.Get("/salvas/:id", previsaoHandler.ObterSalva)
	previsao.Delete("/salvas/:id", previsaoHandler.RemoverSalva)
}
