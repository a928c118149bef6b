package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/itamind/descongela-api/internal/application/auth"
	"github.com/itamind/descongela-api/internal/application/forecast"
	"github.com/itamind/descongela-api/internal/application/retirada"
	infrapdf "github.com/itamind/descongela-api/internal/infrastructure/pdf"
	"github.com/itamind/descongela-api/internal/infrastructure/postgres"
	"github.com/itamind/descongela-api/internal/infrastructure/prophet"
	httpRouter "github.com/itamind/descongela-api/internal/interfaces/http"
	"github.com/itamind/descongela-api/pkg/config"
	"github.com/itamind/descongela-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	retiradaRepo := postgres.NewRetiradaRepository(pool)
	previsaoRepo := postgres.NewPrevisaoRepository(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	retiradaUC := retirada.NewUseCase(retiradaRepo, log)

	// Colaborador externo de previsão: Prophet via processo Python.
	// O runner serve também de provedor do histórico padrão (CSV em disco).
	runner := prophet.NewRunner(cfg.Forecast)
	cache := forecast.NewCache(runner, runner, cfg.Forecast.TTL(), log)
	previsaoUC := forecast.NewUseCase(cache, runner, previsaoRepo, log)
	relatorioDiarioUC := forecast.NewRelatorioDiarioUseCase(cache, retiradaRepo)

	pdfGenerator := infrapdf.NewRelatorioPDFGenerator()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI em local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Descongela API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		RetiradaUC:      retiradaUC,
		PrevisaoUC:      previsaoUC,
		RelatorioDiario: relatorioDiarioUC,
		PDFGen:          pdfGenerator,
		JWTSecret:       cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("encerramento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
