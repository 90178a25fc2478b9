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

	appanalytics "github.com/jhoicas/seller-analytics/internal/application/analytics"
	"github.com/jhoicas/seller-analytics/internal/application/ports"
	"github.com/jhoicas/seller-analytics/internal/domain/analytics"
	inframarketing "github.com/jhoicas/seller-analytics/internal/infrastructure/marketing"
	infrapdf "github.com/jhoicas/seller-analytics/internal/infrastructure/pdf"
	"github.com/jhoicas/seller-analytics/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/seller-analytics/internal/interfaces/http"
	"github.com/jhoicas/seller-analytics/pkg/config"
	"github.com/jhoicas/seller-analytics/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Int("tz_offset_hours", cfg.Analytics.TZOffsetHours).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	repos := appanalytics.ReportRepositories{
		Stores:   postgres.NewStoreRepository(pool),
		Orders:   postgres.NewOrderRepository(pool),
		Costs:    postgres.NewProductCostRepository(pool),
		Expenses: postgres.NewExpenseRepository(pool),
	}

	// Sin MARKETING_BASE_URL el reporte sale sin datos de publicidad.
	var campaignSource ports.CampaignSource
	if cfg.Marketing.BaseURL != "" {
		campaignSource = inframarketing.NewClient(
			cfg.Marketing.BaseURL,
			cfg.Marketing.Login,
			cfg.Marketing.Password,
			time.Duration(cfg.Marketing.TimeoutSeconds)*time.Second,
		)
	} else {
		log.Warn().Msg("MARKETING_BASE_URL vacío: publicidad deshabilitada")
	}
	marketingSvc := appanalytics.NewMarketingService(
		campaignSource,
		inframarketing.NewMemorySessionStore(),
		log,
		appanalytics.MarketingOptions{
			WindowDays:  cfg.Marketing.WindowDays,
			Concurrency: cfg.Marketing.Concurrency,
			LoadTimeout: time.Duration(cfg.Marketing.LoadTimeoutSeconds) * time.Second,
		},
	)

	reportUC := appanalytics.NewReportUseCase(
		repos,
		marketingSvc,
		infrapdf.NewMarotoReportGenerator(),
		log,
		analytics.Options{
			OffsetHours:   cfg.Analytics.TZOffsetHours,
			TopProducts:   cfg.Analytics.TopProducts,
			PendingLimit:  cfg.Analytics.PendingLimit,
			ReturnedLimit: cfg.Analytics.ReturnedLimit,
		},
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 60,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Seller Analytics API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Reports:   reportUC,
		Log:       log,
		JWTSecret: cfg.JWT.Secret,
		AppName:   cfg.App.Name,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
