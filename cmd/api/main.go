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
	goredis "github.com/redis/go-redis/v9"

	_ "github.com/jhoicas/Cotizaciones-api/docs"
	"github.com/jhoicas/Cotizaciones-api/internal/application/auth"
	appquotation "github.com/jhoicas/Cotizaciones-api/internal/application/quotation"
	"github.com/jhoicas/Cotizaciones-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/Cotizaciones-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Cotizaciones-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/Cotizaciones-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/Cotizaciones-api/internal/interfaces/http"
	"github.com/jhoicas/Cotizaciones-api/pkg/config"
	"github.com/jhoicas/Cotizaciones-api/pkg/logger"
)

// @title                      Cotizaciones API
// @version                    1.0
// @description                API multi-empresa de cotizaciones: clientes, productos con tamaños, numeración y PDF.
// @BasePath                   /
// @securityDefinitions.apikey Bearer
// @in                         header
// @name                       Authorization
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
		Str("sequence_backend", cfg.Quotation.SequenceBackend).
		Str("numbering_scope", cfg.Quotation.NumberingScope).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	// Consecutivo: por defecto tabla quotation_sequences dentro de la tx; con redis, INCR compartido.
	var sequencer appquotation.Sequencer
	if cfg.Quotation.SequenceBackend == "redis" {
		rdb := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("conexión a Redis")
		}
		counter := infraredis.NewSequenceCounter(rdb)
		// Continúa la serie que ya llevaba la tabla; no retrocede llaves existentes.
		current, err := postgres.NewSequenceRepo(pool).Current(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("leer consecutivos de PostgreSQL")
		}
		seeded, err := counter.SeedFrom(ctx, current)
		if err != nil {
			log.Fatal().Err(err).Msg("sembrar consecutivos en Redis")
		}
		log.Info().Int("scopes", len(current)).Int("seeded", seeded).Msg("consecutivos sembrados en Redis")
		sequencer = counter
	}

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)
	quotationRepo := postgres.NewQuotationRepository(pool)
	txRunner := postgres.NewTxRunner(pool, sequencer)

	settingsUC := usecase.NewSettingsUseCase(settingsRepo, usecase.SettingsDefaults{
		Prefix:         cfg.Quotation.DefaultPrefix,
		CateringPrefix: cfg.Quotation.CateringPrefix,
		ValidityDays:   cfg.Quotation.ValidityDays,
	})
	quotationUC := appquotation.NewUseCase(
		txRunner, quotationRepo, clientRepo, productRepo, settingsUC,
		appquotation.Config{
			NumberingScope:             cfg.Quotation.NumberingScope,
			StrictStatus:               cfg.Quotation.StrictStatus,
			RejectDiscountOverSubtotal: cfg.Quotation.RejectDiscountOverSubtotal,
		},
		log.Zerolog(),
	)

	// PDF: representación gráfica de la cotización
	pdfUC := appquotation.NewPDFUseCase(quotationRepo, companyRepo, clientRepo, infrapdf.NewMarotoPDFGenerator())

	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Cotizaciones API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CompanyUC:   usecase.NewCompanyUseCase(companyRepo),
		UserUC:      usecase.NewUserUseCase(userRepo),
		ClientUC:    usecase.NewClientUseCase(clientRepo),
		ProductUC:   usecase.NewProductUseCase(productRepo),
		SettingsUC:  settingsUC,
		QuotationUC: quotationUC,
		PDFUC:       pdfUC,
		JWTSecret:   cfg.JWT.Secret,
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
