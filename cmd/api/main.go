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

	"github.com/spatrax/spatrax-api/internal/application/usecase"
	"github.com/spatrax/spatrax-api/internal/infrastructure/cache"
	infraemail "github.com/spatrax/spatrax-api/internal/infrastructure/email"
	infrapdf "github.com/spatrax/spatrax-api/internal/infrastructure/pdf"
	"github.com/spatrax/spatrax-api/internal/infrastructure/postgres"
	httpRouter "github.com/spatrax/spatrax-api/internal/interfaces/http"
	"github.com/spatrax/spatrax-api/pkg/config"
	"github.com/spatrax/spatrax-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	kv, err := cache.NewRedisKV(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	defer kv.Close()
	cacheSvc := cache.NewService(kv, time.Duration(cfg.Cache.TTLMinutes)*time.Minute, log)

	userRepo := postgres.NewUserRepository(pool)
	establishmentRepo := postgres.NewEstablishmentRepository(pool)
	logRepo := postgres.NewLogRepository(pool)
	inviteRepo := postgres.NewInviteRepository(pool)

	emailSender := infraemail.NewResendSender(cfg.Email, log)
	logSheetGen := infrapdf.NewMarotoLogSheetGenerator()

	userUC := usecase.NewUserUseCase(userRepo, cacheSvc)
	establishmentUC := usecase.NewEstablishmentUseCase(userUC, establishmentRepo, userRepo, cacheSvc)
	teamUC := usecase.NewTeamUseCase(userUC, userRepo, cacheSvc)
	logUC := usecase.NewLogUseCase(userUC, establishmentUC, logRepo, userRepo, cacheSvc)
	exportUC := usecase.NewExportUseCase(userUC, establishmentUC, logUC, logSheetGen)
	inviteUC := usecase.NewInviteUseCase(userUC, establishmentUC, inviteRepo, emailSender)
	dashboardUC := usecase.NewDashboardUseCase(establishmentUC, teamUC, logUC)
	onboardingUC := usecase.NewOnboardingUseCase(userRepo, inviteRepo, emailSender, log)

	webhookHandler, err := httpRouter.NewWebhookHandler(cfg.Webhook.SigningSecret, onboardingUC, log)
	if err != nil {
		log.Fatal().Err(err).Msg("signing secret del webhook inválido")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestIDMiddleware())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "SpaTrax API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		UserUC:          userUC,
		EstablishmentUC: establishmentUC,
		TeamUC:          teamUC,
		LogUC:           logUC,
		ExportUC:        exportUC,
		InviteUC:        inviteUC,
		DashboardUC:     dashboardUC,
		WebhookHandler:  webhookHandler,
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

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
