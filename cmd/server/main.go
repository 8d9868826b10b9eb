package main

import (
	"context"
	"errors"
	"log"
	"runtime"
	"time"

	"github.com/fadilmartias/stress-manometer/internal/config"
	"github.com/fadilmartias/stress-manometer/internal/domain/fiber/handler"
	"github.com/fadilmartias/stress-manometer/internal/middleware"
	"github.com/fadilmartias/stress-manometer/internal/repository"
	"github.com/fadilmartias/stress-manometer/internal/service"
	"github.com/fadilmartias/stress-manometer/internal/usecase"
	"github.com/fadilmartias/stress-manometer/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	ctx := context.Background()
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()
	util.DevMode = !appConfig.IsProduction()

	profile, err := config.LoadReportProfile(appConfig.ProfilePath)
	if err != nil {
		log.Fatal(err)
	}

	app := fiber.New(fiber.Config{
		AppName: appConfig.Name,
		// room for the survey and a logo in one form
		BodyLimit: 2 * appConfig.UploadMaxMB << 20,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}
			return util.ErrorResponse(c, util.ErrorResponseFormat{Code: code, Message: message}, err)
		},
	})
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:request_id} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !appConfig.IsProduction(),
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.IsProduction()
		},
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
		// the upload page carries an inline script
		ContentSecurityPolicy: "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'",
	}))
	app.Use(middleware.RateLimiter(50, 1*time.Minute))

	provider, err := service.NewNarrativeProvider(ctx,
		config.LoadNarrativeConfig(),
		config.LoadGeminiConfig(),
		config.LoadOpenRouterConfig(),
	)
	if err != nil {
		log.Fatal(err)
	}
	narrative := service.NewNarrativeService(provider, profile.Benchmarks, config.LoadNarrativeConfig().Timeout)
	renderer := service.NewChromePDFService(config.LoadRendererConfig())
	datasets := repository.NewDatasetRepository(appConfig.DatasetTTL)

	uc := usecase.NewReportUsecase(datasets, narrative, renderer, profile)
	handler := handler.NewReportHandler(uc, appConfig.UploadMaxMB)
	handler.RegisterRoutes(app)

	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			log.Printf("Active goroutines: %d, datasets held: %d", runtime.NumGoroutine(), datasets.Len())
		}
	}()

	log.Println("Server running on ", appConfig.Port)
	if err := app.Listen(appConfig.Port); err != nil {
		log.Fatal(err)
	}
}
