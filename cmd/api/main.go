// @title ExamCraft API
// @version 1.0
// @description Question bank and multi-set exam paper generator.
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "examcraft/cmd/api/docs"
	"examcraft/internal/adapter"
	"examcraft/internal/adapter/pdf"
	"examcraft/internal/cache"
	"examcraft/internal/config"
	"examcraft/internal/database"
	"examcraft/internal/domain"
	"examcraft/internal/handler"
	"examcraft/internal/logger"
	"examcraft/internal/middleware"
	"examcraft/internal/render"
	"examcraft/internal/repository"
	"examcraft/internal/service"
	"examcraft/internal/util"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

// authLimiter throttles the credential endpoints per client IP.
func authLimiter(cfg config.AuthConfig) fiber.Handler {
	if cfg.RateLimitMax <= 0 {
		return nil
	}
	return limiter.New(limiter.Config{
		Max:        cfg.RateLimitMax,
		Expiration: cfg.RateLimitWindow,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(middleware.ErrorResponse{
				Code:    "RATE_LIMITED",
				Message: "Too many attempts, try again later",
				Status:  fiber.StatusTooManyRequests,
			})
		},
	})
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	db, err := database.NewDB(cfg)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	if err := database.RunMigrations(db); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Redis is optional: without it exports are rendered on every request.
	var appCache domain.Cache
	var cachePinger handler.Pinger
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			appLogger.Warn("Redis unavailable, continuing without cache", zap.Error(err))
		} else {
			defer redisClient.Close()
			appCache = adapter.NewRedisCacheAdapter(redisClient)
			cachePinger = appCache
			appLogger.Info("Successfully connected to Redis")
		}
	}

	policy, err := domain.ParseVariantPolicy(cfg.Paper.VariantPolicy)
	if err != nil {
		appLogger.Fatal("Invalid paper configuration", zap.Error(err))
	}

	renderer, err := render.NewRenderer(render.Institution{
		Name:    cfg.Export.InstitutionName,
		Tagline: cfg.Export.InstitutionTagline,
	})
	if err != nil {
		appLogger.Fatal("Failed to load paper template", zap.Error(err))
	}
	var pdfRenderer domain.PDFRenderer
	if cfg.Export.PDFEnabled {
		pdfRenderer = pdf.NewChromeRenderer(cfg.Export.RenderTimeout)
	}

	// Repositories
	txManager := repository.NewTransactionManagerAdapter(db)
	subjectRepo := repository.NewSubjectDatabaseAdapter(db)
	questionRepo := repository.NewQuestionDatabaseAdapter(db)
	paperRepo := repository.NewPaperDatabaseAdapter(db)
	userRepo := repository.NewUserDatabaseAdapter(db)

	// Services
	authService, err := service.NewAuthService(userRepo, cfg)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}
	userService := service.NewUserService(userRepo)
	subjectService := service.NewSubjectService(subjectRepo)
	questionService := service.NewQuestionService(questionRepo, subjectRepo)
	importService := service.NewImportService(txManager, questionRepo, subjectRepo)
	generator := service.NewPaperGenerator(txManager, subjectRepo, questionRepo, paperRepo,
		util.NewLockedRand(cfg.Paper.RandomSeed), policy)
	paperService := service.NewPaperService(paperRepo, questionRepo, appCache)
	exportService := service.NewExportService(paperService, renderer, pdfRenderer, appCache, cfg.Export.CacheTTL, cfg.Export.RenderTimeout)
	statsService := service.NewStatsService(subjectRepo, questionRepo, paperRepo, appCache)
	appLogger.Info("Services initialized",
		zap.String("variant_policy", string(policy)),
		zap.Bool("pdf_enabled", cfg.Export.PDFEnabled),
		zap.Bool("cache_enabled", appCache != nil))

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
		MaxAge:       300,
	}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)

	handler.RegisterRoutes(app, handler.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		User:      handler.NewUserHandler(userService),
		Subject:   handler.NewSubjectHandler(subjectService, questionService),
		Question:  handler.NewQuestionHandler(questionService, importService),
		Paper:     handler.NewPaperHandler(generator, paperService, exportService),
		Dashboard: handler.NewDashboardHandler(statsService),
		Health: handler.NewHealthHandler(handler.PingFunc(func(ctx context.Context) error {
			return database.Ping(ctx, db)
		}), cachePinger),
	}, authService, authLimiter(cfg.Auth))

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
