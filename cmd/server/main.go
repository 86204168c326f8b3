package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fadilmartias/talent-matcher/internal/cache"
	"github.com/fadilmartias/talent-matcher/internal/config"
	"github.com/fadilmartias/talent-matcher/internal/domain/fiber/handler"
	applog "github.com/fadilmartias/talent-matcher/internal/logger"
	"github.com/fadilmartias/talent-matcher/internal/middleware"
	"github.com/fadilmartias/talent-matcher/internal/model"
	"github.com/fadilmartias/talent-matcher/internal/repository"
	"github.com/fadilmartias/talent-matcher/internal/service"
	"github.com/fadilmartias/talent-matcher/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	ctx := context.Background()
	if err := godotenv.Load(); err != nil {
		fmt.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()
	matchingConfig := config.LoadMatchingConfig()

	log, err := applog.New(appConfig.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	app := fiber.New(fiber.Config{
		AppName: appConfig.Name,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}
			return ctx.Status(code).JSON(fiber.Map{"error": message})
		},
	})
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: appConfig.Env != "production",
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.Env != "production"
		},
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.RateLimiter(50, 1*time.Minute))

	db := ConnectDB(log)

	jobRepo := repository.NewJobRepository(db)
	candidateRepo := repository.NewCandidateRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)
	vectorRepo := repository.NewVectorRepository(db)

	gemini, err := service.NewGeminiService(ctx, log)
	if err != nil {
		log.Fatal("gemini service init failed", zap.Error(err))
	}

	var provider service.EmbeddingProvider = gemini
	if config.LoadOpenRouterConfig().APIKey != "" && config.LoadGeminiConfig().APIKey == "" {
		provider = service.NewOpenRouterService(log)
	}

	embeddingCache := cache.NewTTLCache(matchingConfig.EmbeddingCacheTTL)
	completionCache := cache.NewTTLCache(matchingConfig.CompletionCacheTTL)

	embeddings := service.NewEmbeddingService(provider, vectorRepo, embeddingCache, log, matchingConfig.EmbeddingBatchSize)

	uc := usecase.NewMatchUsecase(
		jobRepo, candidateRepo, applicationRepo,
		embeddings, gemini,
		completionCache, log,
		matchingConfig.RetrievalBuffer,
		matchingConfig.RankingWorkers,
		matchingConfig.MaxApplications,
		matchingConfig.CompletionModel,
	)

	matchHandler := handler.NewMatchHandler(uc)
	matchHandler.RegisterRoutes(app)

	log.Info("server starting", zap.String("port", appConfig.Port))
	if err := app.Listen(appConfig.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func ConnectDB(log *zap.Logger) *gorm.DB {
	dbConfig := config.LoadDBConfig()
	appConfig := config.LoadAppConfig()

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		dbConfig.Host,
		dbConfig.User,
		dbConfig.Password,
		dbConfig.Name,
		dbConfig.Port,
		dbConfig.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("could not connect to database", zap.Error(err))
	}
	pgDB, err := db.DB()
	if err != nil {
		log.Fatal("could not get database instance", zap.Error(err))
	}
	if appConfig.Env != "production" {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(200)
		pgDB.SetConnMaxLifetime(time.Hour)
	}

	// pgvector must exist before the vector columns migrate
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		log.Fatal("could not enable pgvector extension", zap.Error(err))
	}
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		log.Fatal("could not enable uuid extension", zap.Error(err))
	}

	err = db.AutoMigrate(
		&model.JobPosting{},
		&model.Candidate{},
		&model.Application{},
		&model.VectorEntry{},
	)
	if err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}
	return db
}
