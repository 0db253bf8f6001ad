package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	_ "github.com/johnquangdev/voicenote/docs"
	"github.com/johnquangdev/voicenote/internal/adapter/handler"
	"github.com/johnquangdev/voicenote/internal/adapter/repository"
	"github.com/johnquangdev/voicenote/internal/infrastructure/cache"
	"github.com/johnquangdev/voicenote/internal/infrastructure/database"
	"github.com/johnquangdev/voicenote/internal/infrastructure/events"
	httpmw "github.com/johnquangdev/voicenote/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/voicenote/internal/infrastructure/scheduler"
	"github.com/johnquangdev/voicenote/internal/infrastructure/storage"
	"github.com/johnquangdev/voicenote/internal/usecase/auth"
	"github.com/johnquangdev/voicenote/internal/usecase/voicenote"
	pkgai "github.com/johnquangdev/voicenote/pkg/ai"
	"github.com/johnquangdev/voicenote/pkg/config"
	"github.com/johnquangdev/voicenote/pkg/jwt"
	pkglogger "github.com/johnquangdev/voicenote/pkg/logger"
	"github.com/johnquangdev/voicenote/pkg/textanalysis"
	pkgvalidator "github.com/johnquangdev/voicenote/pkg/validator"
)

// @title           Voicenote API
// @version         1.0
// @description     Voice note transcription with sentiment and emotion analysis

// @BasePath  /v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := pkglogger.New(cfg.Server.Environment, cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()
	e.HTTPErrorHandler = handler.ErrorHandler(logger)

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.RequestID())
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${id} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "Set-Cookie", "Cookie"},
		AllowCredentials: true,
	}))

	// Initialize dependencies
	logger.Info("🔧 Initializing dependencies...")

	// Initialize Database
	logger.Info("📦 Connecting to database...", zap.String("driver", cfg.Database.Driver))
	db, err := database.Open(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db)

	// Migrations run at startup only when explicitly enabled.
	// Production deployments apply them with `voicenote migrate`.
	if cfg.Database.AutoMigrate {
		if cfg.IsProduction() {
			logger.Fatal("DB_AUTO_MIGRATE is enabled in production; apply migrations with `voicenote migrate`")
		}
		logger.Info("🔄 Applying SQL migrations (development only) ...")
		if _, err := database.Migrate(db, cfg.Database.Driver, logger); err != nil {
			logger.Fatal("Failed to apply migrations", zap.Error(err))
		}
	} else {
		logger.Info("🔄 Skipping migrations; run `voicenote migrate` in CI/CD/production")
	}

	// Initialize reset token store
	var resetStore cache.Store
	switch cfg.Cache.Driver {
	case "redis":
		logger.Info("📦 Connecting to Redis...", zap.String("addr", cfg.GetRedisAddr()))
		redisClient, err := cache.NewRedisClient(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		resetStore = cache.NewRedisStore(redisClient, "voicenote:")
	default:
		logger.Warn("⚠️  Using in-memory token store (tokens are lost on restart)")
		memStore := cache.NewMemoryStore()
		defer memStore.Close()
		resetStore = memStore
	}

	// Initialize object storage
	var objects storage.ObjectStore
	switch cfg.Storage.Type {
	case "minio":
		logger.Info("🪣 Connecting to MinIO...", zap.String("endpoint", cfg.Storage.Endpoint), zap.String("bucket", cfg.Storage.BucketName))
		initCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		minioClient, err := storage.NewMinIOClient(initCtx, &cfg.Storage)
		cancel()
		if err != nil {
			logger.Fatal("Failed to initialize MinIO", zap.Error(err))
		}
		objects = minioClient
	default:
		logger.Warn("⚠️  Object storage disabled; recordings and charts are kept in memory")
		objects = storage.NewMemoryStore().WithBaseURL("/v1/media/")
	}

	// Initialize event publisher
	var publisher events.Publisher = events.NopPublisher{}
	if cfg.Events.URL != "" {
		logger.Info("📡 Connecting to NATS...", zap.String("url", cfg.Events.URL))
		natsPublisher, err := events.NewNATSPublisher(cfg.Events, logger)
		if err != nil {
			logger.Fatal("Failed to connect to NATS", zap.Error(err))
		}
		publisher = natsPublisher
	}
	defer publisher.Close()

	// Initialize repositories
	logger.Info("⚙️  Initializing repositories...")
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	voiceNoteRepo := repository.NewVoiceNoteRepository(db)

	// Initialize analyzer
	lexicon := textanalysis.DefaultLexicon()
	if cfg.Analysis.LexiconPath != "" {
		if lexicon, err = textanalysis.LoadLexicon(cfg.Analysis.LexiconPath); err != nil {
			logger.Fatal("Failed to load lexicon", zap.Error(err))
		}
		logger.Info("📖 Lexicon loaded", zap.String("path", cfg.Analysis.LexiconPath))
	}
	analyzer, err := textanalysis.NewAnalyzer(lexicon)
	if err != nil {
		logger.Fatal("Failed to build analyzer", zap.Error(err))
	}

	// Initialize transcription client
	logger.Info("🤖 Initializing AssemblyAI client...")
	transcriber := pkgai.NewAssemblyAIClient(cfg.Transcription, logger)
	if cfg.Transcription.APIKey == "" {
		logger.Warn("⚠️  ASSEMBLYAI_API_KEY is empty; audio submissions will report the service as unavailable")
	}

	// Initialize JWT manager
	logger.Info("🔑 Initializing JWT manager...")
	jwtManager := jwt.NewManager(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Initialize services
	authService := auth.NewService(userRepo, sessionRepo, jwtManager, resetStore, logger)
	voiceNoteService := voicenote.NewVoiceNoteService(
		analyzer,
		transcriber,
		voiceNoteRepo,
		objects,
		publisher,
		voicenote.Options{
			MaxAudioBytes: cfg.Server.MaxUploadBytes,
			URLExpiry:     cfg.Storage.PresignExpiry,
		},
		logger,
	)

	// Schedule maintenance jobs
	jobs := scheduler.New(logger)
	if cfg.Maintenance.SessionCleanupSchedule != "" {
		err := jobs.Register("session_cleanup", cfg.Maintenance.SessionCleanupSchedule, cfg.Maintenance.SessionCleanupTimeout,
			func(ctx context.Context) error {
				_, err := authService.CleanupSessions(ctx)
				return err
			})
		if err != nil {
			logger.Fatal("Failed to schedule session cleanup", zap.Error(err))
		}
	} else {
		logger.Info("Session cleanup disabled")
	}
	jobs.Start()

	// Setup router with handlers
	logger.Info("🛣️  Setting up routes...")
	router := handler.NewRouter(
		cfg,
		handler.NewAuth(authService, logger),
		handler.NewVoiceNote(voiceNoteService, cfg.Server.MaxUploadBytes, logger),
		httpmw.EchoAuth(authService),
	)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		logger.Info("🚀 Starting server",
			zap.String("addr", addr),
			zap.String("environment", cfg.Server.Environment),
		)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := jobs.Stop(ctx); err != nil {
		logger.Warn("Background jobs did not stop in time", zap.Error(err))
	}
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("❌ Server forced to shutdown", zap.Error(err))
		return
	}

	logger.Info("✅ Server stopped gracefully")
}
