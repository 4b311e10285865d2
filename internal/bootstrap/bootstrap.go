package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/cems/internal/app/controllers"
	appMigrations "github.com/yigit/cems/internal/app/migrations"
	appRepos "github.com/yigit/cems/internal/app/repositories"
	"github.com/yigit/cems/internal/app/repositories/memory"
	"github.com/yigit/cems/internal/app/repositories/mongostore"
	appRoutes "github.com/yigit/cems/internal/app/routes"
	appServices "github.com/yigit/cems/internal/app/services"
	"github.com/yigit/cems/internal/config"
	"github.com/yigit/cems/internal/db"
	appMiddleware "github.com/yigit/cems/internal/middleware"
	pkgAuth "github.com/yigit/cems/internal/pkg/auth"
	"github.com/yigit/cems/internal/pkg/chatbot"
	"github.com/yigit/cems/internal/pkg/email"
	"github.com/yigit/cems/internal/pkg/filestorage"
	"github.com/yigit/cems/internal/pkg/logger"
	"github.com/yigit/cems/internal/pkg/websocket"
	"github.com/yigit/cems/internal/seed"
)

// Storage owns the repositories and the connections behind them
type Storage struct {
	Repos *appRepos.Repositories
	Pool  *pgxpool.Pool
	Mongo *db.MongoDB
}

// Close releases every open connection
func (s *Storage) Close() {
	if s.Mongo != nil {
		s.Mongo.Close()
	}
	if s.Pool != nil {
		s.Pool.Close()
	}
}

// Dependencies holds all the application dependencies
type Dependencies struct {
	Services       *appServices.Services
	JWTService     *pkgAuth.JWTService
	Hub            *websocket.Hub
	AuthMiddleware *appMiddleware.AuthMiddleware
	Handlers       *appRoutes.Handlers
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
// CONFIG_PATH overrides the default configs/config.yaml.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := config.GetEnv("CONFIG_PATH", filepath.Join("configs", "config.yaml"))
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	level := logger.ParseLevel(cfg.Logging.Level)
	logger.Configure(logger.Config{
		Level:  level,
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr := logger.Get()
	lgr.Info().Str("logLevel", string(level)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase opens the configured store, applies migrations and seeds
// default data. Chat transcripts move to MongoDB when chat.store is mongo.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*Storage, error) {
	storage := &Storage{}

	switch cfg.Database.Driver {
	case "memory":
		lgr.Warn().Msg("Using in-memory store; data is lost on restart")
		storage.Repos = memory.NewRepositories()
	default:
		lgr.Info().Msg("Establishing database connection...")
		database, err := db.NewPostgresDB(cfg)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to database")
			return nil, err
		}
		storage.Pool = database.Pool
		lgr.Info().Msg("Database connection successfully established.")

		if err := runMigrations(ctx, cfg.Database.MigrationsDir, storage.Pool, lgr); err != nil {
			storage.Close()
			return nil, err
		}
		storage.Repos = appRepos.NewRepositories(storage.Pool)
	}

	if cfg.Chat.Store == "mongo" {
		lgr.Info().Str("database", cfg.Mongo.Database).Msg("Connecting chat store to MongoDB...")
		mongoDB, err := db.NewMongoDB(cfg)
		if err != nil {
			storage.Close()
			return nil, err
		}
		storage.Mongo = mongoDB

		conversations := mongostore.NewConversationRepository(mongoDB.Database)
		if err := conversations.EnsureIndexes(ctx); err != nil {
			storage.Close()
			return nil, fmt.Errorf("failed to create chat indexes: %w", err)
		}
		storage.Repos.Conversations = conversations
	}

	if cfg.Database.Seed {
		if err := seed.CreateDefaultData(ctx, storage.Repos, lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	return storage, nil
}

func runMigrations(ctx context.Context, dir string, pool *pgxpool.Pool, lgr zerolog.Logger) error {
	lgr.Info().Str("path", dir).Msg("Running database migrations...")
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		lgr.Error().Str("path", dir).Msg("Migrations directory not found")
		return fmt.Errorf("migrations directory not found at %s: %w", dir, err)
	}

	migrator := appMigrations.NewMigrator(pool, logger.Component("migrations"))
	if err := migrator.MigrateFromDirectory(ctx, dir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")
	return nil
}

// BuildDependencies initializes services and controllers over storage.
// Background workers (live feed hub, conversation janitor) run until ctx is done.
func BuildDependencies(ctx context.Context, cfg *config.Config, storage *Storage, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}
	repos := storage.Repos

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenExp:    cfg.JWTExpiration(),
		TokenIssuer: cfg.JWT.Issuer,
	})

	responder, err := chatbot.New(ctx, chatbot.Config{
		Provider: cfg.Chatbot.Provider,
		APIKey:   cfg.Chatbot.GeminiAPIKey,
		Model:    cfg.Chatbot.Model,
		Timeout:  cfg.ChatbotTimeout(),
	}, repos.Events, logger.Component("chatbot"))
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize chatbot")
		return nil, fmt.Errorf("failed to initialize chatbot: %w", err)
	}

	deps.Hub = websocket.NewHub(logger.Component("live"))
	go deps.Hub.Run(ctx)

	mailer := email.NewEmailService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromEmail: cfg.SMTP.From,
		UseTLS:    cfg.SMTP.UseTLS,
	}, logger.Component("email"))

	images, err := filestorage.NewLocalStorage(cfg.Server.StoragePath, cfg.UploadsURL())
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.Services = appServices.NewServices(appServices.Dependencies{
		Repos:      repos,
		JWTService: deps.JWTService,
		Responder:  responder,
		Notifier:   deps.Hub,
		Mailer:     mailer,
		Images:     images,
	})

	appServices.StartJanitor(ctx, deps.Services.Chat, cfg.ChatSweepInterval(), cfg.ChatRetention(), logger.Component("janitor"))

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.Services.Auth)

	deps.Handlers = &appRoutes.Handlers{
		Auth:           appControllers.NewAuthController(deps.Services.Auth, logger.Component("controller.auth")),
		Events:         appControllers.NewEventController(deps.Services.Events, deps.Services.Registrations, logger.Component("controller.events")),
		Contacts:       appControllers.NewContactController(deps.Services.Contacts, logger.Component("controller.contact")),
		Chat:           appControllers.NewChatController(deps.Services.Chat, logger.Component("controller.chat")),
		Health:         appControllers.NewHealthController(),
		Live:           websocket.NewHandler(deps.Hub, repos.Events, cfg.AllowedOrigins(), logger.Component("live")),
		AuthMiddleware: deps.AuthMiddleware,
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(
		appMiddleware.Recovery(),
		appMiddleware.RequestLogger(logger.Component("http")),
		appMiddleware.CORS(cfg.AllowedOrigins()),
	)

	appRoutes.SetupSwagger(router)
	router.Static(config.UploadsRoute, cfg.Server.StoragePath)
	appRoutes.SetupRouter(router, deps.Handlers)

	return router
}
