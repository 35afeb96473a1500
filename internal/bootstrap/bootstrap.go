package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/internlink/backend/internal/app/controllers"
	"github.com/internlink/backend/internal/app/jobs"
	appMigrations "github.com/internlink/backend/internal/app/migrations"
	appRepos "github.com/internlink/backend/internal/app/repositories"
	appRoutes "github.com/internlink/backend/internal/app/routes"
	appServices "github.com/internlink/backend/internal/app/services"
	"github.com/internlink/backend/internal/config"
	"github.com/internlink/backend/internal/db"
	appMiddleware "github.com/internlink/backend/internal/middleware"
	pkgAuth "github.com/internlink/backend/internal/pkg/auth"
	"github.com/internlink/backend/internal/pkg/email"
	"github.com/internlink/backend/internal/pkg/logger"
	"github.com/internlink/backend/internal/pkg/realtime"
	"github.com/internlink/backend/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos                  *appRepos.Repositories
	Services               *appServices.Services
	RegistrationController *appControllers.RegistrationController
	AuthController         *appControllers.AuthController
	StudentController      *appControllers.StudentController
	EnterpriseController   *appControllers.EnterpriseController
	TeacherController      *appControllers.TeacherController
	AdminController        *appControllers.AdminController
	NotificationController *appControllers.NotificationController
	FilesController        *appControllers.FilesController
	ProfileController      *appControllers.ProfileController
	AuthMiddleware         *appMiddleware.AuthMiddleware
	JWTService             *pkgAuth.JWTService
	Mailer                 email.Mailer
	Hub                    *realtime.Hub
	CleanupJob             *jobs.CleanupJob
	Logger                 zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := strings.ToLower(cfg.Logging.Level)
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", logLevel).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds the admin account.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateAdminUser(context.Background(), dbPool, cfg, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to seed admin account, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes repositories, services, controllers and the
// background workers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	tokenExp, err := time.ParseDuration(cfg.JWT.TokenExpiration)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT token expiration: %w", err)
	}
	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenExp:    tokenExp,
		TokenIssuer: cfg.JWT.Issuer,
	})

	deps.Mailer = email.NewSMTPMailer(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
	}, lgr)

	deps.Hub = realtime.NewHub(lgr)

	deps.Services = appServices.NewServices(deps.Repos, deps.JWTService, deps.Mailer, deps.Hub, lgr)

	deps.CleanupJob = jobs.NewCleanupJob(deps.Repos.UserRepository, deps.Repos.VerificationTokenRepository, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Repos.UserRepository)

	deps.RegistrationController = appControllers.NewRegistrationController(
		deps.Services.RegistrationService, deps.Services.VerificationService, lgr)
	deps.AuthController = appControllers.NewAuthController(deps.Services.AuthService, lgr)
	deps.StudentController = appControllers.NewStudentController(
		deps.Services.OfferService, deps.Services.ApplicationService, deps.Services.UserService, lgr)
	deps.EnterpriseController = appControllers.NewEnterpriseController(
		deps.Services.OfferService, deps.Services.ApplicationService, deps.Services.PartnershipService, lgr)
	deps.TeacherController = appControllers.NewTeacherController(
		deps.Services.OfferService, deps.Services.ReportService,
		deps.Services.UserService, deps.Services.PartnershipService, lgr)
	deps.AdminController = appControllers.NewAdminController(
		deps.Services.PartnershipService, deps.Services.ReportService, deps.Services.UserService, lgr)
	deps.NotificationController = appControllers.NewNotificationController(deps.Services.NotificationService, lgr)
	deps.FilesController = appControllers.NewFilesController(
		deps.Services.ApplicationService, deps.Services.OfferService, deps.Services.PartnershipService, lgr)
	deps.ProfileController = appControllers.NewProfileController(deps.Services.UserService, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(lgr))
	router.Use(gin.Recovery())

	appRoutes.SetupRouter(router,
		deps.RegistrationController,
		deps.AuthController,
		deps.StudentController,
		deps.EnterpriseController,
		deps.TeacherController,
		deps.AdminController,
		deps.NotificationController,
		deps.FilesController,
		deps.ProfileController,
		deps.Hub,
		deps.AuthMiddleware,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
