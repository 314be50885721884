package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/oguzk/acadrecord/internal/app/controllers"
	appMigrations "github.com/oguzk/acadrecord/internal/app/migrations"
	appRepos "github.com/oguzk/acadrecord/internal/app/repositories"
	appRoutes "github.com/oguzk/acadrecord/internal/app/routes"
	appServices "github.com/oguzk/acadrecord/internal/app/services"
	"github.com/oguzk/acadrecord/internal/config"
	"github.com/oguzk/acadrecord/internal/db"
	appMiddleware "github.com/oguzk/acadrecord/internal/middleware"
	pkgAuth "github.com/oguzk/acadrecord/internal/pkg/auth"
	"github.com/oguzk/acadrecord/internal/pkg/helpers"
	"github.com/oguzk/acadrecord/internal/pkg/logger"
	"github.com/oguzk/acadrecord/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService       *appServices.AuthService
	ImportService     *appServices.ImportService
	RecordsService    *appServices.RecordsService
	AuthController    *appControllers.AuthController
	ImportController  *appControllers.ImportController
	RecordsController *appControllers.RecordsController
	AuthMiddleware    *appMiddleware.AuthMiddleware
	Repos             *appRepos.Repositories
	JWTService        *pkgAuth.JWTService
	Logger            zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
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

	// Default data failures are logged but do not block startup
	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.Auth.JWTSecret,
		AccessTokenExp: helpers.ParseDuration(cfg.Auth.AccessTokenExpiration, 24*time.Hour),
		TokenIssuer:    cfg.Auth.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(deps.Repos.TeacherRepository, deps.JWTService)

	deps.ImportService = appServices.NewImportService(appServices.ImportStores{
		Students:    deps.Repos.StudentRepository,
		Batches:     deps.Repos.BatchRepository,
		Courses:     deps.Repos.CourseRepository,
		Attendance:  deps.Repos.AttendanceRepository,
		TestScores:  deps.Repos.TestScoreRepository,
		Backlogs:    deps.Repos.BacklogRepository,
		Fees:        deps.Repos.FeeRepository,
		Projects:    deps.Repos.ProjectRepository,
		PhD:         deps.Repos.PhDRepository,
		Fellowships: deps.Repos.FellowshipRepository,
	}, cfg.Import.MaxErrors)

	deps.RecordsService = appServices.NewRecordsService(deps.Repos)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.AuthService, deps.JWTService, cfg.Auth.SessionCookie)

	deps.AuthController = appControllers.NewAuthController(
		deps.AuthService,
		cfg.Auth.SessionCookie,
		cfg.Auth.SessionMaxAge,
		cfg.Auth.SecureCookies,
	)
	deps.ImportController = appControllers.NewImportController(deps.ImportService, cfg.Import.MaxUploadBytes)
	deps.RecordsController = appControllers.NewRecordsController(deps.RecordsService)

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
	router.Use(appMiddleware.RequestLogger())
	router.Use(appMiddleware.Recovery())

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.ImportController,
		deps.RecordsController,
		deps.AuthMiddleware,
	)

	return router
}
