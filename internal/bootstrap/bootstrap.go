// Package bootstrap assembles the application: configuration, logger, store,
// repositories, services, controllers and the gin router.
package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/edudesk/edudesk/internal/app/controllers"
	"github.com/edudesk/edudesk/internal/app/repositories"
	"github.com/edudesk/edudesk/internal/app/routes"
	"github.com/edudesk/edudesk/internal/app/services"
	"github.com/edudesk/edudesk/internal/config"
	"github.com/edudesk/edudesk/internal/middleware"
	"github.com/edudesk/edudesk/internal/pkg/auth"
	"github.com/edudesk/edudesk/internal/pkg/logger"
	"github.com/edudesk/edudesk/internal/queue"
	"github.com/edudesk/edudesk/internal/seed"
	"github.com/edudesk/edudesk/internal/store"
)

// Dependencies holds everything the server and worker share.
type Dependencies struct {
	Config *config.Config
	Store  store.Store
	Repos  *repositories.Registry
	Jobs   queue.Queue

	StatsService   *services.StatsService
	LibraryService *services.LibraryService
	AuditService   *services.AuditService
	BackupService  *services.BackupService
	RoleService    *services.RoleService
	AuthService    *services.AuthService

	JWTService     *auth.JWTService
	AuthMiddleware *middleware.AuthMiddleware
}

// LoadConfigAndSetupLogger loads configuration and configures the global
// logger from it.
func LoadConfigAndSetupLogger() (*config.Config, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load configuration")
		return nil, err
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(strings.ToLower(cfg.Logging.Level)),
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})
	logger.Info().Str("level", cfg.Logging.Level).Str("format", cfg.Logging.Format).Msg("logger configured")
	return cfg, nil
}

// BuildDependencies opens the store and wires repositories and services.
func BuildDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	st, err := store.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	logger.Info().Str("driver", cfg.Store.Driver).Msg("store opened")

	repos := repositories.NewRegistry(st)

	jobs, err := buildQueue(cfg)
	if err != nil {
		st.Close()
		return nil, err
	}

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: cfg.AccessTokenTTL(),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	roleService := services.NewRoleService(repos)
	deps := &Dependencies{
		Config: cfg,
		Store:  st,
		Repos:  repos,
		Jobs:   jobs,

		StatsService:   services.NewStatsService(repos),
		LibraryService: services.NewLibraryService(repos),
		AuditService:   services.NewAuditService(repos),
		BackupService:  services.NewBackupService(repos, jobs, cfg.Backup.Retention),
		RoleService:    roleService,
		AuthService:    services.NewAuthService(roleService, jwtService),

		JWTService:     jwtService,
		AuthMiddleware: middleware.NewAuthMiddleware(jwtService),
	}

	if err := seed.EnsureDefaultAdmin(ctx, repos, roleService); err != nil {
		logger.Error().Err(err).Msg("failed to seed default admin, proceeding anyway")
	}
	if cfg.Seed.Enabled {
		if err := seed.DemoData(ctx, repos); err != nil {
			logger.Error().Err(err).Msg("failed to seed demo data, proceeding anyway")
		}
	}

	return deps, nil
}

func buildQueue(cfg *config.Config) (queue.Queue, error) {
	switch cfg.Queue.Backend {
	case "memory", "":
		return queue.NewInMemory(64), nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:         cfg.Redis.Addr,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			DialTimeout:  2 * time.Second,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 1 * time.Second,
		})
		return queue.NewRedis(client, cfg.Queue.Key), nil
	default:
		return nil, fmt.Errorf("unknown queue backend %q", cfg.Queue.Backend)
	}
}

// SetupRouter configures the gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.Metrics())
	if cfg.RateLimit.PerMinute > 0 {
		router.Use(middleware.NewTokenBucket(cfg.RateLimit.PerMinute, cfg.RateLimit.PerMinute).Handler())
	}

	registry := deps.Repos
	routes.Setup(router, routes.Controllers{
		Students:       controllers.NewEntityController(registry.Students, "student"),
		Teachers:       controllers.NewEntityController(registry.Teachers, "teacher"),
		Courses:        controllers.NewEntityController(registry.Courses, "course"),
		ClassSchedules: controllers.NewEntityController(registry.ClassSchedules, "class schedule"),
		Assignments:    controllers.NewEntityController(registry.Assignments, "assignment"),
		Attendance:     controllers.NewEntityController(registry.Attendance, "attendance record"),
		Transactions:   controllers.NewEntityController(registry.Transactions, "transaction"),
		Announcements:  controllers.NewEntityController(registry.Announcements, "announcement"),
		Books:          controllers.NewEntityController(registry.Books, "book"),
		BookIssues:     controllers.NewEntityController(registry.BookIssues, "book issue"),
		Exams:          controllers.NewEntityController(registry.Exams, "exam"),
		Grades:         controllers.NewEntityController(registry.Grades, "grade"),

		Library:    controllers.NewLibraryController(deps.LibraryService),
		Stats:      controllers.NewStatsController(deps.StatsService),
		SuperAdmin: controllers.NewSuperAdminController(deps.AuditService, deps.BackupService, deps.RoleService),
		Auth:       controllers.NewAuthController(deps.AuthService),
	}, deps.AuthMiddleware, middleware.Audit(deps.AuditService))

	return router
}
