// Package bootstrap wires configuration, storage, services and the HTTP router.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appAuth "github.com/yigit/unifms/internal/app/auth"
	appControllers "github.com/yigit/unifms/internal/app/controllers"
	appMigrations "github.com/yigit/unifms/internal/app/migrations"
	"github.com/yigit/unifms/internal/app/models/dto"
	appRepos "github.com/yigit/unifms/internal/app/repositories"
	"github.com/yigit/unifms/internal/app/repositories/memstore"
	appRoutes "github.com/yigit/unifms/internal/app/routes"
	appServices "github.com/yigit/unifms/internal/app/services"
	"github.com/yigit/unifms/internal/config"
	"github.com/yigit/unifms/internal/db"
	appMiddleware "github.com/yigit/unifms/internal/middleware"
	pkgAuth "github.com/yigit/unifms/internal/pkg/auth"
	"github.com/yigit/unifms/internal/pkg/logger"
	"github.com/yigit/unifms/internal/pkg/metrics"
	"github.com/yigit/unifms/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Config     *config.Config
	Logger     zerolog.Logger
	Store      appRepos.Store
	Services   *appServices.Services
	JWTService *pkgAuth.JWTService
	Authorizer *appAuth.Authorizer
	Metrics    *metrics.HTTPMetrics

	closers []func()
}

// Close releases the storage backend
func (d *Dependencies) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
	d.closers = nil
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
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

// OpenStore connects the configured storage backend. For postgres it also applies the
// migrations. The returned function releases the backend.
func OpenStore(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (appRepos.Store, func(), error) {
	switch cfg.Database.Driver {
	case config.DriverMemory:
		lgr.Warn().Msg("Using in-memory store, data is lost on exit")
		return memstore.NewWithRoles(), func() {}, nil
	case config.DriverPostgres:
	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	lgr.Info().Msg("Database connection successfully established.")

	migrator := appMigrations.NewMigrator(database.Pool, lgr)
	if err := migrator.MigrateFromDirectory(ctx, cfg.Database.MigrationsDir); err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return appRepos.NewPostgresStore(database), database.Close, nil
}

// BuildDependencies initializes the services and the authorizer over store.
func BuildDependencies(cfg *config.Config, store appRepos.Store, lgr zerolog.Logger) *Dependencies {
	jwtService := pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: cfg.AccessTokenTTL(),
		TokenIssuer:    cfg.JWT.Issuer,
	})
	hasher := pkgAuth.NewPasswordHasher(cfg.Security.BcryptCost)

	return &Dependencies{
		Config:     cfg,
		Logger:     lgr,
		Store:      store,
		Services:   appServices.New(store, hasher, jwtService),
		JWTService: jwtService,
		Authorizer: appAuth.NewAuthorizer(jwtService),
		Metrics:    metrics.New(),
	}
}

// Seed creates the reference roles and the configured administrator
func Seed(ctx context.Context, deps *Dependencies) error {
	admin := seed.Admin{
		Username: deps.Config.Seed.AdminUsername,
		Email:    deps.Config.Seed.AdminEmail,
		Password: deps.Config.Seed.AdminPassword,
	}
	return seed.Run(ctx, deps.Store, deps.Services.Users, admin, deps.Logger)
}

// Build loads everything the API server and the admin CLI need
func Build(ctx context.Context, configPath string) (*Dependencies, error) {
	cfg, lgr, err := LoadConfigAndSetupLogger(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config or setup logger: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	store, closeStore, err := OpenStore(ctx, cfg, lgr)
	if err != nil {
		return nil, err
	}

	deps := BuildDependencies(cfg, store, lgr)
	deps.closers = append(deps.closers, closeStore)

	if err := Seed(ctx, deps); err != nil {
		deps.Close()
		return nil, fmt.Errorf("failed to seed database: %w", err)
	}
	return deps, nil
}

// registerValidators adds the custom binding tags to gin's validator
func registerValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return dto.RegisterValidators(v)
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(deps *Dependencies) (*gin.Engine, error) {
	cfg := deps.Config
	switch strings.ToLower(cfg.Server.Mode) {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	if err := registerValidators(); err != nil {
		return nil, err
	}

	router := gin.New()
	if err := router.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}
	router.Use(appMiddleware.RequestLogger(), appMiddleware.Recovery())

	if cfg.Metrics.Enabled {
		router.Use(deps.Metrics.Middleware())
		router.GET(cfg.Metrics.Path, gin.WrapH(deps.Metrics.Handler()))
	}

	appRoutes.SetupSwagger(router)

	svc := deps.Services
	appRoutes.SetupRouter(router, appRoutes.Controllers{
		Auth:         appControllers.NewAuthController(svc.Auth),
		Users:        appControllers.NewUserController(svc.Users, svc.Enrollments),
		Roles:        appControllers.NewRoleController(svc.Roles),
		Departments:  appControllers.NewDepartmentController(svc.Departments),
		Courses:      appControllers.NewCourseController(svc.Courses, svc.Enrollments),
		Faculty:      appControllers.NewFacultyController(svc.Faculty),
		Publications: appControllers.NewPublicationController(svc.Publications),
	}, appMiddleware.NewAuthMiddleware(deps.Authorizer), svc.Users.OwnerID)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Route not found")))
	})

	return router, nil
}
