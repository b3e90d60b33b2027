package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	nethttp "net/http"
	"time"

	"github.com/motoshop/motoshop/internal/adapter/handler/http"
	"github.com/motoshop/motoshop/internal/adapter/logger"
	"github.com/motoshop/motoshop/internal/adapter/photo"
	"github.com/motoshop/motoshop/internal/adapter/postgres"
	"github.com/motoshop/motoshop/internal/adapter/prometheus"
	"github.com/motoshop/motoshop/internal/adapter/redis"
	"github.com/motoshop/motoshop/internal/adapter/storage"
	"github.com/motoshop/motoshop/internal/admin"
	"github.com/motoshop/motoshop/internal/config"
	"github.com/motoshop/motoshop/internal/core/domain"
	"github.com/motoshop/motoshop/internal/core/ports"
	"github.com/motoshop/motoshop/internal/core/services"

	promclient "github.com/prometheus/client_golang/prometheus"
	redisClient "github.com/redis/go-redis/v9"
)

type App struct {
	Config       *config.Container
	Logger       ports.LoggerPort
	DB           *sql.DB
	RedisClient  *redisClient.Client
	RedisAdapter ports.CachePort
	Storage      ports.MediaStorage
	AdminSite    *admin.Site
	HTTPRouter   *http.Router

	UserService    *services.UserService
	ProductService *services.ProductService
	OrderService   *services.OrderService
	PostService    *services.PostService

	server *nethttp.Server
}

// New wires the full HTTP application: database (migrated), cache, media
// storage, services, admin site and router.
func New(ctx context.Context, cfg *config.Container) (*App, error) {
	a, err := NewCore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	// Migrate DB
	if err := postgres.Migrate(a.DB, cfg.DB.MigrationsDir); err != nil {
		a.DB.Close()
		return nil, err
	}

	// Set redis
	redisConn := redisClient.NewClient(&redisClient.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if _, err := redisConn.Ping(ctx).Result(); err != nil {
		a.DB.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	a.RedisClient = redisConn
	a.RedisAdapter = redis.NewRedisAdapter(redisConn)

	validate := domain.NewValidator()

	// Observability
	metrics := prometheus.NewPrometheusAdapter(promclient.DefaultRegisterer)

	// Repositories
	productRepo := postgres.NewProductRepository(a.DB)
	orderRepo := postgres.NewOrderRepository(a.DB)
	lineRepo := postgres.NewOrderLineRepository(a.DB)
	postRepo := postgres.NewPostRepository(a.DB)
	commentRepo := postgres.NewCommentRepository(a.DB)

	// Services
	a.ProductService = services.NewProductService(productRepo, a.Storage, a.Logger, validate, a.RedisAdapter)
	a.OrderService = services.NewOrderService(orderRepo, lineRepo, productRepo, a.Logger, validate)
	a.PostService = services.NewPostService(postRepo, commentRepo, a.Storage, a.Logger, validate)

	a.AdminSite = admin.NewSite()
	if err := registerModels(a.AdminSite, a); err != nil {
		a.close()
		return nil, err
	}

	// HTTP Handlers
	tokenService := http.NewJWTTokenService(cfg.Token.Secret, cfg.Token.TokenTTL(), a.Logger)

	// Init HTTP router
	router, err := http.NewRouter(
		cfg.HTTP,
		tokenService,
		http.NewIndexHandler(a.ProductService, a.Logger, metrics),
		http.NewUserHandler(a.UserService, tokenService, a.Logger, metrics),
		http.NewProductHandler(a.ProductService, a.Logger, metrics),
		http.NewOrderHandler(a.OrderService, a.Logger, metrics),
		http.NewPostHandler(a.PostService, a.Logger, metrics),
		http.NewAdminHandler(a.AdminSite, a.Logger, metrics),
		http.NewMediaHandler(a.Storage, a.Logger, metrics),
	)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("failed to initialize router: %w", err)
	}
	a.HTTPRouter = router

	return a, nil
}

// NewCore wires what the command-line tools need: logger, database, media
// storage and the user service. It neither migrates nor touches Redis.
func NewCore(ctx context.Context, cfg *config.Container) (*App, error) {
	// Set logger
	loggerAdapter := logger.NewLoggerAdapter(cfg.App.Env, cfg.App.LogLevel)
	loggerAdapter.Info("Starting the application", map[string]interface{}{
		"app": cfg.App.Name,
		"env": cfg.App.Env,
	})

	// Connect DB
	db, err := postgres.Connect(cfg.DB)
	if err != nil {
		return nil, err
	}

	media, err := newMediaStorage(cfg.Storage)
	if err != nil {
		db.Close()
		return nil, err
	}

	userService := services.NewUserService(
		postgres.NewUserRepository(db),
		media,
		photo.NewSquareNormalizer(media),
		loggerAdapter,
		domain.NewValidator(),
	)

	return &App{
		Config:      cfg,
		Logger:      loggerAdapter,
		DB:          db,
		Storage:     media,
		UserService: userService,
	}, nil
}

func newMediaStorage(cfg *config.Storage) (ports.MediaStorage, error) {
	switch cfg.Driver {
	case "", "local":
		return storage.NewLocalStorage(cfg.MediaRoot)
	case "minio":
		return storage.NewMinioStorage(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// Run serves HTTP until Stop is called.
func (a *App) Run() error {
	listenAddr := a.Config.HTTP.Addr()
	a.Logger.Info("Starting HTTP server", map[string]interface{}{
		"addr": listenAddr,
	})

	a.server = &nethttp.Server{
		Addr:              listenAddr,
		Handler:           a.HTTPRouter.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		a.Logger.Error("HTTP server error", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}
	return nil
}

// Stop drains in-flight requests and releases connections.
func (a *App) Stop(ctx context.Context) error {
	a.Logger.Info("Shutting down gracefully...", nil)

	var shutdownErr error
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			a.Logger.Error("HTTP shutdown error", map[string]interface{}{
				"error": err.Error(),
			})
			shutdownErr = err
		}
	}
	a.close()

	a.Logger.Info("Application stopped successfully", nil)
	return shutdownErr
}

func (a *App) close() {
	// Close database
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			a.Logger.Error("Database close error", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	// Close Redis
	if a.RedisClient != nil {
		if err := a.RedisClient.Close(); err != nil {
			a.Logger.Error("Redis close error", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
}

// Close releases resources held by an App built with NewCore.
func (a *App) Close() {
	a.close()
}
