package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/feeportal/fee-service/internal/api/http"
	"github.com/feeportal/fee-service/internal/api/http/handlers"
	"github.com/feeportal/fee-service/internal/auth"
	"github.com/feeportal/fee-service/internal/config"
	"github.com/feeportal/fee-service/internal/events"
	"github.com/feeportal/fee-service/internal/observability"
	"github.com/feeportal/fee-service/internal/persistence"
	"github.com/feeportal/fee-service/internal/repository"
	"github.com/feeportal/fee-service/internal/service"
	"github.com/feeportal/fee-service/internal/worker"
)

type stores struct {
	accounts repository.AccountRepository
	requests repository.FeeRequestRepository
	health   map[string]handlers.Pinger
	close    func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics := observability.NewMetrics("feeportal")

	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	defer st.close()

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	dispatcher := events.NewInMemoryDispatcher()
	var forwarder *events.RedisForwarder
	if redis.Enabled() {
		forwarder = events.NewRedisForwarder(redis.Client, cfg.Redis.EventsChannel, logger)
		st.health["redis"] = redis
	}
	notifications := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(dispatcher, notifications, forwarder)

	authService, err := service.NewAuthService(cfg.Auth, service.AuthDependencies{AccountRepo: st.accounts})
	if err != nil {
		logger.Fatal("failed to init auth service", zap.Error(err))
	}
	feeService := service.NewFeeRequestService(service.FeeRequestDependencies{
		FeeRequestRepo: st.requests,
		Dispatcher:     dispatcher,
		Metrics:        metrics,
	})
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), st.accounts)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, httptransport.MiddlewareOptions{
		RequestTimeout: cfg.App.RequestTimeout(),
		AllowOrigins:   cfg.App.CORSAllowOrigins,
	})
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, st.health),
		Auth:           handlers.NewAuthHandler(authService),
		FeeRequests:    handlers.NewFeeRequestsHandler(feeService),
		AuthMiddleware: authMiddleware,
		Metrics:        metrics.Handler(),
		StaticDir:      cfg.App.StaticDir,
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()), zap.String("store", cfg.Store.Driver))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

// openStores builds the repositories for the configured driver. Mongo connects
// on first use; postgres builds its pool up front and applies migrations.
func openStores(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*stores, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, err
		}
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
				pg.Close()
				return nil, err
			}
		}
		pool := pg.PoolHandle()
		return &stores{
			accounts: repository.NewPostgresAccountRepository(pool),
			requests: repository.NewPostgresFeeRequestRepository(pool),
			health:   map[string]handlers.Pinger{"postgres": pg},
			close:    pg.Close,
		}, nil
	case config.StoreDriverMemory:
		logger.Warn("using in-memory store; data is lost on restart")
		return &stores{
			accounts: repository.NewMemoryAccountRepository(),
			requests: repository.NewMemoryFeeRequestRepository(),
			health:   map[string]handlers.Pinger{},
			close:    func() {},
		}, nil
	default:
		mongo := persistence.NewMongo(cfg.Mongo, logger)
		return &stores{
			accounts: repository.NewMongoAccountRepository(mongo),
			requests: repository.NewMongoFeeRequestRepository(mongo),
			health:   map[string]handlers.Pinger{"mongo": mongo},
			close: func() {
				closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := mongo.Close(closeCtx); err != nil {
					logger.Warn("mongo disconnect", zap.Error(err))
				}
			},
		}, nil
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
