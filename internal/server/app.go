// Package server wires the todokeeper server together: configuration,
// PostgreSQL storage and migrations, the authentication core, the login
// lockout store, metrics, and the HTTP and gRPC front ends.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrijs2005/todokeeper/internal/logging"
	"github.com/dmitrijs2005/todokeeper/internal/server/auth"
	"github.com/dmitrijs2005/todokeeper/internal/server/config"
	"github.com/dmitrijs2005/todokeeper/internal/server/lockout"
	"github.com/dmitrijs2005/todokeeper/internal/server/metrics"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/todokeeper/internal/server/services"

	gs "github.com/dmitrijs2005/todokeeper/internal/server/grpc"
	hs "github.com/dmitrijs2005/todokeeper/internal/server/http"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	redis       *redis.Client
	metrics     *metrics.Metrics
	guard       *auth.Guard
	userService *services.UserService
	todoService *services.TodoService
}

// NewApp opens storage, applies migrations and builds the services. The
// caller must Close the returned App.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	db, err := repomanager.OpenDB(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	codec, err := auth.NewTokenCodec([]byte(c.SecretKey), c.SigningAlgorithm)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	app := &App{
		config:  c,
		logger:  logger,
		db:      db,
		metrics: metrics.New(),
		guard:   auth.NewGuard(codec),
	}

	var store lockout.Store = lockout.NewMemoryStore()
	if c.RedisURL != "" {
		client, err := lockout.Connect(ctx, c.RedisURL)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("redis init error: %w", err)
		}
		app.redis = client
		store = lockout.NewRedisStore(client)
	}

	hasher, err := auth.NewHasher(c.BcryptCost)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("hasher init error: %w", err)
	}

	app.userService = services.NewUserService(db, rm, hasher, codec, c,
		services.WithLimiter(lockout.NewLimiter(store, c.LockoutThreshold, c.LockoutWindow)),
		services.WithMetrics(app.metrics),
		services.WithLogger(logger),
	)
	app.todoService = services.NewTodoService(db, rm, logger)

	return app, nil
}

// Close releases the database and Redis connections.
func (app *App) Close() error {
	var errs []error
	if app.redis != nil {
		errs = append(errs, app.redis.Close())
	}
	if app.db != nil {
		errs = append(errs, app.db.Close())
	}
	return errors.Join(errs...)
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.GRPCAddr, app.logger, app.userService, app.todoService, app.guard, app.metrics)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, "grpc server failed", "error", err)
		cancelFunc()
	}
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	h := hs.NewHandler(app.userService, app.todoService, app.guard, app.metrics, app.logger)
	s := hs.NewServer(app.config.HTTPAddr, h, app.logger)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, "http server failed", "error", err)
		cancelFunc()
	}
}

// Run serves HTTP and gRPC until a termination signal arrives, ctx is
// cancelled, or either server fails.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.logger.Info(context.Background(), "App stopped")
}
