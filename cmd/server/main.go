package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/forgo/agenda/internal/config"
	"github.com/forgo/agenda/internal/database"
	"github.com/forgo/agenda/internal/handler"
	"github.com/forgo/agenda/internal/jobs"
	"github.com/forgo/agenda/internal/memstore"
	"github.com/forgo/agenda/internal/middleware"
	"github.com/forgo/agenda/internal/repository"
	"github.com/forgo/agenda/internal/service"
	"github.com/forgo/agenda/pkg/jwt"
)

// stores bundles the repositories of whichever driver is configured
type stores struct {
	users      service.UserRepository
	categories service.CategoryRepository
	events     service.EventRepository
	health     handler.Pinger
	close      func()
}

func main() {
	os.Exit(run())
}

// run returns the process exit code. main exits only after its defers
// (store close, final snapshot, rate limiter) have run.
func run() int {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		return 1
	}

	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		return 1
	}

	ctx := context.Background()

	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		slog.Error("failed to open store",
			slog.String("driver", cfg.Database.Driver),
			slog.String("error", err.Error()),
		)
		return 1
	}
	defer st.close()

	// Only the public key is needed to validate tokens
	jwtService, err := jwt.NewService(jwt.Config{
		PublicKeyPath:  cfg.JWT.PublicKeyPath,
		Issuer:         cfg.JWT.Issuer,
		ExpirationMins: cfg.JWT.ExpirationMins,
	})
	if err != nil {
		slog.Error("failed to initialize JWT service", slog.String("error", err.Error()))
		return 1
	}

	// Initialize services
	categoryService := service.NewCategoryService(service.CategoryServiceConfig{
		CategoryRepo: st.categories,
	})
	userService := service.NewUserService(service.UserServiceConfig{
		UserRepo: st.users,
	})
	eventService := service.NewEventService(service.EventServiceConfig{
		EventRepo:  st.events,
		Categories: categoryService,
		Users:      userService,
	})

	// Initialize handlers
	expose := cfg.IsDevelopment()
	var rateLimiter *middleware.RateLimiter
	if cfg.Server.RateLimit.Rate > 0 {
		rateLimiter = middleware.NewRateLimiter(middleware.RateLimitConfig{
			Rate:   cfg.Server.RateLimit.Rate,
			Window: cfg.Server.RateLimit.Window,
			Burst:  cfg.Server.RateLimit.Burst,
		})
		defer rateLimiter.Stop()
	}

	mux := handler.NewRouter(handler.RouterConfig{
		Auth:        jwtService,
		RateLimiter: rateLimiter,
		Events: handler.NewEventHandler(handler.EventHandlerConfig{
			EventService: eventService,
			ExposeErrors: expose,
		}),
		Categories: handler.NewCategoryHandler(handler.CategoryHandlerConfig{
			CategoryService: categoryService,
			ExposeErrors:    expose,
		}),
		Users: handler.NewUserHandler(handler.UserHandlerConfig{
			UserService:  userService,
			ExposeErrors: expose,
		}),
		Health: handler.NewHealthHandler(st.health),
	})

	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
		middleware.Compress,
	)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	slog.Info("starting server",
		slog.String("port", cfg.Server.Port),
		slog.String("env", cfg.Server.Env),
		slog.String("driver", cfg.Database.Driver),
	)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	if err := serve(server, quit, cfg.Server.ShutdownTimeout); err != nil {
		slog.Error("server error", slog.String("error", err.Error()))
		return 1
	}
	return 0
}

// serve runs the server until quit fires or listening fails, then shuts it
// down. Both paths return here so the caller's defers still run.
func serve(server *http.Server, quit <-chan os.Signal, shutdownTimeout time.Duration) error {
	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	var runErr error
	select {
	case sig := <-quit:
		slog.Info("shutting down server", slog.String("signal", sig.String()))
	case runErr = <-serverErr:
		slog.Info("shutting down server after listen failure")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", slog.String("error", err.Error()))
		if runErr == nil {
			runErr = err
		}
	}

	slog.Info("server stopped")
	return runErr
}

func openStores(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*stores, error) {
	if cfg.Database.Driver == config.DriverMemory {
		return openMemory(cfg, logger)
	}
	return openSurrealDB(ctx, cfg)
}

func openSurrealDB(ctx context.Context, cfg *config.Config) (*stores, error) {
	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.Connect(connectCtx); err != nil {
		return nil, err
	}
	if err := database.EnsureSchema(connectCtx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	slog.Info("connected to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Database),
	)

	return &stores{
		users:      repository.NewUserRepository(db),
		categories: repository.NewCategoryRepository(db),
		events:     repository.NewEventRepository(db),
		health:     db,
		close:      func() { _ = db.Close() },
	}, nil
}

func openMemory(cfg *config.Config, logger *slog.Logger) (*stores, error) {
	store := memstore.New()
	path := cfg.Database.SnapshotPath

	closeFn := func() {}
	if path != "" {
		if err := store.Load(path); err != nil {
			return nil, err
		}
		users, categories, events := store.Counts()
		slog.Info("loaded snapshot",
			slog.String("path", path),
			slog.Int("users", users),
			slog.Int("categories", categories),
			slog.Int("events", events),
		)

		writer := jobs.NewSnapshotWriter(store, path, cfg.Database.SnapshotInterval, logger)
		writer.Start()
		closeFn = writer.Stop
	} else {
		slog.Warn("memory driver without snapshot path, data is lost on exit")
	}

	return &stores{
		users:      store.Users(),
		categories: store.Categories(),
		events:     store.Events(),
		health:     store,
		close:      closeFn,
	}, nil
}
