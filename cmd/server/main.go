// @title         resumes-service API
// @version       1.0
// @description   Applicant accounts and ownership-scoped resume management.
// @BasePath      /api/v1
// @schemes       http
// @host          localhost:8080
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Access token: "Bearer <JWT>".
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	swagger "github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	_ "github.com/artem13815/resumes/docs"

	// internal imports
	"github.com/artem13815/resumes/api/http"
	"github.com/artem13815/resumes/api/http/handlers"
	"github.com/artem13815/resumes/pkg/auth"
	"github.com/artem13815/resumes/pkg/config"
	"github.com/artem13815/resumes/pkg/health"
	"github.com/artem13815/resumes/pkg/health/checkers"
	"github.com/artem13815/resumes/pkg/logger"
	"github.com/artem13815/resumes/pkg/metrics"
	"github.com/artem13815/resumes/pkg/repository/memory"
	pgrepo "github.com/artem13815/resumes/pkg/repository/postgres"
	rediscache "github.com/artem13815/resumes/pkg/repository/redis"
	"github.com/artem13815/resumes/pkg/resume"
	"github.com/artem13815/resumes/pkg/security/hash"
	"github.com/artem13815/resumes/pkg/security/jwt"
	"github.com/artem13815/resumes/pkg/storage/postgres"
)

func main() {
	// Load configuration from env/.env
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	lg := logger.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	slog.SetDefault(lg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, lg); err != nil {
		lg.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

type stores struct {
	users   auth.UserRepository
	resumes resume.Repository
	checks  []health.Checker
	close   func()
}

func openStores(ctx context.Context, cfg config.Config, lg *slog.Logger) (stores, error) {
	if cfg.Storage == config.StorageMemory {
		lg.Warn("using in-memory storage; data is lost on restart")
		users := memory.NewUserRepository()
		return stores{users: users, resumes: memory.NewResumeRepository(users), close: func() {}}, nil
	}

	// Connect to PostgreSQL and apply migrations
	pool, err := postgres.Connect(ctx, cfg.DatabaseURL, postgres.PoolOptions{MaxConns: cfg.DBMaxConns})
	if err != nil {
		return stores{}, fmt.Errorf("postgres connect: %w", err)
	}
	return stores{
		users:   pgrepo.NewUserRepository(pool),
		resumes: pgrepo.NewResumeRepository(pool),
		checks:  []health.Checker{checkers.NewPostgresChecker(pool)},
		close:   pool.Close,
	}, nil
}

func run(ctx context.Context, cfg config.Config, lg *slog.Logger) error {
	st, err := openStores(ctx, cfg, lg)
	if err != nil {
		return err
	}
	defer st.close()

	// Bearer middleware resolves users through the cache when redis is set.
	var resolver jwt.UserResolver = st.users
	checks := st.checks
	if cfg.RedisURL != "" {
		opts, err := goredis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("parse REDIS_URL: %w", err)
		}
		rdb := goredis.NewClient(opts)
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis ping: %w", err)
		}
		resolver = rediscache.NewUserCache(rdb, st.users, cfg.UserCacheTTL, lg)
		checks = append(checks, checkers.NewRedisChecker(rdb))
	}

	hasher, err := hash.NewBcrypt(cfg.HashCost)
	if err != nil {
		return fmt.Errorf("init hasher: %w", err)
	}
	jwtGen := jwt.NewGenerator(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL())
	authUC, err := auth.NewAuthService(st.users, hasher, jwtGen)
	if err != nil {
		return fmt.Errorf("init auth service: %w", err)
	}
	resumeUC := resume.NewService(st.resumes)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	app := fiber.New(fiber.Config{
		AppName:               "resumes-service",
		ErrorHandler:          handlers.ErrorHandler(lg),
		DisableStartupMessage: true,
	})
	app.Use(requestid.New(), m.Middleware(), logger.Middleware(lg), recover.New())

	v := handlers.NewValidator()
	http.Register(app, http.Handlers{
		Auth:    handlers.NewAuthHandler(authUC, v, m),
		Users:   handlers.NewUsersHandler(),
		Resumes: handlers.NewResumesHandler(resumeUC, v),
		Health:  handlers.NewHealthHandler(health.NewService(checks...)),
	}, jwt.NewAuthMiddleware(jwt.NewParser(cfg.JWTSecret, cfg.JWTIssuer), resolver))

	app.Get("/metrics", m.Handler())
	// Swagger UI
	app.Get("/swagger/*", swagger.HandlerDefault)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		lg.Info("HTTP server listening", "port", cfg.Port, "storage", cfg.Storage, "cache", cfg.RedisURL != "")
		return app.Listen(":" + cfg.Port)
	})
	g.Go(func() error {
		<-gctx.Done()
		lg.Info("shutting down")
		return app.ShutdownWithTimeout(cfg.ShutdownTimeout)
	})
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
