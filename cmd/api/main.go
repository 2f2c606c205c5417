package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Ngapa/banyu-job-vacation/internal/app"
	"github.com/Ngapa/banyu-job-vacation/internal/config"
	"github.com/Ngapa/banyu-job-vacation/internal/database"
	apphttp "github.com/Ngapa/banyu-job-vacation/internal/http"
	"github.com/Ngapa/banyu-job-vacation/internal/http/handlers"
	"github.com/Ngapa/banyu-job-vacation/internal/http/metrics"
	"github.com/Ngapa/banyu-job-vacation/internal/http/middleware"
	"github.com/Ngapa/banyu-job-vacation/internal/http/response"
	"github.com/Ngapa/banyu-job-vacation/internal/observability"
	"github.com/Ngapa/banyu-job-vacation/internal/repository/postgres"
	"github.com/Ngapa/banyu-job-vacation/internal/security"
)

func main() {
	cfg := config.Load()
	logger := observability.NewLogger()

	db := database.NewPostgres(database.PostgresConfig{
		DSN:             cfg.PostgresDSN,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxIdle:     cfg.DBConnMaxIdle,
		ConnMaxLifetime: cfg.DBConnMaxLife,
	})
	defer db.Close()

	if err := database.Migrate(context.Background(), db); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	userRepo := postgres.NewUserRepository(db)
	jobRepo := postgres.NewJobRepository(db)
	applicantRepo := postgres.NewApplicantRepository(db)
	favoriteRepo := postgres.NewFavoriteRepository(db)
	tagRepo := postgres.NewTagRepository(db)
	refreshTokenRepo := postgres.NewRefreshTokenRepository(db)

	jwtProvider := security.NewJWTProvider(cfg.JWTSecret)
	hasher := security.NewPasswordHasher(cfg.BcryptCost)

	accounts := app.NewAccountService(userRepo, refreshTokenRepo, jwtProvider, hasher, logger, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	jobs := app.NewJobService(jobRepo, tagRepo)
	applicants := app.NewApplicantService(applicantRepo, jobRepo)
	favorites := app.NewFavoriteService(favoriteRepo, jobRepo)

	var limiter middleware.Limiter
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer client.Close()
		limiter = middleware.NewRedisLimiter(client)
		logger.Info("rate limiting backed by redis at " + cfg.RedisAddr)
	} else {
		limiter = middleware.NewRateLimiter()
		logger.Info("rate limiting backed by in-memory buckets")
	}

	collector := metrics.NewCollector()
	response.SetErrorCollector(collector)

	router := apphttp.NewRouter(apphttp.RouterDependencies{
		Auth:           handlers.NewAuthHandler(accounts, limiter),
		Jobs:           handlers.NewJobHandler(jobs),
		Applicants:     handlers.NewApplicantHandler(applicants, limiter),
		Favorites:      handlers.NewFavoriteHandler(favorites),
		Profile:        handlers.NewProfileHandler(accounts),
		Metrics:        handlers.NewMetricsHandler(collector),
		AuthMiddleware: middleware.NewAuthMiddleware(jwtProvider),
		Collector:      collector,
		RequestTimeout: cfg.RequestTimeout,
	})

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("api listening on :" + cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed: " + err.Error())
	}
}
