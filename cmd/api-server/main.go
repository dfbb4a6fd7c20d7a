package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"perfumism/database"
	"perfumism/internal/cache"
	"perfumism/internal/config"
	"perfumism/internal/events"
	"perfumism/internal/logger"
	"perfumism/internal/microservices/http-api/handler"
	"perfumism/internal/microservices/http-api/middleware"
	"perfumism/internal/microservices/http-api/repository"
	"perfumism/internal/microservices/http-api/service"
	"perfumism/internal/oauth"
	"perfumism/internal/storage"
	"perfumism/internal/tracing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"gorm.io/gorm"
)

func main() {
	if err := run(); err != nil {
		log.Printf("api server: %v", err)
		os.Exit(1)
	}
}

// run wires the server and blocks until shutdown
func run() error {
	// Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("could not load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := logger.New(cfg.LogLevel, cfg.LogFormat)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	shutdownTracing, err := tracing.Init(ctx, cfg.TracingEnabled, cfg.ServiceName, cfg.OTLPEndpoint, logger)
	if err != nil {
		return fmt.Errorf("failed to init tracing: %w", err)
	}

	// Connect to the database
	db, err := database.Connect(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close(db)

	perfumeCache := newPerfumeCache(ctx, cfg, logger)
	store, err := newStorage(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to object storage: %w", err)
	}
	publisher := newPublisher(cfg, logger)
	defer publisher.Close()

	// Repositories
	tx := database.NewTransactor(db)
	memberRepo := repository.NewMemberRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	perfumeRepo := repository.NewPerfumeRepository(db)
	perfumeLikeRepo := repository.NewPerfumeLikeRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	reviewLikeRepo := repository.NewReviewLikeRepository(db)
	articleRepo := repository.NewArticleRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	voteRepo := repository.NewVoteRepository(db)

	// Services
	authService := service.NewAuthService(memberRepo, refreshTokenRepo, cfg)
	memberService := service.NewMemberService(tx, memberRepo, refreshTokenRepo, store, cfg.UploadMaxSize, logger)
	oauthClient := oauth.NewClient()
	oauthService := service.NewOAuthService(memberRepo, authService,
		oauth.NewGoogleProvider(cfg.Google, oauthClient),
		oauth.NewKakaoProvider(cfg.Kakao, oauthClient),
	)
	perfumeService := service.NewPerfumeService(tx, memberRepo, perfumeRepo, perfumeLikeRepo, perfumeCache, logger)
	reviewService := service.NewReviewService(tx, memberRepo, perfumeRepo, reviewRepo, reviewLikeRepo, perfumeCache, publisher, logger)
	articleService := service.NewArticleService(tx, memberRepo, articleRepo, commentRepo, voteRepo, store, cfg.UploadMaxSize, logger)
	commentService := service.NewCommentService(memberRepo, articleRepo, commentRepo)
	voteService := service.NewVoteService(tx, memberRepo, articleRepo, voteRepo)

	routerCfg := handler.RouterConfig{
		Logger:         logger,
		Auth:           middleware.AuthMiddleware(authService),
		CORSOrigins:    cfg.CORSOrigins,
		RequestTimeout: cfg.RequestTimeout,
		HSTS:           cfg.IsProduction(),
		RateLimiter:    middleware.NewIPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		MaxUploadBytes: cfg.UploadMaxSize,
		Ping:           pinger(db),
	}
	if cfg.PrometheusEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics, err := middleware.NewMetrics(reg)
		if err != nil {
			return fmt.Errorf("failed to register metrics: %w", err)
		}
		routerCfg.Metrics = metrics
		routerCfg.MetricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	}

	r := handler.NewRouter(routerCfg,
		handler.NewMemberHandler(memberService, authService, cfg.CookieSecure, logger),
		handler.NewOAuthHandler(oauthService, cfg.CookieSecure, logger),
		handler.NewPerfumeHandler(perfumeService, logger),
		handler.NewReviewHandler(reviewService, logger),
		handler.NewArticleHandler(articleService, logger),
		handler.NewCommentHandler(commentService, logger),
		handler.NewVoteHandler(voteService, logger),
	)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           otelhttp.NewHandler(r, "http.server"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		logger.Info("api server listening", "addr", srv.Addr, "env", cfg.GoEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	var serveErr error
	select {
	case <-sigChan:
		logger.Info("received shutdown signal")
	case serveErr = <-errChan:
		logger.Error("server error", "error", serveErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Warn("tracer shutdown failed", "error", err)
	}
	logger.Info("server stopped gracefully")
	return serveErr
}

// newPerfumeCache connects to Redis. Without Redis the cache is a no-op.
func newPerfumeCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) *cache.PerfumeCache {
	if cfg.RedisURL == "" {
		logger.Info("redis disabled, perfume detail cache off")
		return cache.NewPerfumeCache(nil, cfg.CacheDuration())
	}

	client, err := cache.NewRedisClient(ctx, cfg.RedisURL, cfg.RedisPassword)
	if err != nil {
		logger.Warn("redis unavailable, perfume detail cache off", "error", err)
		return cache.NewPerfumeCache(nil, cfg.CacheDuration())
	}
	return cache.NewPerfumeCache(client, cfg.CacheDuration())
}

// newStorage connects to MinIO. Without an endpoint uploads are rejected.
func newStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.Storage, error) {
	if cfg.MinIO.Endpoint == "" {
		logger.Info("object storage disabled, image uploads off")
		return nil, nil
	}

	store, err := storage.NewMinIO(ctx, cfg.MinIO)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// newPublisher connects to RabbitMQ. Without a URL events are dropped.
func newPublisher(cfg *config.Config, logger *slog.Logger) events.Publisher {
	if cfg.RabbitMQURL == "" {
		logger.Info("rabbitmq disabled, review events off")
		return events.NopPublisher{}
	}

	publisher, err := events.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQQueue, logger)
	if err != nil {
		logger.Warn("rabbitmq unavailable, review events off", "error", err)
		return events.NopPublisher{}
	}
	return publisher
}

func pinger(db *gorm.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}
