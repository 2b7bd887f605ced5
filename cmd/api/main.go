package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/bryanwahyu/llm-extracter/internal/application"
	appanalysis "github.com/bryanwahyu/llm-extracter/internal/application/analysis"
	"github.com/bryanwahyu/llm-extracter/internal/config"
	"github.com/bryanwahyu/llm-extracter/internal/domain/ai"
	domain "github.com/bryanwahyu/llm-extracter/internal/domain/analysis"
	openaiclient "github.com/bryanwahyu/llm-extracter/internal/infra/ai/openai"
	mysqlp "github.com/bryanwahyu/llm-extracter/internal/infra/db/mysql"
	postgresp "github.com/bryanwahyu/llm-extracter/internal/infra/db/postgres"
	"github.com/bryanwahyu/llm-extracter/internal/infra/httpserver"
	minioStore "github.com/bryanwahyu/llm-extracter/internal/infra/storage"
	"github.com/bryanwahyu/llm-extracter/internal/logger"
	"github.com/bryanwahyu/llm-extracter/internal/middleware"
)

type repository interface {
	domain.Repository
	EnsureSchema(ctx context.Context) error
}

func main() {
	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("load .env: %v", err)
	}

	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	zl, err := logger.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer zl.Sync()

	ctx := context.Background()

	// connect database + init repo
	db, repo, err := openRepository(ctx, cfg)
	if err != nil {
		zl.Fatal("database connect error", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}
	defer db.Close()

	if err := repo.EnsureSchema(ctx); err != nil {
		zl.Fatal("schema init error", zap.Error(err))
	}

	// init completion client
	var client ai.Client
	if cfg.AI.APIKey != "" {
		client = openaiclient.NewClient(cfg.AI.APIKey, cfg.AI.Model, cfg.AI.BaseURL)
	} else {
		zl.Warn("OPENAI_KEY not set, every analyze request will fail")
	}

	// init minio (optional)
	var archive domain.ResponseArchive
	if cfg.ArchiveEnabled() {
		store, err := minioStore.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			zl.Fatal("minio init error", zap.Error(err))
		}
		archive = store
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := middleware.NewMetrics(reg)

	limiter := middleware.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.RefillPerSecond)
	defer limiter.Close()

	// init service
	svc := &appanalysis.Service{
		Repo:         repo,
		AI:           client,
		Archive:      archive,
		Recorder:     metrics,
		Clock:        application.SystemClock{},
		Logger:       zl.Named("analysis"),
		KeywordLimit: cfg.Analysis.KeywordLimit,
		Timeout:      cfg.AI.Timeout,
	}

	// init router
	handler := httpserver.NewRouter(svc, httpserver.Options{
		Logger:        zl.Named("http"),
		Metrics:       metrics,
		RateLimiter:   limiter,
		HealthChecks:  map[string]middleware.HealthChecker{"database": &middleware.DatabaseHealthChecker{DB: db}},
		MaxTextLength: cfg.Analysis.MaxTextLength,
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		zl.Info("server listening", zap.String("addr", addr), zap.String("driver", cfg.Database.Driver))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zl.Fatal("server error", zap.Error(err))
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	zl.Info("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		zl.Error("shutdown error", zap.Error(err))
	}
}

func openRepository(ctx context.Context, cfg *config.Config) (*sql.DB, repository, error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		db, err := postgresp.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			return nil, nil, err
		}
		return db, postgresp.NewAnalysisRepository(db), nil
	default:
		db, err := mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			return nil, nil, err
		}
		return db, mysqlp.NewAnalysisRepository(db), nil
	}
}
