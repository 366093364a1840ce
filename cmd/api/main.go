package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/bryanwahyu/pitchlens/internal/application"
	"github.com/bryanwahyu/pitchlens/internal/application/analyzer"
	appevals "github.com/bryanwahyu/pitchlens/internal/application/evaluations"
	"github.com/bryanwahyu/pitchlens/internal/application/pipeline"
	"github.com/bryanwahyu/pitchlens/internal/config"
	domain "github.com/bryanwahyu/pitchlens/internal/domain/pitch"
	aiopenai "github.com/bryanwahyu/pitchlens/internal/infra/ai/openai"
	"github.com/bryanwahyu/pitchlens/internal/infra/ai/prompt"
	"github.com/bryanwahyu/pitchlens/internal/infra/extract"
	"github.com/bryanwahyu/pitchlens/internal/infra/httpserver"
	mysqlLedger "github.com/bryanwahyu/pitchlens/internal/infra/ledger/mysql"
	pgLedger "github.com/bryanwahyu/pitchlens/internal/infra/ledger/postgres"
	"github.com/bryanwahyu/pitchlens/internal/infra/prover"
	minioVault "github.com/bryanwahyu/pitchlens/internal/infra/storage"
	"github.com/bryanwahyu/pitchlens/internal/middleware"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()

	// connect ledger database
	var db *sql.DB
	var ledger domain.Ledger
	var repo domain.Repository
	switch cfg.Database.Driver {
	case "postgres":
		db, err = pgLedger.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			log.Fatalf("postgres connect error: %v", err)
		}
		r := pgLedger.NewLedgerRepository(db)
		ledger, repo = r, r
	default:
		db, err = mysqlLedger.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			log.Fatalf("mysql connect error: %v", err)
		}
		r := mysqlLedger.NewLedgerRepository(db)
		ledger, repo = r, r
	}
	defer db.Close()

	// init pitch vault
	vault, err := minioVault.New(ctx,
		cfg.Minio.Endpoint,
		cfg.Minio.Region,
		cfg.Minio.BucketName,
		cfg.Minio.AccessKey,
		cfg.Minio.SecretKey,
		cfg.Minio.UseSSL,
	)
	if err != nil {
		log.Fatalf("minio init error: %v", err)
	}

	// init AI clients and scorers
	ai := aiopenai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.EmbedModel)
	pitchAnalyzer := &analyzer.Analyzer{
		Rubrics:     analyzer.NewRubricScorer(ai, prompt.Instructions()),
		Originality: analyzer.NewOriginalityScorer(ai, nil),
		Extractor:   extract.New(vault),
	}

	// init pipeline engine
	engine := &pipeline.Engine{
		Analyzer: pitchAnalyzer,
		Vault:    vault,
		Prover:   prover.New(),
		Ledger:   ledger,
	}

	svc := &appevals.Service{
		Engine: engine,
		Repo:   repo,
		Clock:  application.SystemClock{},
	}

	// init router
	mux := chi.NewRouter()
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	if len(cfg.Auth.APIKeys) > 0 {
		mux.Use(middleware.APIKeyAuth(cfg.Auth.APIKeys))
	}
	if cfg.RateLimit.Capacity > 0 {
		mux.Use(middleware.RateLimitMiddleware(cfg.RateLimit.Capacity, cfg.RateLimit.RefillRate))
	}

	mux.Get("/health", middleware.HealthHandler(map[string]middleware.HealthChecker{
		"database": &middleware.DatabaseHealthChecker{DB: db},
		"vault":    &middleware.VaultHealthChecker{Vault: vault},
	}))
	mux.Get("/metrics", middleware.MetricsHandler)
	mux.Mount("/", httpserver.NewRouter(svc))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // evaluation runs are synchronous
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		log.Printf("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
