package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bryanwahyu/auditronaut/internal/application"
	"github.com/bryanwahyu/auditronaut/internal/application/audits"
	"github.com/bryanwahyu/auditronaut/internal/application/matching"
	"github.com/bryanwahyu/auditronaut/internal/infra/ai/openai"
	"github.com/bryanwahyu/auditronaut/internal/infra/extract"
	"github.com/bryanwahyu/auditronaut/internal/infra/github"
	"github.com/bryanwahyu/auditronaut/internal/infra/httpserver"
	"github.com/bryanwahyu/auditronaut/internal/infra/storage"
	"github.com/bryanwahyu/auditronaut/internal/metrics"
	"github.com/bryanwahyu/auditronaut/internal/middleware"
)

func newServeCommand(a *app) *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context(), migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply the schema before serving")
	return cmd
}

func (a *app) serve(ctx context.Context, migrate bool) error {
	cfg, log := a.cfg, a.logger

	store, closeStore, err := openStore(ctx, cfg, migrate)
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	defer closeStore()

	catalog, err := loadCatalog(cfg)
	if err != nil {
		return fmt.Errorf("checklist: %w", err)
	}

	if cfg.OpenAI.APIKey == "" {
		log.Warn("openai.apiKey is empty; answering will fail until it is set")
	}
	extractor := extract.Extractor{}
	m := metrics.New(prometheus.DefaultRegisterer)

	svc := &audits.Service{
		Store:     store,
		Answerer:  openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.BaseURL),
		Catalog:   catalog,
		Matcher:   matching.New(cfg.Audit.MatchThreshold),
		Extractor: extractor,
		Code:      github.New(cfg.GitHub.Token, nil),
		Metrics:   m,
		Log:       log,
		Clock:     application.SystemClock{},
		Options: audits.Options{
			AnswerTimeout:       cfg.Audit.AnswerTimeout,
			FetchTimeout:        cfg.Audit.FetchTimeout,
			DefaultOrganization: cfg.Audit.DefaultOrganization,
			DefaultProjects:     cfg.Audit.DefaultProjects,
		},
	}

	// init minio (opsional)
	if cfg.MinioEnabled() {
		objects, err := storage.New(ctx, storage.Options{
			Endpoint:       cfg.Minio.Endpoint,
			Region:         cfg.Minio.Region,
			AccessKey:      cfg.Minio.AccessKey,
			SecretKey:      cfg.Minio.SecretKey,
			UseSSL:         cfg.Minio.UseSSL,
			EvidenceBucket: cfg.Minio.EvidenceBucket,
			ReportBucket:   cfg.Minio.ReportBucket,
		}, extractor)
		if err != nil {
			return fmt.Errorf("minio init: %w", err)
		}
		svc.Share = objects
		svc.Archive = objects
	} else {
		log.Info("minio not configured; file share and report archive disabled")
	}

	handler := httpserver.NewRouter(svc, httpserver.Options{
		APIKeys:     cfg.Server.APIKeys,
		CORSOrigins: cfg.Server.CORSOrigins,
		RateLimiter: middleware.NewRateLimiter(ctx, cfg.Server.RateLimit.Capacity, cfg.Server.RateLimit.RefillRate),
		Health:      map[string]middleware.HealthChecker{"database": middleware.PingChecker{Target: store}},
		Metrics:     m,
		Gatherer:    prometheus.DefaultGatherer,
		Log:         log,
	})
	if len(cfg.Server.APIKeys) == 0 {
		log.Warn("server.apiKeys is empty; /v1 is not authenticated")
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// graceful shutdown
	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}
	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", zap.Error(err))
		return err
	}
	return nil
}
