package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"bookai/backend/internal/config"
	"bookai/backend/internal/handler"
	"bookai/backend/internal/httpclient"
	"bookai/backend/internal/llm"
	"bookai/backend/internal/logger"
	"bookai/backend/internal/metadata"
	"bookai/backend/internal/mymemory"
	"bookai/backend/internal/recommend"
	"bookai/backend/internal/server"
	"bookai/backend/internal/summary"
	"bookai/backend/internal/translate"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load("")
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load config")
	}

	logger.Init(cfg.LogLevel, cfg.IsProduction())
	log := logrus.WithFields(logrus.Fields{"env": cfg.Env, "llm_provider": cfg.LLM.Provider})
	log.Info("Starting book AI service")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	llmClient, err := llm.New(ctx, cfg.LLM)
	switch {
	case err != nil:
		log.WithError(err).Warn("Failed to initialize LLM client, using fallbacks only")
	case !cfg.LLMEnabled():
		log.Warn("No LLM credential configured, using fallbacks only")
	}

	// outbound clients carry their own per-call deadlines; this is the ceiling
	httpClient := httpclient.New(httpclient.Config{Timeout: 15 * time.Second})

	books := metadata.NewClient(cfg.GoogleBooks.BaseURL, cfg.GoogleBooks.APIKey, httpClient)
	memory := mymemory.NewClient(cfg.MyMemory.BaseURL, cfg.MyMemory.Email, cfg.MyMemory.RequestsPerSecond, httpClient)

	h := handler.New(
		summary.NewGenerator(llmClient, books),
		recommend.NewEngine(llmClient, books),
		books,
		translate.NewService(llmClient, memory, cfg.Translation.Concurrency),
		llmClient != nil,
	)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.NewRouter(cfg, h),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithFields(logrus.Fields{"port": cfg.Port, "allowed_origins": cfg.AllowedOrigins}).Info("Server ready")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown failed")
	}
}
