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

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/moatezLita/salesGPT/internal/auth"
	"github.com/moatezLita/salesGPT/internal/config"
	"github.com/moatezLita/salesGPT/internal/handler"
	"github.com/moatezLita/salesGPT/internal/llm"
	"github.com/moatezLita/salesGPT/internal/logger"
	middlewarepkg "github.com/moatezLita/salesGPT/internal/middleware"
	"github.com/moatezLita/salesGPT/internal/repository"
	"github.com/moatezLita/salesGPT/internal/router"
	"github.com/moatezLita/salesGPT/internal/scraper"
	"github.com/moatezLita/salesGPT/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if !cfg.APIKeyConfigured() {
		zlog.Warn("GROQ_API_KEY is not set, analysis and email generation will fail")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := repository.NewStore(ctx, cfg.Store, zlog)
	if err != nil {
		zlog.Fatal("failed to connect store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}

	completer := llm.NewClient(cfg.LLM, zlog)
	siteScraper := scraper.New(scraper.NewFetcher(cfg.ScrapeTimeout), zlog)

	analysisService := service.NewAnalysisService(siteScraper, service.NewBusinessAnalyzer(completer, zlog), store, zlog)
	emailService := service.NewEmailService(store, store, service.NewEmailComposer(completer, cfg.EmailStrategy, zlog), zlog)

	var tokens middlewarepkg.TokenParser
	if cfg.SupabaseJWTSecret != "" {
		tokens = auth.NewVerifier(cfg.SupabaseJWTSecret, 0)
	} else {
		zlog.Info("SUPABASE_JWT_SECRET is not set, /api/v1 is unauthenticated")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging(zlog))
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))
	e.Use(middlewarepkg.Metrics())

	router.Register(e, tokens, router.Handlers{
		Health:   handler.NewHealthHandler(cfg.APIKeyConfigured()),
		Analyses: handler.NewAnalysisHandler(analysisService, zlog),
		Emails:   handler.NewEmailHandler(emailService, zlog),
	})

	serverErr := make(chan error, 1)
	go func() {
		zlog.Info("api listening",
			zap.String("port", cfg.Port),
			zap.String("store", cfg.Store.Driver),
			zap.String("model", cfg.LLM.Model),
			zap.String("email_strategy", cfg.EmailStrategy),
		)
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		zlog.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Error("server error", zap.Error(err))
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		zlog.Error("graceful shutdown failed", zap.Error(err))
	}
	if err := store.Close(shutdownCtx); err != nil {
		zlog.Error("closing store failed", zap.Error(err))
	}
}
