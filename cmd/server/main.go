// LexAI - Server Entry Point
//
// Legal document analysis and generation service. Initializes all
// dependencies and starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/lex-ai/internal/ai"
	"github.com/lex-ai/internal/compliance"
	"github.com/lex-ai/internal/config"
	"github.com/lex-ai/internal/extractor"
	"github.com/lex-ai/internal/handler"
	"github.com/lex-ai/internal/logger"
	"github.com/lex-ai/internal/service"
	"github.com/lex-ai/internal/session"
	"github.com/lex-ai/internal/store"
	"go.uber.org/zap"
)

func main() {
	// Load .env file if it exists (development)
	_ = godotenv.Load()

	isDev := os.Getenv("GIN_MODE") != "release"

	zapLogger, err := logger.New(isDev, os.Getenv("LOG_LEVEL"))
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("starting LexAI server",
		zap.Bool("development", isDev),
	)

	cfg, err := config.Load()
	if err != nil {
		zapLogger.Fatal("failed to load configuration", zap.Error(err))
	}

	zapLogger.Info("configuration loaded",
		zap.String("port", cfg.Server.Port),
		zap.String("model", cfg.AI.Model),
		zap.Bool("mock_mode", cfg.AI.MockMode),
		zap.Bool("identity_store_configured", cfg.StoreEnabled()),
	)

	// Generative-text client
	var aiClient ai.Client
	if cfg.AI.MockMode {
		zapLogger.Warn("running in mock mode - AI responses are simulated")
		aiClient = ai.NewMockClient(zapLogger)
	} else {
		aiClient = ai.NewGeminiClient(&cfg.AI, zapLogger)
	}

	prompts, err := ai.NewPromptBuilder()
	if err != nil {
		zapLogger.Fatal("failed to create prompt builder", zap.Error(err))
	}

	// Identity store: constructed once; degraded mode is decided here and
	// never re-probed per request.
	var identityStore store.IdentityStore
	if cfg.StoreEnabled() {
		identityStore = store.NewRedis(cfg.Store, zapLogger)
	} else {
		zapLogger.Info("no identity store configured, session-only tracking")
		identityStore = store.NewDisabled()
	}
	defer identityStore.Close()

	// Services
	analyzerSvc := service.NewAnalyzer(
		aiClient,
		prompts,
		extractor.New(zapLogger),
		compliance.NewHeuristicScorer(),
		service.AnalyzerConfig{
			UploadDir:         cfg.Upload.Dir,
			AllowedExtensions: cfg.Upload.AllowedExtensions,
		},
		zapLogger,
	)
	generatorSvc := service.NewGenerator(aiClient, prompts, zapLogger)
	authSvc := service.NewAuth(identityStore, zapLogger)
	sessions := session.NewManager(cfg.Session)

	// Handlers
	analyzeHandler := handler.NewAnalyzeHandler(analyzerSvc, zapLogger)
	generateHandler := handler.NewGenerateHandler(generatorSvc, zapLogger)
	authHandler := handler.NewAuthHandler(authSvc, sessions, zapLogger)
	healthHandler := handler.NewHealthHandler()
	readyHandler := handler.NewReadyHandler(aiClient, identityStore.Available())

	if !isDev {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.MaxMultipartMemory = cfg.Upload.MaxSize

	router.Use(handler.RecoveryMiddleware(zapLogger))
	router.Use(handler.RequestIDMiddleware())
	router.Use(handler.LoggingMiddleware(zapLogger))
	router.Use(handler.CORSMiddleware())
	router.Use(handler.BodyLimitMiddleware(cfg.Upload.MaxSize))

	router.GET("/health", healthHandler.Handle)
	router.GET("/ready", readyHandler.Handle)

	api := router.Group("/api")
	{
		api.POST("/analyze-document", analyzeHandler.HandleDocument)
		api.POST("/analyze-text", analyzeHandler.HandleText)
		api.POST("/generate-document", generateHandler.Handle)
		api.POST("/auth/signin", authHandler.HandleSignIn)
		api.POST("/auth/signout", authHandler.HandleSignOut)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		zapLogger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("shutting down server...")

	// Give the server 10 seconds to finish processing
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("server stopped")
}
