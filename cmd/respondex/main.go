package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/rueidis"
	"go.uber.org/zap"

	"github.com/atendia/respondex/internal/config"
	logpkg "github.com/atendia/respondex/internal/logger"
	"github.com/atendia/respondex/internal/metrics"
	feedbackrepo "github.com/atendia/respondex/internal/repository/feedback"
	lexicalrepo "github.com/atendia/respondex/internal/repository/lexical"
	chiTransport "github.com/atendia/respondex/internal/transport/chi"
	openaiTransport "github.com/atendia/respondex/internal/transport/openai"
	qdrantTransport "github.com/atendia/respondex/internal/transport/qdrant"
	answeruc "github.com/atendia/respondex/internal/usecase/answer"
	"github.com/atendia/respondex/internal/usecase/clarify"
	"github.com/atendia/respondex/internal/usecase/classify"
	"github.com/atendia/respondex/internal/usecase/confidence"
	healthuc "github.com/atendia/respondex/internal/usecase/health"
	"github.com/atendia/respondex/internal/usecase/queryexpand"
	"github.com/atendia/respondex/internal/usecase/ranking"
	"github.com/atendia/respondex/internal/usecase/retrieval"
	"github.com/atendia/respondex/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting respondex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("redis_addrs", cfg.Database.Addrs),
		zap.String("qdrant_host", cfg.Qdrant.Host),
	)

	redisClient, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  cfg.Database.Addrs,
		Password:     cfg.Database.Password,
		DisableCache: true,
		AlwaysRESP2:  true, // FT.SEARCH result parsing expects RESP2 array format
	})
	if err != nil {
		logger.Fatal("Failed to create redis client", zap.Error(err))
	}
	defer redisClient.Close()

	ctx := context.Background()
	readiness := time.Duration(cfg.Database.ReadinessTimeout) * time.Second
	if err := waitForRedis(ctx, redisClient, readiness); err != nil {
		logger.Fatal("Redis not ready", zap.Error(err))
	}
	logger.Info("Connected to redis")

	// Register pipeline and provider metrics explicitly (no init())
	metrics.RegisterPipelineMetrics()
	metrics.RegisterProviderMetrics()

	vectors, err := qdrantTransport.NewSearcher(&qdrantTransport.Config{
		Host:       cfg.Qdrant.Host,
		Port:       cfg.Qdrant.Port,
		APIKey:     cfg.Qdrant.APIKey,
		UseTLS:     cfg.Qdrant.UseTLS,
		Collection: cfg.Qdrant.Collection,
		Logger:     logger,
	})
	if err != nil {
		logger.Fatal("Failed to create qdrant searcher", zap.Error(err))
	}
	defer func() { _ = vectors.Close() }()

	embedder := openaiTransport.NewEmbedder(&openaiTransport.EmbedderConfig{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Provider:   cfg.Embedding.Provider,
		Logger:     logger,
	})
	generator := openaiTransport.NewGenerator(&openaiTransport.GeneratorConfig{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
		Provider:    cfg.LLM.Provider,
		Logger:      logger,
	})
	logger.Info("Providers created",
		zap.String("embedding_model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
		zap.String("llm_model", cfg.LLM.Model),
	)

	// Repositories
	lexical := lexicalrepo.NewStore(redisClient, cfg.Database.SearchIndex)
	feedback := feedbackrepo.NewStore(redisClient, cfg.Database.FeedbackKeyPrefix)

	// Ranking pipeline
	scorer := ranking.NewScorer(scoreWeights(cfg.Retrieval.Weights), logger)
	if len(cfg.Retrieval.GuardTerms) > 0 {
		scorer = scorer.WithGuardTerms(cfg.Retrieval.GuardTerms)
	}
	recency := ranking.NewRecencyBooster(logger)
	confScorer := confidence.NewScorer()
	clarifier := clarify.NewService(generator, logger)

	retriever := retrieval.New(
		embedder, vectors, lexical,
		scorer, recency, confScorer, clarifier,
		retrieval.Options{
			Lambda:       cfg.Retrieval.Lambda,
			MaxResults:   cfg.Retrieval.MaxResults,
			RecencyStage: retrieval.RecencyStage(cfg.Retrieval.RecencyStage),
		},
	)

	// Use case services
	answers := answeruc.New(
		classify.NewClassifier(nil),
		queryexpand.NewExpander(),
		retriever,
		generator,
		feedback,
		cfg.LLM.Model,
	)
	health := healthuc.New(lexical, vectors, embedder)

	// HTTP surface
	server := chiTransport.NewServer(answers, feedback, health, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// scoreWeights maps the config section onto ranking weights, falling
// back to the tuned defaults when the section is absent.
func scoreWeights(w config.WeightsConfig) ranking.Weights {
	if w.Vector == 0 && w.Text == 0 && w.Title == 0 && w.Category == 0 {
		return ranking.DefaultWeights()
	}
	return ranking.Weights{
		Vector:   w.Vector,
		Text:     w.Text,
		Title:    w.Title,
		Category: w.Category,
	}
}

// waitForRedis polls PING until redis responds or timeout expires.
func waitForRedis(ctx context.Context, client rueidis.Client, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for redis: %w", ctx.Err())
		case <-ticker.C:
			cmd := client.B().Ping().Build()
			if err := client.Do(ctx, cmd).Error(); err == nil {
				return nil
			}
		}
	}
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
