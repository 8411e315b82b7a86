package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/quicksplit/quicksplit/internal/api"
	"github.com/quicksplit/quicksplit/internal/auth"
	"github.com/quicksplit/quicksplit/internal/config"
	"github.com/quicksplit/quicksplit/internal/middleware"
	"github.com/quicksplit/quicksplit/internal/ocr"
	"github.com/quicksplit/quicksplit/internal/service"
	"github.com/quicksplit/quicksplit/internal/share"
	"github.com/quicksplit/quicksplit/internal/storage/sqlite"
	"github.com/quicksplit/quicksplit/pkg/logging"
)

func main() {
	_ = godotenv.Load()
	logging.Setup()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.SQLiteDBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.SQLiteDBPath)

	tokens := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration)
	authSvc := service.NewAuthService(auth.NewPasswordAuthenticator(store), tokens)

	var extractor ocr.Extractor
	if cfg.GeminiAPIKey != "" {
		extractor = ocr.NewGeminiClient(cfg.GeminiAPIKey, ocr.WithModel(cfg.GeminiModel))
		slog.Info("Receipt extraction enabled")
	} else {
		slog.Warn("GEMINI_API_KEY not set; receipt extraction disabled")
	}

	// No native share mechanism on the server; summaries land on the
	// clipboard buffer and the text travels back in the response.
	splitSvc := service.NewSplitService(store, extractor, nil, &share.Buffer{})

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.Logging)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	api.NewHandler(splitSvc, authSvc).Register(r, tokens)

	addr := fmt.Sprintf(":%s", cfg.Port)
	slog.Info("Server starting", "address", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
