package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/contactintel/backend/internal/config"
	"github.com/contactintel/backend/internal/handler"
	"github.com/contactintel/backend/internal/logging"
	"github.com/contactintel/backend/internal/repository"
	"github.com/contactintel/backend/internal/scoring"
	"github.com/contactintel/backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup("INFO")
		logging.Fatal("config load failed", "error", err)
	}
	logging.Setup(cfg.LogLevel)

	scorer, ok := scoring.ByName(cfg.ScoringRubric)
	if !ok {
		logging.Fatal("unknown scoring rubric", "rubric", cfg.ScoringRubric)
	}

	pool, err := repository.NewPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logging.Fatal("failed to connect to database", "error", err)
	}
	defer pool.Close()

	contactRepo := repository.NewPgContactRepository(pool)
	contactService := service.NewContactService(contactRepo, scorer)

	h := handler.New(contactRepo, cfg.AllowedOrigins)
	contactHandler := handler.NewContactHandler(contactService)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.Root)
	mux.HandleFunc("GET /api/health", h.Health)
	mux.HandleFunc("GET /api/contacts", contactHandler.List)
	mux.HandleFunc("GET /api/contacts/stats/summary", contactHandler.Stats)
	mux.HandleFunc("GET /api/contacts/{id}", contactHandler.Get)
	mux.HandleFunc("POST /api/contacts", contactHandler.Create)
	mux.HandleFunc("PUT /api/contacts/{id}", contactHandler.Update)
	mux.HandleFunc("DELETE /api/contacts/{id}", contactHandler.Delete)
	mux.HandleFunc("/", h.NotFound)

	rl := handler.NewRateLimiter(cfg.RateLimitPerMinute)
	chain := handler.RequestLogger(
		h.CORS(handler.SecurityHeaders(rl.Middleware(mux))))

	server := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Port),
		Handler:      chain,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr, "rubric", cfg.ScoringRubric)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}
