package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	v1 "innsight/api/v1"
	"innsight/database"
	analyticsapp "innsight/internal/analytics/application"
	"innsight/internal/config"
	exportapp "innsight/internal/export/application"
	ingestapp "innsight/internal/ingest/application"
	ingestdomain "innsight/internal/ingest/domain"
	ingestinfra "innsight/internal/ingest/infrastructure"
	sharedinfra "innsight/internal/shared/infrastructure"
)

func main() {
	cfg := config.Load(ingestinfra.DefaultDataPath())
	logger := sharedinfra.NewLogger()

	ctx := context.Background()
	source, err := newSource(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to configure data source: %v", err)
	}
	defer database.Close()

	router, err := newRouter(cfg, source, logger)
	if err != nil {
		log.Fatalf("Failed to build server: %v", err)
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server listening on %s (source: %s)", cfg.HTTPAddr, sourceName(source))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	log.Println("👋 Server stopped")
}

// newSource choisit la source initiale: PostgreSQL, S3 ou fichier local
func newSource(ctx context.Context, cfg *config.Config) (ingestdomain.Source, error) {
	switch {
	case cfg.UsePostgres():
		if err := database.Init(cfg.DatabaseURL); err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		return ingestinfra.NewPostgresSource(database.DB, cfg.ReservationsQuery), nil
	case ingestinfra.IsS3URL(cfg.DataPath):
		return ingestinfra.NewS3Source(ctx, cfg.DataPath)
	default:
		return ingestinfra.NewFileSource(cfg.DataPath), nil
	}
}

// newRouter assemble services et routes
func newRouter(cfg *config.Config, source ingestdomain.Source, logger *sharedinfra.Logger) (http.Handler, error) {
	aliases, err := ingestinfra.LoadAliases(cfg.AliasesFile)
	if err != nil {
		return nil, err
	}

	loader := ingestapp.NewLoadService(sharedinfra.NewSlotCache(), logger, ingestapp.LoadOptions{
		Aliases:  aliases,
		DayFirst: cfg.DateDayFirst,
		Currency: cfg.Currency,
		CacheTTL: cfg.CacheTTL,
	})
	dashboard := analyticsapp.NewDashboardService(loader, source, logger)
	exports := exportapp.NewExportService(dashboard, logger)
	handlers := v1.NewHandlers(dashboard, exports, cfg.MaxUploadBytes())

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/api/health", healthHandler(dashboard))
	r.Route("/api/v1", handlers.RegisterRoutes)
	if cfg.EnableProfiler {
		r.Mount("/debug", middleware.Profiler())
	}

	return r, nil
}

func healthHandler(dashboard *analyticsapp.DashboardService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"status": "ok",
			"source": sourceName(dashboard.Source()),
		})
	}
}

func sourceName(src ingestdomain.Source) string {
	if src == nil {
		return "awaiting upload"
	}
	return src.Name()
}
