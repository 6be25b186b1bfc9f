package router

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	memcache "github.com/nw3q/toshin-chieria-calender-api/internal/adapters/cache/memory"
	pgcache "github.com/nw3q/toshin-chieria-calender-api/internal/adapters/cache/postgres"
	"github.com/nw3q/toshin-chieria-calender-api/internal/config"
	"github.com/nw3q/toshin-chieria-calender-api/internal/domain/calendar"
	"github.com/nw3q/toshin-chieria-calender-api/internal/middleware"
	"github.com/nw3q/toshin-chieria-calender-api/internal/platform/httpclient"
	"github.com/nw3q/toshin-chieria-calender-api/internal/platform/logger"
	"github.com/nw3q/toshin-chieria-calender-api/internal/ports/cache"
)

type Options struct {
	Config *config.Config
	Log    logger.Logger

	// Cache opcional: si viene, se usa tal cual (tests). Si no, se decide
	// por DatabaseDSN: Postgres si hay DSN, memoria si no.
	Cache cache.Store

	// Transport opcional para inyectar en tests (fakes del upstream).
	Transport http.RoundTripper
}

func NewRouter(opts Options) http.Handler {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	log := opts.Log
	if log == nil {
		log = logger.NewFromEnv()
	}

	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(log))

	r.Get("/healthz", healthHandler)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	store := opts.Cache
	if store == nil && cfg.DatabaseDSN != "" {
		if db, err := pgcache.Open(cfg.DatabaseDSN); err != nil {
			log.Warn("postgres cache unavailable, falling back to memory", map[string]any{"err": err.Error()})
		} else if err := pgcache.EnsureSchema(context.Background(), db); err != nil {
			log.Warn("postgres cache schema failed, falling back to memory", map[string]any{"err": err.Error()})
			_ = db.Close()
		} else {
			store = pgcache.NewStore(db)
		}
	}
	if store == nil {
		store = memcache.NewStore()
	}

	client := httpclient.NewWithTransport(15*time.Second, opts.Transport)

	fetcher := calendar.NewFetcher(client, calendar.FetcherConfig{
		BaseURL:   cfg.SourceBaseURL,
		PageID:    cfg.SourcePageID,
		UserAgent: cfg.UserAgent,
	}, log)

	svc := calendar.NewService(fetcher, store, log, calendar.Defaults{
		CalendarID: cfg.CalendarID,
		Timezone:   cfg.Timezone,
	}, cfg.CacheTTL())

	calendar.RegisterRoutes(r, svc)

	return r
}

// healthHandler godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /healthz [get]
func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
