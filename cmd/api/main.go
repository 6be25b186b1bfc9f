package main

import (
	"log"
	"net/http"
	"time"

	"github.com/nw3q/toshin-chieria-calender-api/internal/config"
	"github.com/nw3q/toshin-chieria-calender-api/internal/platform/logger"
	"github.com/nw3q/toshin-chieria-calender-api/internal/router"

	_ "github.com/nw3q/toshin-chieria-calender-api/docs"
)

// @title toshin-chieria-calender-api
// @version 1.0
// @description Feed JSON normalizado del calendario publicado de Toshin Chieria, con fallback a la content-API de WordPress.
// @BasePath /
func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if cfg.SourceBaseURL == "" {
		log.Printf("warning: SOURCE_BASE_URL is not set; /events will fail until configured")
	}

	appLog := logger.NewFromEnv()

	r := router.NewRouter(router.Options{
		Config: cfg,
		Log:    appLog,
	})

	srv := &http.Server{
		Addr:         cfg.Listen,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	appLog.Info("starting server", map[string]any{"addr": cfg.Listen})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}
