package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/youruser/comicstrip/internal/api"
	"github.com/youruser/comicstrip/internal/config"
	imagepkg "github.com/youruser/comicstrip/internal/image"
	"github.com/youruser/comicstrip/internal/strip"
	"github.com/youruser/comicstrip/internal/uploads"
)

func main() {
	cfg := config.Load()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	store := uploads.NewStore()
	fetcher := imagepkg.NewFetcher(imagepkg.FetcherOptions{
		Timeout:  cfg.FetchTimeout,
		Interval: cfg.FetchInterval,
		Burst:    cfg.FetchBurst,
		CacheTTL: cfg.ImageCacheTTL,
		Blobs:    store,
	})
	session := strip.NewSession(fetcher)

	r := gin.Default()
	r.MaxMultipartMemory = cfg.MaxUploadBytes
	api.RegisterRoutes(r, api.NewHandler(session, store, cfg.MaxUploadBytes))

	slog.Info("starting server", "addr", "http://localhost:"+cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
