package main

import (
	"context"
	"time"

	"github.com/vannarellifabrizio-hash/ses-app/config"
	"github.com/vannarellifabrizio-hash/ses-app/internal/bootstrap"
	"github.com/vannarellifabrizio-hash/ses-app/internal/exportcache"
	"github.com/vannarellifabrizio-hash/ses-app/internal/logger"
	cronjob "github.com/vannarellifabrizio-hash/ses-app/internal/report/cron"
	"github.com/vannarellifabrizio-hash/ses-app/internal/report/service"
	"github.com/vannarellifabrizio-hash/ses-app/internal/store"
)

const serviceName = "ses-app"

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := logger.New(serviceName, "info")
		boot.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.New(serviceName, cfg.App.LogLevel)
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	db, err := bootstrap.OpenDB(ctx, &cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	st := store.New(db)

	// Redis is optional: without it exports are rendered on every request
	// and no nightly digest is stored.
	cache, err := bootstrap.OpenRedis(ctx, &cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, export caching disabled")
		cache = nil
	} else {
		defer cache.Close()
	}

	var exportCache service.ExportCache
	if cache != nil {
		exportCache = exportcache.NewRepo(cache, time.Duration(cfg.Export.CacheTTLMinutes)*time.Minute)
	}

	reports := service.New(st, exportCache, log)

	if cache != nil {
		cronjob.NewScheduler(reports, cache, log).Start()
	}

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:     serviceName,
		Version:         cfg.App.Version,
		DB:              db,
		Cache:           cache,
		Store:           st,
		Reports:         reports,
		ExportPerMinute: cfg.Export.RatePerMinute,
	})

	log.Info().Str("port", cfg.Server.Port).Str("env", cfg.App.Environment).Msg("api listening")
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
