package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"hotelsite/config"
	"hotelsite/repository"
	"hotelsite/routes"
	"hotelsite/services"
	"hotelsite/services/logger"
	"hotelsite/services/metrics"

	_ "time/tzdata"
)

func main() {
	config.LoadEnv()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		bootLog := logger.New("info", false)
		bootLog.Fatal().Err(err).Msg("Failed to load config")
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	metrics.Register()

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid hotel timezone")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store repository.Store
	if cfg.Database.Driver == "memory" {
		log.Warn().Msg("Using in-memory store, data is lost on restart")
		store = repository.NewMemoryStore()
	} else {
		db, err := config.ConnectDB(cfg)
		if err != nil {
			log.Fatal().Err(err).Str("driver", cfg.Database.Driver).Msg("Failed to connect database")
		}
		store = repository.NewGormStore(db)
	}

	redisCli, err := config.ConnectRedis(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("addr", cfg.Redis.Address).Msg("Failed to connect redis")
	}
	if redisCli == nil {
		log.Info().Msg("Redis not configured, caching disabled")
	} else {
		defer redisCli.Close()
	}

	router := config.InitApp(cfg, log)
	routes.SetupRoutes(router, routes.Options{
		Config:   cfg,
		Store:    store,
		Redis:    redisCli,
		Calendar: services.NewCalendar(loc),
		Log:      log,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}
}
