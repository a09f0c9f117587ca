package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fleetbilling/internal/billing"
	intconfig "fleetbilling/internal/config"
	router "fleetbilling/internal/http"
	"fleetbilling/internal/http/handlers"
	"fleetbilling/internal/jobs"
	"fleetbilling/internal/realtime"
	"fleetbilling/internal/repositories"
	"fleetbilling/internal/services"
	"fleetbilling/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	db, err := intconfig.ConnectDB(env)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	defer intconfig.CloseDB()
	dialect := intconfig.Dialect

	trips := &repositories.TripsRepository{DB: db, Dialect: dialect}
	presets := &repositories.PresetsRepository{DB: db, Dialect: dialect}
	cn := &repositories.CNRepository{DB: db, Dialect: dialect}
	prefs := &repositories.PrefsRepository{DB: db, Dialect: dialect}
	cache := services.NewTripCache(trips)
	hub := realtime.NewHub(0)

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	if env.RedisURL != "" {
		opts, err := redis.ParseURL(env.RedisURL)
		if err != nil {
			log.Fatalf("Invalid REDIS_URL: %v", err)
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()

		relay := realtime.NewRedisRelay(rdb, env.RedisChannel)
		relay.Attach(rootCtx, hub)
		go func() {
			err := relay.Run(rootCtx, func(ev billing.ChangeEvent) {
				cache.Apply(ev)
				hub.Deliver(ev)
			})
			if err != nil {
				log.Printf("warning: trip change relay stopped: %v", err)
			}
		}()
	}

	var photos storage.Store
	if env.MinioEndpoint != "" {
		m, err := storage.NewMinio(storage.MinioConfig{
			Endpoint:  env.MinioEndpoint,
			AccessKey: env.MinioAccessKey,
			SecretKey: env.MinioSecretKey,
			Bucket:    env.MinioBucket,
			UseSSL:    env.MinioUseSSL,
			PublicURL: env.MinioPublicURL,
		})
		if err != nil {
			log.Fatalf("Failed to configure photo storage: %v", err)
		}
		ctx, cancel := context.WithTimeout(rootCtx, 10*time.Second)
		err = m.EnsureBucket(ctx)
		cancel()
		if err != nil {
			log.Fatalf("Failed to prepare photo bucket: %v", err)
		}
		photos = m
	}

	hs := &handlers.Handlers{
		Trips:   trips,
		Presets: presets,
		CN:      cn,
		Refills: &repositories.FuelRefillsRepository{DB: db, Dialect: dialect},
		Prefs:   prefs,
		Cache:   cache,
		Hub:     hub,
		Photos:  photos,
		DB:      db,
		Dialect: dialect,
		Env:     env,
	}

	r := router.NewRouter(env, hs)

	var exporter *jobs.CycleCloseExporter
	if env.ExportSchedule != "" {
		cycles := services.CycleService{
			Cache:     cache,
			Presets:   services.PresetService{Repo: presets, Prefs: prefs, RequestID: "cron"},
			CN:        cn,
			RequestID: "cron",
		}
		exporter = jobs.NewCycleCloseExporter(cycles, env.ExportDir, env.ExportSchedule)
		if err := exporter.Start(); err != nil {
			log.Fatalf("Failed to start jobs: %v", err)
		}
	}

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// no write timeout: /api/trips/stream holds its response open
		IdleTimeout: 60 * time.Second,
	}
	// cancelling the base context ends open change streams on shutdown
	srv.BaseContext = func(net.Listener) context.Context { return rootCtx }
	srv.RegisterOnShutdown(stop)

	go func() {
		log.Printf("Server listening on http://localhost%s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to run server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if exporter != nil {
		exporter.Stop(ctx)
	}
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped cleanly.")
}
