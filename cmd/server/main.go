package main

import (
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"podcasts/docs"
	"podcasts/internal/auth"
	"podcasts/internal/cache"
	"podcasts/internal/config"
	"podcasts/internal/db"
	"podcasts/internal/handler"
	"podcasts/internal/metrics"
	"podcasts/internal/password"
	"podcasts/internal/repository"
	"podcasts/internal/router"
	"podcasts/internal/service"
)

// @title Podcasts API
// @version 1.0
// @description Podcast catalog with accounts, hosts and listeners.
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey JWTAuth
// @in header
// @name X-JWT
func main() {
	cfg := config.Load()

	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}
	log.SetReportTimestamp(true)

	gormDB, err := db.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Fatal("database init", "driver", cfg.DBDriver, "err", err)
	}

	if cfg.ResetDB {
		log.Warn("RESET_DB set, dropping all tables")
		if err := db.Reset(gormDB); err != nil {
			log.Fatal("reset database", "err", err)
		}
	}

	if err := db.Migrate(gormDB); err != nil {
		log.Fatal("migrate", "err", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	if cacheClient == nil {
		log.Info("REDIS_ADDR not set, caching disabled")
	}

	userRepo := repository.NewUserRepository(gormDB)
	podcastRepo := repository.NewPodcastRepository(gormDB)

	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTTTL)
	guard := auth.NewGuard(jwtService, userRepo, cfg.TokenHeader)

	userService := service.NewUserService(userRepo, jwtService, password.NewBcryptHasher(cfg.BcryptCost), cacheClient)
	podcastService := service.NewPodcastService(podcastRepo, cacheClient)

	registry := prometheus.NewRegistry()
	registry.MustRegister(prometheus.NewGoCollector(), prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))

	graphHandler := handler.NewGraphHandler(
		metrics.New(registry),
		handler.NewUserHandler(userService).Operations(),
		handler.NewPodcastHandler(podcastService).Operations(),
	)

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.HideBanner = true
	router.Register(e, guard, graphHandler, registry)

	log.Info("swagger documentation available", "url", "http://"+docs.SwaggerInfo.Host+"/swagger/index.html")

	addr := ":" + cfg.ServerPort
	log.Info("listening", "addr", addr)
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Error("server start", "err", err)
		os.Exit(1)
	}
}
