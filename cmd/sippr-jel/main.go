package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/ralphwaworuntu/SIPPR-JEL-sub001/internal/config"
	"github.com/ralphwaworuntu/SIPPR-JEL-sub001/internal/database"
	httpapi "github.com/ralphwaworuntu/SIPPR-JEL-sub001/internal/http"
	"github.com/ralphwaworuntu/SIPPR-JEL-sub001/internal/logger"
	"github.com/ralphwaworuntu/SIPPR-JEL-sub001/internal/notify"
	"github.com/ralphwaworuntu/SIPPR-JEL-sub001/internal/repository"
	"github.com/ralphwaworuntu/SIPPR-JEL-sub001/internal/service"
	"github.com/ralphwaworuntu/SIPPR-JEL-sub001/internal/store"
)

func main() {
	cfg := config.Load()

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "sippr-jel")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to redis", zap.Error(err))
	}
	defer redisClient.Close()

	kv := store.NewRedisKV(redisClient)
	sessions := httpapi.NewSessionManager(kv, time.Duration(cfg.Auth.SessionTTL)*time.Second, log)

	wargaRepo := repository.NewWargaRepository(db, log)
	statsRepo := repository.NewStatsRepository(db, log)
	dashboard := service.NewDashboardService(statsRepo, log)
	notifier := notify.NewWebhookNotifier(cfg.Notify.WebhookURL, time.Duration(cfg.Notify.Timeout)*time.Second, log)

	router := httpapi.NewRouter(log)
	router.RegisterPublicRoutes(httpapi.NewRegisterHandler(wargaRepo, notifier, log))
	router.RegisterAuthRoutes(httpapi.NewAuthHandler(cfg.Auth.Account, cfg.Auth.Password, sessions, log))
	router.RegisterDashboardRoutes(sessions, httpapi.NewDashboardHandler(dashboard, log))
	router.RegisterAdminRoutes(sessions, httpapi.NewWargaHandler(wargaRepo, log))

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		log.Info("Starting HTTP server", zap.String("addr", cfg.HTTP.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
}
