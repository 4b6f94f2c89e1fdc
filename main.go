package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalog/internal/config"
	"catalog/internal/coordination"
	api "catalog/internal/http"
	"catalog/internal/http/handlers"
	"catalog/internal/repositories"
	"catalog/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	env := config.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	logger, err := config.NewLogger(env)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := config.OpenDB(env)
	if err != nil {
		logger.Fatal("mysql connection failed", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	rdb, err := config.OpenRedis(env)
	if err != nil {
		logger.Fatal("redis connection failed", zap.Error(err))
	}
	store := coordination.NewRedisStore(rdb)
	defer func() { _ = store.Close() }()

	repo := repositories.ProductRepository{DB: db}
	products := services.NewProductService(repo, store, logger)
	webhooks := services.NewWebhookService(store, logger)
	tokens := services.NewTokenService(store, services.OAuthProvider{
		TokenURL:     env.OAuthTokenURL,
		ClientID:     env.OAuthClientID,
		ClientSecret: env.OAuthClientSecret,
	}, logger)
	external := services.NewExternalService(tokens, env.ExternalAPIURL, logger)

	r := api.NewRouter(api.Deps{
		Log:      logger,
		Limiter:  services.NewRateLimiter(store),
		Products: handlers.ProductHandler{Svc: products, Export: services.ExportService{Repo: repo}},
		Webhook:  handlers.WebhookHandler{Gate: webhooks},
		External: handlers.ExternalHandler{Svc: external},
		DBCheck:  handlers.DBCheck(db),

		CORSOrigins: env.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", env.AppAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown failed", zap.Error(err))
	}

	logger.Info("server stopped")
}
