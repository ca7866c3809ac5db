package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"stockgate/config"
	"stockgate/internal/gateway"
	"stockgate/logger"
	"stockgate/pkg/storage/postgres"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// viper config
	cfg := config.Load()

	// zap logger
	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer log.Sync()

	if cfg.Log.Environment != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize PostgreSQL client and run migrations
	postgresClient, err := postgres.InitializeAndMigrate(cfg.Postgres, cfg.Log.Environment, true)
	if err != nil {
		log.Fatal("failed to connect to DB", zap.Error(err))
	}
	defer postgresClient.Close()

	// Seed the configured admin account so /stats works on a fresh database
	if cfg.Gateway.AdminUsername != "" && cfg.Gateway.AdminPassword != "" {
		seedCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := postgresClient.EnsureAdmin(seedCtx,
			cfg.Gateway.AdminUsername, cfg.Gateway.AdminEmail, cfg.Gateway.AdminPassword)
		cancel()
		if err != nil {
			log.Fatal("failed to seed admin user", zap.Error(err))
		}
	}

	quotes := gateway.NewQuoteServiceClient(cfg.Gateway.QuoteServiceURL, cfg.QuoteService.Timeout)
	srv := gateway.NewServer(postgresClient, postgresClient, quotes, postgresClient.IsHealthy, log)

	httpSrv := &http.Server{
		Addr:              cfg.Gateway.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("gateway listening", zap.String("addr", cfg.Gateway.Addr))
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	// graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = httpSrv.Shutdown(shutdownCtx)
}
