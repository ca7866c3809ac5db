package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"stockgate/config"
	"stockgate/internal/quoteservice"
	"stockgate/logger"
	"stockgate/pkg/stooq"

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

	client := stooq.NewClient(cfg.Stooq.BaseURL, cfg.Stooq.Timeout)
	srv := quoteservice.NewServer(client, log)

	httpSrv := &http.Server{
		Addr:              cfg.QuoteService.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("quote service listening", zap.String("addr", cfg.QuoteService.Addr))
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
