package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Uvais-khan078/village360/config"
	"github.com/Uvais-khan078/village360/database"
	"github.com/Uvais-khan078/village360/pkg/auth/serviceImp"
	"github.com/Uvais-khan078/village360/pkg/logging"
	"github.com/Uvais-khan078/village360/pkg/storage/storageImp"
	"github.com/Uvais-khan078/village360/router"
)

func main() {
	// 1) Config
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, "village360")
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	// 2) DB + automigrate
	db, err := database.Open(cfg)
	if err != nil {
		logger.Fatal("open database", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}
	if db != nil {
		if err := database.Migrate(db); err != nil {
			logger.Fatal("migrate", zap.Error(err))
		}
	} else {
		logger.Warn("using in-memory store, data is lost on restart")
	}
	st := storageImp.FromDB(db)

	// 3) Echo + routes
	e := router.Setup(st, serviceImp.NewTokenIssuer(cfg.JWTSecret), logger, cfg.ClientURL)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr), zap.String("driver", cfg.DBDriver))
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", zap.Error(err))
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}
