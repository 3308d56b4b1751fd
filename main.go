package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/booknest/backend/internal/client"
	"github.com/booknest/backend/internal/config"
	"github.com/booknest/backend/internal/db"
	"github.com/booknest/backend/internal/handler"
	"github.com/booknest/backend/internal/logging"
	"github.com/booknest/backend/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.Must(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx := context.Background()

	pool, err := db.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		return err
	}
	defer pool.Close()

	store := db.New(pool)
	if err := store.EnsureSchema(ctx); err != nil {
		return err
	}

	tokens, err := service.NewTokenIssuer(cfg.JWT)
	if err != nil {
		return err
	}

	mailer := client.NewSMTPMailer(cfg.Email, logger)
	authSvc := service.NewAuthService(store, service.NewOTPManager(0), tokens, mailer, logger)
	userSvc := service.NewUserService(store)
	bookSvc := service.NewBookService(store)

	router := handler.NewRouter(cfg, handler.Services{
		Auth:   authSvc,
		Users:  userSvc,
		Books:  bookSvc,
		Tokens: tokens,
	}, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
