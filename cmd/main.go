package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"tokenAuthAPI/internal/auth"
	"tokenAuthAPI/internal/config"
	"tokenAuthAPI/internal/handlers"
	"tokenAuthAPI/internal/k8s"
	"tokenAuthAPI/internal/redisstore"
	"tokenAuthAPI/internal/server"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	credentials, closeStore, err := newCredentialLookup(cfg)
	if err != nil {
		slog.Error("failed to initialize credential store", "store", cfg.CredentialStore, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	// Initialize token service and handlers
	jwtManager := auth.NewJWTManager(cfg.SecretKey, cfg.TokenDuration)
	authHandler := handlers.NewAuthHandler(auth.NewVerifier(credentials), jwtManager)

	router := server.NewRouter(jwtManager, time.Now, authHandler)

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ListenAddr, "credential_store", cfg.CredentialStore)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}

// newCredentialLookup builds the configured credential store and a func releasing it
func newCredentialLookup(cfg config.Config) (auth.CredentialLookup, func(), error) {
	switch cfg.CredentialStore {
	case config.StoreKubernetes:
		client, err := k8s.NewClient()
		if err != nil {
			return nil, nil, err
		}
		return k8s.NewCredentialStore(client), func() {}, nil

	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return redisstore.NewCredentialStore(client, cfg.Redis.Prefix), func() { _ = client.Close() }, nil

	case config.StoreStatic:
		return auth.NewStaticCredentials(cfg.Username, cfg.Password), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown credential store %q", cfg.CredentialStore)
}
