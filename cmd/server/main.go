package main

import (
	"log"
	"log/slog"
	"net/http"
	"time"

	"portfoliohub/internal/app"
	"portfoliohub/internal/config"
	"portfoliohub/internal/ratelimit"
	"portfoliohub/internal/server"
	"portfoliohub/internal/usertoken"
	"portfoliohub/internal/util"
)

func main() {
	cfg, err := config.Load(config.ConfigPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	tokenTTL, err := config.ParseTokenTTL(cfg.TokenTTL)
	if err != nil {
		log.Fatalf("failed to parse token TTL: %v", err)
	}

	logger := util.InitLogger(cfg.LogLevel)

	appCore, err := app.New(app.Config{
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		DataDir:       cfg.DataDir,
	})
	if err != nil {
		log.Fatalf("failed to init app: %v", err)
	}

	tokens, err := usertoken.NewSigner(cfg.TokenSecret, tokenTTL)
	if err != nil {
		log.Fatalf("failed to init token signer: %v", err)
	}

	var loginLimiter *ratelimit.FixedWindowLimiter
	if cfg.RedisAddr != "" {
		loginLimiter, err = ratelimit.NewRedisFixedWindowLimiter(cfg.RedisAddr, cfg.RedisPassword, "portfolio:ratelimit:login", 10, time.Minute)
		if err != nil {
			log.Fatalf("failed to init login rate limiter: %v", err)
		}
	}

	httpServer := server.New(server.Config{
		App:          appCore,
		Tokens:       tokens,
		LoginLimiter: loginLimiter,
	})

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      httpServer.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	slog.Info("server listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "err", err)
	}
}
