package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"driver-hub/internal/auth/api"
	"driver-hub/internal/auth/app"
	"driver-hub/internal/auth/otp"
	"driver-hub/internal/auth/repo"
	"driver-hub/internal/shared/config"
	"driver-hub/internal/shared/db"
	"driver-hub/internal/shared/health"
	"driver-hub/internal/shared/jwt"
	"driver-hub/internal/shared/redis"
	"driver-hub/internal/shared/util"
)

func main() {
	log := util.New()

	log.Info("AuthService", "Starting service initialization...")

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatal("Config", err)
	}
	log.OK("Config", "Configuration loaded successfully")

	database, err := db.ConnectToDB(&cfg.Database)
	if err != nil {
		log.Fatal("Database", err)
	}
	defer database.Close()
	log.OK("Database", "Connected successfully")

	rdb, err := redis.Connect(&cfg.Redis)
	if err != nil {
		log.Fatal("Redis", err)
	}
	defer rdb.Close()
	log.OK("Redis", "Connected successfully")

	tokenTTL, err := time.ParseDuration(cfg.Auth.TokenTTL)
	if err != nil {
		tokenTTL = time.Hour
	}
	tokens := jwt.NewManager(cfg.Auth.JWTSecret, tokenTTL)

	repository := repo.NewAuthRepo(database)
	otpStore := otp.NewStore(rdb)
	service := app.NewAuthService(repository, otpStore, tokens, log)
	handler := api.NewHandler(service, tokens)

	mux := handler.RegisterRoutes(health.Handler("auth-service", database, rdb, nil))

	port := cfg.Services.AuthPort
	if port == "" {
		port = "4000"
	}

	server := &http.Server{
		Addr:    ":" + port,
		Handler: mux,
	}

	go func() {
		log.OK("HTTP", "auth-service running on :"+port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Warn("AuthService", "Shutting down auth-service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("HTTP", err)
	} else {
		log.OK("HTTP", "Server stopped gracefully")
	}
	log.Info("AuthService", "Shutdown complete")
}
