package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"driver-hub/internal/notify"
	"driver-hub/internal/shared/config"
	"driver-hub/internal/shared/health"
	"driver-hub/internal/shared/jwt"
	"driver-hub/internal/shared/mq"
	"driver-hub/internal/shared/redis"
	"driver-hub/internal/shared/util"
)

func main() {
	log := util.New()

	log.Info("NotificationService", "Starting service initialization...")

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatal("Config", err)
	}
	log.OK("Config", "Configuration loaded successfully")

	rdb, err := redis.Connect(&cfg.Redis)
	if err != nil {
		log.Fatal("Redis", err)
	}
	defer rdb.Close()
	log.OK("Redis", "Connected successfully")

	conn, ch, err := mq.ConnectToRMQ(&cfg.RabbitMQ)
	if err != nil {
		log.Fatal("RabbitMQ", err)
	}
	defer conn.Close()
	defer ch.Close()
	if err := mq.DeclareTopology(ch, notify.Queue, "driver.#"); err != nil {
		log.Fatal("RabbitMQ", err)
	}
	log.OK("RabbitMQ", "Connected successfully")

	tokenTTL, err := time.ParseDuration(cfg.Auth.TokenTTL)
	if err != nil {
		tokenTTL = time.Hour
	}
	tokens := jwt.NewManager(cfg.Auth.JWTSecret, tokenTTL)

	history := notify.NewHistory(rdb)
	wsManager := notify.NewWSManager(tokens, log)

	consumer := notify.NewConsumer(ch, history, wsManager, log)
	if err := consumer.Start(context.Background()); err != nil {
		log.Fatal("NotifyConsumer", err)
	}

	handler := notify.NewHandler(history, wsManager, tokens, log)
	mux := handler.Router(health.Handler("notification-service", nil, rdb, conn))

	port := cfg.Services.NotificationPort
	if port == "" {
		port = "3002"
	}

	server := &http.Server{
		Addr:    ":" + port,
		Handler: mux,
	}

	go func() {
		log.OK("HTTP", "notification-service running on :"+port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Warn("NotificationService", "Shutting down notification-service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("HTTP", err)
	} else {
		log.OK("HTTP", "Server stopped gracefully")
	}
	log.Info("NotificationService", "Shutdown complete")
}
