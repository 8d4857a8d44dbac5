package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"driver-hub/internal/driver/adapter/handlers"
	"driver-hub/internal/driver/adapter/psql"
	"driver-hub/internal/driver/adapter/rmq"
	"driver-hub/internal/driver/app/usecase"
	"driver-hub/internal/driver/destination"
	"driver-hub/internal/driver/models"
	"driver-hub/internal/driver/prefs"
	"driver-hub/internal/shared/config"
	"driver-hub/internal/shared/db"
	"driver-hub/internal/shared/health"
	"driver-hub/internal/shared/jwt"
	"driver-hub/internal/shared/mq"
	"driver-hub/internal/shared/redis"
	"driver-hub/internal/shared/util"
)

func main() {
	log := util.New()

	log.Info("DriverService", "Starting service initialization...")

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

	conn, ch, err := mq.ConnectToRMQ(&cfg.RabbitMQ)
	if err != nil {
		log.Fatal("RabbitMQ", err)
	}
	defer conn.Close()
	defer ch.Close()
	if err := mq.DeclareTopology(ch, "", ""); err != nil {
		log.Fatal("RabbitMQ", err)
	}
	log.OK("RabbitMQ", "Connected successfully")

	tokenTTL, err := time.ParseDuration(cfg.Auth.TokenTTL)
	if err != nil {
		tokenTTL = time.Hour
	}
	tokens := jwt.NewManager(cfg.Auth.JWTSecret, tokenTTL)

	broker := rmq.NewBroker(ch)

	store := prefs.NewStore(prefs.NewRedisKV(rdb), log)
	store.OnDropped(func(driverID string, d destination.Destination) {
		event := models.DestinationExpiredEvent{
			DriverID:      driverID,
			DestinationID: d.ID,
			Address:       d.Address,
			ExpiredAt:     d.ExpiresAt,
			Timestamp:     time.Now(),
		}
		if err := broker.Publish(context.Background(), models.EventDestinationExpired, event); err != nil {
			log.Error("DriverService", err)
		}
	})

	repo := psql.NewRepo(database)
	service := usecase.NewService(repo, store, broker, log)
	handler := handlers.NewHandler(service, tokens, log)

	mux := handler.Router(health.Handler("driver-service", database, rdb, conn))

	port := cfg.Services.DriverPort
	if port == "" {
		port = "3001"
	}

	server := &http.Server{
		Addr:    ":" + port,
		Handler: mux,
	}

	go func() {
		log.OK("HTTP", "driver-service running on :"+port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Warn("DriverService", "Shutting down driver-service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("HTTP", err)
	} else {
		log.OK("HTTP", "Server stopped gracefully")
	}
	log.Info("DriverService", "Shutdown complete")
}
