package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"messenger/docs"
	"messenger/internal/api"
	"messenger/internal/auth"
	"messenger/internal/config"
	"messenger/internal/events"
	"messenger/internal/repository"
	"messenger/internal/service"
)

// @title                                 Messages API
// @version                               1.0
// @description                           Send, list, read and delete short messages between users.
// @BasePath                              /
// @securityDefinitions.oauth2.password   OAuth2Password
// @tokenUrl                              /tokens
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	docs.SwaggerInfo.SwaggerTemplate = strings.Replace(docs.SwaggerInfo.SwaggerTemplate,
		`"tokenUrl": "/tokens"`, `"tokenUrl": "`+cfg.TokenURL()+`"`, 1)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := repository.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()
	log.Printf("Connected to %s message store", store.Driver())
	if cfg.ResetDB {
		if err := store.Reset(ctx); err != nil {
			log.Fatalf("Failed to reset database: %v", err)
		}
		log.Println("Message store reset")
	}

	readiness := map[string]api.Pinger{"database": store}
	var publishers events.Multi
	if cfg.RedisAddr != "" {
		client, err := events.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		redisPublisher := events.NewRedisPublisher(client)
		defer redisPublisher.Close()
		publishers = append(publishers, redisPublisher)
		readiness["redis"] = redisPublisher
		log.Println("Connected to Redis")
	}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer kafkaPublisher.Close()
		publishers = append(publishers, kafkaPublisher)
		log.Printf("Publishing message events to Kafka topic %s", cfg.KafkaTopic)
	}

	var publisher service.EventPublisher = events.Nop{}
	if len(publishers) > 0 {
		publisher = publishers
	}
	serv := service.NewMessageService(store, publisher)

	handler := api.NewAPIHandler(serv)
	r := api.NewRouter(handler, api.RouterConfig{
		Verifier:        auth.NewVerifier(cfg.SignKey, cfg.Algorithm),
		OriginPattern:   cfg.OriginPattern,
		ReadinessChecks: readiness,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error shutting down server: %v", err)
		}
	}()

	log.Printf("Server starting on port %s...", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to run server: %v", err)
	}
	log.Println("Server stopped")
}
