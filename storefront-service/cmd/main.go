package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"qkart/pkg/logger"
	"qkart/storefront-service/internal/app/storefront/config"
	"qkart/storefront-service/internal/app/storefront/handler"
	backendhttp "qkart/storefront-service/internal/app/storefront/infrastructure/http"
	"qkart/storefront-service/internal/app/storefront/infrastructure/messaging"
	"qkart/storefront-service/internal/app/storefront/processor"
	"qkart/storefront-service/internal/app/storefront/repository"
	"qkart/storefront-service/internal/app/storefront/service"
	"qkart/storefront-service/internal/app/storefront/util"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init("storefront-service", cfg.LogLevel)

	redisClient, err := connectRedis(cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()
	logger.Info().
		Str("address", cfg.Redis.Address()).
		Msg("Connected to Redis")

	sessionRepo := repository.NewRedisSessionRepository(redisClient)
	catalogCache := util.NewRedisCatalogCache(redisClient)

	kafkaProducer := messaging.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	defer kafkaProducer.Close()
	logger.Info().
		Str("topic", cfg.Kafka.Topic).
		Msg("Initialized Kafka producer")

	backendClient := backendhttp.NewQKartClient(cfg.Backend.BaseURL, cfg.Backend.Timeout)
	logger.Info().
		Str("url", cfg.Backend.BaseURL).
		Msg("Initialized QKart backend client")

	storefront := service.NewStorefrontService(
		backendClient,
		sessionRepo,
		catalogCache,
		kafkaProducer,
		service.NewLogNotifier(),
		cfg.Storefront.SearchDebounce,
		cfg.Storefront.CatalogCacheTTL,
		cfg.Storefront.SessionTTL,
	)
	defer storefront.Close()

	// Снимок каталога нужен до первого запроса: фильтрация и
	// сверка корзины работают по нему
	if err := storefront.LoadCatalog(context.Background()); err != nil {
		logger.Warn().Err(err).Msg("Initial catalog load failed, storefront starts empty")
	}

	refresher := processor.NewCatalogRefresher(storefront)
	if err := refresher.Start(context.Background(), cfg.Storefront.RefreshSchedule); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start catalog refresher")
	}
	defer refresher.Stop()

	sessionMW := handler.NewSessionMiddleware(sessionRepo)
	storefrontHandler := handler.NewStorefrontHandler(storefront)
	router := handler.SetupRoutes(storefrontHandler, sessionMW)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("Starting Storefront Service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down Storefront Service...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Storefront Service stopped gracefully")
}

// connectRedis подключается к Redis с проверкой соединения через ping
func connectRedis(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}
