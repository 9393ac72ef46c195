package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/andre-mr/centerpromos-shortlinks-resolver/internal/config"
	"github.com/andre-mr/centerpromos-shortlinks-resolver/internal/handler"
	"github.com/andre-mr/centerpromos-shortlinks-resolver/internal/repository"
	"github.com/andre-mr/centerpromos-shortlinks-resolver/internal/service"
)

func main() {
	// Загрузка конфига
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Клиент DynamoDB создаётся один раз и передаётся вниз явно
	db, err := repository.NewDynamoDB(context.Background(), cfg.AWS)
	if err != nil {
		logger.Fatal("Failed to create DynamoDB client", zap.Error(err))
	}
	logger.Info("Connected to DynamoDB",
		zap.String("table", cfg.Tables.Links),
		zap.Bool("multi_account", cfg.Tables.MultiAccount),
	)

	// Инициализация репозиториев
	linkRepo := repository.NewLinkRepository(db, cfg.Tables.Links)
	counterRepo := repository.NewCounterRepository(db, cfg.Tables.Links)

	// Инициализация процессора кликов (Worker Pool)
	clickProcessor := service.NewClickProcessor(counterRepo, service.AccountingConfig{
		MultiAccount:       cfg.Tables.MultiAccount,
		DefaultOffersTable: cfg.Tables.DefaultOffers,
		DomainsToCampaigns: cfg.Tables.DomainsToCampaigns,
	}, logger)
	clickProcessor.Start()

	// Инициализация сервиса разрешения редиректов
	resolver := service.NewResolverService(linkRepo, clickProcessor, cfg.Tables.MultiAccount, logger)

	// Настройка роутера
	router := handler.NewRouter(resolver, logger)

	// Запуск сервера
	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Запуск в горутине
	go func() {
		logger.Info("Server starting", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	// Сначала останавливается HTTP, затем дообрабатывается очередь кликов
	clickProcessor.Stop()

	logger.Info("Server exited")
}
