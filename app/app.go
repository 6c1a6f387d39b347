// File: app/app.go
package app

import (
	"context"
	"go-bank-ledger/config"
	"go-bank-ledger/db"
	"go-bank-ledger/handler"
	"go-bank-ledger/logger"
	"go-bank-ledger/notifier"
	"go-bank-ledger/repository"
	"go-bank-ledger/router"
	"go-bank-ledger/service"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func Run() {
	config.LoadConfig(".")
	logger.Init()
	logger.Log.Info("Logger initialized")
	logger.Log.Info("Configuration loaded successfully")

	database, err := db.Connect()
	if err != nil {
		logger.Log.Fatalf("Error connecting to the database: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations("migrations"); err != nil {
		logger.Log.Fatalf("Error applying migrations: %v", err)
	}

	redisClient, err := db.ConnectRedis()
	if err != nil {
		logger.Log.Fatalf("Error connecting to Redis: %v", err)
	}
	defer redisClient.Close()

	// --- Wiring All Layers Together ---

	smtpCfg := config.AppConfig.SMTP
	mailNotifier := notifier.NewSMTPNotifier(notifier.SMTPConfig{
		Host:     smtpCfg.Host,
		Port:     smtpCfg.Port,
		User:     smtpCfg.User,
		Password: smtpCfg.Password,
		Sender:   smtpCfg.Sender,
	})

	accountRepo := repository.NewAccountRepository(database)
	transactionRepo := repository.NewTransactionRepository(database)

	ledgerService := service.NewLedgerService(database, accountRepo, transactionRepo, mailNotifier, redisClient)
	reportService := service.NewReportService(accountRepo, transactionRepo, redisClient)

	transactionHandler := handler.NewTransactionHandler(ledgerService, reportService)

	r := router.NewRouter(transactionHandler)

	// --- Start the Server with Graceful Shutdown ---
	port := config.AppConfig.Server.Port
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		logger.Log.Infof("Server starting on port :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Warn("Shutdown signal received. Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Log.Info("Server exited properly")
}
