package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"app-pinger/apiv1"
	"app-pinger/config"
	"app-pinger/internal"
	"app-pinger/pinger"
)

func main() {
	// Load configuration
	cfg, err := config.Load(os.Getenv("PINGER_CONFIG"))
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize structured logging
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	// Initialize GORM logger
	gormLogger := gormlogger.Default.LogMode(gormlogger.Warn)

	// Initialize database with logging
	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&apiv1.PingRecord{}); err != nil {
		logrus.Fatalf("Failed to migrate database: %v", err)
	}

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	// Register resources
	internal.RegisterResource[apiv1.App](router, db, "/api/v1/apps")

	// Register the legacy registry endpoints
	auth := internal.BasicAuth(cfg.Admin.Username, cfg.Admin.PasswordHash)
	internal.NewAppsAPI(db).Register(router, auth)

	// Start the background sweeper
	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	sweeper := pinger.New(db, pinger.Config{
		Interval:     cfg.Ping.Interval(),
		Timeout:      cfg.Ping.Timeout(),
		Workers:      cfg.Ping.Workers,
		HistoryLimit: cfg.Ping.HistoryLimit,
	})
	go sweeper.Run(sweepCtx)

	// Create HTTP server
	srv := &http.Server{
		Addr:    cfg.Listen,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logrus.WithField("addr", cfg.Listen).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	logrus.Info("Shutting down server...")
	stopSweeper()

	// Create shutdown context with 5 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Fatalf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exiting")
}
