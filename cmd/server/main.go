package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"loadboard/internal/chathub"
	"loadboard/internal/config"
	"loadboard/internal/controllers"
	"loadboard/internal/events"
	"loadboard/internal/logger"
	"loadboard/internal/metrics"
	"loadboard/internal/middleware"
	"loadboard/internal/routes"
	"loadboard/internal/storage"
)

func main() {
	cfg := config.Load()

	// Structured logging to stdout and a rotating file
	logWriter := logger.Setup(cfg.LogFile, cfg.LogLevel)
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := config.InitDB(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("database init failed")
	}
	sqlDB, err := db.DB()
	if err != nil {
		logrus.WithError(err).Fatal("database pool unavailable")
	}
	defer sqlDB.Close()

	files, err := storage.NewCloudinary(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		logrus.WithError(err).Fatal("cloudinary init failed")
	}

	publisher := events.New(cfg.KafkaBrokers)
	defer publisher.Close()

	// Chat fan-out: Redis when configured, in-process otherwise
	var broker chathub.Broker
	if cfg.RedisAddr != "" {
		rb := chathub.NewRedisBroker(cfg.RedisAddr, cfg.RedisPassword)
		pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
		err := rb.Ping(pingCtx)
		pingCancel()
		if err != nil {
			logrus.WithError(err).Fatal("redis unavailable")
		}
		defer rb.Close()
		broker = rb
	}
	hub := chathub.NewHub(broker)
	go hub.Run(ctx)

	h := &controllers.Handler{
		DB:             db,
		Files:          files,
		Auth:           middleware.NewJWT(cfg.JWTSecret, time.Duration(cfg.JWTTTLHours)*time.Hour),
		Hub:            hub,
		Events:         publisher,
		Metrics:        metrics.New(cfg.MetricsNamespace),
		ReceiptBaseURL: cfg.ReceiptBaseURL,
	}

	r := routes.SetupRouter(h, routes.Options{
		LogWriter:      logWriter,
		MaxUploadBytes: cfg.MaxUploadMB << 20,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		Handler:           middleware.EnableCORS(r),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logrus.Infof("server running at %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("http server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("shutting down")

	shutCtx, shutCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutCancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		logrus.WithError(err).Error("graceful shutdown failed")
	}
	cancel()
}
