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

	"github.com/sirupsen/logrus"

	"linkdrop/internal/auth"
	"linkdrop/internal/bot"
	"linkdrop/internal/capture"
	"linkdrop/internal/config"
	"linkdrop/internal/extract"
	"linkdrop/internal/lifecycle"
	"linkdrop/internal/markdown"
	"linkdrop/internal/storage"
	"linkdrop/internal/web"
)

func main() {
	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)

	log.WithFields(logrus.Fields{
		"listen_addr":   cfg.ListenAddr,
		"badgerdb_path": cfg.BadgerDBPath,
		"extractor":     cfg.Extractor,
	}).Info("Configuration loaded")

	store, err := storage.NewBadgerStore(cfg.BadgerDBPath, log)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.WithError(err).Error("Error closing database")
		}
	}()

	var extractor extract.Extractor
	switch cfg.Extractor {
	case config.ExtractorBrowser:
		extractor = extract.NewBrowserExtractor(log)
	default:
		extractor = extract.NewReadabilityExtractor(log)
	}

	converter := markdown.NewConverter()
	captureSvc := capture.NewService(extractor, converter, store, log)
	lifecycleMgr := lifecycle.NewManager(store, log)
	authSvc := auth.NewService(store, []byte(cfg.JWTSecret), cfg.TokenValidity, log)

	server := web.NewServer(cfg, captureSvc, lifecycleMgr, authSvc, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.TelegramBotToken != "" {
		botHandler, err := bot.NewHandler(cfg.TelegramBotToken, captureSvc, log)
		if err != nil {
			log.Fatalf("Failed to initialize Telegram bot handler: %v", err)
		}
		go botHandler.Start(ctx)
	}

	httpServer := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      server.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		log.WithField("addr", cfg.ListenAddr).Info("HTTP server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("HTTP server stopped unexpectedly")
			stop()
		}
	}()

	<-ctx.Done()

	log.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("HTTP server shutdown failed")
	}

	log.Info("Shut down gracefully.")
}
