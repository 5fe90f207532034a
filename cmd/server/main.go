package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/marinewatch/maritime-backend/internal/auth"
	"github.com/marinewatch/maritime-backend/internal/config"
	"github.com/marinewatch/maritime-backend/internal/db"
	"github.com/marinewatch/maritime-backend/internal/handlers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}
	log.SetFormatter(&log.JSONFormatter{})

	client, err := db.ConnectMongo(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to MongoDB")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.WithError(err).Warn("mongo disconnect failed")
		}
	}()

	database := client.Database(cfg.MongoDatabase)
	if err := db.EnsureIndexes(context.Background(), database); err != nil {
		log.WithError(err).Fatal("failed to create indexes")
	}

	store := db.NewStore(database)
	authService := auth.NewService(cfg)

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handlers.NewRouter(authService, store),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithField("addr", cfg.Addr).Info("server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server error")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("shutdown error")
	}
}
