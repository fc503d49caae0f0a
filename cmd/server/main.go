package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gameforge/config"
	"gameforge/internal/database"
	"gameforge/internal/jobs"
	"gameforge/internal/repository"
	"gameforge/internal/router"
	"gameforge/internal/service"
	"gameforge/internal/ws"
	"gameforge/pkg/cloudinary"
	"gameforge/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logger.New(&cfg.Logger)
	defer log.Sync()

	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalw("database connect failed", "error", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalw("migration failed", "error", err)
	}
	if err := database.SeedAdmin(db, &cfg.Moderation); err != nil {
		log.Fatalw("admin seed failed", "error", err)
	}

	var cloud cloudinary.Client
	if cfg.Cloudinary.CloudName != "" {
		cloud, err = cloudinary.NewClientFromParams(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret)
		if err != nil {
			log.Fatalw("cloudinary init failed", "error", err)
		}
	} else {
		log.Warn("cloudinary not configured, avatar uploads disabled")
	}

	hub := ws.NewHub()

	userRepo := repository.NewUserRepository(db)
	sanctionRepo := repository.NewSanctionRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	notifSvc := service.NewNotificationService(notificationRepo, hub)

	scheduler := jobs.NewScheduler(log, userRepo, sanctionRepo, notifSvc)
	if err := scheduler.Start(); err != nil {
		log.Fatalw("scheduler start failed", "error", err)
	}
	defer scheduler.Stop()

	engine := router.Setup(cfg, db, log, cloud, hub)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		log.Infow("server listening", "port", cfg.Server.Port, "env", cfg.Server.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server shutdown", "error", err)
	}
	log.Info("server stopped")
}
