package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/campusboard/coursefeed-be/internal/api"
	"github.com/campusboard/coursefeed-be/internal/auth"
	"github.com/campusboard/coursefeed-be/internal/config"
	"github.com/campusboard/coursefeed-be/internal/database"
	"github.com/campusboard/coursefeed-be/internal/logger"
	"github.com/campusboard/coursefeed-be/internal/monitoring"
	"github.com/campusboard/coursefeed-be/internal/services"
	"github.com/campusboard/coursefeed-be/internal/websocket"
	"github.com/rs/zerolog/log"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up WebSocket Hub for the live dashboard feed
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services
	tokens := auth.NewManager(cfg.JWTSecret)
	eventService := services.NewEventService(db)
	userService := services.NewUserService(db, cfg.BcryptCost, eventService)
	courseService := services.NewCourseService(db)
	feedbackService := services.NewFeedbackService(db, eventService, hub)
	dashboardService := services.NewDashboardService(db)

	// Set up and run the background snapshot updater
	snapshotUpdater, err := monitoring.NewSnapshotUpdater(dashboardService, eventService, hub, cfg.SnapshotCron)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to configure snapshot updater")
	}
	go snapshotUpdater.Run()

	// Set up router
	router := api.NewRouter(api.Deps{
		Hub:           hub,
		Tokens:        tokens,
		UserService:   userService,
		CourseService: courseService,
		FeedbackSvc:   feedbackService,
		DashboardSvc:  dashboardService,
		EventService:  eventService,
		AllowedOrigin: cfg.AllowedOrigin,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	snapshotUpdater.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
