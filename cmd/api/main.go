package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/geoattend/geoattend-backend-go/internal/config"
	appHTTP "github.com/geoattend/geoattend-backend-go/internal/handler/http"
	"github.com/geoattend/geoattend-backend-go/internal/pkg/cron"
	"github.com/geoattend/geoattend-backend-go/internal/pkg/database"
	"github.com/geoattend/geoattend-backend-go/internal/pkg/jwt"
	"github.com/geoattend/geoattend-backend-go/internal/pkg/oauth"
	"github.com/geoattend/geoattend-backend-go/internal/pkg/sse"
	"github.com/geoattend/geoattend-backend-go/internal/pkg/storage"
	"github.com/geoattend/geoattend-backend-go/internal/repository/postgresql"
	attendanceService "github.com/geoattend/geoattend-backend-go/internal/service/attendance"
	authService "github.com/geoattend/geoattend-backend-go/internal/service/auth"
	locationService "github.com/geoattend/geoattend-backend-go/internal/service/location"
	notificationService "github.com/geoattend/geoattend-backend-go/internal/service/notification"
	settingsService "github.com/geoattend/geoattend-backend-go/internal/service/settings"
	userService "github.com/geoattend/geoattend-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	// Repositories
	userRepo := postgresql.NewUserRepository(db)
	jwtRepo := postgresql.NewJWTRepository(db)
	pinRepo := postgresql.NewPinRepository(db)
	historyRepo := postgresql.NewHistoryRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	settingsRepo := postgresql.NewSettingsRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	// Shared infrastructure
	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	hub := sse.NewHub()

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		log.Fatal("Failed to initialize local storage: ", err)
	}

	// Services
	notifSvc := notificationService.NewNotificationService(notificationRepo, hub, notificationService.Config{})
	authSvc := authService.NewAuthService(db, userRepo, jwtService, jwtRepo, googleService, cfg)
	userSvc := userService.NewUserService(userRepo, fileStorage)
	locationSvc := locationService.NewLocationService(db, pinRepo, historyRepo, userRepo, notifSvc)
	attendanceSvc := attendanceService.NewAttendanceService(db, attendanceRepo, settingsRepo, userRepo, notifSvc)
	settingsSvc := settingsService.NewSettingsService(settingsRepo)

	startupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := settingsSvc.EnsureDefaults(startupCtx); err != nil {
		cancel()
		log.Fatal("Failed to seed work settings: ", err)
	}
	cancel()

	// Background jobs
	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceRepo, userRepo, notifSvc).RegisterJobs(scheduler)
	scheduler.Start()

	router := appHTTP.NewRouter(cfg, jwtService, appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(jwtService, authSvc, googleService, cfg.App.FrontendURL),
		User:         appHTTP.NewUserHandler(userSvc),
		Location:     appHTTP.NewLocationHandler(locationSvc),
		Attendance:   appHTTP.NewAttendanceHandler(attendanceSvc),
		Settings:     appHTTP.NewSettingsHandler(settingsSvc),
		Notification: appHTTP.NewNotificationHandler(notifSvc, jwtService),
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		slog.Info("Server starting", "port", cfg.App.Port, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error: ", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	slog.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}

	scheduler.Stop()
	notifSvc.Stop()
}
