package connection

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campusops/config"
	"campusops/controller/auth"
	"campusops/controller/menu"
	"campusops/controller/notification"
	"campusops/controller/report"
	"campusops/controller/wellness"
	"campusops/middleware"
	"campusops/repository"
	"campusops/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func StartServer() {
	cfg := config.Load()

	db, err := DBConnection(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Senders are optional. A missing credential disables that channel and
	// dispatches degrade to persist-and-mark-sent.
	var push services.PushSender
	if cfg.FirebaseCredentials != "" {
		fcm, err := services.NewFCMPushSender(context.Background(), cfg.FirebaseCredentials)
		if err != nil {
			log.Fatalf("Failed to initialize FCM client: %v", err)
		}
		push = fcm
	} else {
		log.Println("Warning: FCM credentials not configured, push delivery disabled")
	}

	var email services.EmailSender
	if smtp, err := services.NewSMTPEmailSender(cfg); err != nil {
		log.Printf("Warning: email delivery disabled: %v", err)
	} else {
		email = smtp
	}

	users := repository.NewUserRepository(db)
	menus := repository.NewMenuRepository(db)
	reports := repository.NewReportRepository(db)
	facilities := repository.NewFacilityRepository(db)
	wellnessRepo := repository.NewWellnessRepository(db)
	notifications := repository.NewNotificationRepository(db)

	notificationService := services.NewNotificationService(notifications, users, push, email)
	authService := services.NewAuthService(users, cfg)
	menuService := services.NewMenuService(menus, notificationService)
	reportService := services.NewReportService(reports, notificationService)
	wellnessService := services.NewWellnessService(wellnessRepo, notificationService)

	router := gin.Default()
	router.Use(cors.Default())

	limiter := middleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst)
	router.Use(limiter.Handler())

	started := time.Now()
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"uptime":    time.Since(started).String(),
		})
	})

	auth.AuthController(router, authService, users)
	menu.MenuController(router, authService, menuService, menus)
	report.ReportController(router, authService, reportService, reports, facilities)
	wellness.WellnessController(router, authService, wellnessService, wellnessRepo)
	notification.NotificationController(router, authService, notificationService, notifications)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Block until an interrupt, then drain in-flight requests.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Forced shutdown: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	log.Println("Server stopped")
}
