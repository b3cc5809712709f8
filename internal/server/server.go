package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"boardsync/internal/config"
	"boardsync/internal/handler"
	"boardsync/internal/middleware"
	"boardsync/internal/model"
	"boardsync/internal/realtime"
	"boardsync/internal/repository"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Hub    *realtime.Hub
	Config *config.Config
}

func Init(cfg *config.Config) (*Server, error) {
	// Setup GORM
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
	}
	log.Println("✅ Connected to database")

	if err := db.AutoMigrate(&model.Notification{}); err != nil {
		return nil, fmt.Errorf("❌ failed to migrate schema: %w", err)
	}

	// Setup Gin
	r := gin.Default()

	// Event hub shared by all rooms
	hub := realtime.NewHub()
	heartbeat := time.Duration(cfg.HeartbeatSeconds) * time.Second

	// Initialize repositories
	notificationRepo := repository.NewNotificationRepository(db)

	// Initialize handlers
	streamHandler := handler.NewStreamHandler(hub, heartbeat)
	eventHandler := handler.NewEventHandler(hub)
	invitationHandler := handler.NewInvitationHandler(notificationRepo, hub)
	notificationHandler := handler.NewNotificationHandler(notificationRepo)

	// Public routes
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes - require authentication
	authorized := r.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	{
		// Realtime routes
		authorized.GET("/events/:room", streamHandler.Stream)
		authorized.POST("/events", eventHandler.Publish)

		// Invitation and notification routes
		authorized.POST("/invitations", invitationHandler.Invite)
		authorized.GET("/notifications", notificationHandler.List)
		authorized.PATCH("/notifications/:id/read", notificationHandler.MarkRead)
		authorized.PATCH("/notifications", notificationHandler.MarkAllRead)
	}

	return &Server{
		Engine: r,
		DB:     db,
		Hub:    hub,
		Config: cfg,
	}, nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		log.Printf("🚀 Gateway running on port %s\n", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down gateway...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Gateway forced to shutdown: %s", err)
	}

	log.Println("✅ Gateway exited properly")
}
