package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"todoapp/internal/api/controller"
	"todoapp/internal/api/repository"
	"todoapp/internal/api/service"
	"todoapp/internal/auth"
	"todoapp/internal/config"
	"todoapp/internal/db"
	"todoapp/internal/hub"
	"todoapp/internal/logger"
	"todoapp/internal/server"
	"todoapp/internal/telemetry"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Initialize telemetry
	shutdown, err := telemetry.InitOtel(cfg.OTLPAddr)
	if err != nil {
		log.Fatalf("failed to initialize telemetry: %v", err)
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}()

	logger.Init(cfg.LogLevel)

	// Initialize SQLite DB
	pool, err := db.Connect(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open sqlite db: %v", err)
	}
	defer pool.Close()
	if err := db.InitializeSchema(pool); err != nil {
		log.Fatalf("failed to initialize sqlite schema: %v", err)
	}

	// Initialize Redis for token revocation; the service runs without it,
	// minus the logout endpoint.
	var revocationStore auth.RevocationStore
	if cfg.RedisAddr != "" {
		rdb, err := db.NewRedisClient(ctx, cfg.RedisAddr)
		if err != nil {
			log.Fatalf("failed to initialize redis: %v", err)
		}
		revocationStore = auth.NewRevocationStore(rdb)
	}

	// Create repositories
	userRepo := repository.NewUserRepository(pool)
	todoRepo := repository.NewTodoRepository(pool)

	// Create hub
	eventHub := hub.NewHub()
	go eventHub.Run()

	// Create services
	authService := service.NewAuthService(userRepo, revocationStore, cfg.JWTSecret, cfg.TokenTTL)
	todoService := service.NewTodoService(todoRepo, eventHub)

	// Create controllers
	authController := controller.NewAuthController(authService)
	userController := controller.NewUserController(authService)
	todoController := controller.NewTodoController(todoService)

	// Create the Gin-based server
	srv := server.NewServer(eventHub, authService, authController, userController, todoController)

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: srv.Engine(),
	}

	go func() {
		log.Printf("http server started on :%s", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	<-stop

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
