package main

import (
	"context"
	"dlin210/account-portal/internal/api/controller"
	"dlin210/account-portal/internal/api/repository"
	"dlin210/account-portal/internal/api/service"
	"dlin210/account-portal/internal/config"
	"dlin210/account-portal/internal/db"
	"dlin210/account-portal/internal/limiter"
	"dlin210/account-portal/internal/logger"
	"dlin210/account-portal/internal/server"
	"dlin210/account-portal/internal/telemetry"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	redisstore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Initialize telemetry before the logger so the otelslog bridge has a
	// provider to talk to.
	shutdownOtel, err := telemetry.InitOtel(ctx, cfg.OTLPEndpoint)
	if err != nil {
		log.Fatalf("failed to initialize telemetry: %v", err)
	}
	defer func() {
		if err := shutdownOtel(ctx); err != nil {
			log.Printf("error shutting down telemetry: %v", err)
		}
	}()

	logger.Init(cfg.GinMode == gin.ReleaseMode)

	// MongoDB holds the user records.
	mongoClient, err := db.NewMongoClient(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatalf("failed to connect to mongodb: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(ctx); err != nil {
			log.Printf("error disconnecting mongodb: %v", err)
		}
	}()

	// Redis backs the session store and the login limiter.
	rdb, err := db.NewRedisClient(ctx, cfg.RedisAddr)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}

	userRepo := repository.NewUserRepository(mongoClient.Database(cfg.MongoDatabase))
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatalf("failed to ensure user indexes: %v", err)
	}

	userService := service.NewUserService(userRepo)
	userController := controller.NewUserController(userService, userService)
	loginLimiter := limiter.NewLoginLimiter(rdb, cfg.LoginMaxAttempts, cfg.LoginWindow)

	store, err := redisstore.NewStore(10, "tcp", cfg.RedisAddr, "", "", []byte(cfg.SessionSecret))
	if err != nil {
		log.Fatalf("failed to create session store: %v", err)
	}
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.SessionMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   cfg.GinMode == gin.ReleaseMode,
		SameSite: http.SameSiteStrictMode,
	})

	srv := server.New(cfg, userController, store, loginLimiter)

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: srv.Engine(),
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

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
