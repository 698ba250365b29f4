package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dhruvrajput1/letmecook2.0/internal/config"
	"github.com/dhruvrajput1/letmecook2.0/internal/database"
	"github.com/dhruvrajput1/letmecook2.0/internal/handlers"
	"github.com/dhruvrajput1/letmecook2.0/internal/middleware"
	"github.com/dhruvrajput1/letmecook2.0/internal/repository"
	"github.com/dhruvrajput1/letmecook2.0/internal/router"
	"github.com/dhruvrajput1/letmecook2.0/internal/services"
	"github.com/dhruvrajput1/letmecook2.0/internal/storage"
)

func main() {
	log.Println("🚀 Starting letmecook backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize PostgreSQL Connection Pool ────
	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("✗ PostgreSQL connection failed: %v", err)
	}
	defer pool.Close()
	log.Println("✓ PostgreSQL connected")

	// ──── Step 3: Initialize Redis ────
	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	defer redisClient.Close()
	log.Println("✓ Redis connected")

	// ──── Step 4: Run Database Migrations ────
	if err := database.RunMigrations(pool, "migrations"); err != nil {
		log.Fatalf("✗ Database migration failed: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// ──── Step 5: Initialize Media Store ────
	mediaStore, err := storage.NewMediaStore(context.Background(), cfg)
	if err != nil {
		log.Fatalf("✗ Media store initialization failed: %v", err)
	}
	log.Println("✓ Media store initialized")

	// ──── Initialize Repositories ────
	userRepo := repository.NewUserRepo(pool)
	videoRepo := repository.NewVideoRepo(pool)
	commentRepo := repository.NewCommentRepo(pool)
	tweetRepo := repository.NewTweetRepo(pool)
	likeRepo := repository.NewLikeRepo(pool)
	playlistRepo := repository.NewPlaylistRepo(pool)
	subscriptionRepo := repository.NewSubscriptionRepo(pool)

	// ──── Initialize Services ────
	jwtAuth := middleware.NewJWTAuth(
		cfg.AccessTokenSecret,
		cfg.RefreshTokenSecret,
		time.Duration(cfg.AccessTokenTTLMin)*time.Minute,
		time.Duration(cfg.RefreshTokenTTLDay)*24*time.Hour,
		userRepo,
	)
	authService := services.NewAuthService(userRepo, jwtAuth)
	authLimiter := middleware.NewRateLimiter(redisClient, "auth", 10, time.Minute)

	// ──── Initialize Handlers ────
	cookies := handlers.CookieConfig{
		Secure:     cfg.CookieSecure,
		AccessTTL:  time.Duration(cfg.AccessTokenTTLMin) * time.Minute,
		RefreshTTL: time.Duration(cfg.RefreshTokenTTLDay) * 24 * time.Hour,
	}
	h := router.Handlers{
		Users:         handlers.NewUserHandler(authService, userRepo, mediaStore, cookies),
		Videos:        handlers.NewVideoHandler(videoRepo, userRepo, mediaStore),
		Comments:      handlers.NewCommentHandler(commentRepo),
		Tweets:        handlers.NewTweetHandler(tweetRepo),
		Likes:         handlers.NewLikeHandler(likeRepo),
		Playlists:     handlers.NewPlaylistHandler(playlistRepo),
		Subscriptions: handlers.NewSubscriptionHandler(subscriptionRepo),
		Dashboard:     handlers.NewDashboardHandler(videoRepo),
		Health:        handlers.NewHealthHandler(pool),
	}

	// ──── Start HTTP Server ────
	r := router.New(h, jwtAuth, authLimiter, cfg.FrontendURL)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: r,
		// Video uploads stream large bodies, so the read timeout is generous.
		ReadTimeout:  10 * time.Minute,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ letmecook backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
