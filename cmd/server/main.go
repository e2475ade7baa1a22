package main

import (
	"context"
	"log"
	"os"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"jobtrack_backend/internal/app/di"
	"jobtrack_backend/internal/app/router"
	authadapters "jobtrack_backend/internal/feature/auth/adapters"
	authhandler "jobtrack_backend/internal/feature/auth/transport/handler"
	authusecase "jobtrack_backend/internal/feature/auth/usecase"
	trackeradapters "jobtrack_backend/internal/feature/tracker/adapters"
	trackerhandler "jobtrack_backend/internal/feature/tracker/transport/handler"
	trackerusecase "jobtrack_backend/internal/feature/tracker/usecase"
	"jobtrack_backend/internal/platform/cache"
	infradb "jobtrack_backend/internal/platform/db"
	infraredis "jobtrack_backend/internal/platform/redis"
	"jobtrack_backend/internal/platform/token"
)

func main() {
	// db
	db := infradb.OpenDB()

	// Redis (optional: sessions fall back to the relational store)
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	userRepo := authadapters.NewUserGorm(db)
	sessionRepo := di.NewSessionRepository(rdb, db)
	appRepo := trackeradapters.NewApplicationGorm(db)

	// Wrap the tracker repository with the Redis stats cache
	cachedAppRepo := cache.NewCachingApplicationRepository(rdb, 5*time.Minute, appRepo, "stats")

	// One-shot cleanup of stale sessions left over from previous runs
	if n, err := sessionRepo.DeleteExpired(context.Background()); err != nil {
		log.Println("[WARN] Failed to delete expired sessions:", err)
	} else if n > 0 {
		log.Printf("Deleted %d expired sessions", n)
	}

	// JWT_SECRET check (warning during development)
	secret := os.Getenv(token.EnvKeyJWTSecret)
	if secret == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}
	tokenGen := token.NewGenerator(secret, 24*time.Hour)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, sessionRepo, tokenGen)
	trackerUC := trackerusecase.NewTrackerUsecase(cachedAppRepo)

	// Handler
	authH := authhandler.NewAuthHandler(authUC, trackerUC)
	trackerH := trackerhandler.NewTrackerHandler(trackerUC)

	// Router
	r := router.NewRouter(authH, trackerH, authUC)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
