package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iamasit07/connect4-sim/internal/config"
	"github.com/iamasit07/connect4-sim/internal/repository/postgres"
	"github.com/iamasit07/connect4-sim/internal/repository/redis"
	"github.com/iamasit07/connect4-sim/internal/service/cleanup"
	"github.com/iamasit07/connect4-sim/internal/service/game"
	transportHttp "github.com/iamasit07/connect4-sim/internal/transport/http"
	"github.com/iamasit07/connect4-sim/pkg/auth"
)

func main() {
	issueToken := flag.String("issue-token", "", "print an access token for the named client and exit")
	hashSecret := flag.String("hash-secret", "", "print a bcrypt hash for TOKEN_ISSUER_SECRET_HASH and exit")
	flag.Parse()

	config.LoadEnvFile()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	issuer := auth.NewTokenIssuer(cfg.JWTSecret, time.Duration(cfg.AccessTokenTTLMinutes)*time.Minute)

	if *hashSecret != "" {
		if err := auth.ValidateSecretStrength(*hashSecret); err != nil {
			log.Fatal(err)
		}
		hash, err := auth.HashSecret(*hashSecret)
		if err != nil {
			log.Fatalf("Failed to hash secret: %v", err)
		}
		fmt.Println(hash)
		return
	}
	if *issueToken != "" {
		token, err := issuer.GenerateAccessToken(*issueToken)
		if err != nil {
			log.Fatalf("Failed to issue token: %v", err)
		}
		fmt.Println(token)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Persistence (optional)
	var repo game.GameRepository
	var gameRepo *postgres.GameRepo
	if cfg.DatabaseURL != "" {
		var db *sql.DB
		db, err = postgres.Open(ctx, cfg.DatabaseURL, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns, cfg.DBConnMaxLifetimeMin)
		if err != nil {
			log.Fatalf("Database unreachable: %v", err)
		}
		defer db.Close()
		gameRepo = postgres.NewGameRepo(db)
		repo = gameRepo
	} else {
		log.Println("[DB] DATABASE_URL not set, simulations will not be stored")
	}

	// 2. Cache (optional)
	var cache game.CacheRepository
	if cfg.RedisEnabled {
		if client := redis.Connect(ctx, cfg.RedisURL, cfg.RedisPassword); client != nil {
			redisCache := redis.NewRedisCache(client)
			defer redisCache.Close()
			cache = redisCache
		}
	}

	// 3. Services
	// RANDOM_SEED is left out so that every API game differs; clients pass seeds explicitly.
	defaults := game.Options{
		Rows:    cfg.BoardRows,
		Cols:    cfg.BoardCols,
		Player1: cfg.Player1Piece,
		Player2: cfg.Player2Piece,
	}
	gameService := game.NewService(repo, cache, defaults, cfg.MaxBoardSize)

	// 4. Background Workers
	if gameRepo != nil {
		cleanupWorker := cleanup.NewWorker(gameRepo, cfg.GameRetention, cfg.CleanupInterval)
		cleanupWorker.OnPurge = gameService.InvalidateStats
		go cleanupWorker.Start(ctx)
	}

	// 5. Router
	router := transportHttp.NewRouter(transportHttp.RouterConfig{
		Games:          gameService,
		Issuer:         issuer,
		IssuerHash:     cfg.TokenIssuerSecretHash,
		AuthRequired:   cfg.AuthRequired,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited gracefully")
}
