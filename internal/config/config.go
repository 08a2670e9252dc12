package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/iamasit07/connect4-sim/internal/domain"
	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	AllowedOrigins []string

	BoardRows    int
	BoardCols    int
	MaxBoardSize int
	Player1Piece domain.Piece
	Player2Piece domain.Piece
	RandomSeed   int64

	DatabaseURL          string
	DBMaxOpenConns       int
	DBMaxIdleConns       int
	DBConnMaxLifetimeMin int

	RedisEnabled  bool
	RedisURL      string
	RedisPassword string

	JWTSecret             string
	AccessTokenTTLMinutes int
	AuthRequired          bool
	// bcrypt hash of the secret that POST /api/token accepts; empty disables the endpoint
	TokenIssuerSecretHash string

	GameRetention   time.Duration
	CleanupInterval time.Duration
}

// LoadEnvFile loads .env from the working directory or its parent, if present.
func LoadEnvFile() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("[CONFIG] No .env file found")
		}
	}
}

// LoadConfig reads the configuration from the environment. Only unparsable
// piece symbols fail here; everything else is checked by Validate.
func LoadConfig() (*Config, error) {
	p1, err := domain.ParsePiece(GetEnv("PLAYER1_PIECE", "O"))
	if err != nil {
		return nil, fmt.Errorf("PLAYER1_PIECE: %w", err)
	}
	p2, err := domain.ParsePiece(GetEnv("PLAYER2_PIECE", "x"))
	if err != nil {
		return nil, fmt.Errorf("PLAYER2_PIECE: %w", err)
	}

	allowedOrigins := []string{"http://localhost:5173"}
	if extra := GetEnv("ALLOWED_ORIGINS", ""); extra != "" {
		for _, origin := range strings.Split(extra, ",") {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				allowedOrigins = append(allowedOrigins, trimmed)
			}
		}
	}

	cfg := &Config{
		Port:           GetEnv("PORT", "8080"),
		AllowedOrigins: allowedOrigins,

		BoardRows:    GetEnvAsInt("BOARD_ROWS", domain.DefaultRows),
		BoardCols:    GetEnvAsInt("BOARD_COLS", domain.DefaultCols),
		MaxBoardSize: GetEnvAsInt("MAX_BOARD_SIZE", 20),
		Player1Piece: p1,
		Player2Piece: p2,
		RandomSeed:   GetEnvAsInt64("RANDOM_SEED", 0),

		DatabaseURL:          GetEnv("DATABASE_URL", GetEnv("DATABASE_URI", "")),
		DBMaxOpenConns:       GetEnvAsInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:       GetEnvAsInt("DB_MAX_IDLE_CONNS", 25),
		DBConnMaxLifetimeMin: GetEnvAsInt("DB_CONN_MAX_LIFETIME_MINUTES", 5),

		RedisEnabled:  GetEnvAsBool("REDIS_ENABLED", true),
		RedisURL:      GetEnv("REDIS_URL", "localhost:6379"),
		RedisPassword: GetEnv("REDIS_PASSWORD", ""),

		JWTSecret:             GetEnv("JWT_SECRET", "your-secret-key-change-this-in-production"),
		AccessTokenTTLMinutes: GetEnvAsInt("ACCESS_TOKEN_TTL_MINUTES", 60),
		AuthRequired:          GetEnvAsBool("AUTH_REQUIRED", false),
		TokenIssuerSecretHash: GetEnv("TOKEN_ISSUER_SECRET_HASH", ""),

		GameRetention:   time.Duration(GetEnvAsInt("GAME_RETENTION_DAYS", 30)) * 24 * time.Hour,
		CleanupInterval: time.Duration(GetEnvAsInt("CLEANUP_INTERVAL_MINUTES", 60)) * time.Minute,
	}

	return cfg, nil
}

// Validate rejects board and player settings no game could start with.
func (c *Config) Validate() error {
	if c.BoardRows <= 0 || c.BoardCols <= 0 {
		return fmt.Errorf("%w: BOARD_ROWS=%d BOARD_COLS=%d", domain.ErrInvalidDimensions, c.BoardRows, c.BoardCols)
	}
	if !c.Player1Piece.Valid() || !c.Player2Piece.Valid() {
		return domain.ErrInvalidPiece
	}
	if c.Player1Piece == c.Player2Piece {
		return domain.ErrDuplicatePiece
	}
	return nil
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("[CONFIG] Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

func GetEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		log.Printf("[CONFIG] Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("[CONFIG] Invalid boolean value for %s: %s, using default: %t", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
