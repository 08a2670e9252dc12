package game

import (
	"context"
	"time"

	"github.com/iamasit07/connect4-sim/internal/domain"
)

type GameRepository interface {
	SaveGame(ctx context.Context, rec *domain.Record) error
	GetGameByID(ctx context.Context, gameID string) (*domain.Record, error)
	ListGames(ctx context.Context, limit int) ([]domain.Record, error)
	GetStats(ctx context.Context) (*domain.Stats, error)
}

type CacheRepository interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	HIncrBy(ctx context.Context, key, field string, incr int64) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
}

// Service is the entry point for simulations (facade)
type Service struct {
	Repo     GameRepository  // Optional, can be nil
	Cache    CacheRepository // Optional, can be nil
	Defaults Options
	MaxSize  int
	live     *liveRegistry
}

func NewService(repo GameRepository, cache CacheRepository, defaults Options, maxSize int) *Service {
	return &Service{
		Repo:     repo,
		Cache:    cache,
		Defaults: defaults,
		MaxSize:  maxSize,
		live:     newLiveRegistry(),
	}
}
