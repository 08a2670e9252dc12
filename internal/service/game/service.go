package game

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/iamasit07/connect4-sim/internal/domain"
	"github.com/iamasit07/connect4-sim/internal/service/player"
	"github.com/iamasit07/connect4-sim/pkg/uid"
)

const (
	gameKeyPrefix = "game:"
	gameCacheTTL  = time.Hour

	// statsKey is a counter hash, used only when nothing is persisted.
	statsKey = "stats"
	// statsSnapshotKey holds a copy of the repository aggregate.
	statsSnapshotKey = "stats:snapshot"
	statsSnapshotTTL = 30 * time.Second
)

// Options configures one simulation. Zero values fall back to the service defaults.
type Options struct {
	Rows    int          `json:"rows"`
	Cols    int          `json:"cols"`
	Player1 domain.Piece `json:"player1"`
	Player2 domain.Piece `json:"player2"`
	Seed    int64        `json:"seed"`
}

// withDefaults fills unset fields from d.
func (o Options) withDefaults(d Options) Options {
	if o.Rows == 0 {
		o.Rows = d.Rows
	}
	if o.Cols == 0 {
		o.Cols = d.Cols
	}
	if o.Player1 == domain.Empty {
		o.Player1 = d.Player1
	}
	if o.Player2 == domain.Empty {
		o.Player2 = d.Player2
	}
	if o.Seed == 0 {
		o.Seed = d.Seed
	}
	return o
}

// Validate checks dimensions and pieces. maxSize <= 0 means no upper bound.
func (o Options) Validate(maxSize int) error {
	if o.Rows <= 0 || o.Cols <= 0 {
		return fmt.Errorf("%w: got %dx%d", domain.ErrInvalidDimensions, o.Rows, o.Cols)
	}
	if maxSize > 0 && (o.Rows > maxSize || o.Cols > maxSize) {
		return fmt.Errorf("%w: %dx%d, limit %d", domain.ErrBoardTooLarge, o.Rows, o.Cols, maxSize)
	}
	if !o.Player1.Valid() || !o.Player2.Valid() {
		return domain.ErrInvalidPiece
	}
	if o.Player1 == o.Player2 {
		return domain.ErrDuplicatePiece
	}
	return nil
}

// Prepare resolves opts against the service defaults, picks a seed if none
// was given, and validates the result.
func (s *Service) Prepare(opts Options) (Options, error) {
	opts = opts.withDefaults(s.Defaults)
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if err := opts.Validate(s.MaxSize); err != nil {
		return opts, err
	}
	return opts, nil
}

// Simulate plays one game between two random players and records it.
// Both players share one generator seeded from opts.Seed, so the same
// options always replay the same game.
func (s *Service) Simulate(ctx context.Context, opts Options, onMove MoveFunc) (*domain.Record, error) {
	opts, err := s.Prepare(opts)
	if err != nil {
		return nil, err
	}

	board, err := domain.NewBoard(opts.Rows, opts.Cols)
	if err != nil {
		return nil, err
	}
	source := player.NewSource(opts.Seed)
	p1, err := player.New(opts.Player1, source)
	if err != nil {
		return nil, err
	}
	p2, err := player.New(opts.Player2, source)
	if err != nil {
		return nil, err
	}
	runner, err := NewRunner(board, p1, p2)
	if err != nil {
		return nil, err
	}

	gameID := uid.GenerateGameID()
	createdAt := time.Now()
	if s.live != nil {
		s.live.add(&LiveGame{
			GameID:    gameID,
			Rows:      opts.Rows,
			Cols:      opts.Cols,
			Player1:   opts.Player1,
			Player2:   opts.Player2,
			StartedAt: createdAt,
		})
		defer s.live.remove(gameID)
	}

	outcome, err := runner.Run(ctx, func(move domain.Move, b *domain.Board) error {
		if s.live != nil {
			s.live.setMoves(gameID, move.Number)
		}
		if onMove != nil {
			return onMove(move, b)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	rec := &domain.Record{
		GameID:     gameID,
		Rows:       opts.Rows,
		Cols:       opts.Cols,
		Player1:    opts.Player1,
		Player2:    opts.Player2,
		Winner:     outcome.Winner,
		Result:     outcome.Result(),
		Seed:       opts.Seed,
		Moves:      outcome.Columns(),
		Board:      board.Lines(),
		TotalMoves: len(outcome.Moves),
		CreatedAt:  createdAt,
		FinishedAt: time.Now(),
	}
	log.Printf("[GAME] %s finished: %s (winner %q) after %d moves", rec.GameID, rec.Result, rec.Winner.String(), rec.TotalMoves)

	if s.Repo != nil {
		if err := s.Repo.SaveGame(ctx, rec); err != nil {
			return rec, fmt.Errorf("failed to save game %s: %w", rec.GameID, err)
		}
	}
	s.cacheResult(ctx, rec)

	return rec, nil
}

// cacheResult stores the record and keeps the cached stats in step with it.
// Cache failures are logged and otherwise ignored.
func (s *Service) cacheResult(ctx context.Context, rec *domain.Record) {
	if s.Cache == nil {
		return
	}

	if data, err := json.Marshal(rec); err == nil {
		if err := s.Cache.Set(ctx, gameKeyPrefix+rec.GameID, data, gameCacheTTL); err != nil {
			log.Printf("[REDIS] Failed to cache game %s: %v", rec.GameID, err)
		}
	}

	if s.Repo != nil {
		s.InvalidateStats(ctx)
		return
	}

	field := "ties"
	if rec.Result == domain.ResultWin {
		field = "win:" + rec.Winner.String()
	}
	for _, f := range []string{"games", field} {
		if err := s.Cache.HIncrBy(ctx, statsKey, f, 1); err != nil {
			log.Printf("[REDIS] Failed to update stats: %v", err)
			return
		}
	}
}

// InvalidateStats drops the cached stats snapshot so the next Stats call
// aggregates the repository again.
func (s *Service) InvalidateStats(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, statsSnapshotKey); err != nil {
		log.Printf("[REDIS] Failed to drop stats snapshot: %v", err)
	}
}

// GetGame looks a finished game up in the cache, then in the repository.
func (s *Service) GetGame(ctx context.Context, gameID string) (*domain.Record, error) {
	if s.Cache != nil {
		if data, err := s.Cache.Get(ctx, gameKeyPrefix+gameID); err == nil {
			var rec domain.Record
			if err := json.Unmarshal([]byte(data), &rec); err == nil {
				return &rec, nil
			}
		}
	}

	if s.Repo == nil {
		return nil, domain.ErrGameNotFound
	}
	rec, err := s.Repo.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrGameNotFound
	}
	return rec, nil
}

// ListGames returns the most recent games, newest first.
func (s *Service) ListGames(ctx context.Context, limit int) ([]domain.Record, error) {
	if s.Repo == nil {
		return []domain.Record{}, nil
	}
	return s.Repo.ListGames(ctx, limit)
}

// Stats aggregates outcomes over every recorded simulation. With a
// repository the aggregate comes from it, cached briefly. Without one the
// cache counters are the only record there is.
func (s *Service) Stats(ctx context.Context) (*domain.Stats, error) {
	if s.Repo == nil {
		if s.Cache == nil {
			return &domain.Stats{Wins: map[string]int64{}}, nil
		}
		fields, err := s.Cache.HGetAll(ctx, statsKey)
		if err != nil {
			return nil, fmt.Errorf("failed to read stats: %w", err)
		}
		return parseStats(fields), nil
	}

	if s.Cache != nil {
		if data, err := s.Cache.Get(ctx, statsSnapshotKey); err == nil {
			var stats domain.Stats
			if err := json.Unmarshal([]byte(data), &stats); err == nil {
				return &stats, nil
			}
		}
	}

	stats, err := s.Repo.GetStats(ctx)
	if err != nil {
		return nil, err
	}
	if s.Cache != nil {
		if data, err := json.Marshal(stats); err == nil {
			if err := s.Cache.Set(ctx, statsSnapshotKey, data, statsSnapshotTTL); err != nil {
				log.Printf("[REDIS] Failed to cache stats: %v", err)
			}
		}
	}
	return stats, nil
}

func parseStats(fields map[string]string) *domain.Stats {
	stats := &domain.Stats{Wins: map[string]int64{}}
	for field, raw := range fields {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		switch {
		case field == "games":
			stats.Games = n
		case field == "ties":
			stats.Ties = n
		case strings.HasPrefix(field, "win:"):
			stats.Wins[strings.TrimPrefix(field, "win:")] = n
		}
	}
	return stats
}
