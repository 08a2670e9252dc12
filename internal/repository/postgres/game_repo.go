package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/iamasit07/connect4-sim/internal/domain"
)

type GameRepo struct {
	DB *sql.DB
}

func NewGameRepo(db *sql.DB) *GameRepo {
	return &GameRepo{DB: db}
}

const selectColumns = `
	game_id, board_rows, board_cols, player1_piece, player2_piece, winner_piece,
	result, seed, total_moves, moves, board_state, created_at, finished_at`

// SaveGame upserts a finished simulation.
func (r *GameRepo) SaveGame(ctx context.Context, rec *domain.Record) error {
	movesJSON, err := json.Marshal(rec.Moves)
	if err != nil {
		return fmt.Errorf("failed to marshal moves: %w", err)
	}
	boardJSON, err := json.Marshal(rec.Board)
	if err != nil {
		return fmt.Errorf("failed to marshal board state: %w", err)
	}

	var winner sql.NullString
	if rec.Winner != domain.Empty {
		winner = sql.NullString{String: rec.Winner.String(), Valid: true}
	}

	query := `
	INSERT INTO simulations (game_id, board_rows, board_cols, player1_piece, player2_piece, winner_piece, result, seed, total_moves, moves, board_state, created_at, finished_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	ON CONFLICT (game_id) DO UPDATE SET
		winner_piece = EXCLUDED.winner_piece,
		result = EXCLUDED.result,
		total_moves = EXCLUDED.total_moves,
		moves = EXCLUDED.moves,
		board_state = EXCLUDED.board_state,
		finished_at = EXCLUDED.finished_at;
	`
	_, err = r.DB.ExecContext(ctx, query,
		rec.GameID, rec.Rows, rec.Cols, rec.Player1.String(), rec.Player2.String(), winner,
		rec.Result, rec.Seed, rec.TotalMoves, movesJSON, boardJSON, rec.CreatedAt, rec.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert game record: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*domain.Record, error) {
	var (
		rec                  domain.Record
		player1, player2     string
		winner               sql.NullString
		movesJSON, boardJSON []byte
	)
	err := row.Scan(
		&rec.GameID,
		&rec.Rows,
		&rec.Cols,
		&player1,
		&player2,
		&winner,
		&rec.Result,
		&rec.Seed,
		&rec.TotalMoves,
		&movesJSON,
		&boardJSON,
		&rec.CreatedAt,
		&rec.FinishedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := rec.Player1.UnmarshalText([]byte(player1)); err != nil {
		return nil, fmt.Errorf("bad player1 piece %q: %w", player1, err)
	}
	if err := rec.Player2.UnmarshalText([]byte(player2)); err != nil {
		return nil, fmt.Errorf("bad player2 piece %q: %w", player2, err)
	}
	if winner.Valid {
		if err := rec.Winner.UnmarshalText([]byte(winner.String)); err != nil {
			return nil, fmt.Errorf("bad winner piece %q: %w", winner.String, err)
		}
	}
	if err := json.Unmarshal(movesJSON, &rec.Moves); err != nil {
		return nil, fmt.Errorf("failed to unmarshal moves: %w", err)
	}
	if err := json.Unmarshal(boardJSON, &rec.Board); err != nil {
		return nil, fmt.Errorf("failed to unmarshal board state: %w", err)
	}
	return &rec, nil
}

// GetGameByID returns nil, nil when no such game exists.
func (r *GameRepo) GetGameByID(ctx context.Context, gameID string) (*domain.Record, error) {
	query := `SELECT ` + selectColumns + ` FROM simulations WHERE game_id = $1;`

	rec, err := scanRecord(r.DB.QueryRowContext(ctx, query, gameID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game by ID: %w", err)
	}
	return rec, nil
}

// ListGames returns the most recently finished games first.
func (r *GameRepo) ListGames(ctx context.Context, limit int) ([]domain.Record, error) {
	query := `SELECT ` + selectColumns + ` FROM simulations ORDER BY finished_at DESC LIMIT $1;`

	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}
	defer rows.Close()

	games := []domain.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game row: %w", err)
		}
		games = append(games, *rec)
	}
	return games, rows.Err()
}

// GetStats aggregates outcomes over every stored game.
func (r *GameRepo) GetStats(ctx context.Context) (*domain.Stats, error) {
	query := `
	SELECT result, COALESCE(winner_piece, ''), COUNT(*)
	FROM simulations
	GROUP BY result, winner_piece;
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query stats: %w", err)
	}
	defer rows.Close()

	stats := &domain.Stats{Wins: map[string]int64{}}
	for rows.Next() {
		var result, winner string
		var count int64
		if err := rows.Scan(&result, &winner, &count); err != nil {
			return nil, fmt.Errorf("failed to scan stats row: %w", err)
		}
		stats.Games += count
		if result == domain.ResultTie {
			stats.Ties += count
		} else {
			stats.Wins[winner] += count
		}
	}
	return stats, rows.Err()
}

// DeleteGamesOlderThan removes games finished before now minus age and
// returns how many were deleted.
func (r *GameRepo) DeleteGamesOlderThan(ctx context.Context, age time.Duration) (int64, error) {
	query := `DELETE FROM simulations WHERE finished_at < $1;`
	res, err := r.DB.ExecContext(ctx, query, time.Now().Add(-age))
	if err != nil {
		return 0, fmt.Errorf("failed to delete old games: %w", err)
	}
	return res.RowsAffected()
}
