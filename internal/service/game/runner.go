package game

import (
	"context"

	"github.com/iamasit07/connect4-sim/internal/domain"
	"github.com/iamasit07/connect4-sim/internal/service/player"
)

// MoveFunc is called after every move with the board as it now stands.
// Returning an error stops the game.
type MoveFunc func(move domain.Move, board *domain.Board) error

// Runner alternates two players on one board until someone wins or the board fills.
type Runner struct {
	game    *domain.Game
	players [2]*player.Player
}

func NewRunner(board *domain.Board, first, second *player.Player) (*Runner, error) {
	g, err := domain.NewGame(board, first.Piece(), second.Piece())
	if err != nil {
		return nil, err
	}
	return &Runner{game: g, players: [2]*player.Player{first, second}}, nil
}

// Run plays the game to the end. onMove may be nil.
func (r *Runner) Run(ctx context.Context, onMove MoveFunc) (domain.Outcome, error) {
	board := r.game.Board
	// win is checked before tie so a board filled by a winning move is a win
	for !(board.HasWin() || board.HasTie()) {
		if err := ctx.Err(); err != nil {
			return r.game.Outcome(), err
		}

		p := r.players[0]
		if r.game.Next() != p.Piece() {
			p = r.players[1]
		}
		if _, _, err := p.TakeTurn(r.game); err != nil {
			return r.game.Outcome(), err
		}

		if onMove != nil {
			move, _ := r.game.LastMove()
			if err := onMove(move, board); err != nil {
				return r.game.Outcome(), err
			}
		}
	}
	return r.game.Outcome(), nil
}

// Game exposes the underlying game state.
func (r *Runner) Game() *domain.Game {
	return r.game
}
