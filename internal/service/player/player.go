package player

import (
	"math/rand"
	"time"

	"github.com/iamasit07/connect4-sim/internal/domain"
)

// Picker chooses an index in [0, n). *rand.Rand satisfies it.
type Picker interface {
	Intn(n int) int
}

// Board is what a player needs to move: the playable columns and a way to drop a piece.
// Both *domain.Board and *domain.Game implement it.
type Board interface {
	ValidColumns() []int
	Play(piece domain.Piece, column int) (int, error)
}

// Player drops its piece into a uniformly random legal column each turn.
type Player struct {
	piece  domain.Piece
	picker Picker
}

// New creates a player for piece drawing columns from picker.
func New(piece domain.Piece, picker Picker) (*Player, error) {
	if !piece.Valid() {
		return nil, domain.ErrInvalidPiece
	}
	if picker == nil {
		picker = NewSource(0)
	}
	return &Player{piece: piece, picker: picker}, nil
}

// NewSource returns a seeded generator; seed 0 picks one from the clock.
func NewSource(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func (p *Player) Piece() domain.Piece {
	return p.piece
}

// TakeTurn plays one move and returns the chosen column and the row it landed in.
func (p *Player) TakeTurn(b Board) (int, int, error) {
	valid := b.ValidColumns()
	if len(valid) == 0 {
		return -1, -1, domain.ErrNoValidColumns
	}

	column := valid[p.picker.Intn(len(valid))]
	row, err := b.Play(p.piece, column)
	if err != nil {
		return -1, -1, err
	}
	return column, row, nil
}
