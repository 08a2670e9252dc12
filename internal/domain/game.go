package domain

import "fmt"

// to represent the game status
type GameStatus string

const (
	StatusActive GameStatus = "active"
	StatusWon    GameStatus = "won"
	StatusDraw   GameStatus = "draw"
)

// Game tracks whose turn it is on a board and how the game ended.
// It exposes the same ValidColumns/Play pair as Board so players can
// move through it.
type Game struct {
	Board  *Board
	Pieces [2]Piece
	Status GameStatus
	Winner Piece
	Moves  []Move
	turn   int
}

// NewGame starts a game on board between two distinct pieces; first moves first.
func NewGame(board *Board, first, second Piece) (*Game, error) {
	if !first.Valid() || !second.Valid() {
		return nil, ErrInvalidPiece
	}
	if first == second {
		return nil, ErrDuplicatePiece
	}

	g := &Game{
		Board:  board,
		Pieces: [2]Piece{first, second},
		Status: StatusActive,
		Winner: Empty,
	}
	// a board handed over mid-game may already be decided
	g.settle()
	return g, nil
}

// Next returns the piece whose turn it is.
func (g *Game) Next() Piece {
	return g.Pieces[g.turn]
}

// ValidColumns returns the playable columns, or none once the game is over.
func (g *Game) ValidColumns() []int {
	if g.IsFinished() {
		return []int{}
	}
	return g.Board.ValidColumns()
}

// Play places piece for the player on turn and records the move.
func (g *Game) Play(piece Piece, column int) (int, error) {
	if g.IsFinished() {
		return -1, ErrGameOver
	}
	if piece != g.Next() {
		return -1, fmt.Errorf("%w: %s played out of turn", ErrInvalidMove, piece)
	}

	row, err := g.Board.Play(piece, column)
	if err != nil {
		return -1, err
	}

	g.Moves = append(g.Moves, Move{
		Number: len(g.Moves) + 1,
		Piece:  piece,
		Column: column,
		Row:    row,
	})

	if !g.settle() {
		g.turn = 1 - g.turn
	}
	return row, nil
}

// settle updates Status from the board; a win takes precedence over a full board.
func (g *Game) settle() bool {
	if w, ok := g.Board.Winner(); ok {
		g.Status = StatusWon
		g.Winner = w
		return true
	}
	if g.Board.HasTie() {
		g.Status = StatusDraw
		return true
	}
	return false
}

// LastMove returns the most recent move, if any.
func (g *Game) LastMove() (Move, bool) {
	if len(g.Moves) == 0 {
		return Move{}, false
	}
	return g.Moves[len(g.Moves)-1], true
}

func (g *Game) IsFinished() bool {
	return g.Status == StatusWon || g.Status == StatusDraw
}

// Outcome summarises a finished game.
func (g *Game) Outcome() Outcome {
	moves := make([]Move, len(g.Moves))
	copy(moves, g.Moves)
	return Outcome{
		Winner: g.Winner,
		Tie:    g.Status == StatusDraw,
		Moves:  moves,
	}
}
