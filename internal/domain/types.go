package domain

// Piece identifies which player occupies a cell.
type Piece byte

const (
	// Empty marks an unoccupied cell.
	Empty Piece = 0
	// Filler is how an empty cell is drawn by Render.
	Filler Piece = '*'
)

const (
	DefaultRows = 6
	DefaultCols = 7
	ToWin       = 4
)

func (p Piece) String() string {
	if p == Empty {
		return string(rune(Filler))
	}
	return string(rune(p))
}

// ParsePiece turns a one-character symbol into a Piece.
func ParsePiece(s string) (Piece, error) {
	if len(s) != 1 {
		return Empty, ErrInvalidPiece
	}
	p := Piece(s[0])
	if !p.Valid() {
		return Empty, ErrInvalidPiece
	}
	return p, nil
}

func (p Piece) MarshalText() ([]byte, error) {
	if p == Empty {
		return []byte{}, nil
	}
	return []byte{byte(p)}, nil
}

func (p *Piece) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*p = Empty
		return nil
	}
	parsed, err := ParsePiece(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Valid reports whether p can be placed on a board: a printable,
// non-space ASCII symbol other than the filler.
func (p Piece) Valid() bool {
	return p > ' ' && p < 0x7f && p != Filler
}

// basic errors that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidDimensions Error = "board dimensions must be positive"
	ErrInvalidMove       Error = "invalid move"
	ErrColumnFull        Error = "column is full"
	ErrNoValidColumns    Error = "no valid columns left"
	ErrInvalidPiece      Error = "invalid piece symbol"
	ErrDuplicatePiece    Error = "players must use distinct pieces"
	ErrGameOver          Error = "game is over"
)

// GameResult values as stored with a finished simulation.
const (
	ResultWin = "win"
	ResultTie = "tie"
)

// Move is one placement made during a game.
type Move struct {
	Number int   `json:"number"`
	Piece  Piece `json:"piece"`
	Column int   `json:"column"`
	Row    int   `json:"row"`
}

// Outcome describes how a finished game ended.
type Outcome struct {
	Winner Piece
	Tie    bool
	Moves  []Move
}

// Result is ResultWin or ResultTie.
func (o Outcome) Result() string {
	if o.Tie {
		return ResultTie
	}
	return ResultWin
}

// Columns returns the column sequence of the game, in play order.
func (o Outcome) Columns() []int {
	cols := make([]int, len(o.Moves))
	for i, m := range o.Moves {
		cols[i] = m.Column
	}
	return cols
}
