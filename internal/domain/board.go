package domain

import (
	"fmt"
	"io"
	"strings"
)

// Board is a Connect-4 grid. Row 0 is the top, row Rows()-1 the bottom.
type Board struct {
	rows  int
	cols  int
	cells [][]Piece
	// columnSpace[j] is the number of empty cells left in column j
	columnSpace []int
}

// NewBoard creates an empty board with the given number of rows and columns.
func NewBoard(rows, cols int) (*Board, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, rows, cols)
	}

	cells := make([][]Piece, rows)
	for i := range cells {
		cells[i] = make([]Piece, cols)
	}
	space := make([]int, cols)
	for j := range space {
		space[j] = rows
	}

	return &Board{rows: rows, cols: cols, cells: cells, columnSpace: space}, nil
}

// NewDefaultBoard creates an empty 6x7 board.
func NewDefaultBoard() *Board {
	b, _ := NewBoard(DefaultRows, DefaultCols)
	return b
}

func (b *Board) Rows() int { return b.rows }
func (b *Board) Cols() int { return b.cols }

// Cell returns the piece at (row, col), or Empty when out of range.
func (b *Board) Cell(row, col int) Piece {
	if row < 0 || row >= b.rows || col < 0 || col >= b.cols {
		return Empty
	}
	return b.cells[row][col]
}

// ColumnSpace returns how many pieces still fit into column col.
func (b *Board) ColumnSpace(col int) int {
	if col < 0 || col >= b.cols {
		return 0
	}
	return b.columnSpace[col]
}

// ValidColumns returns the playable columns in ascending order.
func (b *Board) ValidColumns() []int {
	valid := []int{}
	for j := 0; j < b.cols; j++ {
		if b.columnSpace[j] > 0 {
			valid = append(valid, j)
		}
	}
	return valid
}

// Play drops piece into column and returns the row it settled in.
// The board is left untouched when an error is returned.
func (b *Board) Play(piece Piece, column int) (int, error) {
	if !piece.Valid() {
		return -1, ErrInvalidPiece
	}
	if column < 0 || column >= b.cols {
		return -1, fmt.Errorf("%w: column %d out of range [0, %d)", ErrInvalidMove, column, b.cols)
	}
	if b.columnSpace[column] == 0 {
		return -1, fmt.Errorf("%w: %w: column %d", ErrInvalidMove, ErrColumnFull, column)
	}

	row := b.columnSpace[column] - 1
	b.cells[row][column] = piece
	b.columnSpace[column]--
	return row, nil
}

// HasWin reports whether any player has four in a row.
func (b *Board) HasWin() bool {
	_, ok := b.Winner()
	return ok
}

// HasTie reports whether every column is full. It does not look for a win,
// so callers check HasWin first.
func (b *Board) HasTie() bool {
	for _, space := range b.columnSpace {
		if space != 0 {
			return false
		}
	}
	return true
}

// Lines returns one string per row, top first, with Filler for empty cells.
func (b *Board) Lines() []string {
	lines := make([]string, b.rows)
	var sb strings.Builder
	for i, row := range b.cells {
		sb.Reset()
		for _, p := range row {
			if p == Empty {
				sb.WriteByte(byte(Filler))
			} else {
				sb.WriteByte(byte(p))
			}
		}
		lines[i] = sb.String()
	}
	return lines
}

// Render writes the grid to w, one row per line.
func (b *Board) Render(w io.Writer) error {
	for _, line := range b.Lines() {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func (b *Board) String() string {
	return strings.Join(b.Lines(), "\n")
}
