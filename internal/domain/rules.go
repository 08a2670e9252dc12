package domain

// Winner returns the piece that forms four in a row, if any. Lines are
// searched horizontally, vertically, then along both diagonals; the first
// one found decides.
func (b *Board) Winner() (Piece, bool) {
	scans := []func() (Piece, bool){
		b.horizontal,
		b.vertical,
		b.descendingDiagonal,
		b.ascendingDiagonal,
	}
	for _, scan := range scans {
		if p, ok := scan(); ok {
			return p, true
		}
	}
	return Empty, false
}

// line reports whether the ToWin cells starting at (row, col) and stepping
// by (dRow, dCol) hold the same non-empty piece. The caller keeps the
// window inside the board.
func (b *Board) line(row, col, dRow, dCol int) (Piece, bool) {
	p := b.cells[row][col]
	if p == Empty {
		return Empty, false
	}
	for k := 1; k < ToWin; k++ {
		if b.cells[row+k*dRow][col+k*dCol] != p {
			return Empty, false
		}
	}
	return p, true
}

func (b *Board) horizontal() (Piece, bool) {
	for r := 0; r < b.rows; r++ {
		for c := 0; c <= b.cols-ToWin; c++ {
			if p, ok := b.line(r, c, 0, 1); ok {
				return p, true
			}
		}
	}
	return Empty, false
}

func (b *Board) vertical() (Piece, bool) {
	for c := 0; c < b.cols; c++ {
		for r := 0; r <= b.rows-ToWin; r++ {
			if p, ok := b.line(r, c, 1, 0); ok {
				return p, true
			}
		}
	}
	return Empty, false
}

// descendingDiagonal checks windows where row and column both increase.
func (b *Board) descendingDiagonal() (Piece, bool) {
	for r := 0; r <= b.rows-ToWin; r++ {
		for c := 0; c <= b.cols-ToWin; c++ {
			if p, ok := b.line(r, c, 1, 1); ok {
				return p, true
			}
		}
	}
	return Empty, false
}

// ascendingDiagonal checks windows where the row decreases as the column increases.
func (b *Board) ascendingDiagonal() (Piece, bool) {
	for r := b.rows - 1; r >= ToWin-1; r-- {
		for c := 0; c <= b.cols-ToWin; c++ {
			if p, ok := b.line(r, c, -1, 1); ok {
				return p, true
			}
		}
	}
	return Empty, false
}
