package player

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/iamasit07/connect4-sim/internal/domain"
)

// scripted always returns the next index from its list.
type scripted struct {
	picks []int
	calls []int
}

func (s *scripted) Intn(n int) int {
	s.calls = append(s.calls, n)
	pick := s.picks[0]
	s.picks = s.picks[1:]
	return pick
}

func TestTakeTurnPlaysChosenColumn(t *testing.T) {
	b := domain.NewDefaultBoard()
	picker := &scripted{picks: []int{4}}
	p, err := New('O', picker)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	col, row, err := p.TakeTurn(b)
	if err != nil {
		t.Fatalf("TakeTurn: %v", err)
	}
	if col != 4 || row != 5 {
		t.Fatalf("expected (col 4, row 5), got (%d, %d)", col, row)
	}
	if b.Cell(5, 4) != 'O' {
		t.Fatalf("piece not placed\n%s", b)
	}
	if len(picker.calls) != 1 || picker.calls[0] != 7 {
		t.Fatalf("expected one pick among 7 columns, got %v", picker.calls)
	}
}

func TestTakeTurnSkipsFullColumns(t *testing.T) {
	b := domain.NewDefaultBoard()
	for i := 0; i < b.Rows(); i++ {
		if _, err := b.Play('x', 0); err != nil {
			t.Fatalf("Play: %v", err)
		}
	}
	// index 0 of the valid set is now column 1
	p, _ := New('O', &scripted{picks: []int{0}})
	col, _, err := p.TakeTurn(b)
	if err != nil {
		t.Fatalf("TakeTurn: %v", err)
	}
	if col != 1 {
		t.Fatalf("expected column 1, got %d", col)
	}
}

func TestTakeTurnOnFullBoard(t *testing.T) {
	b, _ := domain.NewBoard(1, 2)
	b.Play('x', 0)
	b.Play('O', 1)

	p, _ := New('O', rand.New(rand.NewSource(1)))
	if _, _, err := p.TakeTurn(b); !errors.Is(err, domain.ErrNoValidColumns) {
		t.Fatalf("expected ErrNoValidColumns, got %v", err)
	}
}

func TestTakeTurnStaysInValidColumns(t *testing.T) {
	p, _ := New('O', rand.New(rand.NewSource(7)))
	b := domain.NewDefaultBoard()
	for i := 0; i < b.Rows()*b.Cols(); i++ {
		col, _, err := p.TakeTurn(b)
		if err != nil {
			t.Fatalf("turn %d: %v", i, err)
		}
		if col < 0 || col >= b.Cols() {
			t.Fatalf("turn %d: column %d out of range", i, col)
		}
	}
	if !b.HasTie() {
		t.Fatal("42 turns should fill the board")
	}
}

func TestSameSeedSameChoices(t *testing.T) {
	play := func() string {
		b := domain.NewDefaultBoard()
		p, _ := New('O', NewSource(42))
		for i := 0; i < 10; i++ {
			if _, _, err := p.TakeTurn(b); err != nil {
				t.Fatalf("TakeTurn: %v", err)
			}
		}
		return b.String()
	}
	if a, b := play(), play(); a != b {
		t.Fatalf("same seed produced different boards\n%s\n\n%s", a, b)
	}
}

func TestNewRejectsInvalidPiece(t *testing.T) {
	if _, err := New(domain.Filler, nil); !errors.Is(err, domain.ErrInvalidPiece) {
		t.Fatalf("expected ErrInvalidPiece, got %v", err)
	}
}
