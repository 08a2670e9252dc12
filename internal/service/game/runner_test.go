package game

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/iamasit07/connect4-sim/internal/domain"
	"github.com/iamasit07/connect4-sim/internal/service/player"
)

// columnScript makes a player pick an exact column, whatever the valid set is.
type columnScript struct {
	board *domain.Board
	cols  []int
}

func (s *columnScript) Intn(n int) int {
	want := s.cols[0]
	s.cols = s.cols[1:]
	for i, c := range s.board.ValidColumns() {
		if c == want {
			return i
		}
	}
	panic("scripted column is not playable")
}

func scriptedPlayers(t *testing.T, b *domain.Board, cols []int) (*player.Player, *player.Player) {
	t.Helper()
	first, second := &columnScript{board: b}, &columnScript{board: b}
	for i, c := range cols {
		if i%2 == 0 {
			first.cols = append(first.cols, c)
		} else {
			second.cols = append(second.cols, c)
		}
	}
	p1, err := player.New('O', first)
	if err != nil {
		t.Fatalf("player.New: %v", err)
	}
	p2, err := player.New('x', second)
	if err != nil {
		t.Fatalf("player.New: %v", err)
	}
	return p1, p2
}

func TestRunnerReportsWinner(t *testing.T) {
	b := domain.NewDefaultBoard()
	// x wins vertically in column 3 on its fourth move
	p1, p2 := scriptedPlayers(t, b, []int{0, 3, 1, 3, 0, 3, 1, 3})
	r, err := NewRunner(b, p1, p2)
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}

	var seen []domain.Move
	out, err := r.Run(context.Background(), func(m domain.Move, board *domain.Board) error {
		if board != b {
			t.Fatal("callback got a different board")
		}
		seen = append(seen, m)
		return nil
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if out.Tie || out.Winner != 'x' {
		t.Fatalf("expected x to win, got %+v", out)
	}
	if len(seen) != 8 || len(out.Moves) != 8 {
		t.Fatalf("expected 8 moves, saw %d, outcome has %d", len(seen), len(out.Moves))
	}
	last := seen[len(seen)-1]
	if last.Piece != 'x' || last.Column != 3 || last.Number != 8 {
		t.Fatalf("unexpected last move %+v", last)
	}
	for i, m := range seen {
		want := domain.Piece('O')
		if i%2 == 1 {
			want = 'x'
		}
		if m.Piece != want {
			t.Fatalf("move %d played by %s, want %s", i+1, m.Piece, want)
		}
	}
}

func TestRunnerReportsTie(t *testing.T) {
	b := domain.NewDefaultBoard()
	tie := []int{6, 4, 6, 2, 3, 0, 0, 2, 1, 6, 6, 2, 4, 6, 4, 5, 3, 6, 1, 5, 1, 3, 0, 5, 2, 1, 2, 0, 2, 3, 5, 4, 1, 1, 4, 3, 5, 4, 3, 5, 0, 0}
	p1, p2 := scriptedPlayers(t, b, tie)
	r, _ := NewRunner(b, p1, p2)

	out, err := r.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !out.Tie || out.Winner != domain.Empty || len(out.Moves) != 42 {
		t.Fatalf("expected a 42-move tie, got %+v", out)
	}
}

func TestRunnerRandomGameTerminates(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		b := domain.NewDefaultBoard()
		src := rand.New(rand.NewSource(seed))
		p1, _ := player.New('O', src)
		p2, _ := player.New('x', src)
		r, _ := NewRunner(b, p1, p2)

		out, err := r.Run(context.Background(), nil)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if out.Tie {
			if b.HasWin() || !b.HasTie() {
				t.Fatalf("seed %d: tie reported on a board that is not a plain tie\n%s", seed, b)
			}
			continue
		}
		if w, ok := b.Winner(); !ok || w != out.Winner {
			t.Fatalf("seed %d: outcome winner %q, board winner %q\n%s", seed, out.Winner, w, b)
		}
		if last := out.Moves[len(out.Moves)-1]; last.Piece != out.Winner {
			t.Fatalf("seed %d: winner %q did not make the last move", seed, out.Winner)
		}
	}
}

func TestRunnerStopsOnCallbackError(t *testing.T) {
	b := domain.NewDefaultBoard()
	src := rand.New(rand.NewSource(3))
	p1, _ := player.New('O', src)
	p2, _ := player.New('x', src)
	r, _ := NewRunner(b, p1, p2)

	stop := errors.New("stop")
	out, err := r.Run(context.Background(), func(m domain.Move, _ *domain.Board) error {
		if m.Number == 2 {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) {
		t.Fatalf("expected callback error, got %v", err)
	}
	if len(out.Moves) != 2 {
		t.Fatalf("expected 2 moves before stopping, got %d", len(out.Moves))
	}
}

func TestRunnerHonoursCancelledContext(t *testing.T) {
	b := domain.NewDefaultBoard()
	src := rand.New(rand.NewSource(3))
	p1, _ := player.New('O', src)
	p2, _ := player.New('x', src)
	r, _ := NewRunner(b, p1, p2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Run(ctx, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(b.ValidColumns()) != b.Cols() || b.ColumnSpace(0) != b.Rows() {
		t.Fatal("cancelled run touched the board")
	}
}

func TestNewRunnerRejectsSamePiece(t *testing.T) {
	p1, _ := player.New('O', nil)
	p2, _ := player.New('O', nil)
	if _, err := NewRunner(domain.NewDefaultBoard(), p1, p2); !errors.Is(err, domain.ErrDuplicatePiece) {
		t.Fatalf("expected ErrDuplicatePiece, got %v", err)
	}
}
