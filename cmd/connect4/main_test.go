package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/iamasit07/connect4-sim/internal/config"
	"github.com/iamasit07/connect4-sim/internal/domain"
	"github.com/iamasit07/connect4-sim/internal/service/game"
)

var errDiskFull = errors.New("disk full")

// brokenRepo fails every save.
type brokenRepo struct{}

func (brokenRepo) SaveGame(context.Context, *domain.Record) error { return errDiskFull }
func (brokenRepo) GetGameByID(context.Context, string) (*domain.Record, error) {
	return nil, nil
}
func (brokenRepo) ListGames(context.Context, int) ([]domain.Record, error) { return nil, nil }
func (brokenRepo) GetStats(context.Context) (*domain.Stats, error) { return nil, nil }

func testConfig() *config.Config {
	return &config.Config{BoardRows: 6, BoardCols: 7, Player1Piece: 'O', Player2Piece: 'x'}
}

func TestRunPrintsEveryMove(t *testing.T) {
	var out bytes.Buffer
	if err := run(context.Background(), testConfig(), []string{"-seed", "2024"}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}

	blocks := strings.Split(strings.TrimSpace(out.String()), "\n\n")
	final := blocks[len(blocks)-1]
	boards := blocks[:len(blocks)-1]

	// the result line follows the last board directly after its blank line
	lines := strings.Split(final, "\n")
	if len(lines) != 1 {
		t.Fatalf("expected a single result line, got %q", final)
	}
	result := lines[0]
	if result != "Game ended in a tie." && result != "P1 (O) is the winner!" && result != "P2 (x) is the winner!" {
		t.Fatalf("unexpected result line %q", result)
	}

	for i, b := range boards {
		rows := strings.Split(b, "\n")
		if len(rows) != 6 {
			t.Fatalf("board %d has %d rows", i, len(rows))
		}
		pieces := 0
		for _, r := range rows {
			if len(r) != 7 {
				t.Fatalf("board %d has a row of length %d", i, len(r))
			}
			pieces += 7 - strings.Count(r, "*")
		}
		if pieces != i+1 {
			t.Fatalf("board %d shows %d pieces", i, pieces)
		}
	}

	if len(boards) < 7 {
		t.Fatalf("a game needs at least 7 moves, printed %d boards", len(boards))
	}
	if strings.HasPrefix(result, "P1") && len(boards)%2 != 1 {
		t.Fatal("P1 can only win on an odd move")
	}
	if strings.HasPrefix(result, "P2") && len(boards)%2 != 0 {
		t.Fatal("P2 can only win on an even move")
	}
}

func TestRunIsReproducible(t *testing.T) {
	var a, b bytes.Buffer
	run(context.Background(), testConfig(), []string{"-seed", "9"}, &a)
	run(context.Background(), testConfig(), []string{"-seed", "9"}, &b)
	if a.String() != b.String() {
		t.Fatal("same seed printed different games")
	}
}

func TestRunCustomPieces(t *testing.T) {
	var out bytes.Buffer
	if err := run(context.Background(), testConfig(), []string{"-seed", "5", "-p1", "R", "-p2", "Y", "-rows", "4", "-cols", "4"}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if strings.ContainsAny(out.String(), "Ox") {
		t.Fatal("default pieces used despite -p1/-p2")
	}
	first := strings.SplitN(out.String(), "\n", 2)[0]
	if len(first) != 4 {
		t.Fatalf("expected a 4-wide board, got %q", first)
	}
}

func TestRunRejectsBadInput(t *testing.T) {
	cases := []struct {
		args []string
		want error
	}{
		{[]string{"-rows", "0"}, domain.ErrInvalidDimensions},
		{[]string{"-cols", "-2"}, domain.ErrInvalidDimensions},
		{[]string{"-p1", "x"}, domain.ErrDuplicatePiece},
		{[]string{"-p2", "*"}, domain.ErrInvalidPiece},
	}
	for _, tc := range cases {
		var out bytes.Buffer
		if err := run(context.Background(), testConfig(), tc.args, &out); !errors.Is(err, tc.want) {
			t.Errorf("%v: expected %v, got %v", tc.args, tc.want, err)
		}
	}
}

func TestRunSaveNeedsDatabase(t *testing.T) {
	var out bytes.Buffer
	if err := run(context.Background(), testConfig(), []string{"-save"}, &out); err == nil {
		t.Fatal("expected -save without DATABASE_URL to fail")
	}
}

func TestPlayPrintsResultWhenSaveFails(t *testing.T) {
	opts := game.Options{Rows: 6, Cols: 7, Player1: 'O', Player2: 'x', Seed: 2024}
	svc := game.NewService(brokenRepo{}, nil, opts, 0)

	var out bytes.Buffer
	rec, err := play(context.Background(), svc, opts, &out)
	if !errors.Is(err, errDiskFull) {
		t.Fatalf("expected the save error, got %v", err)
	}
	if rec == nil {
		t.Fatal("expected the finished record")
	}

	text := strings.TrimSpace(out.String())
	last := text[strings.LastIndex(text, "\n")+1:]
	if last != "Game ended in a tie." && !strings.HasSuffix(last, "is the winner!") {
		t.Fatalf("result line missing, output ends with %q", last)
	}
}
