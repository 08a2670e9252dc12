// Command connect4 plays one game between two random players and prints
// the board after every move.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/iamasit07/connect4-sim/internal/config"
	"github.com/iamasit07/connect4-sim/internal/domain"
	"github.com/iamasit07/connect4-sim/internal/repository/postgres"
	"github.com/iamasit07/connect4-sim/internal/service/game"
)

func main() {
	config.LoadEnvFile()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg *config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("connect4", flag.ContinueOnError)
	var (
		rows = fs.Int("rows", cfg.BoardRows, "number of rows")
		cols = fs.Int("cols", cfg.BoardCols, "number of columns")
		seed = fs.Int64("seed", cfg.RandomSeed, "random seed (0 picks one from the clock)")
		p1   = fs.String("p1", cfg.Player1Piece.String(), "piece symbol of the first player")
		p2   = fs.String("p2", cfg.Player2Piece.String(), "piece symbol of the second player")
		save = fs.Bool("save", false, "store the finished game in DATABASE_URL")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	first, err := domain.ParsePiece(*p1)
	if err != nil {
		return fmt.Errorf("-p1: %w", err)
	}
	second, err := domain.ParsePiece(*p2)
	if err != nil {
		return fmt.Errorf("-p2: %w", err)
	}
	opts := game.Options{Rows: *rows, Cols: *cols, Player1: first, Player2: second, Seed: *seed}
	// zero would silently fall back to the defaults
	if err := opts.Validate(0); err != nil {
		return err
	}

	var repo game.GameRepository
	if *save {
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("-save needs DATABASE_URL")
		}
		db, err := postgres.Open(ctx, cfg.DatabaseURL, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns, cfg.DBConnMaxLifetimeMin)
		if err != nil {
			return err
		}
		defer db.Close()
		repo = postgres.NewGameRepo(db)
	}

	svc := game.NewService(repo, nil, opts, 0)
	rec, err := play(ctx, svc, opts, out)
	if err != nil {
		return err
	}
	if *save {
		log.Printf("[GAME] Saved as %s (seed %d)", rec.GameID, rec.Seed)
	}
	return nil
}

// play prints the board after every move and then the result line. A game
// that finished but could not be saved still gets its result printed.
func play(ctx context.Context, svc *game.Service, opts game.Options, out io.Writer) (*domain.Record, error) {
	rec, err := svc.Simulate(ctx, opts, func(_ domain.Move, b *domain.Board) error {
		if err := b.Render(out); err != nil {
			return err
		}
		_, err := fmt.Fprintln(out)
		return err
	})
	if rec == nil {
		return nil, err
	}

	switch {
	case rec.Result == domain.ResultTie:
		fmt.Fprintln(out, "Game ended in a tie.")
	case rec.Winner == rec.Player1:
		fmt.Fprintf(out, "P1 (%s) is the winner!\n", rec.Player1)
	default:
		fmt.Fprintf(out, "P2 (%s) is the winner!\n", rec.Player2)
	}
	return rec, err
}
