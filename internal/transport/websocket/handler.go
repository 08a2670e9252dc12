package websocket

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iamasit07/connect4-sim/internal/domain"
	"github.com/iamasit07/connect4-sim/internal/service/game"
)

const (
	writeTimeout = 10 * time.Second
	maxDelay     = 2 * time.Second
)

// Handler streams simulations over WebSocket, one message per move.
type Handler struct {
	Games    *game.Service
	Upgrader websocket.Upgrader
}

// NewHandler creates a new WebSocket handler. Origins are checked by the
// CORS middleware in front of it.
func NewHandler(games *game.Service) *Handler {
	return &Handler{
		Games: games,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// HandleSimulate upgrades the connection and plays one game on it.
func (h *Handler) HandleSimulate(w http.ResponseWriter, r *http.Request) {
	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}
	defer conn.Close()

	opts, delay, err := parseQuery(r.URL.Query())
	if err == nil {
		opts, err = h.Games.Prepare(opts)
	}
	if err != nil {
		h.fail(conn, err)
		return
	}

	// the client never sends anything; reading surfaces its close frame
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	if err := h.write(conn, StartMessage{Type: TypeStart, Options: opts}); err != nil {
		return
	}

	rec, err := h.Games.Simulate(ctx, opts, func(m domain.Move, b *domain.Board) error {
		if err := h.write(conn, MoveMessage{Type: TypeMove, Move: m, Board: b.Lines()}); err != nil {
			return err
		}
		if delay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
		return nil
	})
	if err != nil {
		if rec == nil {
			if !errors.Is(err, context.Canceled) {
				log.Printf("[WS] Simulation aborted: %v", err)
			}
			return
		}
		// the game finished but could not be saved
		log.Printf("[WS] %v", err)
	}

	h.write(conn, GameOverMessage{
		Type:   TypeGameOver,
		Winner: rec.Winner,
		Tie:    rec.Result == domain.ResultTie,
		Record: rec,
	})
	conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game over"),
		time.Now().Add(writeTimeout))
}

func (h *Handler) write(conn *websocket.Conn, msg any) error {
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteJSON(msg)
}

func (h *Handler) fail(conn *websocket.Conn, err error) {
	h.write(conn, ErrorMessage{Type: TypeError, Message: err.Error()})
	conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "invalid options"),
		time.Now().Add(writeTimeout))
}

// parseQuery reads simulation options and the per-move delay from the query string.
func parseQuery(q url.Values) (game.Options, time.Duration, error) {
	var opts game.Options
	var err error

	ints := []struct {
		key string
		dst *int
	}{
		{"rows", &opts.Rows},
		{"cols", &opts.Cols},
	}
	for _, f := range ints {
		if raw := q.Get(f.key); raw != "" {
			if *f.dst, err = strconv.Atoi(raw); err != nil {
				return opts, 0, fmt.Errorf("%w: %s=%q", domain.ErrInvalidDimensions, f.key, raw)
			}
		}
	}
	if raw := q.Get("seed"); raw != "" {
		if opts.Seed, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return opts, 0, fmt.Errorf("invalid seed %q", raw)
		}
	}
	if raw := q.Get("player1"); raw != "" {
		if opts.Player1, err = domain.ParsePiece(raw); err != nil {
			return opts, 0, err
		}
	}
	if raw := q.Get("player2"); raw != "" {
		if opts.Player2, err = domain.ParsePiece(raw); err != nil {
			return opts, 0, err
		}
	}

	var delay time.Duration
	if raw := q.Get("delay_ms"); raw != "" {
		ms, err := strconv.Atoi(raw)
		if err != nil || ms < 0 {
			return opts, 0, fmt.Errorf("invalid delay_ms %q", raw)
		}
		delay = min(time.Duration(ms)*time.Millisecond, maxDelay)
	}
	return opts, delay, nil
}
