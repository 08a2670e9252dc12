package game

import (
	"sort"
	"sync"
	"time"

	"github.com/iamasit07/connect4-sim/internal/domain"
)

// LiveGame is a simulation that is still being played.
type LiveGame struct {
	GameID    string       `json:"gameId"`
	Rows      int          `json:"rows"`
	Cols      int          `json:"cols"`
	Player1   domain.Piece `json:"player1"`
	Player2   domain.Piece `json:"player2"`
	MoveCount int          `json:"moveCount"`
	StartedAt time.Time    `json:"startedAt"`
}

type liveRegistry struct {
	mu    sync.RWMutex
	games map[string]*LiveGame // gameID → LiveGame
}

func newLiveRegistry() *liveRegistry {
	return &liveRegistry{games: make(map[string]*LiveGame)}
}

func (r *liveRegistry) add(g *LiveGame) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.games[g.GameID] = g
}

func (r *liveRegistry) remove(gameID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.games, gameID)
}

func (r *liveRegistry) setMoves(gameID string, n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if g, ok := r.games[gameID]; ok {
		g.MoveCount = n
	}
}

// list returns copies, oldest first.
func (r *liveRegistry) list() []LiveGame {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]LiveGame, 0, len(r.games))
	for _, g := range r.games {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartedAt.Before(out[j].StartedAt)
	})
	return out
}

// LiveGames returns the simulations currently in progress.
func (s *Service) LiveGames() []LiveGame {
	if s.live == nil {
		return []LiveGame{}
	}
	return s.live.list()
}
