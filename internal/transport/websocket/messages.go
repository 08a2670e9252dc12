package websocket

import (
	"github.com/iamasit07/connect4-sim/internal/domain"
	"github.com/iamasit07/connect4-sim/internal/service/game"
)

const (
	TypeStart    = "start"
	TypeMove     = "move"
	TypeGameOver = "game_over"
	TypeError    = "error"
)

type StartMessage struct {
	Type    string       `json:"type"`
	Options game.Options `json:"options"`
}

type MoveMessage struct {
	Type  string      `json:"type"`
	Move  domain.Move `json:"move"`
	Board []string    `json:"board"`
}

type GameOverMessage struct {
	Type   string         `json:"type"`
	Winner domain.Piece   `json:"winner,omitempty"`
	Tie    bool           `json:"tie"`
	Record *domain.Record `json:"record"`
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
