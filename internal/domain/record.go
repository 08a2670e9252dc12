package domain

import "time"

const (
	ErrGameNotFound  Error = "game not found"
	ErrBoardTooLarge Error = "board dimensions exceed the allowed maximum"
)

// Record is a finished simulation as stored and served by the API.
type Record struct {
	GameID     string    `json:"gameId"`
	Rows       int       `json:"rows"`
	Cols       int       `json:"cols"`
	Player1    Piece     `json:"player1"`
	Player2    Piece     `json:"player2"`
	Winner     Piece     `json:"winner,omitempty"`
	Result     string    `json:"result"`
	Seed       int64     `json:"seed"`
	Moves      []int     `json:"moves"`
	Board      []string  `json:"board"`
	TotalMoves int       `json:"totalMoves"`
	CreatedAt  time.Time `json:"createdAt"`
	FinishedAt time.Time `json:"finishedAt"`
}

// Stats aggregates outcomes over all recorded simulations.
type Stats struct {
	Games int64            `json:"games"`
	Ties  int64            `json:"ties"`
	Wins  map[string]int64 `json:"wins"`
}
