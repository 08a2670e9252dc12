package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-sim/internal/service/game"
)

type WatchHandler struct {
	Games *game.Service
}

func NewWatchHandler(games *game.Service) *WatchHandler {
	return &WatchHandler{Games: games}
}

// GetLiveGames returns all simulations currently being played
func (h *WatchHandler) GetLiveGames(c *gin.Context) {
	c.JSON(http.StatusOK, h.Games.LiveGames())
}
