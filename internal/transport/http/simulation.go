package http

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-sim/internal/service/game"
	"github.com/iamasit07/connect4-sim/internal/transport/http/middleware"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

type SimulationHandler struct {
	Games *game.Service
}

func NewSimulationHandler(games *game.Service) *SimulationHandler {
	return &SimulationHandler{Games: games}
}

// Create runs one simulation and returns its record. The body is optional.
func (h *SimulationHandler) Create(c *gin.Context) {
	var opts game.Options
	if err := c.ShouldBindJSON(&opts); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	// set by AuthMiddleware when tokens are required
	client := c.GetString(middleware.ClientKey)
	if client == "" {
		client = "anonymous"
	}

	rec, err := h.Games.Simulate(c.Request.Context(), opts, nil)
	if err != nil {
		respondError(c, err)
		return
	}
	log.Printf("[API] Simulation %s run for %s (seed %d)", rec.GameID, client, rec.Seed)
	c.JSON(http.StatusCreated, rec)
}

// List returns the most recent simulations.
func (h *SimulationHandler) List(c *gin.Context) {
	limit := defaultListLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(n, maxListLimit)
	}

	games, err := h.Games.ListGames(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, games)
}

func (h *SimulationHandler) Get(c *gin.Context) {
	rec, err := h.Games.GetGame(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *SimulationHandler) Stats(c *gin.Context) {
	stats, err := h.Games.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
