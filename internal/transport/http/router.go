package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-sim/internal/service/game"
	"github.com/iamasit07/connect4-sim/internal/transport/http/middleware"
	"github.com/iamasit07/connect4-sim/internal/transport/websocket"
	"github.com/iamasit07/connect4-sim/pkg/auth"
)

type RouterConfig struct {
	Games          *game.Service
	Issuer         *auth.TokenIssuer
	IssuerHash     string
	AuthRequired   bool
	AllowedOrigins []string
}

// NewRouter wires every HTTP and WebSocket route.
func NewRouter(cfg RouterConfig) *gin.Engine {
	simulationHandler := NewSimulationHandler(cfg.Games)
	watchHandler := NewWatchHandler(cfg.Games)
	tokenHandler := NewTokenHandler(cfg.Issuer, cfg.IssuerHash)
	wsHandler := websocket.NewHandler(cfg.Games)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	authMW := middleware.AuthMiddleware(cfg.Issuer, cfg.AuthRequired)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public Routes
	router.POST("/api/token", tokenHandler.Issue)
	router.GET("/api/simulations", simulationHandler.List)
	router.GET("/api/simulations/:id", simulationHandler.Get)
	router.GET("/api/stats", simulationHandler.Stats)
	router.GET("/api/watch", watchHandler.GetLiveGames)

	// Routes that run simulations
	protected := router.Group("/")
	protected.Use(authMW)
	{
		protected.POST("/api/simulations", simulationHandler.Create)
		protected.GET("/ws/simulate", gin.WrapF(wsHandler.HandleSimulate))
	}

	return router
}
