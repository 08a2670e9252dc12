package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-sim/pkg/auth"
)

type TokenHandler struct {
	Issuer     *auth.TokenIssuer
	SecretHash string
}

func NewTokenHandler(issuer *auth.TokenIssuer, secretHash string) *TokenHandler {
	return &TokenHandler{Issuer: issuer, SecretHash: secretHash}
}

// Issue exchanges the issuer secret for an access token naming the client.
func (h *TokenHandler) Issue(c *gin.Context) {
	if h.SecretHash == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Token issuing is disabled"})
		return
	}

	var req struct {
		Client string `json:"client"`
		Secret string `json:"secret"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	req.Client = strings.TrimSpace(req.Client)
	if req.Client == "" || len(req.Client) > 64 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "client must be between 1 and 64 characters"})
		return
	}

	if !auth.CheckSecretHash(req.Secret, h.SecretHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid secret"})
		return
	}

	token, err := h.Issuer.GenerateAccessToken(req.Client)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "client": req.Client})
}
