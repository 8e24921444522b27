package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shiftgy-backend/internal/config"
	"shiftgy-backend/internal/utils"
)

// IdentityHandler mints caller-identity tokens. It stands in for the external
// auth collaborator so demo clients can obtain the identity signal; it checks
// no credentials and grants no permissions.
type IdentityHandler struct {
	Cfg config.Config
}

func NewIdentityHandler(cfg config.Config) *IdentityHandler {
	return &IdentityHandler{Cfg: cfg}
}

type tokenRequest struct {
	Identifier string `json:"identifier"`
	Email      string `json:"email"`
}

func (h *IdentityHandler) Token(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	if req.Identifier == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "identifier required"})
		return
	}

	token, err := utils.GenerateIdentityToken(req.Identifier, req.Email, h.Cfg.JwtSecret, 12*60)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
