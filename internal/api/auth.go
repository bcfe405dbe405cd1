package api

import (
	"errors"
	"net/http"

	"disparo-dashboard/internal/auth"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	Service *auth.Service
}

func NewAuthHandler(service *auth.Service) *AuthHandler {
	return &AuthHandler{Service: service}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.Service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou senha incorretos"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao realizar login"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "message": "Login realizado com sucesso!"})
}

// Logout exists for symmetry; sessions are stateless tokens, so the
// client simply drops its copy.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Sessão encerrada com sucesso"})
}
