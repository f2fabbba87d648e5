package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"canteen-system/internal/repository"
	"canteen-system/internal/utils"
)

type AuthHandler struct {
	accounts *repository.AccountRepository
	tokenTTL time.Duration
}

func NewAuthHandler(accounts *repository.AccountRepository, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{accounts: accounts, tokenTTL: tokenTTL}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	account, err := h.accounts.GetByUsername(c.Request.Context(), req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, errorResponse("Invalid username or password"))
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse("Authentication failed"))
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, errorResponse("Invalid username or password"))
		return
	}

	token, exp, err := utils.GenerateToken(account.ID, account.Username, h.tokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to issue token"))
		return
	}

	c.JSON(http.StatusOK, successResponse("Login successful", gin.H{
		"token":      token,
		"expires_at": exp,
	}))
}
