package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/careerpilot/internal/auth"
	"github.com/justsurfingit/careerpilot/internal/dtos"
	"github.com/justsurfingit/careerpilot/internal/models"
)

// Authenticator registers accounts and checks credentials, returning a session token.
type Authenticator interface {
	Register(ctx context.Context, req dtos.RegisterRequest) (*models.User, string, error)
	Login(ctx context.Context, req dtos.LoginRequest) (*models.User, string, error)
}

type AuthHandler struct {
	Auth         Authenticator
	TokenTTL     time.Duration
	SecureCookie bool
}

func NewAuthHandler(a Authenticator, ttl time.Duration, secure bool) *AuthHandler {
	return &AuthHandler{Auth: a, TokenTTL: ttl, SecureCookie: secure}
}

// Register is POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dtos.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		authFail(c, http.StatusBadRequest, "All fields required")
		return
	}

	user, token, err := h.Auth.Register(c.Request.Context(), req)
	if err != nil {
		status, msg := errorStatus(c, err, "Registration failed")
		authFail(c, status, msg)
		return
	}

	auth.SetTokenCookie(c, token, h.TokenTTL, h.SecureCookie)
	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    dtos.NewUserResponse(user),
	})
}

// Login is POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dtos.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		authFail(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, token, err := h.Auth.Login(c.Request.Context(), req)
	if err != nil {
		status, msg := errorStatus(c, err, "Login failed")
		authFail(c, status, msg)
		return
	}

	auth.SetTokenCookie(c, token, h.TokenTTL, h.SecureCookie)
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    dtos.NewUserResponse(user),
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	auth.ClearTokenCookie(c, h.SecureCookie)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		authFail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": dtos.NewUserResponse(user)})
}

// authFail writes msg under both "message", which the login and register forms read,
// and "error", which every other endpoint uses.
func authFail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg, "message": msg})
}
