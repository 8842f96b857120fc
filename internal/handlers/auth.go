package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"webpersonal/api/internal/models"
	"webpersonal/api/internal/repository"
	"webpersonal/api/internal/security"
	"webpersonal/api/internal/service"
)

type registerRequest struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
}

type userResponse struct {
	ID        string  `json:"id"`
	Firstname string  `json:"firstname"`
	Lastname  string  `json:"lastname"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	Active    bool    `json:"active"`
	Avatar    *string `json:"avatar,omitempty"`
}

func (h HandlerSet) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authService.Register(c.Request.Context(), service.RegisterInput{
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h HandlerSet) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tokens, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access":  tokens.Access,
		"refresh": tokens.Refresh,
	})
}

type refreshRequest struct {
	Token string `json:"token" binding:"required"`
}

func (h HandlerSet) RefreshAccessToken(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token is required"})
		return
	}

	accessToken, err := h.authService.RefreshAccessToken(c.Request.Context(), req.Token)
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"accessToken": accessToken})
}

func toUserResponse(user models.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Firstname: user.Firstname,
		Lastname:  user.Lastname,
		Email:     user.Email,
		Role:      string(user.Role),
		Active:    user.Active,
		Avatar:    user.Avatar,
	}
}

// errorStatus maps service errors to the HTTP codes the routes promise.
// Anything unrecognized is an infrastructure fault.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrEmailRequired),
		errors.Is(err, service.ErrPasswordRequired),
		errors.Is(err, service.ErrTokenRequired),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrUnsupportedAvatar),
		errors.Is(err, repository.ErrEmailTaken),
		errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, security.ErrInvalidToken):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrUserInactive):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
