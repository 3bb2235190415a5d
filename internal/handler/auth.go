package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"authservice/internal/models"
	"authservice/internal/roles"
	"authservice/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Notifier is told about successful registrations. Implementations must be
// safe for concurrent use; a nil Notifier disables notifications.
type Notifier interface {
	NotifyUserRegistered(user *models.User)
}

type AuthHandler interface {
	Register(c *gin.Context)
	Login(c *gin.Context)
}

type authHandler struct {
	authService service.AuthService
	notifier    Notifier
	log         *logrus.Logger
}

func NewAuthHandler(authService service.AuthService, notifier Notifier, log *logrus.Logger) AuthHandler {
	return &authHandler{authService: authService, notifier: notifier, log: log}
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	RoleName string `json:"role_name"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *authHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for registration: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user, err := h.authService.Register(req.Username, req.Password, req.RoleName)
	if err != nil {
		switch {
		case errors.Is(err, roles.ErrReserved):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Role name can not be admin"})
		case errors.Is(err, roles.ErrTooLong):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Role name can not be longer than 32 chars"})
		case errors.Is(err, service.ErrUsernameTaken):
			c.JSON(http.StatusConflict, gin.H{"message": "Username is already taken"})
		default:
			h.log.Errorf("Failed to register user: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to register user"})
		}
		return
	}

	if h.notifier != nil {
		go h.notifier.NotifyUserRegistered(user)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "User created",
		"user_id":   user.ID,
		"username":  user.Username,
		"role_name": user.RoleName,
	})
}

func (h *authHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for login: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	tokenString, expirationTime, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
			return
		}
		h.log.Errorf("Failed to login user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to login"})
		return
	}

	maxAge := int(time.Until(expirationTime).Seconds())
	c.SetCookie("token", tokenString, maxAge, "/", "", false, true)

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("%s is back!", req.Username),
	})
}
