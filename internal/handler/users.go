package handler

import (
	"net/http"

	"authservice/internal/middleware"
	"authservice/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type UserHandler interface {
	Me(c *gin.Context)
	ListUsers(c *gin.Context)
	Stats(c *gin.Context)
}

type userHandler struct {
	userService service.UserService
	log         *logrus.Logger
}

func NewUserHandler(userService service.UserService, log *logrus.Logger) UserHandler {
	return &userHandler{userService: userService, log: log}
}

// Me echoes the claims attached by the auth middleware.
func (h *userHandler) Me(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Token required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":   claims.Subject,
		"username":  claims.Username,
		"role_name": claims.RoleName,
	})
}

func (h *userHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers()
	if err != nil {
		h.log.Errorf("Failed to list users: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to list users"})
		return
	}

	c.JSON(http.StatusOK, users)
}

func (h *userHandler) Stats(c *gin.Context) {
	count, err := h.userService.CountUsers()
	if err != nil {
		h.log.Errorf("Failed to count users: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to count users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"total_users": count})
}
