package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/evoltsoft/station-api/internal/platform/logger"
	"github.com/evoltsoft/station-api/internal/user/domain"
	"github.com/evoltsoft/station-api/internal/user/repository"
	"github.com/evoltsoft/station-api/internal/user/service"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(us service.UserService) *UserHandler {
	return &UserHandler{userService: us}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	userRoutes := router.Group("/user")
	{
		userRoutes.POST("/register", h.Register)
		userRoutes.POST("/login", h.Login)
	}
}

func (h *UserHandler) Register(c *gin.Context) {
	var req domain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request payload: " + err.Error()})
		return
	}

	user, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingContact):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide either email or phone"})
		case errors.Is(err, service.ErrMissingPassword):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Password is required"})
		case errors.Is(err, service.ErrUserAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"message": "User already exists"})
		default:
			var vErr *domain.ValidationError
			if errors.As(err, &vErr) {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "errors": vErr.Errors})
				return
			}
			logger.Error("Register: service error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to register user"})
		}
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request payload: " + err.Error()})
		return
	}

	response, err := h.userService.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingContact):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide either email or phone"})
		case errors.Is(err, repository.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		case errors.Is(err, service.ErrInvalidPassword):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid password"})
		default:
			logger.Error("Login: service error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to login"})
		}
		return
	}

	c.JSON(http.StatusOK, response)
}
