package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/evoltsoft/station-api/internal/charger/domain"
	"github.com/evoltsoft/station-api/internal/charger/repository"
	"github.com/evoltsoft/station-api/internal/charger/service"
	"github.com/evoltsoft/station-api/internal/platform/logger"
)

type ChargerHandler struct {
	chargerService service.ChargerService
}

func NewChargerHandler(cs service.ChargerService) *ChargerHandler {
	return &ChargerHandler{chargerService: cs}
}

// RegisterRoutes mounts the charger endpoints. Listing is public; everything
// else goes through the bearer-token guard.
func (h *ChargerHandler) RegisterRoutes(router *gin.RouterGroup, authRequired gin.HandlerFunc) {
	chargerRoutes := router.Group("/charger")
	{
		chargerRoutes.GET("", h.ListChargers)
		chargerRoutes.GET("/", h.ListChargers)
		chargerRoutes.POST("", authRequired, h.CreateCharger)
		chargerRoutes.POST("/", authRequired, h.CreateCharger)
		chargerRoutes.GET("/:id", authRequired, h.GetCharger)
		chargerRoutes.PUT("/:id", authRequired, h.UpdateCharger)
		chargerRoutes.DELETE("/:id", authRequired, h.DeleteCharger)
	}
}

func (h *ChargerHandler) CreateCharger(c *gin.Context) {
	var req domain.CreateChargerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request payload: " + err.Error()})
		return
	}

	charger, err := h.chargerService.CreateCharger(c.Request.Context(), req)
	if err != nil {
		var vErr *domain.ValidationError
		switch {
		case errors.As(err, &vErr):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "errors": vErr.Errors})
		case errors.Is(err, service.ErrChargerAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"message": "Charger already exists"})
		default:
			logger.Error("CreateCharger: service error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create charger"})
		}
		return
	}

	c.JSON(http.StatusCreated, charger)
}

func (h *ChargerHandler) GetCharger(c *gin.Context) {
	charger, err := h.chargerService.GetChargerByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrChargerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Charger not found"})
			return
		}
		logger.Error("GetCharger: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve charger"})
		return
	}
	c.JSON(http.StatusOK, charger)
}

func (h *ChargerHandler) ListChargers(c *gin.Context) {
	filter := domain.ParseListFilter(c.Request.URL.Query())

	chargers, err := h.chargerService.ListChargers(c.Request.Context(), filter)
	if err != nil {
		logger.Error("ListChargers: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to retrieve chargers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    chargers,
		"count":   len(chargers),
	})
}

func (h *ChargerHandler) UpdateCharger(c *gin.Context) {
	var changes domain.UpdateChargerRequest
	if err := c.ShouldBindJSON(&changes); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request payload: " + err.Error()})
		return
	}

	charger, err := h.chargerService.UpdateCharger(c.Request.Context(), c.Param("id"), changes)
	if err != nil {
		var vErr *domain.ValidationError
		switch {
		case errors.As(err, &vErr):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "errors": vErr.Errors})
		case errors.Is(err, repository.ErrChargerNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Charger not found"})
		case errors.Is(err, service.ErrChargerAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"message": "Charger already exists"})
		default:
			logger.Error("UpdateCharger: service error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update charger"})
		}
		return
	}

	c.JSON(http.StatusOK, charger)
}

func (h *ChargerHandler) DeleteCharger(c *gin.Context) {
	if err := h.chargerService.DeleteCharger(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrChargerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Charger not found"})
			return
		}
		logger.Error("DeleteCharger: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete charger"})
		return
	}
	c.Status(http.StatusNoContent)
}
