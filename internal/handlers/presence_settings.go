package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"shiftgy-backend/internal/middleware"
	"shiftgy-backend/internal/models"
	"shiftgy-backend/internal/presence"
)

type PresenceSettingsHandler struct {
	Resolver *presence.Resolver
}

func NewPresenceSettingsHandler(resolver *presence.Resolver) *PresenceSettingsHandler {
	return &PresenceSettingsHandler{Resolver: resolver}
}

type updateSettingsRequest struct {
	Enabled          bool   `json:"enabled"`
	ReminderTime     string `json:"reminderTime"`
	RemindClockOut   bool   `json:"remindClockOut"`
	AllowGeoLocation bool   `json:"allowGeoLocation"`
	DefaultMethod    string `json:"defaultMethod"`
}

type updateConfigRequest struct {
	RequireClockInOut bool `json:"requireClockInOut"`
	Enabled           bool `json:"enabled"`
}

func (h *PresenceSettingsHandler) manager(c *gin.Context) *presence.Manager {
	return h.Resolver.For(middleware.IdentityFrom(c))
}

func (h *PresenceSettingsHandler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.manager(c).Settings().Get(c.Request.Context()))
}

func (h *PresenceSettingsHandler) UpdateSettings(c *gin.Context) {
	var req updateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	if req.ReminderTime != "" {
		if _, err := time.Parse("15:04", req.ReminderTime); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "reminderTime must be HH:MM"})
			return
		}
	}
	method := models.PresenceMethod(req.DefaultMethod)
	if req.DefaultMethod == "" {
		method = models.MethodManual
	}
	if !method.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid defaultMethod"})
		return
	}

	updated := h.manager(c).Settings().Update(c.Request.Context(), models.PresenceSettings{
		Enabled:          req.Enabled,
		ReminderTime:     req.ReminderTime,
		RemindClockOut:   req.RemindClockOut,
		AllowGeoLocation: req.AllowGeoLocation,
		DefaultMethod:    method,
	})
	c.JSON(http.StatusOK, updated)
}

func (h *PresenceSettingsHandler) GetEmployeeConfig(c *gin.Context) {
	employeeID := c.Param("employeeId")
	config, ok := h.manager(c).Configs().Get(c.Request.Context(), employeeID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "config not found"})
		return
	}
	c.JSON(http.StatusOK, config)
}

func (h *PresenceSettingsHandler) UpsertEmployeeConfig(c *gin.Context) {
	employeeID := c.Param("employeeId")
	var req updateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	config := h.manager(c).Configs().Upsert(c.Request.Context(), models.EmployeePresenceConfig{
		EmployeeID:        employeeID,
		RequireClockInOut: req.RequireClockInOut,
		Enabled:           req.Enabled,
	})
	c.JSON(http.StatusOK, config)
}
