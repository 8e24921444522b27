package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"shiftgy-backend/internal/middleware"
	"shiftgy-backend/internal/models"
	"shiftgy-backend/internal/presence"
	"shiftgy-backend/internal/store"
)

type PresenceHandler struct {
	Resolver *presence.Resolver
}

func NewPresenceHandler(resolver *presence.Resolver) *PresenceHandler {
	return &PresenceHandler{Resolver: resolver}
}

type clockInRequest struct {
	EmployeeID string `json:"employeeId"`
	Method     string `json:"method"`
	Location   string `json:"location"`
}

type clockOutRequest struct {
	EmployeeID string `json:"employeeId"`
}

func (h *PresenceHandler) manager(c *gin.Context) *presence.Manager {
	return h.Resolver.For(middleware.IdentityFrom(c))
}

func (h *PresenceHandler) ClockIn(c *gin.Context) {
	var req clockInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	if req.EmployeeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "employeeId required"})
		return
	}
	method := models.PresenceMethod(req.Method)
	if req.Method != "" && !method.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid method"})
		return
	}

	entry, err := h.manager(c).ClockIn(c.Request.Context(), req.EmployeeID, method, req.Location)
	if err != nil {
		if errors.Is(err, store.ErrSessionAlreadyOpen) {
			c.JSON(http.StatusConflict, gin.H{"error": "open session exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "clock-in failed"})
		return
	}

	c.JSON(http.StatusCreated, entry)
}

func (h *PresenceHandler) ClockOut(c *gin.Context) {
	var req clockOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	if req.EmployeeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "employeeId required"})
		return
	}

	entry, err := h.manager(c).ClockOut(c.Request.Context(), req.EmployeeID)
	if err != nil {
		if errors.Is(err, store.ErrNoActiveSession) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no active session"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "clock-out failed"})
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (h *PresenceHandler) Current(c *gin.Context) {
	employeeID := c.Param("employeeId")
	entry := h.manager(c).CurrentPresence(employeeID)
	if entry == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *PresenceHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.manager(c).Logs())
}

func (h *PresenceHandler) Enabled(c *gin.Context) {
	employeeID := c.Param("employeeId")
	enabled := h.manager(c).IsEmployeePresenceEnabled(c.Request.Context(), employeeID)
	c.JSON(http.StatusOK, gin.H{"employeeId": employeeID, "enabled": enabled})
}
