package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/careerpilot/internal/dtos"
	"github.com/justsurfingit/careerpilot/internal/models"
)

// ApplicationStore persists a user's job applications.
type ApplicationStore interface {
	List(ctx context.Context, userID string) ([]models.Application, error)
	Create(ctx context.Context, req dtos.ApplicationCreateRequest) (*models.Application, error)
	Update(ctx context.Context, id uint, req dtos.ApplicationUpdateRequest) (*models.Application, error)
	Delete(ctx context.Context, id uint) error
}

// StatsSource summarizes a user's dashboard counters.
type StatsSource interface {
	Get(ctx context.Context, userID string) (dtos.StatsResponse, error)
}

type ApplicationHandler struct {
	Applications ApplicationStore
	Stats        StatsSource
}

func NewApplicationHandler(a ApplicationStore, s StatsSource) *ApplicationHandler {
	return &ApplicationHandler{Applications: a, Stats: s}
}

// List is GET /api/applications?userId=
func (h *ApplicationHandler) List(c *gin.Context) {
	userID, ok := userIDQuery(c)
	if !ok {
		return
	}
	apps, err := h.Applications.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to fetch applications")
		return
	}
	c.JSON(http.StatusOK, apps)
}

func (h *ApplicationHandler) Create(c *gin.Context) {
	var req dtos.ApplicationCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid JSON format: "+err.Error())
		return
	}
	app, err := h.Applications.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create application")
		return
	}
	c.JSON(http.StatusCreated, app)
}

func (h *ApplicationHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req dtos.ApplicationUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid JSON format: "+err.Error())
		return
	}
	app, err := h.Applications.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err, "Application not found")
		return
	}
	c.JSON(http.StatusOK, app)
}

func (h *ApplicationHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.Applications.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Application not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Application deleted"})
}

// StatsForUser is GET /api/stats?userId=
func (h *ApplicationHandler) StatsForUser(c *gin.Context) {
	userID, ok := userIDQuery(c)
	if !ok {
		return
	}
	stats, err := h.Stats.Get(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to load stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}
