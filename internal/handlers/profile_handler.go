package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/careerpilot/internal/auth"
	"github.com/justsurfingit/careerpilot/internal/models"
)

// ProfileStore reads and writes public profiles keyed by GitHub username.
type ProfileStore interface {
	GetByGitHub(ctx context.Context, github string) (*models.Profile, error)
	Upsert(ctx context.Context, owner *models.User, in models.Profile) (*models.Profile, bool, error)
}

type ProfileHandler struct {
	Profiles ProfileStore
}

func NewProfileHandler(p ProfileStore) *ProfileHandler {
	return &ProfileHandler{Profiles: p}
}

// Get is GET /api/users/:github
func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.Profiles.GetByGitHub(c.Request.Context(), c.Param("github"))
	if err != nil {
		respondError(c, err, "Profile not found")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// Save is POST /api/users; it creates or replaces the caller's profile.
func (h *ProfileHandler) Save(c *gin.Context) {
	owner, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	var in models.Profile
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "Invalid JSON format: "+err.Error())
		return
	}

	profile, created, err := h.Profiles.Upsert(c.Request.Context(), owner, in)
	if err != nil {
		respondError(c, err, "Failed to save profile")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, profile)
}
