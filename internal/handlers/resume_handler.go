package handlers

import (
	"context"
	"fmt"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/careerpilot/internal/dtos"
	"github.com/justsurfingit/careerpilot/internal/models"
	"github.com/justsurfingit/careerpilot/internal/services"
)

// ResumeStore persists resume builder documents.
type ResumeStore interface {
	List(ctx context.Context, userID string) ([]models.Resume, error)
	Get(ctx context.Context, id uint) (*models.Resume, error)
	Create(ctx context.Context, req dtos.ResumeCreateRequest) (*models.Resume, error)
	Update(ctx context.Context, id uint, req dtos.ResumeUpdateRequest) (*models.Resume, error)
	Delete(ctx context.Context, id uint) error
}

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

type ResumeHandler struct {
	Resumes ResumeStore
}

func NewResumeHandler(r ResumeStore) *ResumeHandler {
	return &ResumeHandler{Resumes: r}
}

// List is GET /api/resumes?userId=
func (h *ResumeHandler) List(c *gin.Context) {
	userID, ok := userIDQuery(c)
	if !ok {
		return
	}
	resumes, err := h.Resumes.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to fetch resumes")
		return
	}
	c.JSON(http.StatusOK, resumes)
}

func (h *ResumeHandler) Create(c *gin.Context) {
	var req dtos.ResumeCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid JSON format: "+err.Error())
		return
	}
	resume, err := h.Resumes.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to save resume")
		return
	}
	c.JSON(http.StatusCreated, resume)
}

func (h *ResumeHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req dtos.ResumeUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid JSON format: "+err.Error())
		return
	}
	resume, err := h.Resumes.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err, "Resume not found")
		return
	}
	c.JSON(http.StatusOK, resume)
}

func (h *ResumeHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.Resumes.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Resume not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Resume deleted", "id": id})
}

// Export is GET /api/resumes/:id/export; it serves the resume as a text attachment.
func (h *ResumeHandler) Export(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	resume, err := h.Resumes.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Resume not found")
		return
	}

	name := unsafeFilename.ReplaceAllString(resume.ResumeName, "_")
	if name == "" || name == "_" {
		name = "resume"
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.txt"`, name))
	c.String(http.StatusOK, services.RenderResumeText(resume))
}
