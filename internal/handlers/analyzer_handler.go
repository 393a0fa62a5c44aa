package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/careerpilot/internal/services"
)

var allowedResumeExts = map[string]bool{".pdf": true, ".doc": true, ".docx": true, ".txt": true}

// ResumeAnalyzer scores a resume against an optional job description.
type ResumeAnalyzer interface {
	Analyze(ctx context.Context, req services.AnalyzeRequest) (services.AnalysisReport, error)
}

type AnalyzerHandler struct {
	Analyzer    ResumeAnalyzer
	MaxFileSize int64
}

func NewAnalyzerHandler(a ResumeAnalyzer, maxFileSize int64) *AnalyzerHandler {
	return &AnalyzerHandler{Analyzer: a, MaxFileSize: maxFileSize}
}

func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"ok": false, "error": msg})
}

// Analyze is POST /api/resume-analyzer/analyze (multipart, field "file").
func (h *AnalyzerHandler) Analyze(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		fail(c, http.StatusBadRequest, "No file uploaded. Please upload a resume (PDF/DOC/DOCX/TXT).")
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedResumeExts[ext] {
		fail(c, http.StatusBadRequest, "Only PDF, DOC, DOCX, and TXT files are allowed")
		return
	}
	if h.MaxFileSize > 0 && header.Size > h.MaxFileSize {
		fail(c, http.StatusBadRequest, fmt.Sprintf("File too large (max %d bytes)", h.MaxFileSize))
		return
	}

	file, err := header.Open()
	if err != nil {
		_ = c.Error(err)
		fail(c, http.StatusInternalServerError, "Could not read uploaded file")
		return
	}
	defer file.Close()

	jobDescription := c.PostForm("jobDescription")
	if jobDescription == "" {
		jobDescription = c.PostForm("job_description")
	}

	report, err := h.Analyzer.Analyze(c.Request.Context(), services.AnalyzeRequest{
		Filename:       filepath.Base(header.Filename),
		File:           file,
		JobDescription: jobDescription,
		UserID:         strings.TrimSpace(c.PostForm("userId")),
	})
	if errors.Is(err, services.ErrUnreadableResume) {
		fail(c, http.StatusBadRequest, "Could not extract readable text from the resume. Try a clearer PDF.")
		return
	}
	if err != nil {
		_ = c.Error(err)
		fail(c, http.StatusInternalServerError, "Analysis failed. Please try again later.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "analysis": report})
}
