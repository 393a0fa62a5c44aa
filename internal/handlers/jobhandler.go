package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/careerpilot/internal/jobsearch"
)

// JobSearcher finds job postings for a query.
type JobSearcher interface {
	Search(ctx context.Context, req jobsearch.Request) (jobsearch.Response, error)
}

// JobHandler serves the aggregated job search.
type JobHandler struct {
	Search JobSearcher
}

func NewJobHandler(s JobSearcher) *JobHandler {
	return &JobHandler{Search: s}
}

// SearchJobs is GET /api/jobs/search?query=&location=&jobType=&page=
func (h *JobHandler) SearchJobs(c *gin.Context) {
	req := jobsearch.Request{
		Query:    c.Query("query"),
		Location: c.Query("location"),
		JobType:  c.Query("jobType"),
		Page:     jobsearch.ParsePage(c.Query("page")),
	}

	resp, err := h.Search.Search(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		msg := "Failed to fetch jobs"
		if errors.Is(err, jobsearch.ErrNotConfigured) {
			msg = "Job search is not configured"
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusOK, resp)
}
