package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/careerpilot/internal/services"
)

// respondError maps service errors to a status and an {"error": msg} body.
func respondError(c *gin.Context, err error, fallback string) {
	status, msg := errorStatus(c, err, fallback)
	c.JSON(status, gin.H{"error": msg})
}

// errorStatus picks the status and client message for err. Anything unrecognized is
// recorded on the context for the request logger and answered with 500.
func errorStatus(c *gin.Context, err error, fallback string) (int, string) {
	status := http.StatusInternalServerError
	msg := fallback

	switch {
	case errors.Is(err, services.ErrValidation):
		status, msg = http.StatusBadRequest, validationMessage(err)
	case errors.Is(err, services.ErrEmailTaken):
		status, msg = http.StatusBadRequest, "Email already exists"
	case errors.Is(err, services.ErrResumeLimit), errors.Is(err, services.ErrUnreadableResume):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrUserNotFound):
		status, msg = http.StatusNotFound, "User not found"
	case errors.Is(err, services.ErrInvalidCredentials):
		status, msg = http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, services.ErrForbidden):
		status, msg = http.StatusForbidden, "You cannot modify this profile"
	case errors.Is(err, services.ErrConflict):
		status, msg = http.StatusConflict, err.Error()
	default:
		_ = c.Error(err)
	}
	return status, msg
}

func validationMessage(err error) string {
	return strings.TrimPrefix(err.Error(), services.ErrValidation.Error()+": ")
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// idParam parses the :id route parameter, answering 400 when it is not a positive integer.
func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		badRequest(c, "Invalid id")
		return 0, false
	}
	return uint(id), true
}

// userIDQuery reads ?userId=, treating an empty or "undefined" value as missing.
func userIDQuery(c *gin.Context) (string, bool) {
	id := strings.TrimSpace(c.Query("userId"))
	if id == "" || id == "undefined" || id == "null" {
		badRequest(c, "userId is required")
		return "", false
	}
	return id, true
}
