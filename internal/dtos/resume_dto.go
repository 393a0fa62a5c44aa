package dtos

import "github.com/justsurfingit/careerpilot/internal/models"

type ResumeCreateRequest struct {
	UserID     string            `json:"userId"`
	ResumeName string            `json:"resumeName"`
	Data       models.ResumeData `json:"data"`
}

// ResumeUpdateRequest renames a resume and/or replaces its content. A nil Data keeps
// the stored content.
type ResumeUpdateRequest struct {
	ResumeName string             `json:"resumeName"`
	Data       *models.ResumeData `json:"data"`
}
