package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/justsurfingit/careerpilot/internal/dtos"
	"github.com/justsurfingit/careerpilot/internal/models"
)

type ApplicationService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewApplicationService(db *gorm.DB) *ApplicationService {
	return &ApplicationService{DB: db, Now: time.Now}
}

// List returns the user's applications, newest first.
func (s *ApplicationService) List(ctx context.Context, userID string) ([]models.Application, error) {
	var apps []models.Application
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&apps).Error
	if err != nil {
		return nil, fmt.Errorf("applications: list: %w", err)
	}
	return apps, nil
}

func (s *ApplicationService) Create(ctx context.Context, req dtos.ApplicationCreateRequest) (*models.Application, error) {
	app, err := newApplication(req, s.Now())
	if err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Create(app).Error; err != nil {
		return nil, fmt.Errorf("applications: create: %w", err)
	}
	return app, nil
}

// Update applies the non-nil fields of req.
func (s *ApplicationService) Update(ctx context.Context, id uint, req dtos.ApplicationUpdateRequest) (*models.Application, error) {
	var app models.Application
	err := s.DB.WithContext(ctx).First(&app, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("applications: get: %w", err)
	}

	if err := applyApplicationUpdate(&app, req); err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Save(&app).Error; err != nil {
		return nil, fmt.Errorf("applications: update: %w", err)
	}
	return &app, nil
}

func (s *ApplicationService) Delete(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&models.Application{}, id)
	if res.Error != nil {
		return fmt.Errorf("applications: delete: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func newApplication(req dtos.ApplicationCreateRequest, now time.Time) (*models.Application, error) {
	app := &models.Application{
		UserID:      strings.TrimSpace(req.UserID),
		JobTitle:    strings.TrimSpace(req.JobTitle),
		Company:     strings.TrimSpace(req.Company),
		Location:    strings.TrimSpace(req.Location),
		AppliedDate: strings.TrimSpace(req.AppliedDate),
		Status:      strings.ToLower(strings.TrimSpace(req.Status)),
		NextStep:    req.NextStep,
		Notes:       req.Notes,
		JobURL:      strings.TrimSpace(req.JobURL),
	}

	var missing []string
	if app.UserID == "" {
		missing = append(missing, "userId")
	}
	if app.JobTitle == "" {
		missing = append(missing, "jobTitle")
	}
	if app.Company == "" {
		missing = append(missing, "company")
	}
	if app.Location == "" {
		missing = append(missing, "location")
	}
	if len(missing) > 0 {
		return nil, validationErr("missing required fields: %s", strings.Join(missing, ", "))
	}

	if app.AppliedDate == "" {
		app.AppliedDate = now.UTC().Format(time.DateOnly)
	}
	if app.Status == "" {
		app.Status = models.StatusPending
	}
	if !models.ValidApplicationStatus(app.Status) {
		return nil, validationErr("invalid status %q", app.Status)
	}
	return app, nil
}

func applyApplicationUpdate(app *models.Application, req dtos.ApplicationUpdateRequest) error {
	if req.Status != nil {
		status := strings.ToLower(strings.TrimSpace(*req.Status))
		if !models.ValidApplicationStatus(status) {
			return validationErr("invalid status %q", status)
		}
		app.Status = status
	}
	if req.NextStep != nil {
		app.NextStep = *req.NextStep
	}
	if req.Notes != nil {
		app.Notes = *req.Notes
	}
	return nil
}
