package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/justsurfingit/careerpilot/internal/dtos"
	"github.com/justsurfingit/careerpilot/internal/models"
)

// MaxResumesPerUser bounds how many resumes one user may keep.
const MaxResumesPerUser = 3

type ResumeService struct {
	DB *gorm.DB
}

func NewResumeService(db *gorm.DB) *ResumeService {
	return &ResumeService{DB: db}
}

// List returns the user's resumes, most recently updated first.
func (s *ResumeService) List(ctx context.Context, userID string) ([]models.Resume, error) {
	var resumes []models.Resume
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Limit(MaxResumesPerUser).
		Find(&resumes).Error
	if err != nil {
		return nil, fmt.Errorf("resumes: list: %w", err)
	}
	return resumes, nil
}

func (s *ResumeService) Get(ctx context.Context, id uint) (*models.Resume, error) {
	var resume models.Resume
	err := s.DB.WithContext(ctx).First(&resume, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("resumes: get: %w", err)
	}
	return &resume, nil
}

// Create stores a new resume unless the user already has MaxResumesPerUser of them.
func (s *ResumeService) Create(ctx context.Context, req dtos.ResumeCreateRequest) (*models.Resume, error) {
	userID := strings.TrimSpace(req.UserID)
	name := strings.TrimSpace(req.ResumeName)
	if userID == "" || name == "" {
		return nil, validationErr("userId and resumeName are required")
	}

	resume := &models.Resume{UserID: userID, ResumeName: name, Data: req.Data}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Resume{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
			return err
		}
		if count >= MaxResumesPerUser {
			return ErrResumeLimit
		}
		return tx.Create(resume).Error
	})
	if err != nil {
		if errors.Is(err, ErrResumeLimit) {
			return nil, err
		}
		return nil, fmt.Errorf("resumes: create: %w", err)
	}
	return resume, nil
}

func (s *ResumeService) Update(ctx context.Context, id uint, req dtos.ResumeUpdateRequest) (*models.Resume, error) {
	resume, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(req.ResumeName); name != "" {
		resume.ResumeName = name
	}
	if req.Data != nil {
		resume.Data = *req.Data
	}

	if err := s.DB.WithContext(ctx).Save(resume).Error; err != nil {
		return nil, fmt.Errorf("resumes: update: %w", err)
	}
	return resume, nil
}

func (s *ResumeService) Delete(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&models.Resume{}, id)
	if res.Error != nil {
		return fmt.Errorf("resumes: delete: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
