package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"github.com/justsurfingit/careerpilot/internal/dtos"
	"github.com/justsurfingit/careerpilot/internal/models"
)

type StatsService struct {
	DB *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{DB: db}
}

// Get counts the user's applications, interviews and profile skills.
func (s *StatsService) Get(ctx context.Context, userID string) (dtos.StatsResponse, error) {
	var out dtos.StatsResponse
	db := s.DB.WithContext(ctx)

	if err := db.Model(&models.Application{}).Where("user_id = ?", userID).Count(&out.Applications).Error; err != nil {
		return out, fmt.Errorf("stats: count applications: %w", err)
	}
	if err := db.Model(&models.Application{}).
		Where("user_id = ? AND status = ?", userID, models.StatusInterview).
		Count(&out.Interviews).Error; err != nil {
		return out, fmt.Errorf("stats: count interviews: %w", err)
	}

	authID, err := strconv.ParseUint(userID, 10, 64)
	if err != nil {
		return out, nil
	}

	var profile models.Profile
	err = db.Where("user_id = ?", uint(authID)).First(&profile).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
	case err != nil:
		return out, fmt.Errorf("stats: load profile: %w", err)
	default:
		out.Skills = profile.SkillCount()
	}
	return out, nil
}
