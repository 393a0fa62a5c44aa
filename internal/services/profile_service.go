package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/justsurfingit/careerpilot/internal/models"
)

type ProfileService struct {
	DB *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{DB: db}
}

func (s *ProfileService) GetByGitHub(ctx context.Context, github string) (*models.Profile, error) {
	var profile models.Profile
	err := s.DB.WithContext(ctx).Where("github = ?", strings.TrimSpace(github)).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("profile: get: %w", err)
	}
	return &profile, nil
}

// Upsert creates or replaces the profile keyed by its GitHub username. created reports
// whether a new row was inserted.
func (s *ProfileService) Upsert(ctx context.Context, owner *models.User, in models.Profile) (profile *models.Profile, created bool, err error) {
	in, err = prepareProfile(owner, in)
	if err != nil {
		return nil, false, err
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Profile
		lookupErr := tx.Where("github = ?", in.GitHub).First(&existing).Error
		switch {
		case errors.Is(lookupErr, gorm.ErrRecordNotFound):
			created = true
			return tx.Create(&in).Error
		case lookupErr != nil:
			return lookupErr
		case existing.UserID != owner.ID:
			return ErrForbidden
		}

		in.ID = existing.ID
		in.CreatedAt = existing.CreatedAt
		return tx.Save(&in).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, false, fmt.Errorf("%w: a profile already exists for this account", ErrConflict)
	}
	if err != nil {
		return nil, false, err
	}
	return &in, created, nil
}

// prepareProfile fills owner defaults and checks required fields.
func prepareProfile(owner *models.User, p models.Profile) (models.Profile, error) {
	p.GitHub = strings.TrimSpace(p.GitHub)
	if p.GitHub == "" {
		return p, validationErr("`github` username is required")
	}
	if owner != nil {
		p.UserID = owner.ID
		if strings.TrimSpace(p.Email) == "" {
			p.Email = owner.Email
		}
		if strings.TrimSpace(p.Name) == "" {
			p.Name = owner.Name
		}
	}
	p.ID = 0
	return p, nil
}
