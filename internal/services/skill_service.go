package services

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/justsurfingit/careerpilot/internal/models"
)

const skillSourceNLP = "nlp"

type SkillService struct {
	DB *gorm.DB
}

func NewSkillService(db *gorm.DB) *SkillService {
	return &SkillService{DB: db}
}

// UpsertSkills records each skill once per user; existing rows are left as they are.
func (s *SkillService) UpsertSkills(ctx context.Context, userID string, skills []string) error {
	names := normalizeSkills(skills)
	if userID == "" || len(names) == 0 {
		return nil
	}

	rows := make([]models.Skill, 0, len(names))
	for _, name := range names {
		rows = append(rows, models.Skill{UserID: userID, Skill: name, Source: skillSourceNLP})
	}

	err := s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "skill"}},
			DoNothing: true,
		}).
		Create(&rows).Error
	if err != nil {
		return fmt.Errorf("skills: upsert: %w", err)
	}
	return nil
}

// normalizeSkills trims names and drops blanks and case-insensitive repeats.
func normalizeSkills(skills []string) []string {
	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		name := strings.TrimSpace(s)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, name)
	}
	return out
}
