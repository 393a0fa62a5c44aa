package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/justsurfingit/careerpilot/pkg/extractor"
	"github.com/justsurfingit/careerpilot/pkg/logging"
)

// minResumeTextLen is the shortest extracted text worth sending to the model.
const minResumeTextLen = 50

// TextExtractor pulls plain text out of an uploaded resume file.
type TextExtractor interface {
	ExtractText(ctx context.Context, filename string, r io.Reader) (string, error)
}

// EntityExtractor finds skills and other named entities in resume text.
type EntityExtractor interface {
	ExtractEntities(ctx context.Context, text string) (extractor.Entities, error)
}

// ResumeAnalyst produces the scored analysis for a resume.
type ResumeAnalyst interface {
	AnalyzeResume(ctx context.Context, in AnalysisInput) Analysis
}

// SkillStore records skills found in analyzed resumes.
type SkillStore interface {
	UpsertSkills(ctx context.Context, userID string, skills []string) error
}

type AnalyzeRequest struct {
	Filename       string
	File           io.Reader
	JobDescription string
	UserID         string
}

// AnalysisReport is an Analysis plus the raw entity extraction output.
type AnalysisReport struct {
	Analysis
	RawEntities json.RawMessage `json:"raw_entities"`
}

type AnalyzerService struct {
	Text     TextExtractor
	Entities EntityExtractor
	Analyst  ResumeAnalyst
	Skills   SkillStore
	log      *logging.Logger
}

func NewAnalyzerService(text TextExtractor, entities EntityExtractor, analyst ResumeAnalyst, skills SkillStore, log *logging.Logger) *AnalyzerService {
	if log == nil {
		log = logging.Nop()
	}
	return &AnalyzerService{Text: text, Entities: entities, Analyst: analyst, Skills: skills, log: log}
}

// Analyze extracts the resume text, reviews it and records the extracted skills for
// the user. Entity extraction and skill storage failures are logged and ignored.
func (s *AnalyzerService) Analyze(ctx context.Context, req AnalyzeRequest) (AnalysisReport, error) {
	text, err := s.Text.ExtractText(ctx, req.Filename, req.File)
	if err != nil {
		return AnalysisReport{}, fmt.Errorf("analyzer: extract text: %w", err)
	}
	if len(strings.TrimSpace(text)) < minResumeTextLen {
		return AnalysisReport{}, ErrUnreadableResume
	}

	var entities extractor.Entities
	if s.Entities != nil {
		entities, err = s.Entities.ExtractEntities(ctx, text)
		if err != nil {
			s.log.Warn("entity extraction failed, continuing without entities", "error", err)
			entities = extractor.Entities{}
		}
	}

	analysis := s.Analyst.AnalyzeResume(ctx, AnalysisInput{
		Text:           text,
		Entities:       entities,
		JobDescription: req.JobDescription,
	})

	if len(analysis.ExtractedSkills) == 0 {
		analysis.ExtractedSkills = entities.Skills
	}
	if analysis.ExtractedSkills == nil {
		analysis.ExtractedSkills = []string{}
	}
	if analysis.Summary == "" {
		analysis.Summary = "Analysis complete."
	}

	if req.UserID != "" && len(analysis.ExtractedSkills) > 0 && s.Skills != nil {
		if err := s.Skills.UpsertSkills(ctx, req.UserID, analysis.ExtractedSkills); err != nil {
			s.log.Warn("failed to save skills", "user_id", req.UserID, "error", err)
		}
	}

	raw := entities.Raw
	if len(raw) == 0 {
		raw = json.RawMessage(`{}`)
	}
	return AnalysisReport{Analysis: analysis, RawEntities: raw}, nil
}
