package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"

	"github.com/justsurfingit/careerpilot/pkg/extractor"
	"github.com/justsurfingit/careerpilot/pkg/logging"
)

const (
	chatSystemPrompt = `You are a career guidance assistant helping people build a successful career.
Answer the user's question with relevant, concise and actionable advice. Stay encouraging and avoid generic filler.`

	careerSystemPrompt = `You are a professional AI career assistant.
You only answer questions about career advice, resume improvement, skills and learning,
interview preparation and job market trends. Politely decline anything else.`

	resumeAnalysisPrompt = `You are a senior technical recruiter reviewing a resume.

Respond with a single JSON object and nothing else (no markdown, no prose) using exactly these keys:
{
  "score": <integer 0-100>,
  "strengths": ["..."],
  "suggestions": ["..."],
  "missing_skills": ["..."],
  "recommended_skills": ["..."],
  "extracted_skills": ["..."],
  "summary": "<at most two sentences>"
}

extracted_skills must list concrete technical skills exactly as written in the resume:
languages, frameworks, libraries, databases and tools. Leave out broad concepts.

Resume text:
%s

Extracted entities (reference only): %s

Target role: %s
`

	// maxPromptResumeRunes caps how much resume text goes into the prompt.
	maxPromptResumeRunes = 3000
	analysisRetries      = 2
	defaultTargetRole    = "Software Engineer"
)

var errEmptyCompletion = errors.New("llm: empty completion")

// AnalysisInput is what the model sees when reviewing a resume.
type AnalysisInput struct {
	Text           string
	Entities       extractor.Entities
	JobDescription string
}

type LLMService struct {
	// Client is nil when no API key is configured.
	Client llms.Model
	log    *logging.Logger
}

// NewLLMService builds a Gemini-backed service. An empty apiKey yields a service whose
// chat calls fail with ErrLLMUnavailable and whose analyses use the fallback.
func NewLLMService(ctx context.Context, apiKey, model string, log *logging.Logger) (*LLMService, error) {
	if log == nil {
		log = logging.Nop()
	}
	if apiKey == "" {
		log.Warn("GEMINI_API_KEY is empty, AI features are disabled")
		return &LLMService{log: log}, nil
	}

	client, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("llm: create gemini client: %w", err)
	}
	return &LLMService{Client: client, log: log}, nil
}

// Chat answers a general career question.
func (s *LLMService) Chat(ctx context.Context, message string) (string, error) {
	text, _, err := s.generate(ctx, chatSystemPrompt, message, 0.5, 80)
	return text, err
}

// CareerChat answers questions restricted to the career domain.
func (s *LLMService) CareerChat(ctx context.Context, message string) (string, error) {
	text, _, err := s.generate(ctx, careerSystemPrompt, message, 0.4, 150)
	return text, err
}

// AnalyzeResume never fails: any problem with the model yields the fallback analysis.
func (s *LLMService) AnalyzeResume(ctx context.Context, in AnalysisInput) Analysis {
	fallback := fallbackAnalysis(in.Entities.Skills)
	if s.Client == nil {
		return fallback
	}

	prompt := fmt.Sprintf(resumeAnalysisPrompt, truncateRunes(in.Text, maxPromptResumeRunes), entitiesForPrompt(in.Entities), targetRole(in.JobDescription))

	for attempt := 0; attempt <= analysisRetries; attempt++ {
		text, stop, err := s.generate(ctx, "", prompt, 0.2, 2048)
		if errors.Is(err, errEmptyCompletion) && attempt < analysisRetries {
			s.log.Warn("empty analysis from model, retrying", "attempt", attempt+1)
			continue
		}
		if err != nil {
			s.log.Error("resume analysis call failed", "error", err)
			return fallback
		}

		analysis, err := ParseAnalysis(text, stop)
		if err != nil {
			s.log.Warn("could not parse model analysis", "error", err, "stop_reason", stop)
			return fallback
		}
		return analysis
	}
	return fallback
}

// generate sends one optional system message and one user message, returning the first
// choice's text and stop reason.
func (s *LLMService) generate(ctx context.Context, system, user string, temperature float64, maxTokens int) (string, string, error) {
	if s.Client == nil {
		return "", "", ErrLLMUnavailable
	}

	var msgs []llms.MessageContent
	if system != "" {
		msgs = append(msgs, llms.TextParts(llms.ChatMessageTypeSystem, system))
	}
	msgs = append(msgs, llms.TextParts(llms.ChatMessageTypeHuman, user))

	resp, err := s.Client.GenerateContent(ctx, msgs,
		llms.WithTemperature(temperature),
		llms.WithMaxTokens(maxTokens),
	)
	if errors.Is(err, googleai.ErrNoContentInResponse) {
		return "", "", errEmptyCompletion
	}
	if err != nil {
		return "", "", fmt.Errorf("llm: generate: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", "", errEmptyCompletion
	}

	choice := resp.Choices[0]
	text := strings.TrimSpace(choice.Content)
	if text == "" {
		return "", choice.StopReason, errEmptyCompletion
	}
	return text, choice.StopReason, nil
}

func entitiesForPrompt(e extractor.Entities) string {
	if len(e.Raw) == 0 {
		return "{}"
	}
	return string(e.Raw)
}

func targetRole(jobDescription string) string {
	if jd := strings.TrimSpace(jobDescription); jd != "" {
		return jd
	}
	return defaultTargetRole
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
