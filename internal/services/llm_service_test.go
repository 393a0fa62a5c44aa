package services

import (
	"context"
	"errors"
	"testing"

	"github.com/tmc/langchaingo/llms"

	"github.com/justsurfingit/careerpilot/pkg/extractor"
	"github.com/justsurfingit/careerpilot/pkg/logging"
)

type scriptedModel struct {
	replies []*llms.ContentResponse
	errs    []error
	calls   int
	lastOps llms.CallOptions
	lastMsg []llms.MessageContent
}

func (m *scriptedModel) GenerateContent(_ context.Context, msgs []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	i := m.calls
	m.calls++
	m.lastMsg = msgs
	m.lastOps = llms.CallOptions{}
	for _, opt := range options {
		opt(&m.lastOps)
	}
	if i < len(m.errs) && m.errs[i] != nil {
		return nil, m.errs[i]
	}
	if i < len(m.replies) {
		return m.replies[i], nil
	}
	return &llms.ContentResponse{}, nil
}

func (m *scriptedModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

func reply(text, stop string) *llms.ContentResponse {
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: text, StopReason: stop}}}
}

func TestChatUsesSystemPromptAndLimits(t *testing.T) {
	model := &scriptedModel{replies: []*llms.ContentResponse{reply("Learn Go.", "STOP")}}
	svc := &LLMService{Client: model, log: logging.Nop()}

	got, err := svc.CareerChat(context.Background(), "What should I learn?")
	if err != nil {
		t.Fatalf("CareerChat: %v", err)
	}
	if got != "Learn Go." {
		t.Errorf("reply = %q", got)
	}
	if len(model.lastMsg) != 2 || model.lastMsg[0].Role != llms.ChatMessageTypeSystem || model.lastMsg[1].Role != llms.ChatMessageTypeHuman {
		t.Errorf("messages = %+v", model.lastMsg)
	}
	if model.lastOps.Temperature != 0.4 || model.lastOps.MaxTokens != 150 {
		t.Errorf("options = %+v", model.lastOps)
	}

	_, _ = svc.Chat(context.Background(), "hi")
	if model.lastOps.Temperature != 0.5 || model.lastOps.MaxTokens != 80 {
		t.Errorf("chat options = %+v", model.lastOps)
	}
}

func TestChatWithoutClient(t *testing.T) {
	svc, err := NewLLMService(context.Background(), "", "gemini-2.5-flash", nil)
	if err != nil {
		t.Fatalf("NewLLMService: %v", err)
	}
	if _, err := svc.Chat(context.Background(), "hi"); !errors.Is(err, ErrLLMUnavailable) {
		t.Errorf("expected ErrLLMUnavailable, got %v", err)
	}
	a := svc.AnalyzeResume(context.Background(), AnalysisInput{Entities: extractor.Entities{Skills: []string{"Go"}}})
	if a.Score != 70 || a.ExtractedSkills[0] != "Go" {
		t.Errorf("expected fallback, got %+v", a)
	}
}

func TestAnalyzeResumeRetriesEmptyOutput(t *testing.T) {
	model := &scriptedModel{replies: []*llms.ContentResponse{
		reply("", "STOP"),
		reply("  ", "STOP"),
		reply(`{"score": 81, "extracted_skills": ["Go"]}`, "STOP"),
	}}
	svc := &LLMService{Client: model, log: logging.Nop()}

	a := svc.AnalyzeResume(context.Background(), AnalysisInput{Text: "resume"})
	if model.calls != 3 {
		t.Errorf("calls = %d, want 3", model.calls)
	}
	if a.Score != 81 {
		t.Errorf("score = %d, want 81", a.Score)
	}
	if model.lastOps.Temperature != 0.2 || model.lastOps.MaxTokens != 2048 {
		t.Errorf("options = %+v", model.lastOps)
	}
}

func TestAnalyzeResumeFallsBack(t *testing.T) {
	tests := []struct {
		name  string
		model *scriptedModel
		calls int
	}{
		{name: "always empty", model: &scriptedModel{}, calls: 3},
		{name: "call error", model: &scriptedModel{errs: []error{errors.New("quota")}}, calls: 1},
		{name: "unparseable", model: &scriptedModel{replies: []*llms.ContentResponse{reply("no json here", "STOP")}}, calls: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &LLMService{Client: tt.model, log: logging.Nop()}
			a := svc.AnalyzeResume(context.Background(), AnalysisInput{Text: "resume"})
			if tt.model.calls != tt.calls {
				t.Errorf("calls = %d, want %d", tt.model.calls, tt.calls)
			}
			if a.Score != 70 || a.Summary != fallbackAnalysis(nil).Summary {
				t.Errorf("expected fallback, got %+v", a)
			}
		})
	}
}

func TestTruncateRunes(t *testing.T) {
	if got := truncateRunes("héllo", 2); got != "hé" {
		t.Errorf("truncateRunes = %q", got)
	}
	if got := truncateRunes("ok", 10); got != "ok" {
		t.Errorf("truncateRunes = %q", got)
	}
}
