package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/careerpilot/internal/services"
)

// ChatModel answers free-form and career-focused chat messages.
type ChatModel interface {
	Chat(ctx context.Context, message string) (string, error)
	CareerChat(ctx context.Context, message string) (string, error)
}

type chatRequest struct {
	Message string `json:"message"`
}

type ChatHandler struct {
	LLM ChatModel
}

func NewChatHandler(llm ChatModel) *ChatHandler {
	return &ChatHandler{LLM: llm}
}

// Chat is POST /api/chat
func (h *ChatHandler) Chat(c *gin.Context) {
	h.reply(c, h.LLM.Chat)
}

// CareerChat is POST /api/career-chat
func (h *ChatHandler) CareerChat(c *gin.Context) {
	h.reply(c, h.LLM.CareerChat)
}

func (h *ChatHandler) reply(c *gin.Context, ask func(context.Context, string) (string, error)) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		badRequest(c, "Message is required")
		return
	}

	answer, err := ask(c.Request.Context(), req.Message)
	if err != nil {
		_ = c.Error(err)
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrLLMUnavailable) {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"error": "Failed to fetch AI response"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": answer})
}
