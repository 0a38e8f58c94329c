package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"unimitr-backend/internal/chat"
	"unimitr-backend/internal/domain"
)

var ErrChatUnavailable = errors.New("chat is not configured")

const kindFriendPrompt = "You are a compassionate, supportive friend named 'Kind Friend' helping someone with their " +
	"mental health concerns. Be empathetic, warm, and encouraging. Keep responses brief (2-3 sentences max), " +
	"conversational, and supportive. Don't give medical advice - just be a caring listener. Add appropriate emojis " +
	"occasionally. Never mention you are an AI. Respond naturally like a caring friend would.\n\nUser message: '%s'"

type chatService struct {
	client chat.Client
}

// NewChatService accepts a nil client; Reply then fails with ErrChatUnavailable.
func NewChatService(client chat.Client) ChatService {
	return &chatService{client: client}
}

func (s *chatService) Reply(ctx context.Context, message string) (*chat.Completion, error) {
	if strings.TrimSpace(message) == "" {
		return nil, domain.NewValidationError("message", "No message provided")
	}
	if s.client == nil {
		return nil, ErrChatUnavailable
	}
	return s.client.Generate(ctx, fmt.Sprintf(kindFriendPrompt, message))
}
