package assistant

import (
	"context"

	"github.com/project-sentinel/sentinel-client/internal/models"
)

// Completer generates one assistant reply from the system instruction, a
// short conversation history and the user's query.
type Completer interface {
	Complete(ctx context.Context, history []models.ChatMessage, query string) (string, error)
}

// ConversationStore persists saved and recent conversation snapshots.
type ConversationStore interface {
	SaveConversation(kind string, conv models.Conversation) error
	ListConversations(kind string, limit int) ([]models.Conversation, error)
	TrimConversations(kind string, keep int) error
}
