package store

import (
	"fmt"

	"github.com/project-sentinel/sentinel-client/internal/models"
)

// Conversation kinds.
const (
	KindSaved  = "saved"
	KindRecent = "recent"
)

// SaveConversation stores a conversation snapshot with its transcript.
// Re-saving an existing ID replaces the transcript.
func (db *DB) SaveConversation(kind string, conv models.Conversation) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO conversations (id, kind, title, started_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET kind = excluded.kind, title = excluded.title`,
		conv.ID, kind, conv.Title, conv.StartedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save conversation: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM messages WHERE conversation_id = ?", conv.ID); err != nil {
		return fmt.Errorf("failed to reset transcript: %w", err)
	}

	for i, msg := range conv.Messages {
		_, err := tx.Exec(
			"INSERT INTO messages (conversation_id, position, role, content) VALUES (?, ?, ?, ?)",
			conv.ID, i, msg.Role, msg.Content,
		)
		if err != nil {
			return fmt.Errorf("failed to save message: %w", err)
		}
	}

	return tx.Commit()
}

// ListConversations returns conversations of the given kind, newest first,
// with their transcripts.
func (db *DB) ListConversations(kind string, limit int) ([]models.Conversation, error) {
	rows, err := db.conn.Query(
		"SELECT id, title, started_at FROM conversations WHERE kind = ? ORDER BY started_at DESC LIMIT ?",
		kind, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	defer rows.Close()

	var conversations []models.Conversation
	for rows.Next() {
		var conv models.Conversation
		if err := rows.Scan(&conv.ID, &conv.Title, &conv.StartedAt); err != nil {
			return nil, fmt.Errorf("failed to scan conversation: %w", err)
		}
		conversations = append(conversations, conv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate conversations: %w", err)
	}

	for i := range conversations {
		messages, err := db.loadMessages(conversations[i].ID)
		if err != nil {
			return nil, err
		}
		conversations[i].Messages = messages
	}

	return conversations, nil
}

func (db *DB) loadMessages(conversationID string) ([]models.ChatMessage, error) {
	rows, err := db.conn.Query(
		"SELECT role, content FROM messages WHERE conversation_id = ? ORDER BY position",
		conversationID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load messages: %w", err)
	}
	defer rows.Close()

	var messages []models.ChatMessage
	for rows.Next() {
		var msg models.ChatMessage
		if err := rows.Scan(&msg.Role, &msg.Content); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

// DeleteConversation removes a conversation and its transcript.
func (db *DB) DeleteConversation(id string) error {
	if _, err := db.conn.Exec("DELETE FROM messages WHERE conversation_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete transcript: %w", err)
	}
	if _, err := db.conn.Exec("DELETE FROM conversations WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}
	return nil
}

// TrimConversations evicts the oldest conversations of a kind beyond keep.
func (db *DB) TrimConversations(kind string, keep int) error {
	rows, err := db.conn.Query(
		"SELECT id FROM conversations WHERE kind = ? ORDER BY started_at DESC LIMIT -1 OFFSET ?",
		kind, keep,
	)
	if err != nil {
		return fmt.Errorf("failed to find stale conversations: %w", err)
	}
	defer rows.Close()

	var stale []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("failed to scan conversation id: %w", err)
		}
		stale = append(stale, id)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, id := range stale {
		if err := db.DeleteConversation(id); err != nil {
			return err
		}
	}
	return nil
}
