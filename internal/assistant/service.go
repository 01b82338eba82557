// Package assistant manages the SentinelAI chat session: the append-only
// transcript, the upstream completion calls, and the saved/recent
// conversation lists.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/project-sentinel/sentinel-client/internal/models"
	"github.com/project-sentinel/sentinel-client/internal/store"
)

const (
	// contextWindow is how many trailing transcript entries accompany each
	// upstream request.
	contextWindow = 6

	recentLimit = 10
	savedLimit  = 50

	titleLimit = 48
)

// Manager owns one chat session. All methods are safe for concurrent use;
// only one exchange runs at a time and further sends are dropped until it
// completes.
type Manager struct {
	completer Completer
	store     ConversationStore

	mu        sync.Mutex
	messages  []models.ChatMessage
	inFlight  bool
	startedAt time.Time

	newID func() string
	now   func() time.Time
}

// NewManager creates a session seeded with the greeting message.
func NewManager(completer Completer, store ConversationStore) *Manager {
	m := &Manager{
		completer: completer,
		store:     store,
		newID:     uuid.NewString,
		now:       time.Now,
	}
	m.messages = []models.ChatMessage{{Role: models.RoleAssistant, Content: greeting}}
	m.startedAt = m.now()
	return m
}

// Messages returns a copy of the transcript.
func (m *Manager) Messages() []models.ChatMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.ChatMessage, len(m.messages))
	copy(out, m.messages)
	return out
}

// Busy reports whether an exchange is in flight.
func (m *Manager) Busy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inFlight
}

// Send runs one exchange: the user message is appended immediately, the
// completer is called with the trailing context window, and the reply (or a
// canned fallback on failure) is appended when it finishes. Blank input, or
// a call while another exchange is in flight, does nothing and returns
// false.
func (m *Manager) Send(ctx context.Context, query string) (models.ChatMessage, bool) {
	query = strings.TrimSpace(query)

	m.mu.Lock()
	if query == "" || m.inFlight {
		m.mu.Unlock()
		return models.ChatMessage{}, false
	}
	m.inFlight = true

	history := make([]models.ChatMessage, 0, contextWindow)
	start := len(m.messages) - contextWindow
	if start < 0 {
		start = 0
	}
	history = append(history, m.messages[start:]...)

	m.messages = append(m.messages, models.ChatMessage{Role: models.RoleUser, Content: query})
	m.mu.Unlock()

	content, err := m.completer.Complete(ctx, history, query)
	if err != nil {
		logrus.Warnf("Assistant completion failed, using fallback: %v", err)
		content = fallbackFor(err, query)
	}
	reply := models.ChatMessage{Role: models.RoleAssistant, Content: content}

	m.mu.Lock()
	m.messages = append(m.messages, reply)
	snapshot := make([]models.ChatMessage, len(m.messages))
	copy(snapshot, m.messages)
	m.inFlight = false
	m.mu.Unlock()

	m.archiveRecent(query, snapshot)
	return reply, true
}

func fallbackFor(err error, query string) string {
	switch {
	case errors.Is(err, ErrNoCredentials):
		return credentialFallback(query)
	case errors.Is(err, ErrQuota):
		return quotaFallback(query)
	default:
		return connectivityFallback(query)
	}
}

// archiveRecent snapshots the exchange into the recent list, evicting the
// oldest entries beyond the cap.
func (m *Manager) archiveRecent(query string, transcript []models.ChatMessage) {
	conv := models.Conversation{
		ID:        m.newID(),
		Title:     truncate(query, titleLimit),
		StartedAt: m.now(),
		Messages:  transcript,
	}
	if err := m.store.SaveConversation(store.KindRecent, conv); err != nil {
		logrus.Errorf("Failed to save recent conversation: %v", err)
		return
	}
	if err := m.store.TrimConversations(store.KindRecent, recentLimit); err != nil {
		logrus.Errorf("Failed to trim recent conversations: %v", err)
	}
}

// SaveCurrent snapshots the transcript into the saved list, titled after
// the first user message. A session with no user messages is not saved.
func (m *Manager) SaveCurrent() (models.Conversation, error) {
	m.mu.Lock()
	transcript := make([]models.ChatMessage, len(m.messages))
	copy(transcript, m.messages)
	startedAt := m.startedAt
	m.mu.Unlock()

	title := ""
	for _, msg := range transcript {
		if msg.Role == models.RoleUser {
			title = truncate(msg.Content, titleLimit)
			break
		}
	}
	if title == "" {
		return models.Conversation{}, fmt.Errorf("nothing to save")
	}

	conv := models.Conversation{
		ID:        m.newID(),
		Title:     title,
		StartedAt: startedAt,
		Messages:  transcript,
	}
	if err := m.store.SaveConversation(store.KindSaved, conv); err != nil {
		return models.Conversation{}, fmt.Errorf("failed to save conversation: %w", err)
	}
	if err := m.store.TrimConversations(store.KindSaved, savedLimit); err != nil {
		logrus.Errorf("Failed to trim saved conversations: %v", err)
	}
	return conv, nil
}

// Saved lists the saved conversations, newest first.
func (m *Manager) Saved() ([]models.Conversation, error) {
	return m.store.ListConversations(store.KindSaved, savedLimit)
}

// Recents lists the recent conversations, newest first.
func (m *Manager) Recents() ([]models.Conversation, error) {
	return m.store.ListConversations(store.KindRecent, recentLimit)
}

// SearchSaved filters the saved list by a case-insensitive title substring.
// A blank query returns everything.
func (m *Manager) SearchSaved(query string) ([]models.Conversation, error) {
	saved, err := m.Saved()
	if err != nil {
		return nil, err
	}
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		return saved, nil
	}

	var matched []models.Conversation
	for _, conv := range saved {
		if strings.Contains(strings.ToLower(conv.Title), query) {
			matched = append(matched, conv)
		}
	}
	return matched, nil
}

// Load replaces the transcript with a stored conversation. An empty
// transcript yields a single placeholder message so the session is never
// blank.
func (m *Manager) Load(conv models.Conversation) {
	messages := conv.Messages
	if len(messages) == 0 {
		messages = []models.ChatMessage{{
			Role:    models.RoleAssistant,
			Content: fmt.Sprintf("📂 **Loaded Analysis**: %s\n\nThis saved analysis contains insights about election security monitoring. What would you like to explore further?", conv.Title),
		}}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = make([]models.ChatMessage, len(messages))
	copy(m.messages, messages)
	m.startedAt = m.now()
}

// Clear resets the transcript to the cleared greeting.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = []models.ChatMessage{{Role: models.RoleAssistant, Content: clearedGreeting}}
	m.startedAt = m.now()
}
