package assistant

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/project-sentinel/sentinel-client/internal/models"
	"github.com/project-sentinel/sentinel-client/internal/store"
)

// MockCompleter is a mock implementation of the Completer interface
type MockCompleter struct {
	mock.Mock
}

func (m *MockCompleter) Complete(ctx context.Context, history []models.ChatMessage, query string) (string, error) {
	args := m.Called(ctx, history, query)
	return args.String(0), args.Error(1)
}

// memoryStore is an in-memory ConversationStore for tests.
type memoryStore struct {
	mu    sync.Mutex
	kinds map[string][]models.Conversation
}

func newMemoryStore() *memoryStore {
	return &memoryStore{kinds: map[string][]models.Conversation{}}
}

func (s *memoryStore) SaveConversation(kind string, conv models.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Newest first, matching the SQLite ordering.
	s.kinds[kind] = append([]models.Conversation{conv}, s.kinds[kind]...)
	return nil
}

func (s *memoryStore) ListConversations(kind string, limit int) ([]models.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.kinds[kind]
	if len(list) > limit {
		list = list[:limit]
	}
	out := make([]models.Conversation, len(list))
	copy(out, list)
	return out, nil
}

func (s *memoryStore) TrimConversations(kind string, keep int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.kinds[kind]) > keep {
		s.kinds[kind] = s.kinds[kind][:keep]
	}
	return nil
}

func newTestManager(completer Completer) (*Manager, *memoryStore) {
	mem := newMemoryStore()
	m := NewManager(completer, mem)
	return m, mem
}

func TestManager_StartsWithGreeting(t *testing.T) {
	m, _ := newTestManager(&MockCompleter{})

	messages := m.Messages()
	assert.Len(t, messages, 1)
	assert.Equal(t, models.RoleAssistant, messages[0].Role)
	assert.Contains(t, messages[0].Content, "SentinelAI")
}

func TestManager_SendAppendsExchange(t *testing.T) {
	completer := &MockCompleter{}
	completer.On("Complete", mock.Anything, mock.Anything, "analyze EVM claims").
		Return("Analysis complete.", nil)

	m, _ := newTestManager(completer)

	reply, sent := m.Send(context.Background(), "analyze EVM claims")

	assert.True(t, sent)
	assert.Equal(t, "Analysis complete.", reply.Content)

	messages := m.Messages()
	assert.Len(t, messages, 3)
	assert.Equal(t, models.RoleUser, messages[1].Role)
	assert.Equal(t, "analyze EVM claims", messages[1].Content)
	assert.Equal(t, models.RoleAssistant, messages[2].Role)
	completer.AssertExpectations(t)
}

func TestManager_BlankInputIsNoOp(t *testing.T) {
	m, _ := newTestManager(&MockCompleter{})

	_, sent := m.Send(context.Background(), "   ")

	assert.False(t, sent)
	assert.Len(t, m.Messages(), 1)
}

func TestManager_SecondSendWhileInFlightIsDropped(t *testing.T) {
	release := make(chan struct{})
	completer := &MockCompleter{}
	completer.On("Complete", mock.Anything, mock.Anything, "slow question").
		Run(func(args mock.Arguments) { <-release }).
		Return("done", nil)

	m, _ := newTestManager(completer)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		m.Send(context.Background(), "slow question")
	}()

	// Wait until the first send is in flight.
	assert.Eventually(t, m.Busy, time.Second, time.Millisecond)

	_, sent := m.Send(context.Background(), "second question")
	assert.False(t, sent)

	close(release)
	wg.Wait()

	// Only the first exchange landed: greeting + user + assistant.
	messages := m.Messages()
	assert.Len(t, messages, 3)
	assert.Equal(t, "slow question", messages[1].Content)
}

func TestManager_ContextWindowIsLastSix(t *testing.T) {
	completer := &MockCompleter{}
	var lastHistory []models.ChatMessage
	completer.On("Complete", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			lastHistory = args.Get(1).([]models.ChatMessage)
		}).
		Return("ok", nil)

	m, _ := newTestManager(completer)

	for i := 0; i < 5; i++ {
		_, sent := m.Send(context.Background(), fmt.Sprintf("question %d", i))
		assert.True(t, sent)
	}

	// The window is captured before the new user message is appended, so
	// the fifth send sees user/assistant pairs 1 through 3.
	assert.Len(t, lastHistory, 6)
	assert.Equal(t, "question 1", lastHistory[0].Content)
	assert.Equal(t, models.RoleAssistant, lastHistory[5].Role)

	assert.Len(t, m.Messages(), 11)
}

func TestManager_FallbackTaxonomy(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"credential", ErrNoCredentials, "API Key Error"},
		{"quota", ErrQuota, "API Quota Exceeded"},
		{"connectivity", errors.New("dial tcp: connection refused"), "Connection Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completer := &MockCompleter{}
			completer.On("Complete", mock.Anything, mock.Anything, mock.Anything).
				Return("", tt.err)

			m, _ := newTestManager(completer)

			reply, sent := m.Send(context.Background(), "what is happening in UP?")

			assert.True(t, sent)
			assert.Contains(t, reply.Content, tt.expected)
			assert.Contains(t, reply.Content, "what is happening in UP?")

			// The failed exchange still lands in the transcript.
			assert.Len(t, m.Messages(), 3)
		})
	}
}

func TestManager_RecentsCapFIFO(t *testing.T) {
	completer := &MockCompleter{}
	completer.On("Complete", mock.Anything, mock.Anything, mock.Anything).
		Return("ok", nil)

	m, mem := newTestManager(completer)

	for i := 0; i < 12; i++ {
		m.Send(context.Background(), fmt.Sprintf("question %d", i))
	}

	recents, err := m.Recents()
	assert.NoError(t, err)
	assert.Len(t, recents, 10)
	assert.Equal(t, "question 11", recents[0].Title)
	assert.Equal(t, "question 2", recents[9].Title)

	// The two oldest exchanges were evicted.
	assert.Len(t, mem.kinds[store.KindRecent], 10)
}

func TestManager_SaveCurrent(t *testing.T) {
	completer := &MockCompleter{}
	completer.On("Complete", mock.Anything, mock.Anything, mock.Anything).
		Return("ok", nil)

	m, _ := newTestManager(completer)

	longQuestion := "Generate a detailed security assessment for EVM tampering claims"
	m.Send(context.Background(), longQuestion)

	conv, err := m.SaveCurrent()
	assert.NoError(t, err)
	assert.Equal(t, longQuestion[:48]+"...", conv.Title)
	assert.Len(t, conv.Messages, 3)

	saved, err := m.Saved()
	assert.NoError(t, err)
	assert.Len(t, saved, 1)
}

func TestManager_SaveCurrentWithoutUserMessage(t *testing.T) {
	m, _ := newTestManager(&MockCompleter{})

	_, err := m.SaveCurrent()
	assert.Error(t, err)
}

func TestManager_SearchSaved(t *testing.T) {
	completer := &MockCompleter{}
	completer.On("Complete", mock.Anything, mock.Anything, mock.Anything).
		Return("ok", nil)

	m, _ := newTestManager(completer)

	for _, q := range []string{"EVM security report", "communal tension briefing"} {
		m.Send(context.Background(), q)
		_, err := m.SaveCurrent()
		assert.NoError(t, err)
		m.Clear()
	}

	matched, err := m.SearchSaved("evm")
	assert.NoError(t, err)
	assert.Len(t, matched, 1)
	assert.Equal(t, "EVM security report", matched[0].Title)

	all, err := m.SearchSaved("")
	assert.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestManager_Clear(t *testing.T) {
	completer := &MockCompleter{}
	completer.On("Complete", mock.Anything, mock.Anything, mock.Anything).
		Return("ok", nil)

	m, _ := newTestManager(completer)
	m.Send(context.Background(), "some question")

	m.Clear()

	messages := m.Messages()
	assert.Len(t, messages, 1)
	assert.Contains(t, messages[0].Content, "Chat cleared")
}

func TestManager_LoadConversation(t *testing.T) {
	m, _ := newTestManager(&MockCompleter{})

	m.Load(models.Conversation{
		Title: "old analysis",
		Messages: []models.ChatMessage{
			{Role: models.RoleUser, Content: "question"},
			{Role: models.RoleAssistant, Content: "answer"},
		},
	})
	assert.Len(t, m.Messages(), 2)

	m.Load(models.Conversation{Title: "empty one"})
	messages := m.Messages()
	assert.Len(t, messages, 1)
	assert.Contains(t, messages[0].Content, "empty one")
}
