package assistant

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/project-sentinel/sentinel-client/internal/models"
)

// Upstream failure classes. The session manager maps each to a canned
// fallback reply instead of surfacing the error to the transcript.
var (
	ErrNoCredentials = errors.New("assistant: missing or rejected API credentials")
	ErrQuota         = errors.New("assistant: API quota exceeded")
)

// OpenAICompleter talks to any OpenAI-compatible chat completion endpoint.
type OpenAICompleter struct {
	client *openai.Client
	model  string
	hasKey bool
}

var _ Completer = (*OpenAICompleter)(nil)

// NewOpenAICompleter builds a completer for the configured endpoint. An
// empty base URL targets the OpenAI default.
func NewOpenAICompleter(apiKey, baseURL, model string) *OpenAICompleter {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAICompleter{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		hasKey: apiKey != "",
	}
}

// Complete sends the system instruction, the trailing conversation history
// and the user query, and returns the first choice.
func (c *OpenAICompleter) Complete(ctx context.Context, history []models.ChatMessage, query string) (string, error) {
	if !c.hasKey {
		return "", ErrNoCredentials
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})
	for _, m := range history {
		role := openai.ChatMessageRoleUser
		if m.Role == models.RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: query,
	})

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages,
	})
	if err != nil {
		return "", classifyError(err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}
	return resp.Choices[0].Message.Content, nil
}

func classifyError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case 401, 403:
			return ErrNoCredentials
		case 429:
			return ErrQuota
		}
	}
	return err
}
