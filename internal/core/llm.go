// Package core implements the support-chat client: the in-memory
// conversation transcript and its exchange with the external
// chat-completion collaborator.
package core

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultChatBaseURL = "https://api.deepseek.com/v1"
	defaultChatModel   = "deepseek-chat"

	// Fixed generation parameters for every support-chat request.
	chatTemperature = 0.7
	chatMaxTokens   = 1000
)

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one entry in the support-chat transcript.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Completer issues one chat-completion exchange for the given transcript.
// The bearer credential is supplied per call because the user provides it
// through a non-persisted field.
type Completer interface {
	Complete(ctx context.Context, apiKey string, transcript []Turn) (Turn, error)
}

// OpenAICompatible calls an OpenAI-wire-compatible chat-completions
// endpoint. The default target is the DeepSeek API.
type OpenAICompatible struct {
	baseURL string
	model   string
}

// NewOpenAICompatible creates a completer for the given endpoint and
// model; empty arguments select the DeepSeek defaults.
func NewOpenAICompatible(baseURL, model string) *OpenAICompatible {
	if baseURL == "" {
		baseURL = defaultChatBaseURL
	}
	if model == "" {
		model = defaultChatModel
	}
	return &OpenAICompatible{baseURL: baseURL, model: model}
}

// Complete sends the entire transcript as ordered context and returns the
// first choice's message. There is deliberately no request timeout: a
// submission runs to completion or failure with no deadline.
func (p *OpenAICompatible) Complete(ctx context.Context, apiKey string, transcript []Turn) (Turn, error) {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = p.baseURL
	client := openai.NewClientWithConfig(cfg)

	messages := make([]openai.ChatCompletionMessage, 0, len(transcript))
	for _, turn := range transcript {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    string(turn.Role),
			Content: turn.Content,
		})
	}

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.model,
		Messages:    messages,
		Temperature: chatTemperature,
		MaxTokens:   chatMaxTokens,
	})
	if err != nil {
		return Turn{}, fmt.Errorf("chat completion request failed: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return Turn{}, fmt.Errorf("chat completion response had no usable choices")
	}

	msg := resp.Choices[0].Message
	role := Role(msg.Role)
	if role == "" {
		role = RoleAssistant
	}
	return Turn{Role: role, Content: msg.Content}, nil
}
