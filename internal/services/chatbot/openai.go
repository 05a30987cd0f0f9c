package chatbot

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

const systemPrompt = "You are EliteZero, a friendly Discord bot that hosts mini-games. " +
	"Keep answers short and conversational."

// Responder produces an AI reply to a conversation
type Responder interface {
	Respond(ctx context.Context, history []Message) (string, error)
}

// OpenAIConfig holds the LLM settings
type OpenAIConfig struct {
	APIKey string
	// BaseURL overrides the API endpoint (compatible gateways, tests)
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float64
}

// DefaultOpenAIConfig returns default model settings
func DefaultOpenAIConfig() OpenAIConfig {
	return OpenAIConfig{
		Model:       openai.GPT4oMini,
		MaxTokens:   300,
		Temperature: 0.7,
	}
}

// OpenAIResponder answers through the chat completions API
type OpenAIResponder struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
}

var _ Responder = (*OpenAIResponder)(nil)

func NewOpenAIResponder(cfg OpenAIConfig) *OpenAIResponder {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultOpenAIConfig().Model
	}
	return &OpenAIResponder{
		client:      openai.NewClientWithConfig(config),
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: float32(cfg.Temperature),
	}
}

func (o *OpenAIResponder) Respond(ctx context.Context, history []Message) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: systemPrompt})
	for _, m := range history {
		role := openai.ChatMessageRoleUser
		if m.FromBot {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Messages:    messages,
		MaxTokens:   o.maxTokens,
		Temperature: o.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no response from OpenAI")
	}
	return resp.Choices[0].Message.Content, nil
}
