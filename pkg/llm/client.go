package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// Generator sends a single prompt to an LLM and returns its text reply.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Config describes an OpenAI-compatible chat completion endpoint.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// ChatClient adapts an eino chat model to the Generator interface.
type ChatClient struct {
	model     model.BaseChatModel
	modelName string
	timeout   time.Duration
}

// NewChatClient builds a ChatClient backed by eino's OpenAI-compatible chat model.
func NewChatClient(ctx context.Context, cfg Config) (*ChatClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("llm api key is empty")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, fmt.Errorf("llm model is empty")
	}

	cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		Timeout: cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("init chat model: %w", err)
	}
	return NewChatClientFromModel(cm, cfg.Model, cfg.Timeout), nil
}

// NewChatClientFromModel wraps an existing chat model.
func NewChatClientFromModel(cm model.BaseChatModel, modelName string, timeout time.Duration) *ChatClient {
	return &ChatClient{model: cm, modelName: modelName, timeout: timeout}
}

// ModelName returns the configured model identifier.
func (c *ChatClient) ModelName() string { return c.modelName }

// Generate sends prompt as a single user message.
func (c *ChatClient) Generate(ctx context.Context, prompt string) (string, error) {
	if c == nil || c.model == nil {
		return "", fmt.Errorf("chat client is not initialized")
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.model.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
	if err != nil {
		return "", fmt.Errorf("%s generate: %w", c.modelName, err)
	}
	if resp == nil {
		return "", fmt.Errorf("no response from %s", c.modelName)
	}
	return resp.Content, nil
}
