// Package llm talks to an OpenAI-compatible chat completion API.
package llm

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// Message roles.
const (
	RoleSystem = openai.ChatMessageRoleSystem
	RoleUser   = openai.ChatMessageRoleUser
)

// Message is one role-tagged entry of a completion request.
type Message struct {
	Role    string
	Content string
}

// Client wraps the OpenAI chat completion endpoint.
type Client struct {
	api *openai.Client
}

// New creates a Client. An empty baseURL keeps the library default.
func New(apiKey, baseURL string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Client{api: openai.NewClientWithConfig(cfg)}
}

// Complete sends the messages to the given model and returns the text of
// every returned choice, in order.
func (c *Client) Complete(ctx context.Context, model string, messages []Message) ([]string, error) {
	req := openai.ChatCompletionRequest{
		Model:    model,
		Messages: make([]openai.ChatCompletionMessage, 0, len(messages)),
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create chat completion: %w", err)
	}

	out := make([]string, 0, len(resp.Choices))
	for _, ch := range resp.Choices {
		out = append(out, ch.Message.Content)
	}
	return out, nil
}
