package ai

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"

	openai "github.com/sashabaranov/go-openai"

	"github.com/mattedesign/traction-pay-pilot-sub003/internal/chat"
)

// Client adapts the OpenAI chat completion API to the chat.Completer
// contract and normalizes its failures into chat.CompletionError categories.
type Client struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
}

func New(apiKey, model string, spec *chat.PromptSpec) *Client {
	c := &Client{
		client:      openai.NewClient(apiKey),
		model:       model,
		temperature: 0.3,
		maxTokens:   500,
	}
	if spec != nil {
		c.temperature = spec.Style.Temperature
		c.maxTokens = spec.Style.MaxTokens
	}
	return c
}

// Complete sends the system prompt plus the prior turns and returns the
// model's reply. Timeouts are the caller's responsibility via ctx.
func (c *Client) Complete(ctx context.Context, history []chat.Message, systemPrompt string) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	if systemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemPrompt,
		})
	}
	for _, m := range history {
		role := openai.ChatMessageRoleUser
		if m.Role == chat.RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
		Messages:    messages,
	})
	if err != nil {
		return "", categorize(err)
	}
	if len(resp.Choices) == 0 {
		return "", &chat.CompletionError{
			Category: chat.ErrorUnknown,
			Err:      fmt.Errorf("completion returned no choices"),
		}
	}
	return resp.Choices[0].Message.Content, nil
}

// categorize wraps a raw client error into a typed CompletionError so the
// chat error handler doesn't have to guess from message text.
func categorize(err error) error {
	status := 0
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}

	cat := chat.ErrorUnknown
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		cat = chat.ErrorUnauthorized
	case status == http.StatusTooManyRequests:
		cat = chat.ErrorRateLimited
	case status == 0 && isNetworkError(err):
		cat = chat.ErrorNetwork
	}
	return &chat.CompletionError{Category: cat, Status: status, Err: err}
}

func isNetworkError(err error) bool {
	var ne net.Error
	if errors.As(err, &ne) {
		return true
	}
	var ue *url.Error
	if errors.As(err, &ue) {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
