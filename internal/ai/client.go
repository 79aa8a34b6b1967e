// Package ai wraps the external DeepSeek capability behind typed gateways.
// Gateway calls are best-effort: any transport failure, timeout, or malformed
// model output resolves to a fixed safe default instead of an error, so the
// intake pipeline always proceeds.
package ai

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

type Client struct {
	api     openai.Client
	model   string
	timeout time.Duration
}

func NewClient(baseURL, apiKey, model string, timeout time.Duration) *Client {
	opts := []option.RequestOption{
		option.WithAPIKey(strings.TrimSpace(apiKey)),
	}
	if trimmed := strings.TrimRight(baseURL, "/"); trimmed != "" {
		opts = append(opts, option.WithBaseURL(trimmed))
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	opts = append(opts, option.WithRequestTimeout(timeout))

	return &Client{
		api:     openai.NewClient(opts...),
		model:   strings.TrimSpace(model),
		timeout: timeout,
	}
}

// complete runs one chat completion and returns the raw assistant content.
func (c *Client) complete(ctx context.Context, params openai.ChatCompletionNewParams) (string, error) {
	if c.model == "" {
		return "", errors.New("deepseek: model is required")
	}
	params.Model = shared.ChatModel(c.model)

	cctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.Chat.Completions.New(cctx, params)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("deepseek: empty response")
	}
	return resp.Choices[0].Message.Content, nil
}
