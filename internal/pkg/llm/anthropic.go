package llm

import (
	"context"
	"fmt"
)

const anthropicVersion = "2023-06-01"

// AnthropicClient 调用 Anthropic Messages API
type AnthropicClient struct {
	baseClient
}

// Complete 返回第一个 text 内容块，原样不做处理
func (c *AnthropicClient) Complete(ctx context.Context, prompt string) (string, error) {
	var resp MessagesResponse
	err := c.postJSON(ctx, c.baseURL+"/messages", map[string]string{
		"x-api-key":         c.apiKey,
		"anthropic-version": anthropicVersion,
	}, MessagesRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages:  []ChatMessage{{Role: "user", Content: prompt}},
	}, &resp)
	if err != nil {
		return "", err
	}

	if resp.Error != nil {
		return "", fmt.Errorf("API error: %s", resp.Error.Message)
	}
	if len(resp.Content) == 0 || resp.Content[0].Type != "text" {
		return "", ErrEmptyResponse
	}
	return resp.Content[0].Text, nil
}
