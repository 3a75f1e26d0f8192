package llm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"k8s.io/klog/v2"
)

// OpenAIClient 基于 Eino ChatModel 调用 OpenAI 兼容的 chat/completions 接口
type OpenAIClient struct {
	chatModel model.BaseChatModel
	modelName string
}

// NewOpenAIClient 使用已有的 ChatModel 创建客户端
func NewOpenAIClient(chatModel model.BaseChatModel, modelName string) *OpenAIClient {
	return &OpenAIClient{chatModel: chatModel, modelName: modelName}
}

func newEinoOpenAIClient(apiKey, baseURL, modelName string, maxTokens int) (*OpenAIClient, error) {
	klog.V(6).Infof("[LLM] 创建 OpenAI ChatModel: model=%s, baseURL=%s", modelName, baseURL)

	config := &openai.ChatModelConfig{
		APIKey: apiKey,
		Model:  modelName,
	}
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	if maxTokens > 0 {
		config.MaxTokens = &maxTokens
	}

	chatModel, err := openai.NewChatModel(context.Background(), config)
	if err != nil {
		return nil, fmt.Errorf("failed to create openai chat model: %w", err)
	}
	return NewOpenAIClient(chatModel, modelName), nil
}

func (c *OpenAIClient) Model() string {
	return c.modelName
}

// Complete 发送单条 user 消息，返回的内容不做处理
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.chatModel.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
	if err != nil {
		return "", err
	}
	if resp == nil || resp.Content == "" {
		return "", ErrEmptyResponse
	}
	return resp.Content, nil
}
