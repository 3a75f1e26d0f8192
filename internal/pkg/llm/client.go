package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Lolek-Productions/liturgy-faith-sub000/config"
	"github.com/Lolek-Productions/liturgy-faith-sub000/internal/utils"
	"k8s.io/klog/v2"
)

// ErrEmptyResponse 响应中没有可用的文本内容
var ErrEmptyResponse = errors.New("no response from LLM")

// StatusError 非 2xx 响应
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("LLM API returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("LLM API returned status %d: %s", e.StatusCode, e.Message)
}

// Client 单轮文本生成客户端
type Client interface {
	// Complete 以单条 user 消息发送 prompt，返回第一段生成文本
	Complete(ctx context.Context, prompt string) (string, error)
	// Model 返回固定使用的模型名
	Model() string
}

// NewClient 按配置的 provider 创建客户端
// 不设置 http.Client 超时，超时由调用方通过 context 控制
func NewClient(cfg *config.Config) (Client, error) {
	if cfg.LLM.Provider == "openai" {
		return newEinoOpenAIClient(cfg.LLM.APIKey, cfg.LLM.APIURL, cfg.LLM.Model, cfg.LLM.MaxTokens)
	}
	return &AnthropicClient{baseClient: baseClient{
		baseURL:   cfg.LLM.APIURL,
		apiKey:    cfg.LLM.APIKey,
		model:     cfg.LLM.Model,
		maxTokens: cfg.LLM.MaxTokens,
		http:      &http.Client{},
	}}, nil
}

type baseClient struct {
	baseURL   string
	apiKey    string
	model     string
	maxTokens int
	http      *http.Client
}

func (c *baseClient) Model() string {
	return c.model
}

// postJSON 发送 JSON 请求并把响应解码到 out
func (c *baseClient) postJSON(ctx context.Context, url string, headers map[string]string, reqBody, out interface{}) error {
	klog.V(6).Infof("发送 LLM 请求: url=%s, model=%s", url, c.model)

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode, Message: errorMessage(body)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}

// errorMessage 尽量从错误响应体中取出 message 字段
func errorMessage(body []byte) string {
	var payload struct {
		Error *APIError `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != nil {
		return payload.Error.Message
	}
	return utils.Truncate(string(body), 200)
}
