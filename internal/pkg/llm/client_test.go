package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Lolek-Productions/liturgy-faith-sub000/config"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

func testConfig(provider, url string) *config.Config {
	return &config.Config{
		LLM: config.LLMConfig{
			Provider:  provider,
			APIURL:    url,
			APIKey:    "test-key",
			Model:     "test-model",
			MaxTokens: 1000,
		},
	}
}

func mustClient(t *testing.T, cfg *config.Config) Client {
	t.Helper()
	client, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("NewClient() unexpected error: %v", err)
	}
	return client
}

func TestNewClientProvider(t *testing.T) {
	if _, ok := mustClient(t, testConfig("openai", "https://api.example.com")).(*OpenAIClient); !ok {
		t.Error("expected OpenAIClient for provider openai")
	}
	if _, ok := mustClient(t, testConfig("", "https://api.example.com")).(*AnthropicClient); !ok {
		t.Error("expected AnthropicClient as default provider")
	}
	for _, provider := range []string{"anthropic", "openai"} {
		client := mustClient(t, testConfig(provider, "https://api.example.com"))
		if client.Model() != "test-model" {
			t.Errorf("%s: expected Model test-model, got %s", provider, client.Model())
		}
	}
}

func TestAnthropicClientComplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST method, got %s", r.Method)
		}
		if r.URL.Path != "/messages" {
			t.Errorf("expected path /messages, got %s", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("expected x-api-key header, got %q", r.Header.Get("x-api-key"))
		}
		if r.Header.Get("anthropic-version") == "" {
			t.Error("expected anthropic-version header")
		}

		var req MessagesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Model != "test-model" || req.MaxTokens != 1000 {
			t.Errorf("unexpected request: %+v", req)
		}
		if len(req.Messages) != 1 || req.Messages[0].Role != "user" || req.Messages[0].Content != "pray" {
			t.Errorf("expected one user message, got %+v", req.Messages)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"msg_1","type":"message","role":"assistant","content":[{"type":"text","text":"  For the Church, let us pray to the Lord.\n"},{"type":"text","text":"ignored"}]}`))
	}))
	defer server.Close()

	client := mustClient(t, testConfig("anthropic", server.URL))
	text, err := client.Complete(context.Background(), "pray")
	if err != nil {
		t.Fatalf("Complete() unexpected error: %v", err)
	}
	if text != "  For the Church, let us pray to the Lord.\n" {
		t.Errorf("expected first content block verbatim, got %q", text)
	}
}

func TestOpenAIClientComplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("expected path /chat/completions, got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("unexpected Authorization header %q", r.Header.Get("Authorization"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"test-id","choices":[{"index":0,"message":{"role":"assistant","content":"This is a test response"},"finish_reason":"stop"}]}`))
	}))
	defer server.Close()

	client := mustClient(t, testConfig("openai", server.URL))
	text, err := client.Complete(context.Background(), "Hello")
	if err != nil {
		t.Fatalf("Complete() unexpected error: %v", err)
	}
	if text != "This is a test response" {
		t.Errorf("expected response 'This is a test response', got %s", text)
	}
}

func TestClientNon2xxStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"type":"error","error":{"type":"rate_limit_error","message":"slow down"}}`))
	}))
	defer server.Close()

	_, err := mustClient(t, testConfig("anthropic", server.URL)).Complete(context.Background(), "pray")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("expected status 429, got %d", statusErr.StatusCode)
	}
	if statusErr.Message != "slow down" {
		t.Errorf("expected message 'slow down', got %q", statusErr.Message)
	}
}

func TestClientMalformedAndEmptyResponses(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		body     string
		wantErr  error
	}{
		{"anthropic malformed", "anthropic", `{not json`, nil},
		{"anthropic empty content", "anthropic", `{"content":[]}`, ErrEmptyResponse},
		{"anthropic non-text block", "anthropic", `{"content":[{"type":"tool_use"}]}`, ErrEmptyResponse},
		{"openai no choices", "openai", `{"choices":[]}`, nil},
		{"openai empty content", "openai", `{"choices":[{"index":0,"message":{"role":"assistant","content":""},"finish_reason":"stop"}]}`, ErrEmptyResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := mustClient(t, testConfig(tt.provider, server.URL)).Complete(context.Background(), "pray")
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestClientContextDeadline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := mustClient(t, testConfig("anthropic", server.URL)).Complete(ctx, "pray")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestOpenAIClientNon2xxStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":{"message":"overloaded","type":"server_error"}}`))
	}))
	defer server.Close()

	if _, err := mustClient(t, testConfig("openai", server.URL)).Complete(context.Background(), "pray"); err == nil {
		t.Fatal("expected error for non-2xx status")
	}
}

type fakeChatModel struct {
	input []*schema.Message
	resp  *schema.Message
	err   error
}

func (f *fakeChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	f.input = input
	return f.resp, f.err
}

func (f *fakeChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("not supported")
}

func TestOpenAIClientSendsSingleUserMessage(t *testing.T) {
	fake := &fakeChatModel{resp: schema.AssistantMessage("  For the parish, let us pray to the Lord.\n", nil)}
	client := NewOpenAIClient(fake, "gpt-test")

	text, err := client.Complete(context.Background(), "pray for the parish")
	if err != nil {
		t.Fatalf("Complete() unexpected error: %v", err)
	}
	if text != "  For the parish, let us pray to the Lord.\n" {
		t.Errorf("expected content verbatim, got %q", text)
	}
	if len(fake.input) != 1 || fake.input[0].Role != schema.User || fake.input[0].Content != "pray for the parish" {
		t.Errorf("expected one user message, got %+v", fake.input)
	}
	if client.Model() != "gpt-test" {
		t.Errorf("expected model gpt-test, got %s", client.Model())
	}
}

func TestOpenAIClientPropagatesModelError(t *testing.T) {
	upstream := errors.New("connection reset")
	client := NewOpenAIClient(&fakeChatModel{err: upstream}, "gpt-test")

	if _, err := client.Complete(context.Background(), "pray"); !errors.Is(err, upstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}
