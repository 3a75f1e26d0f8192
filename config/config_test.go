package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestApplyEnvAnthropicDefaults(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test")
	t.Setenv("LLM_TIMEOUT", "15s")
	t.Setenv("DB_TYPE", "postgres")

	c := Default()
	applyEnv(c)

	assert.Equal(t, "anthropic", c.LLM.Provider)
	assert.Equal(t, "sk-ant-test", c.LLM.APIKey)
	assert.Equal(t, 15*time.Second, c.LLM.Timeout)
	assert.Equal(t, "postgres", c.Database.Type)
}

func TestApplyEnvOpenAIProvider(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "sk-openai")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-ignored")

	c := Default()
	applyEnv(c)

	assert.Equal(t, "openai", c.LLM.Provider)
	assert.Equal(t, "sk-openai", c.LLM.APIKey)
	assert.Equal(t, "https://api.openai.com/v1", c.LLM.APIURL)
}

func TestApplyEnvIgnoresBadValues(t *testing.T) {
	t.Setenv("LLM_TIMEOUT", "soon")
	t.Setenv("LLM_MAX_TOKENS", "-4")

	c := Default()
	applyEnv(c)

	assert.Equal(t, 60*time.Second, c.LLM.Timeout)
	assert.Equal(t, 1000, c.LLM.MaxTokens)
}
