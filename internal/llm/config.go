package llm

import (
	"os"
	"strconv"
	"strings"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	TaskClassify  TaskType = "classify"
	TaskNormalize TaskType = "normalize"
	TaskQuestion  TaskType = "question"
	TaskInterpret TaskType = "interpret"
	TaskFollowUp  TaskType = "followup"
)

// Provider selects the text-completion backend.
type Provider string

const (
	ProviderOllama Provider = "ollama"
	ProviderGemini Provider = "gemini"
)

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
	TimeoutMs   int     `yaml:"timeout_ms"` // overrides global if > 0
}

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	Enabled    bool                    `yaml:"enabled"`
	LogCalls   bool                    `yaml:"log_calls"`
	Provider   Provider                `yaml:"provider"`
	Endpoint   string                  `yaml:"endpoint"`
	Model      string                  `yaml:"model"`
	APIKey     string                  `yaml:"api_key"`
	TimeoutMs  int                     `yaml:"timeout_ms"`
	MaxRetries int                     `yaml:"max_retries"`
	Tasks      map[TaskType]TaskConfig `yaml:"tasks"`
}

// DefaultConfig returns an LLMConfig pointing at a local Ollama instance.
// Every stage has a deterministic fallback, so the backend being down only
// degrades output.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Enabled:    true,
		LogCalls:   true,
		Provider:   ProviderOllama,
		Endpoint:   "http://localhost:11434",
		Model:      "llama3.2",
		TimeoutMs:  10000,
		MaxRetries: 1,
		Tasks: map[TaskType]TaskConfig{
			TaskClassify:  {Temperature: 0.0, MaxTokens: 16, TimeoutMs: 6000},
			TaskNormalize: {Temperature: 0.1, MaxTokens: 512, TimeoutMs: 10000},
			TaskQuestion:  {Temperature: 0.3, MaxTokens: 256, TimeoutMs: 8000},
			TaskInterpret: {Temperature: 0.1, MaxTokens: 512, TimeoutMs: 10000},
			TaskFollowUp:  {Temperature: 0.2, MaxTokens: 256, TimeoutMs: 8000},
		},
	}
}

// LoadConfig reads LLM configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()
	ApplyEnv(&cfg)
	return cfg
}

// ApplyEnv overlays COTADOR_LLM_* environment variables onto cfg.
func ApplyEnv(cfg *LLMConfig) {
	if v := os.Getenv("COTADOR_LLM_ENABLED"); v != "" {
		cfg.Enabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("COTADOR_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("COTADOR_LLM_PROVIDER"); v != "" {
		cfg.Provider = Provider(strings.ToLower(v))
	}
	if v := os.Getenv("COTADOR_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("COTADOR_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("COTADOR_LLM_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("COTADOR_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("COTADOR_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}

	applyTaskTimeoutEnv(cfg, TaskClassify, "COTADOR_LLM_CLASSIFY_TIMEOUT_MS")
	applyTaskTimeoutEnv(cfg, TaskNormalize, "COTADOR_LLM_NORMALIZE_TIMEOUT_MS")
	applyTaskTimeoutEnv(cfg, TaskQuestion, "COTADOR_LLM_QUESTION_TIMEOUT_MS")
	applyTaskTimeoutEnv(cfg, TaskInterpret, "COTADOR_LLM_INTERPRET_TIMEOUT_MS")
	applyTaskTimeoutEnv(cfg, TaskFollowUp, "COTADOR_LLM_FOLLOWUP_TIMEOUT_MS")
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func applyTaskTimeoutEnv(cfg *LLMConfig, task TaskType, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	if cfg.Tasks == nil {
		cfg.Tasks = map[TaskType]TaskConfig{}
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
