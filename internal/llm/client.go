package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

// GenerateRequest holds the parameters for an LLM generation call.
type GenerateRequest struct {
	Task         TaskType
	SystemPrompt string
	UserPrompt   string
	Temperature  *float64 // nil uses task default
	MaxTokens    *int     // nil uses task default
}

// GenerateResponse holds the result of an LLM generation call.
type GenerateResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// LLMClient is the opaque text-completion backend: a system instruction and
// a user payload in, text out.
type LLMClient interface {
	// Generate sends a prompt and returns the raw text response.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// Available checks whether the backend is reachable.
	Available(ctx context.Context) bool
}

// NewClient builds the client selected by cfg.Provider. A disabled config
// yields a client whose every call fails with ErrDisabled.
func NewClient(ctx context.Context, cfg LLMConfig, observer Observer) (LLMClient, error) {
	if !cfg.Enabled {
		return DisabledClient{}, nil
	}
	switch cfg.Provider {
	case ProviderOllama, "":
		return NewOllamaClient(cfg, observer), nil
	case ProviderGemini:
		return NewGeminiClient(ctx, cfg, observer)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

// Ask runs one completion and returns the trimmed text.
func Ask(ctx context.Context, client LLMClient, task TaskType, system, user string) (string, error) {
	resp, err := client.Generate(ctx, GenerateRequest{
		Task:         task,
		SystemPrompt: system,
		UserPrompt:   user,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Text), nil
}

// DisabledClient is used when llm.enabled is false.
type DisabledClient struct{}

func (DisabledClient) Generate(context.Context, GenerateRequest) (*GenerateResponse, error) {
	return nil, ErrDisabled
}

func (DisabledClient) Available(context.Context) bool { return false }

func resolveTaskParams(cfg LLMConfig, req GenerateRequest) (float64, int) {
	taskCfg := cfg.Tasks[req.Task]
	temp := taskCfg.Temperature
	if req.Temperature != nil {
		temp = *req.Temperature
	}
	maxTok := taskCfg.MaxTokens
	if req.MaxTokens != nil {
		maxTok = *req.MaxTokens
	}
	return temp, maxTok
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return "TIMEOUT"
	case errors.Is(err, ErrOllamaUnavailable), isConnectionError(err):
		return "UNAVAILABLE"
	case errors.Is(err, ErrInvalidOutput):
		return "INVALID_OUTPUT"
	default:
		return "UNKNOWN"
	}
}
