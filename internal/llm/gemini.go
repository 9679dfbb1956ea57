package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/genai"
)

// geminiClient implements LLMClient on the Gemini API.
type geminiClient struct {
	cfg      LLMConfig
	client   *genai.Client
	observer Observer
}

// NewGeminiClient creates an LLMClient backed by Google's Gemini API.
func NewGeminiClient(ctx context.Context, cfg LLMConfig, observer Observer) (LLMClient, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if observer == nil {
		observer = NoopObserver{}
	}
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.Endpoint != "" && cfg.Endpoint != DefaultConfig().Endpoint {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.Endpoint}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &geminiClient{cfg: cfg, client: client, observer: observer}, nil
}

func (c *geminiClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	start := time.Now()
	temp, maxTok := resolveTaskParams(c.cfg, req)
	timeout := time.Duration(c.cfg.TaskTimeout(req.Task)) * time.Millisecond

	t32 := float32(temp)
	gc := &genai.GenerateContentConfig{
		Temperature:     &t32,
		MaxOutputTokens: int32(maxTok),
	}
	if req.SystemPrompt != "" {
		gc.SystemInstruction = genai.NewContentFromText(req.SystemPrompt, genai.RoleUser)
	}

	var (
		text    string
		lastErr error
	)
	for i := 0; i <= c.cfg.MaxRetries; i++ {
		text, lastErr = c.attempt(ctx, timeout, req.UserPrompt, gc)
		if lastErr == nil || ctx.Err() != nil {
			break
		}
	}

	latency := time.Since(start).Milliseconds()
	if lastErr != nil {
		err := lastErr
		if errors.Is(err, context.DeadlineExceeded) {
			err = ErrTimeout
		} else {
			err = fmt.Errorf("%w: %w", ErrRetryExhausted, err)
		}
		c.observer.OnCallComplete(LLMCallEvent{
			Task:      req.Task,
			Model:     c.cfg.Model,
			LatencyMs: latency,
			ErrorCode: errorCode(err),
		})
		return nil, err
	}

	c.observer.OnCallComplete(LLMCallEvent{
		Task:      req.Task,
		Model:     c.cfg.Model,
		LatencyMs: latency,
		Success:   true,
	})
	return &GenerateResponse{Text: text, Model: c.cfg.Model, LatencyMs: latency}, nil
}

func (c *geminiClient) attempt(ctx context.Context, timeout time.Duration, prompt string, gc *genai.GenerateContentConfig) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := c.client.Models.GenerateContent(ctx, c.cfg.Model, genai.Text(prompt), gc)
	if err != nil {
		// the SDK does not always wrap the context error
		if cerr := ctx.Err(); cerr != nil && !errors.Is(err, cerr) {
			return "", fmt.Errorf("%w: %v", cerr, err)
		}
		return "", err
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("%w: empty candidate", ErrInvalidOutput)
	}
	return text, nil
}

func (c *geminiClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	_, err := c.client.Models.Get(ctx, c.cfg.Model, nil)
	return err == nil
}
