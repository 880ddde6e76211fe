// Package gemini calls Gemini models through the Google GenAI SDK.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"leetcoach/internal/feedback"
)

const (
	DefaultModel       = "gemini-2.5-pro"
	DefaultReviewModel = "gemini-2.0-flash"
)

// Config configures a Client. Zero values take the package defaults. An
// empty BaseURL uses the public Generative Language endpoint.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	ReviewModel string
	Timeout     time.Duration
	HTTPClient  *http.Client
}

// Client implements feedback.Generator. Review prompts go to ReviewModel,
// every other kind to Model.
type Client struct {
	models      *genai.Models
	model       string
	reviewModel string
	timeout     time.Duration
}

// New builds a Gemini API client. It fails when no API key is configured.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.ReviewModel == "" {
		cfg.ReviewModel = DefaultReviewModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  cfg.HTTPClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Client{
		models:      gc.Models,
		model:       cfg.Model,
		reviewModel: cfg.ReviewModel,
		timeout:     cfg.Timeout,
	}, nil
}

// ModelFor returns the model a prompt kind is routed to.
func (c *Client) ModelFor(kind feedback.Kind) string {
	if kind == feedback.KindReview {
		return c.reviewModel
	}
	return c.model
}

// Generate returns the text of the first candidate. Code-only kinds are
// trimmed of surrounding whitespace and markdown fences.
func (c *Client) Generate(ctx context.Context, prompt feedback.Prompt) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.models.GenerateContent(callCtx, c.ModelFor(prompt.Kind), genai.Text(prompt.Text), nil)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %w", feedback.ErrTimeout, err)
		}
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("%w: status %d: %s", feedback.ErrUpstream, apiErr.Code, apiErr.Message)
		}
		return "", fmt.Errorf("%w: %w", feedback.ErrUpstream, err)
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: prompt blocked: %s", feedback.ErrUpstream, resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates", feedback.ErrUpstream)
	}

	out := resp.Text()
	if strings.TrimSpace(out) == "" {
		return "", fmt.Errorf("%w: empty response", feedback.ErrUpstream)
	}

	switch prompt.Kind {
	case feedback.KindSolution, feedback.KindFunctionDefinition:
		return StripCodeFence(out), nil
	default:
		return out, nil
	}
}

// StripCodeFence trims whitespace and a single surrounding ``` fence,
// including its language tag.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") || len(s) < 6 {
		return s
	}
	s = strings.TrimSuffix(strings.TrimPrefix(s, "```"), "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 && !strings.ContainsAny(s[:nl], " \t{(;") {
		s = s[nl+1:]
	}
	return strings.TrimSpace(s)
}

var _ feedback.Generator = (*Client)(nil)
