// Package feedback produces interviewer feedback text from a language model.
//
// Callers build a Prompt with the prompts package and hand it to a Generator.
// Implementations:
//   - gemini.Client: Gemini models through the Google GenAI SDK
//   - echo.Generator: deterministic local output for development and tests
//   - resilient.Generator: breaker, tracing and metrics around another Generator
package feedback

//go:generate mockgen -source=generator.go -destination=mocks/mocks.go -package=mocks Generator

import (
	"context"
	"fmt"

	"leetcoach/internal/sentinel"
)

// Kind identifies which interview stage a prompt belongs to. Providers may
// route kinds to different models.
type Kind string

const (
	KindClarify            Kind = "clarify"
	KindBruteForce         Kind = "brute_force"
	KindOptimize           Kind = "optimize"
	KindReview             Kind = "review"
	KindSolution           Kind = "solution"
	KindFunctionDefinition Kind = "function_definition"
)

func (k Kind) String() string {
	return string(k)
}

// Prompt is a fully rendered model input.
type Prompt struct {
	Kind Kind
	Text string
}

// Generator turns a prompt into free text. Implementations must honour ctx
// cancellation and deadlines.
type Generator interface {
	Generate(ctx context.Context, prompt Prompt) (string, error)
}

// Typed failures. Both wrap the matching infrastructure sentinel so callers
// may test either.
var (
	ErrTimeout  = fmt.Errorf("feedback generator %w", sentinel.ErrTimeout)
	ErrUpstream = fmt.Errorf("feedback generator %w", sentinel.ErrUnavailable)
)
