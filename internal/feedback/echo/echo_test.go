package echo_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leetcoach/internal/feedback"
	"leetcoach/internal/feedback/echo"
)

func TestGenerate_IsDeterministic(t *testing.T) {
	g := echo.New()
	p := feedback.Prompt{Kind: feedback.KindClarify, Text: "Problem: Two Sum\nDescription: ..."}

	first, err := g.Generate(context.Background(), p)
	require.NoError(t, err)
	second, err := g.Generate(context.Background(), p)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "[clarify] Problem: Two Sum", first)
}

func TestGenerate_ReviewIsValidJSON(t *testing.T) {
	out, err := echo.New().Generate(context.Background(), feedback.Prompt{Kind: feedback.KindReview, Text: "Review go code"})
	require.NoError(t, err)

	var review struct {
		Clarification struct {
			Grade int `json:"grade"`
		} `json:"clarification"`
		Coding struct {
			LineByLine []any `json:"line_by_line"`
		} `json:"coding"`
		Total       int    `json:"total"`
		KeyPointers string `json:"key_pointers"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &review))
	assert.GreaterOrEqual(t, review.Clarification.Grade, 5)
	assert.LessOrEqual(t, review.Clarification.Grade, 10)
	assert.Equal(t, review.Clarification.Grade*3, review.Total)
	assert.NotNil(t, review.Coding.LineByLine)
	assert.NotEmpty(t, review.KeyPointers)
}

func TestGenerate_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := echo.New().Generate(ctx, feedback.Prompt{Kind: feedback.KindSolution, Text: "x"})
	assert.ErrorIs(t, err, feedback.ErrTimeout)
}
