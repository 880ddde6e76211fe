package interview

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POSTWithHeaders(path string, body any, headers map[string]string) error
	GET(path string, headers map[string]string) error
	GetAccessToken() string
}

// RegisterSteps registers interview workflow step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &interviewSteps{tc: tc}

	ctx.Step(`^I start a session for question (\d+)$`, steps.startSession)
	ctx.Step(`^I clarify question (\d+) with "([^"]*)"$`, steps.clarify)
	ctx.Step(`^I clarify question (\d+) with "([^"]*)" without a token$`, steps.clarifyWithoutToken)
	ctx.Step(`^I submit the brute force idea "([^"]*)" with time complexity "([^"]*)" for question (\d+)$`, steps.bruteForce)
	ctx.Step(`^I submit the optimized idea "([^"]*)" with time complexity "([^"]*)" for question (\d+)$`, steps.optimize)
	ctx.Step(`^I submit "([^"]*)" code "([^"]*)" for review on question (\d+)$`, steps.review)
	ctx.Step(`^I request the "([^"]*)" function definition for question (\d+)$`, steps.functionDefinition)
	ctx.Step(`^I fetch my session for question (\d+)$`, steps.fetchSession)
}

type interviewSteps struct {
	tc TestContext
}

func (s *interviewSteps) authHeaders() map[string]string {
	if token := s.tc.GetAccessToken(); token != "" {
		return map[string]string{"Authorization": "Bearer " + token}
	}
	return nil
}

func (s *interviewSteps) startSession(ctx context.Context, questionID int) error {
	return s.tc.POSTWithHeaders("/api/start-session", map[string]any{"question_id": questionID}, nil)
}

func (s *interviewSteps) clarify(ctx context.Context, questionID int, input string) error {
	return s.tc.POSTWithHeaders("/api/clarify", map[string]any{
		"question_id": questionID,
		"user_input":  input,
	}, s.authHeaders())
}

func (s *interviewSteps) clarifyWithoutToken(ctx context.Context, questionID int, input string) error {
	return s.tc.POSTWithHeaders("/api/clarify", map[string]any{
		"question_id": questionID,
		"user_input":  input,
	}, nil)
}

func (s *interviewSteps) bruteForce(ctx context.Context, idea, timeComplexity string, questionID int) error {
	return s.tc.POSTWithHeaders("/api/brute-force", map[string]any{
		"question_id":     questionID,
		"user_idea":       idea,
		"time_complexity": timeComplexity,
	}, s.authHeaders())
}

func (s *interviewSteps) optimize(ctx context.Context, idea, timeComplexity string, questionID int) error {
	return s.tc.POSTWithHeaders("/api/optimize", map[string]any{
		"question_id":     questionID,
		"user_idea":       idea,
		"time_complexity": timeComplexity,
	}, s.authHeaders())
}

func (s *interviewSteps) review(ctx context.Context, language, code string, questionID int) error {
	return s.tc.POSTWithHeaders("/api/code-review", map[string]any{
		"question_id": questionID,
		"code":        code,
		"language":    language,
	}, s.authHeaders())
}

func (s *interviewSteps) functionDefinition(ctx context.Context, language string, questionID int) error {
	return s.tc.POSTWithHeaders("/api/function-definition", map[string]any{
		"question_id": questionID,
		"language":    language,
	}, nil)
}

func (s *interviewSteps) fetchSession(ctx context.Context, questionID int) error {
	return s.tc.GET(fmt.Sprintf("/api/sessions/%d", questionID), s.authHeaders())
}
