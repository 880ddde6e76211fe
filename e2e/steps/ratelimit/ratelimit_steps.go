package ratelimit

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body any) error
	GetLastResponseStatus() int
	GetLastResponseBody() []byte
	SecurityEventCount(action string) (int, bool)
}

// RegisterSteps registers abuse gateway step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &ratelimitSteps{tc: tc}

	ctx.Step(`^I send (\d+) requests to "([^"]*)"$`, steps.sendNRequests)
	ctx.Step(`^the first (\d+) responses should have status (\d+)$`, steps.firstNResponsesShouldHaveStatus)
	ctx.Step(`^the security event "([^"]*)" should have been recorded$`, steps.securityEventRecorded)
}

type ratelimitSteps struct {
	tc             TestContext
	requestResults []int
}

func (s *ratelimitSteps) sendNRequests(ctx context.Context, count int, path string) error {
	s.requestResults = make([]int, 0, count)
	for range count {
		if err := s.tc.POST(path, map[string]any{}); err != nil {
			return err
		}
		s.requestResults = append(s.requestResults, s.tc.GetLastResponseStatus())
	}
	return nil
}

func (s *ratelimitSteps) firstNResponsesShouldHaveStatus(ctx context.Context, count, expectedStatus int) error {
	if len(s.requestResults) < count {
		return fmt.Errorf("only %d requests were made", len(s.requestResults))
	}
	for i, status := range s.requestResults[:count] {
		if status != expectedStatus {
			return fmt.Errorf("request %d: expected status %d but got %d", i+1, expectedStatus, status)
		}
	}
	return nil
}

// securityEventRecorded passes trivially against an external server.
func (s *ratelimitSteps) securityEventRecorded(ctx context.Context, action string) error {
	n, ok := s.tc.SecurityEventCount(action)
	if !ok {
		return nil
	}
	if n == 0 {
		return fmt.Errorf("no %q security event recorded", action)
	}
	return nil
}
