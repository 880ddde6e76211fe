package e2e

import (
	"github.com/cucumber/godog"

	"leetcoach/e2e/steps/auth"
	"leetcoach/e2e/steps/common"
	"leetcoach/e2e/steps/interview"
	"leetcoach/e2e/steps/ratelimit"
)

// scenarioContext is registered with godog once; Before swaps in a fresh
// TestContext for every scenario.
type scenarioContext struct {
	*TestContext
}

// RegisterSteps registers all step definitions
func RegisterSteps(sc *godog.ScenarioContext, tc *scenarioContext) {
	common.RegisterSteps(sc, tc)
	auth.RegisterSteps(sc, tc)
	ratelimit.RegisterSteps(sc, tc)
	interview.RegisterSteps(sc, tc)
}
