package auth

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body any) error
	GetResponseField(field string) (any, error)
	GetAccessToken() string
	SetAccessToken(token string)
	GetLastResponseStatus() int
	GetLastResponseBody() []byte
}

// RegisterSteps registers captcha and account step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &authSteps{tc: tc}

	// Captcha steps
	ctx.Step(`^I request a captcha$`, steps.requestCaptcha)
	ctx.Step(`^I submit the correct captcha answer$`, steps.submitCorrectAnswer)
	ctx.Step(`^I submit a wrong captcha answer$`, steps.submitWrongAnswer)

	// Account steps
	ctx.Step(`^I register as "([^"]*)" with password "([^"]*)"$`, steps.register)
	ctx.Step(`^I register as "([^"]*)" with password "([^"]*)" and a wrong captcha answer$`, steps.registerWrongCaptcha)
	ctx.Step(`^I log in as "([^"]*)" with password "([^"]*)"$`, steps.login)
	ctx.Step(`^I log in as "([^"]*)" with password "([^"]*)" and a wrong captcha answer$`, steps.loginWrongCaptcha)
	ctx.Step(`^I am logged in as "([^"]*)"$`, steps.loggedInAs)
}

type authSteps struct {
	tc TestContext

	captchaID string
	answer    string
}

func (s *authSteps) requestCaptcha(ctx context.Context) error {
	if err := s.tc.POST("/api/captcha", map[string]any{}); err != nil {
		return err
	}
	if status := s.tc.GetLastResponseStatus(); status != 200 {
		return fmt.Errorf("captcha request failed with %d: %s", status, s.tc.GetLastResponseBody())
	}

	id, err := s.tc.GetResponseField("captcha_id")
	if err != nil {
		return err
	}
	question, err := s.tc.GetResponseField("question")
	if err != nil {
		return err
	}
	answer, err := solve(fmt.Sprint(question))
	if err != nil {
		return err
	}
	s.captchaID = fmt.Sprint(id)
	s.answer = answer
	return nil
}

// solve answers "What is a + b?" and "What is a - b?".
func solve(question string) (string, error) {
	var a, b int
	var op rune
	if _, err := fmt.Sscanf(question, "What is %d %c %d?", &a, &op, &b); err != nil {
		return "", fmt.Errorf("unexpected captcha question %q: %w", question, err)
	}
	switch op {
	case '+':
		return strconv.Itoa(a + b), nil
	case '-':
		return strconv.Itoa(a - b), nil
	default:
		return "", fmt.Errorf("unexpected operator %q", op)
	}
}

func (s *authSteps) submitCorrectAnswer(ctx context.Context) error {
	return s.tc.POST("/api/captcha/test", map[string]string{
		"captcha_id":     s.captchaID,
		"captcha_answer": s.answer,
	})
}

func (s *authSteps) submitWrongAnswer(ctx context.Context) error {
	return s.tc.POST("/api/captcha/test", map[string]string{
		"captcha_id":     s.captchaID,
		"captcha_answer": s.answer + "1",
	})
}

func (s *authSteps) register(ctx context.Context, username, password string) error {
	if err := s.requestCaptcha(ctx); err != nil {
		return err
	}
	return s.postRegister(username, password, s.answer)
}

func (s *authSteps) registerWrongCaptcha(ctx context.Context, username, password string) error {
	if err := s.requestCaptcha(ctx); err != nil {
		return err
	}
	return s.postRegister(username, password, s.answer+"1")
}

func (s *authSteps) postRegister(username, password, answer string) error {
	return s.tc.POST("/api/register", map[string]string{
		"username":       username,
		"email":          username + "@example.com",
		"password":       password,
		"captcha_id":     s.captchaID,
		"captcha_answer": answer,
	})
}

func (s *authSteps) login(ctx context.Context, username, password string) error {
	if err := s.requestCaptcha(ctx); err != nil {
		return err
	}
	if err := s.postLogin(username, password, s.answer); err != nil {
		return err
	}
	if s.tc.GetLastResponseStatus() == 200 {
		token, err := s.tc.GetResponseField("access_token")
		if err != nil {
			return err
		}
		s.tc.SetAccessToken(fmt.Sprint(token))
	}
	return nil
}

func (s *authSteps) loginWrongCaptcha(ctx context.Context, username, password string) error {
	if err := s.requestCaptcha(ctx); err != nil {
		return err
	}
	return s.postLogin(username, password, s.answer+"1")
}

func (s *authSteps) postLogin(username, password, answer string) error {
	return s.tc.POST("/api/login", map[string]string{
		"username":       username,
		"password":       password,
		"captcha_id":     s.captchaID,
		"captcha_answer": answer,
	})
}

func (s *authSteps) loggedInAs(ctx context.Context, username string) error {
	const password = "Practice123"
	if err := s.register(ctx, username, password); err != nil {
		return err
	}
	if status := s.tc.GetLastResponseStatus(); status != 200 {
		return fmt.Errorf("register failed with %d: %s", status, s.tc.GetLastResponseBody())
	}
	if err := s.login(ctx, username, password); err != nil {
		return err
	}
	if s.tc.GetAccessToken() == "" {
		return fmt.Errorf("login failed with %d: %s", s.tc.GetLastResponseStatus(), s.tc.GetLastResponseBody())
	}
	return nil
}
