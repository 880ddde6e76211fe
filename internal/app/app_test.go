package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"

	"leetcoach/internal/feedback/echo"
	"leetcoach/internal/platform/config"
	"leetcoach/pkg/platform/audit"
	"leetcoach/pkg/platform/audit/sinks"
)

type AppSuite struct {
	suite.Suite
	databaseURL string
	app         *App
	sink        *sinks.Memory
	now         time.Time
}

func TestAppInMemory(t *testing.T) {
	suite.Run(t, new(AppSuite))
}

func TestAppSQLite(t *testing.T) {
	suite.Run(t, &AppSuite{databaseURL: "sqlite://" + filepath.Join(t.TempDir(), "leetcoach.db")})
}

func (s *AppSuite) SetupTest() {
	cfg, err := config.FromLookup(func(key string) (string, bool) {
		switch key {
		case "FEEDBACK_PROVIDER":
			return config.ProviderEcho, true
		case "DATABASE_URL":
			return s.databaseURL, s.databaseURL != ""
		}
		return "", false
	})
	s.Require().NoError(err)

	s.now = time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)
	s.sink = sinks.NewMemory()
	s.app, err = New(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)),
		WithRegisterer(prometheus.NewRegistry()),
		WithGenerator(echo.New()),
		WithAuditSink(s.sink),
		WithClock(func() time.Time { return s.now }),
	)
	s.Require().NoError(err)
}

func (s *AppSuite) TearDownTest() {
	s.NoError(s.app.Close())
}

func (s *AppSuite) call(method, path string, body any, token string) (*httptest.ResponseRecorder, map[string]any) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	s.app.Handler().ServeHTTP(rr, req)

	var out map[string]any
	_ = json.Unmarshal(rr.Body.Bytes(), &out)
	return rr, out
}

// solveCaptcha issues a challenge and answers it from the question text.
func (s *AppSuite) solveCaptcha() (string, string) {
	rr, body := s.call(http.MethodPost, "/api/captcha", nil, "")
	s.Require().Equal(http.StatusOK, rr.Code)

	var a, b int
	var op rune
	_, err := fmt.Sscanf(body["question"].(string), "What is %d %c %d?", &a, &op, &b)
	s.Require().NoError(err)
	answer := a + b
	if op == '-' {
		answer = a - b
	}
	return body["captcha_id"].(string), strconv.Itoa(answer)
}

func (s *AppSuite) register(username, password string) {
	id, answer := s.solveCaptcha()
	rr, body := s.call(http.MethodPost, "/api/register", map[string]string{
		"username":       username,
		"email":          username + "@example.com",
		"password":       password,
		"captcha_id":     id,
		"captcha_answer": answer,
	}, "")
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())
	s.Equal("User registered successfully", body["msg"])
}

func (s *AppSuite) login(username, password string) string {
	id, answer := s.solveCaptcha()
	rr, body := s.call(http.MethodPost, "/api/login", map[string]string{
		"username":       username,
		"password":       password,
		"captcha_id":     id,
		"captcha_answer": answer,
	}, "")
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())
	s.Equal("bearer", body["token_type"])
	return body["access_token"].(string)
}

func (s *AppSuite) TestInterviewFlow() {
	s.register("alice", "Secret123")
	token := s.login("alice", "Secret123")

	rr, body := s.call(http.MethodPost, "/api/clarify", map[string]any{
		"question_id": 1,
		"user_input":  "Can the input be empty?",
	}, token)
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())
	s.Equal("ClarificationAgent", body["agent"])
	s.NotEmpty(body["response"])
	s.NotEmpty(rr.Header().Get("X-RateLimit-Remaining"))

	rr, body = s.call(http.MethodPost, "/api/brute-force", map[string]any{
		"question_id":     1,
		"user_idea":       "Check every pair",
		"time_complexity": "O(n^2)",
	}, token)
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())
	s.Equal("BruteForceAgent", body["agent"])

	rr, body = s.call(http.MethodPost, "/api/code-review", map[string]any{
		"question_id": 1,
		"code":        "def two_sum(nums, target):\n    return []",
		"language":    "python",
	}, token)
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())
	s.Equal("CodeReviewAgent", body["agent"])
	s.NotEmpty(body["actual_solution"])
	s.Contains(body["review"], "total")

	rr, body = s.call(http.MethodGet, "/api/sessions/1", nil, token)
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())
	s.Equal("Can the input be empty?", body["clarification"])
	s.Equal("Check every pair", body["brute_force"])
	s.Equal("reviewed", body["state"])

	s.Eventually(func() bool {
		return len(s.sink.ByAction(audit.ActionUserRegistered)) == 1 &&
			len(s.sink.ByAction(audit.ActionLoginSucceeded)) == 1
	}, time.Second, 10*time.Millisecond)
}

func (s *AppSuite) TestInterviewRequiresToken() {
	rr, _ := s.call(http.MethodPost, "/api/clarify", map[string]any{
		"question_id": 1,
		"user_input":  "hello",
	}, "")
	s.Equal(http.StatusUnauthorized, rr.Code)
}

func (s *AppSuite) TestTokenExpiryFollowsClock() {
	s.register("bob", "Secret123")
	token := s.login("bob", "Secret123")
	clarify := map[string]any{"question_id": 1, "user_input": "Is the array sorted?"}

	s.now = s.now.Add(59 * time.Minute)
	rr, _ := s.call(http.MethodPost, "/api/clarify", clarify, token)
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())

	s.now = s.now.Add(time.Minute + time.Second)
	rr, _ = s.call(http.MethodPost, "/api/clarify", clarify, token)
	s.Equal(http.StatusUnauthorized, rr.Code, "token outlived its 60 minute TTL")
}

func (s *AppSuite) TestFailedLoginLocksClientOut() {
	rr, _ := s.call(http.MethodPost, "/api/login", map[string]string{
		"username":       "mallory",
		"password":       "Whatever1",
		"captcha_id":     "does-not-exist",
		"captcha_answer": "3",
	}, "")
	s.Require().Equal(http.StatusBadRequest, rr.Code)

	rr, body := s.call(http.MethodPost, "/api/login", map[string]string{
		"username": "mallory",
		"password": "Whatever1",
	}, "")
	s.Equal(http.StatusTooManyRequests, rr.Code)
	s.Equal("lockout_active", body["error"])
	s.Equal("30", rr.Header().Get("Retry-After"))

	// Lockout only applies to credential endpoints.
	rr, _ = s.call(http.MethodGet, "/api/questions", nil, "")
	s.Equal(http.StatusOK, rr.Code)

	// The failure ages out of the 15 minute window.
	s.now = s.now.Add(15*time.Minute + time.Second)
	id, answer := s.solveCaptcha()
	rr, _ = s.call(http.MethodPost, "/api/login", map[string]string{
		"username":       "mallory",
		"password":       "Whatever1",
		"captcha_id":     id,
		"captcha_answer": answer,
	}, "")
	s.Equal(http.StatusUnauthorized, rr.Code, "failure window elapsed, credentials now checked")
}

func (s *AppSuite) TestHealthAndFunctionDefinitionArePublic() {
	rr, body := s.call(http.MethodGet, "/health/ready", nil, "")
	s.Equal(http.StatusOK, rr.Code)
	s.Equal("ready", body["status"])

	rr, body = s.call(http.MethodGet, "/health", nil, "")
	s.Require().Equal(http.StatusOK, rr.Code)
	backends, ok := body["backends"].(map[string]any)
	s.Require().True(ok, rr.Body.String())
	wantDurable := "memory"
	if s.databaseURL != "" {
		wantDurable = "sqlite"
	}
	s.Equal(wantDurable, backends["users"])
	s.Equal("memory", backends["buckets"])
	s.Equal(config.ProviderEcho, backends["feedback"])

	rr, body = s.call(http.MethodPost, "/api/function-definition", map[string]any{
		"question_id": 0,
		"language":    "go",
	}, "")
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())
	s.NotEmpty(body["function_definition"])
}
