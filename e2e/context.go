package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"leetcoach/internal/app"
	"leetcoach/internal/feedback/echo"
	"leetcoach/internal/platform/config"
	"leetcoach/pkg/platform/audit/sinks"
)

// TestContext holds state between test steps
type TestContext struct {
	BaseURL          string
	HTTPClient       *http.Client
	LastResponse     *http.Response
	LastResponseBody []byte
	AccessToken      string

	// Set only for the in-process server.
	server *httptest.Server
	app    *app.App
	events *sinks.Memory
}

// NewTestContext targets E2E_BASE_URL when set, otherwise a fresh in-process
// server with memory stores and the echo feedback provider.
func NewTestContext() (*TestContext, error) {
	tc := &TestContext{
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}

	if baseURL := os.Getenv("E2E_BASE_URL"); baseURL != "" {
		tc.BaseURL = strings.TrimRight(baseURL, "/")
		return tc, nil
	}

	cfg, err := config.FromLookup(func(key string) (string, bool) {
		if key == "FEEDBACK_PROVIDER" {
			return config.ProviderEcho, true
		}
		return "", false
	})
	if err != nil {
		return nil, err
	}

	tc.events = sinks.NewMemory()
	tc.app, err = app.New(context.Background(), cfg, slog.New(slog.DiscardHandler),
		app.WithRegisterer(prometheus.NewRegistry()),
		app.WithGenerator(echo.New()),
		app.WithAuditSink(tc.events),
	)
	if err != nil {
		return nil, err
	}
	tc.server = httptest.NewServer(tc.app.Handler())
	tc.BaseURL = tc.server.URL
	return tc, nil
}

// Close stops the in-process server, if any.
func (tc *TestContext) Close() {
	if tc.server != nil {
		tc.server.Close()
	}
	if tc.app != nil {
		_ = tc.app.Close()
	}
}

// POST makes a POST request and stores the response
func (tc *TestContext) POST(path string, body any) error {
	return tc.POSTWithHeaders(path, body, nil)
}

// POSTWithHeaders makes a POST request with optional headers
func (tc *TestContext) POSTWithHeaders(path string, body any, headers map[string]string) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, tc.BaseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return tc.do(req)
}

// GET makes a GET request and stores the response
func (tc *TestContext) GET(path string, headers map[string]string) error {
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, tc.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}
	return tc.do(req)
}

func (tc *TestContext) do(req *http.Request) error {
	resp, err := tc.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}

	tc.LastResponse = resp
	tc.LastResponseBody, err = io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	return nil
}

// GetResponseField extracts a field from the JSON response
func (tc *TestContext) GetResponseField(field string) (any, error) {
	var data map[string]any
	if err := json.Unmarshal(tc.LastResponseBody, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	value, ok := data[field]
	if !ok {
		return nil, fmt.Errorf("field %s not found in response", field)
	}

	return value, nil
}

// ResponseContains checks if the response body contains a field or text
func (tc *TestContext) ResponseContains(text string) bool {
	if strings.Contains(string(tc.LastResponseBody), text) {
		return true
	}

	var data map[string]any
	if err := json.Unmarshal(tc.LastResponseBody, &data); err == nil {
		if _, ok := data[text]; ok {
			return true
		}
	}

	return false
}

// Getter methods for step package interfaces

func (tc *TestContext) GetAccessToken() string {
	return tc.AccessToken
}

func (tc *TestContext) SetAccessToken(token string) {
	tc.AccessToken = token
}

func (tc *TestContext) GetLastResponseStatus() int {
	if tc.LastResponse == nil {
		return 0
	}
	return tc.LastResponse.StatusCode
}

func (tc *TestContext) GetLastResponseHeader(name string) string {
	if tc.LastResponse == nil {
		return ""
	}
	return tc.LastResponse.Header.Get(name)
}

func (tc *TestContext) GetLastResponseBody() []byte {
	return tc.LastResponseBody
}

// SecurityEventCount counts recorded security events by action. ok is false
// against an external server, whose events are not observable.
func (tc *TestContext) SecurityEventCount(action string) (int, bool) {
	if tc.events == nil {
		return 0, false
	}
	n := 0
	for _, ev := range tc.events.Events() {
		if string(ev.Action) == action {
			n++
		}
	}
	return n, true
}
