package models

type RateLimitExceededResponse struct {
	Error      string `json:"error"` // "rate_limit_exceeded" or "lockout_active"
	Message    string `json:"message"`
	RetryAfter int    `json:"retry_after"` // seconds
}

type ServiceOverloadedResponse struct {
	Error      string `json:"error"`   // "service_unavailable"
	Message    string `json:"message"` // "Service is temporarily overloaded..."
	RetryAfter int    `json:"retry_after"`
}
