package models

// IssueResponse is returned by POST /api/captcha. CaptchaImage is always empty;
// the challenge is text only.
type IssueResponse struct {
	CaptchaID    string `json:"captcha_id"`
	Question     string `json:"question"`
	CaptchaImage string `json:"captcha_image"`
}

type TestResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
