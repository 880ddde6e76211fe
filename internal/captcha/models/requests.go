package models

import "strings"

// TestRequest is the body of POST /api/captcha/test. Answer is a pointer so
// that an explicit empty answer is distinguishable from a missing one.
type TestRequest struct {
	CaptchaID     string  `json:"captcha_id"`
	CaptchaAnswer *string `json:"captcha_answer"`
}

func (r *TestRequest) Sanitize() {
	r.CaptchaID = strings.TrimSpace(r.CaptchaID)
}

// IsComplete reports whether both fields were supplied.
func (r *TestRequest) IsComplete() bool {
	return r.CaptchaID != "" && r.CaptchaAnswer != nil
}
