package models

import (
	"strings"

	"leetcoach/pkg/validation"
)

// CaptchaProof is the challenge answer every credential request carries.
type CaptchaProof struct {
	CaptchaID     string `json:"captcha_id"`
	CaptchaAnswer string `json:"captcha_answer"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,max=255,looseemail"`
	Password string `json:"password" validate:"required,max=72,strongpassword"`
	CaptchaProof
}

func (r *RegisterRequest) Sanitize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)
	r.CaptchaID = strings.TrimSpace(r.CaptchaID)
}

// ValidateAccount checks the account fields. The service calls it after the
// captcha has been redeemed, so it is deliberately not named Validate.
func (r *RegisterRequest) ValidateAccount() error {
	return validation.Validate(r)
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	CaptchaProof
}

func (r *LoginRequest) Sanitize() {
	r.Username = strings.TrimSpace(r.Username)
	r.CaptchaID = strings.TrimSpace(r.CaptchaID)
}
