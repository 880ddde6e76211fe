package models

import "leetcoach/pkg/validation"

func (r *StartSessionRequest) Validate() error {
	return validation.Validate(r)
}
