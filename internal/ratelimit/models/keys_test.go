package models

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

// =============================================================================
// Rate Limit Key Security Test Suite
// =============================================================================
// Justification: Key collision attacks could allow attackers to manipulate
// rate limit buckets by crafting identifiers containing delimiter characters.

type KeySecuritySuite struct {
	suite.Suite
}

func TestKeySecuritySuite(t *testing.T) {
	suite.Run(t, new(KeySecuritySuite))
}

func (s *KeySecuritySuite) TestKeyCollisionAttack() {
	s.Run("colon in identifier is sanitized to prevent bucket crossover", func() {
		key := NewRateLimitKey("user:admin", ClassLogin)

		s.Equal("client:user_cadmin:login", key.String())
		s.NotContains(key.String(), "user:admin")
	})

	s.Run("IPv6 addresses get their own bucket", func() {
		key := NewRateLimitKey("2001:db8::1", ClassDefault)

		s.Equal("client:2001_cdb8_c_c1:default", key.String())
	})

	s.Run("escape character cannot be used to forge an escaped colon", func() {
		a := NewRateLimitKey("a_cb", ClassLogin)
		b := NewRateLimitKey("a:b", ClassLogin)

		s.NotEqual(a.String(), b.String())
	})

	s.Run("identifier cannot impersonate a different class", func() {
		forged := NewRateLimitKey("10.0.0.1:login", ClassDefault)
		real := NewRateLimitKey("10.0.0.1", ClassLogin)

		s.NotEqual(real.String(), forged.String())
	})
}

func (s *KeySecuritySuite) TestFailureKey() {
	s.Equal("auth:10.0.0.1", NewFailureKey("10.0.0.1").String())
	s.Equal("auth:_c_c1", NewFailureKey("::1").String())
}

func (s *KeySecuritySuite) TestClassifyPath() {
	cases := map[string]EndpointClass{
		"/api/login":         ClassLogin,
		"/api/register":      ClassRegister,
		"/api/captcha":       ClassCaptcha,
		"/api/captcha/test":  ClassCaptcha,
		"/api/clarify":       ClassDefault,
		"/health":            ClassDefault,
		"/":                  ClassDefault,
		"/api/questions":     ClassDefault,
		"/api/code-review":   ClassDefault,
		"/api/start-session": ClassDefault,
	}
	for path, want := range cases {
		s.Equal(want, ClassifyPath(path), path)
	}
}

func (s *KeySecuritySuite) TestEndpointClass() {
	s.True(ClassLogin.IsAuth())
	s.True(ClassRegister.IsAuth())
	s.False(ClassCaptcha.IsAuth())
	s.False(ClassDefault.IsAuth())

	s.True(ClassCaptcha.IsValid())
	s.False(EndpointClass("admin").IsValid())
}
