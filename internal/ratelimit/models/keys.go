package models

import (
	"fmt"
	"strings"
)

// KeyPrefix represents the type of rate limit key.
type KeyPrefix string

const (
	KeyPrefixClient KeyPrefix = "client"
	KeyPrefixAuth   KeyPrefix = "auth"
)

// RateLimitKey is a value object encapsulating bucket key construction.
// It centralizes key format and sanitization to prevent key collision attacks.
type RateLimitKey struct {
	prefix     KeyPrefix
	identifier string
	class      EndpointClass // optional, empty for failure keys
}

// NewRateLimitKey creates the bucket key for a (client, endpoint class) pair.
func NewRateLimitKey(clientID string, class EndpointClass) RateLimitKey {
	return RateLimitKey{
		prefix:     KeyPrefixClient,
		identifier: sanitizeKeySegment(clientID),
		class:      class,
	}
}

// NewFailureKey creates the key under which a client's auth failures are tracked.
func NewFailureKey(clientID string) RateLimitKey {
	return RateLimitKey{
		prefix:     KeyPrefixAuth,
		identifier: sanitizeKeySegment(clientID),
	}
}

// String returns the formatted key for storage lookup.
func (k RateLimitKey) String() string {
	if k.class == "" {
		return fmt.Sprintf("%s:%s", k.prefix, k.identifier)
	}
	return fmt.Sprintf("%s:%s:%s", k.prefix, k.identifier, k.class)
}

// sanitizeKeySegment escapes delimiter characters in key segments so that
// client identifiers containing ':' (IPv6 addresses, host:port pairs) cannot
// spill into an adjacent bucket.
//
// Escape rules (order matters):
//  1. Escape '_' to '__' (escape the escape character first)
//  2. Escape ':' to '_c' (escape the delimiter)
//
// Examples:
//   - "::1"         → "_c_c1"
//   - "user_admin"  → "user__admin"
//   - "user_:admin" → "user___cadmin"
func sanitizeKeySegment(s string) string {
	s = strings.ReplaceAll(s, "_", "__")
	s = strings.ReplaceAll(s, ":", "_c")
	return s
}
