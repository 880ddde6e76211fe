package metadata

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leetcoach/pkg/requestcontext"
)

func TestMiddlewareHandler(t *testing.T) {
	tests := []struct {
		name           string
		headers        map[string]string
		remoteAddr     string
		trustedProxies string
		expectedIP     string
		expectedUA     string
	}{
		{
			name:       "ignores XFF from untrusted peer",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.1", "User-Agent": "Mozilla/5.0"},
			remoteAddr: "192.168.1.1:12345",
			expectedIP: "192.168.1.1",
			expectedUA: "Mozilla/5.0",
		},
		{
			name:           "trusts first XFF hop from trusted proxy",
			headers:        map[string]string{"X-Forwarded-For": "203.0.113.1, 10.0.0.2", "User-Agent": "curl/7.64.1"},
			remoteAddr:     "10.0.0.1:12345",
			trustedProxies: "10.0.0.0/8",
			expectedIP:     "203.0.113.1",
			expectedUA:     "curl/7.64.1",
		},
		{
			name:           "uses X-Real-IP from trusted proxy",
			headers:        map[string]string{"X-Real-IP": "198.51.100.4"},
			remoteAddr:     "10.0.0.1:12345",
			trustedProxies: "10.0.0.1",
			expectedIP:     "198.51.100.4",
		},
		{
			name:           "falls back when XFF is garbage",
			headers:        map[string]string{"X-Forwarded-For": "not-an-ip"},
			remoteAddr:     "10.0.0.1:12345",
			trustedProxies: "10.0.0.0/8",
			expectedIP:     "10.0.0.1",
		},
		{
			name:           "falls back when XFF is oversized",
			headers:        map[string]string{"X-Forwarded-For": strings.Repeat("1", MaxXFFHeaderLength+1)},
			remoteAddr:     "10.0.0.1:12345",
			trustedProxies: "10.0.0.0/8",
			expectedIP:     "10.0.0.1",
		},
		{
			name:       "handles bracketed IPv6",
			remoteAddr: "[2001:db8::1]:443",
			expectedIP: "2001:db8::1",
		},
		{
			name:       "unknown for unparseable peer",
			remoteAddr: "pipe",
			expectedIP: "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefixes, err := ParseTrustedProxies(tt.trustedProxies)
			require.NoError(t, err)

			var gotIP, gotUA string
			handler := NewMiddleware(Config{TrustedProxies: prefixes}).Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotIP = requestcontext.ClientIP(r.Context())
				gotUA = requestcontext.UserAgent(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/login", nil)
			req.RemoteAddr = tt.remoteAddr
			for key, value := range tt.headers {
				req.Header.Set(key, value)
			}
			handler.ServeHTTP(httptest.NewRecorder(), req)

			assert.Equal(t, tt.expectedIP, gotIP)
			assert.Equal(t, tt.expectedUA, gotUA)
		})
	}
}

func TestParseTrustedProxies(t *testing.T) {
	prefixes, err := ParseTrustedProxies(" 10.0.0.0/8, 127.0.0.1 ,")
	require.NoError(t, err)
	require.Len(t, prefixes, 2)
	assert.Equal(t, "10.0.0.0/8", prefixes[0].String())
	assert.Equal(t, "127.0.0.1/32", prefixes[1].String())

	_, err = ParseTrustedProxies("10.0.0.0/99")
	assert.Error(t, err)
}
