package cmd

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jwttoken "leetcoach/internal/jwt_token"
	"leetcoach/internal/platform/config"
	id "leetcoach/pkg/domain"
)

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), "missing.env")))
	t.Cleanup(func() {
		tokenUser, tokenUserID, tokenTTL, tokenJSON = "", "", 0, false
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestTokenCommand(t *testing.T) {
	t.Run("mints a token the API accepts", func(t *testing.T) {
		t.Setenv("LEETCOACH_ENV", "development")
		t.Setenv("JWT_SIGNING_KEY", "")
		userID := id.NewUserID()

		out, err := runRoot(t, "token", "--user", "alice", "--user-id", userID.String(), "--ttl", "5m", "--json")
		require.NoError(t, err)

		var got tokenOutput
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Equal(t, "bearer", got.TokenType)
		assert.Equal(t, userID.String(), got.UserID)
		assert.Equal(t, (5 * time.Minute).String(), got.ExpiresIn)

		svc := jwttoken.NewJWTService(config.DefaultJWTSigningKey, "leetcoach", time.Minute)
		claims, err := svc.ValidateToken(got.Token)
		require.NoError(t, err)
		assert.Equal(t, userID.String(), claims.UserID)
		assert.Equal(t, "alice", claims.Subject)
	})

	t.Run("needs a user id without a database", func(t *testing.T) {
		t.Setenv("LEETCOACH_ENV", "development")
		t.Setenv("DATABASE_URL", "")

		_, err := runRoot(t, "token", "--user", "alice")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--user-id is required")
	})

	t.Run("refuses production", func(t *testing.T) {
		t.Setenv("LEETCOACH_ENV", "production")
		t.Setenv("JWT_SIGNING_KEY", "0123456789abcdef0123456789abcdef-prod")

		_, err := runRoot(t, "token", "--user", "alice", "--user-id", id.NewUserID().String())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "disabled in production")
	})
}
