package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"leetcoach/internal/auth/store/user"
	jwttoken "leetcoach/internal/jwt_token"
	"leetcoach/internal/platform/config"
	"leetcoach/internal/platform/database"
	id "leetcoach/pkg/domain"
)

var (
	tokenUser   string
	tokenUserID string
	tokenTTL    time.Duration
	tokenJSON   bool
)

type tokenOutput struct {
	Token     string `json:"access_token"`
	TokenType string `json:"token_type"`
	Username  string `json:"username"`
	UserID    string `json:"user_id"`
	ExpiresIn string `json:"expires_in"`
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token for local development",
	Long: `Mint a bearer token signed with JWT_SIGNING_KEY.

The user id is resolved from DATABASE_URL when --user-id is not given. Tokens
for users that do not exist are rejected by the API. Refuses to run in production.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.IsProduction() {
			return errors.New("token minting is disabled in production")
		}

		userID, err := resolveUserID(cmd, cfg)
		if err != nil {
			return err
		}

		ttl := tokenTTL
		if ttl <= 0 {
			ttl = cfg.TokenTTL
		}
		svc := jwttoken.NewJWTService(cfg.JWTSigningKey, "leetcoach", ttl, jwttoken.WithEnv(cfg.Environment))
		token, err := svc.GenerateAccessToken(cmd.Context(), userID, tokenUser)
		if err != nil {
			return fmt.Errorf("generate token: %w", err)
		}

		return printToken(cmd.OutOrStdout(), tokenOutput{
			Token:     token,
			TokenType: "bearer",
			Username:  tokenUser,
			UserID:    userID.String(),
			ExpiresIn: ttl.String(),
		})
	},
}

func resolveUserID(cmd *cobra.Command, cfg config.Server) (id.UserID, error) {
	if tokenUserID != "" {
		return id.ParseUserID(tokenUserID)
	}
	if cfg.Database.URL == "" {
		return id.UserID{}, errors.New("--user-id is required when DATABASE_URL is not set")
	}

	dbCfg := database.DefaultConfig()
	dbCfg.URL = cfg.Database.URL
	pool, err := database.New(dbCfg)
	if err != nil {
		return id.UserID{}, fmt.Errorf("database: %w", err)
	}
	defer pool.Close() //nolint:errcheck // read-only lookup

	u, err := user.NewSQL(pool).FindByUsername(cmd.Context(), tokenUser)
	if err != nil {
		return id.UserID{}, fmt.Errorf("find user %q: %w", tokenUser, err)
	}
	return u.ID, nil
}

func printToken(w io.Writer, out tokenOutput) error {
	if tokenJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	_, err := fmt.Fprintf(w, "Access Token (JWT)\n==================\nUser:       %s (%s)\nExpires In: %s\n\n%s\n\nUsage:\n  curl -H \"Authorization: Bearer <token>\" http://localhost:8000/api/sessions/1\n",
		out.Username, out.UserID, out.ExpiresIn, out.Token)
	return err
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.Flags().StringVar(&tokenUser, "user", "", "Username to put in the token subject")
	tokenCmd.Flags().StringVar(&tokenUserID, "user-id", "", "User ID (UUID); looked up by username when empty")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "Token lifetime (defaults to TOKEN_TTL)")
	tokenCmd.Flags().BoolVar(&tokenJSON, "json", false, "Output as JSON")
	_ = tokenCmd.MarkFlagRequired("user")
}
