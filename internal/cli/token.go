package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	"dinefinder/internal/auth"
)

// TokenConfig mirrors the server's token settings so minted tokens validate
// against a local server.
type TokenConfig struct {
	Secret string        `env:"AUTH_TOKEN_SECRET"`
	Issuer string        `env:"AUTH_TOKEN_ISS" envDefault:"dinefinder"`
	TTL    time.Duration `env:"AUTH_TOKEN_EXP" envDefault:"72h"`
}

// NewTokenCommand creates the token command, a development helper that mints
// bearer tokens with the server secret.
func NewTokenCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		subject   int64
		tokenType string
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a development bearer token",
		Long: `Mint a bearer token for a user or owner id, signed with AUTH_TOKEN_SECRET.
Intended for local development against a server sharing the same secret.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)

			tok, err := mintToken(subject, tokenType)
			if err != nil {
				return f.Error(&ExitError{Code: ExitCommandError, Message: "mint token", Err: err})
			}
			out := map[string]string{"token": tok, "token_type": tokenType}
			return f.Success(out, func(w io.Writer) {
				fmt.Fprintln(w, tok)
			})
		},
	}

	cmd.Flags().Int64Var(&subject, "subject", 0, "user or owner id")
	cmd.Flags().StringVar(&tokenType, "type", auth.TokenTypeUser, "token type (user|owner)")
	_ = cmd.MarkFlagRequired("subject")

	return cmd
}

func mintToken(subject int64, tokenType string) (string, error) {
	if subject <= 0 {
		return "", fmt.Errorf("subject must be a positive id")
	}
	if tokenType != auth.TokenTypeUser && tokenType != auth.TokenTypeOwner {
		return "", fmt.Errorf("unknown token type %q", tokenType)
	}

	cfg, err := env.ParseAs[TokenConfig]()
	if err != nil {
		return "", fmt.Errorf("parse env: %w", err)
	}
	if cfg.Secret == "" {
		return "", fmt.Errorf("AUTH_TOKEN_SECRET is not set")
	}

	a := auth.NewJWTAuthenticator(cfg.Secret, cfg.Issuer, cfg.Issuer, cfg.TTL)
	return a.GenerateToken(subject, tokenType)
}
