package auth

import "github.com/golang-jwt/jwt/v5"

// Token types carried in the token_type claim.
const (
	TokenTypeUser  = "user"
	TokenTypeOwner = "owner"
)

type Authenticator interface {
	GenerateToken(subject int64, tokenType string) (string, error)
	ValidateAccessToken(token string) (*jwt.Token, error)
	Identify(token string) (Identity, error)
}

// Identity is the caller resolved from a validated token.
type Identity struct {
	Subject   int64
	TokenType string
}
