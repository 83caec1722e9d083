package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidClaims = errors.New("invalid token claims")

type JWTAuthenticator struct {
	secret string
	aud    string
	iss    string
	ttl    time.Duration
}

func NewJWTAuthenticator(secret, aud, iss string, ttl time.Duration) *JWTAuthenticator {
	if ttl <= 0 {
		ttl = time.Hour * 24 * 3
	}
	return &JWTAuthenticator{secret: secret, aud: aud, iss: iss, ttl: ttl}
}

// GenerateToken mints an access token. The API never issues tokens itself;
// this backs tests and the dev CLI.
func (a *JWTAuthenticator) GenerateToken(subject int64, tokenType string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":        strconv.FormatInt(subject, 10),
		"token_type": tokenType,
		"exp":        now.Add(a.ttl).Unix(),
		"iat":        now.Unix(),
		"nbf":        now.Unix(),
		"iss":        a.iss,
		"aud":        a.aud,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(a.secret))
}

// ValidateAccessToken validates the access token
func (a *JWTAuthenticator) ValidateAccessToken(token string) (*jwt.Token, error) {
	return jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(a.secret), nil
	},
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithIssuer(a.iss),
		jwt.WithAudience(a.aud),
	)
}

// Identify validates token and extracts the subject id and token type.
func (a *JWTAuthenticator) Identify(token string) (Identity, error) {
	jwtToken, err := a.ValidateAccessToken(token)
	if err != nil {
		return Identity{}, err
	}

	claims, ok := jwtToken.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrInvalidClaims
	}

	subject, err := subjectID(claims["sub"])
	if err != nil {
		return Identity{}, err
	}

	tokenType, _ := claims["token_type"].(string)
	switch tokenType {
	case TokenTypeUser, TokenTypeOwner:
	case "":
		tokenType = TokenTypeUser
	default:
		return Identity{}, fmt.Errorf("%w: unknown token_type %q", ErrInvalidClaims, tokenType)
	}

	return Identity{Subject: subject, TokenType: tokenType}, nil
}

// subjectID accepts both string and numeric sub claims.
func subjectID(raw any) (int64, error) {
	switch v := raw.(type) {
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: sub %q", ErrInvalidClaims, v)
		}
		return id, nil
	case float64:
		id, err := strconv.ParseInt(fmt.Sprintf("%.f", v), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: sub", ErrInvalidClaims)
		}
		return id, nil
	default:
		return 0, fmt.Errorf("%w: missing sub", ErrInvalidClaims)
	}
}
