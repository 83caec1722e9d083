package main

import (
	"context"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"dinefinder/internal/auth"
	"dinefinder/internal/domain/owners"
	"dinefinder/internal/domain/users"
)

type ctxKey string

const (
	userCtx  ctxKey = "user"
	ownerCtx ctxKey = "owner"
)

func (app *application) BasicAuthMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// read the auth header
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				app.unauthorizedBasicErrorResponse(w, r, fmt.Errorf("authorization header is missing"))
				return
			}

			// parse it -> get the base64
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Basic" {
				app.unauthorizedBasicErrorResponse(w, r, fmt.Errorf("authorization header is malformed"))
				return
			}

			// decode it
			decoded, err := base64.StdEncoding.DecodeString(parts[1])
			if err != nil {
				app.unauthorizedBasicErrorResponse(w, r, err)
				return
			}

			// check the credentials
			username := app.config.Auth.Basic.User
			pass := app.config.Auth.Basic.Pass

			creds := strings.SplitN(string(decoded), ":", 2)
			if pass == "" || len(creds) != 2 ||
				subtle.ConstantTimeCompare([]byte(creds[0]), []byte(username)) != 1 ||
				subtle.ConstantTimeCompare([]byte(creds[1]), []byte(pass)) != 1 {
				app.unauthorizedBasicErrorResponse(w, r, fmt.Errorf("invalid credentials"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// identify validates the bearer token and checks it was issued for tokenType.
func (app *application) identify(r *http.Request, tokenType string) (auth.Identity, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return auth.Identity{}, fmt.Errorf("authorization header is missing")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return auth.Identity{}, fmt.Errorf("authorization header is malformed")
	}

	id, err := app.authenticator.Identify(parts[1])
	if err != nil {
		return auth.Identity{}, err
	}
	if id.TokenType != tokenType {
		return auth.Identity{}, fmt.Errorf("%s token used where a %s token is required", id.TokenType, tokenType)
	}
	return id, nil
}

// UserAuthMiddleware resolves a user token into the user row.
func (app *application) UserAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := app.identify(r, auth.TokenTypeUser)
		if err != nil {
			app.unauthorizedErrorResponse(w, r, err)
			return
		}

		ctx := r.Context()

		user, err := app.store.Users.GetByID(ctx, id.Subject)
		switch {
		case errors.Is(err, users.ErrNotFound):
			app.unauthorizedErrorResponse(w, r, err)
			return
		case err != nil:
			app.internalServerError(w, r, err)
			return
		}

		ctx = context.WithValue(ctx, userCtx, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OwnerAuthMiddleware resolves an owner token into the owner row.
func (app *application) OwnerAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := app.identify(r, auth.TokenTypeOwner)
		if err != nil {
			app.unauthorizedErrorResponse(w, r, err)
			return
		}

		ctx := r.Context()

		owner, err := app.store.Owners.GetByID(ctx, id.Subject)
		switch {
		case errors.Is(err, owners.ErrNotFound):
			app.unauthorizedErrorResponse(w, r, err)
			return
		case err != nil:
			app.internalServerError(w, r, err)
			return
		}

		ctx = context.WithValue(ctx, ownerCtx, owner)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (app *application) RateLimiterMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if app.rateLimiter == nil {
			next.ServeHTTP(w, r)
			return
		}

		key := r.RemoteAddr
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			key = host
		}

		if allow, retryAfter := app.rateLimiter.Allow(key); !allow {
			app.rateLimitExceededResponse(w, r, retryAfter)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func getUserFromContext(r *http.Request) *users.User {
	if user, ok := r.Context().Value(userCtx).(*users.User); ok {
		return user
	}
	return nil
}

func getOwnerFromContext(r *http.Request) *owners.Owner {
	if owner, ok := r.Context().Value(ownerCtx).(*owners.Owner); ok {
		return owner
	}
	return nil
}
