package api

import (
	"context"

	"github.com/opsgrade/posture-engine/internal/tablestore"
)

type contextKey string

const (
	userContextKey  contextKey = "auth_user"
	tokenContextKey contextKey = "auth_token"
)

// UserFromContext extracts the authenticated user from context
func UserFromContext(ctx context.Context) *tablestore.User {
	user, ok := ctx.Value(userContextKey).(*tablestore.User)
	if !ok {
		return nil
	}
	return user
}

// ContextWithUser adds the authenticated user to context
func ContextWithUser(ctx context.Context, user *tablestore.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// TokenFromContext extracts the bearer token the user authenticated with
func TokenFromContext(ctx context.Context) string {
	token, ok := ctx.Value(tokenContextKey).(string)
	if !ok {
		return ""
	}
	return token
}

// ContextWithToken adds the bearer token to context
func ContextWithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey, token)
}
