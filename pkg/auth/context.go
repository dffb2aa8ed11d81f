package auth

import (
	"context"

	pkgerrors "ideaforge-backend/pkg/errors"
)

// UserContext carries the authenticated user's identity through a request
type UserContext struct {
	UserID string
	Email  string
	Roles  []string
}

type contextKey string

const userContextKey contextKey = "user_context"

// SetUserInContext adds the user context to a request context
func SetUserInContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// GetUserFromContext extracts the user context set by the auth middleware
func GetUserFromContext(ctx context.Context) (*UserContext, error) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	if !ok || user == nil || user.UserID == "" {
		return nil, pkgerrors.NewUnauthorizedError("no authenticated user in context")
	}
	return user, nil
}

// HasRole checks whether the user carries a specific role
func (u *UserContext) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
