package auth

import (
	"context"

	apperrors "podcasts/internal/errors"
	"podcasts/internal/model"
)

type userKey struct{}

// WithUser returns a copy of ctx carrying the authenticated user.
func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// UserFromContext returns the authenticated user, if any.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userKey{}).(*model.User)
	return user, ok && user != nil
}

// Authorize returns the caller when ctx is authenticated and the caller holds
// one of roles. Otherwise it returns ErrForbidden.
func Authorize(ctx context.Context, roles ...model.Role) (*model.User, error) {
	user, ok := UserFromContext(ctx)
	if !ok || !user.HasRole(roles...) {
		return nil, apperrors.ErrForbidden
	}
	return user, nil
}
