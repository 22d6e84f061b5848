package utils

import (
	"context"

	"asset-system/pkg/contextkeys"
	apperrors "asset-system/pkg/errors"
)

func GetUserIDFromCtx(ctx context.Context) (uint64, error) {
	userID, ok := ctx.Value(contextkeys.UserIDKey).(uint64)
	if !ok || userID == 0 {
		return 0, apperrors.ErrUserIDNotFoundInContext
	}
	return userID, nil
}

func IsAdminFromCtx(ctx context.Context) bool {
	isAdmin, _ := ctx.Value(contextkeys.IsAdminKey).(bool)
	return isAdmin
}

// WithActor stores the authenticated caller on ctx. Used by the auth
// middleware and by tests that call services directly.
func WithActor(ctx context.Context, userID uint64, isAdmin bool) context.Context {
	ctx = context.WithValue(ctx, contextkeys.UserIDKey, userID)
	return context.WithValue(ctx, contextkeys.IsAdminKey, isAdmin)
}
