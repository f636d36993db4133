package utils

import "context"

type contextKey string

const UserIDKey contextKey = "user_id"

// SetUserContext sets the caller's user id into context (called by middleware)
func SetUserContext(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// GetUserIDFromContext retrieves userID safely
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserIDKey).(string)
	return id, ok && id != ""
}
