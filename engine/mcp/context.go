package mcp

import "context"

type userIDKey struct{}

// ContextWithUserID attaches the caller identity resolved by the transport
// layer.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

func userIDFromContext(ctx context.Context) string {
	userID, _ := ctx.Value(userIDKey{}).(string)
	return userID
}
