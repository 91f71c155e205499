package userctx

import "context"

// Context key type
type contextKey string

const userIDKey contextKey = "user_id"
const userRoleKey contextKey = "user_role"
const clientIPKey contextKey = "client_ip"

// SetUser adds the authenticated user ID and role to the request context
func SetUser(ctx context.Context, id, role string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, id)
	return context.WithValue(ctx, userRoleKey, role)
}

// GetUserID retrieves the authenticated user ID from the request context.
// Empty means the request is unauthenticated.
func GetUserID(ctx context.Context) string {
	if id, ok := ctx.Value(userIDKey).(string); ok {
		return id
	}
	return ""
}

// GetUserRole retrieves the authenticated user role from the request context
func GetUserRole(ctx context.Context) string {
	if role, ok := ctx.Value(userRoleKey).(string); ok {
		return role
	}
	return ""
}

// SetClientIP adds the caller's IP address to the request context
func SetClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey, ip)
}

// GetClientIP retrieves the caller's IP address from the request context
func GetClientIP(ctx context.Context) string {
	if ip, ok := ctx.Value(clientIPKey).(string); ok {
		return ip
	}
	return ""
}
