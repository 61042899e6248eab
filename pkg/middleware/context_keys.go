// Package middleware defines shared context keys for HTTP middleware.
package middleware

// ContextKey is a typed key for request-scoped context values.
type ContextKey string

const (
	// RequestIDKey is the context key for the request ID
	RequestIDKey ContextKey = "request_id"
	// UserKey is the context key for the authenticated user's claims
	UserKey ContextKey = "auth_user"
)
