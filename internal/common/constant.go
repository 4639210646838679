// Package common contains shared constants and sentinel errors used across
// userkeeper components.
package common

const (
	// AuthorizationHeaderName is the HTTP header carrying the session token.
	AuthorizationHeaderName = "Authorization"

	// BearerScheme prefixes the token inside AuthorizationHeaderName.
	BearerScheme = "Bearer"

	// RequestIDHeaderName is echoed back on every response.
	RequestIDHeaderName = "X-Request-ID"
)
