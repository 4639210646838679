// Package client is the HTTP client of the userkeeper API used by the CLI.
//
// Failures are reported through sentinel errors that callers match with
// errors.Is: ErrUnavailable when the server cannot be reached and
// ErrUnauthorized when the session token is rejected. Any other non-2xx
// response is an *APIError carrying the server's message.
package client
