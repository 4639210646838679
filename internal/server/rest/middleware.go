package rest

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/userkeeper/internal/common"
	"github.com/dmitrijs2005/userkeeper/internal/logging"
	"github.com/dmitrijs2005/userkeeper/internal/server/auth"
)

type ctxKey string

const (
	claimsKey ctxKey = "claims"
	loggerKey ctxKey = "logger"
)

// ClaimsFromContext returns the identity the auth gate attached to ctx.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*auth.Claims)
	return c, ok && c != nil
}

func loggerFrom(ctx context.Context, fallback logging.Logger) logging.Logger {
	if l, ok := ctx.Value(loggerKey).(logging.Logger); ok {
		return l
	}
	return fallback
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(r *http.Request) (string, error) {
	h := r.Header.Get(common.AuthorizationHeaderName)
	if h == "" {
		return "", errors.New("missing authorization header")
	}
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, common.BearerScheme) {
		return "", errors.New("invalid authorization header format")
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", errors.New("invalid authorization header format")
	}
	return token, nil
}

// authMiddleware rejects requests without a valid session token. On success
// the claims are stored in the request context.
func (s *HTTPServer) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := loggerFrom(ctx, s.logger)

		token, err := bearerToken(r)
		if err != nil {
			s.deps.Metrics.authRejected("header")
			writeMessage(w, http.StatusUnauthorized, err.Error())
			return
		}

		claims, err := s.deps.Tokens.Verify(token)
		if err != nil {
			reason, msg := "invalid", "invalid token"
			if errors.Is(err, common.ErrTokenExpired) {
				reason, msg = "expired", "token expired"
			}
			s.deps.Metrics.authRejected(reason)
			log.Debug(ctx, "token rejected", "reason", reason)
			writeMessage(w, http.StatusUnauthorized, msg)
			return
		}

		if s.deps.VerifyIdentity {
			if _, err := s.deps.Accounts.Identify(ctx, claims.UserID); err != nil {
				if errors.Is(err, common.ErrIdentityNotFound) {
					s.deps.Metrics.authRejected("unknown_identity")
					writeMessage(w, http.StatusUnauthorized, "invalid token")
					return
				}
				s.writeError(w, r, err)
				return
			}
		}

		ctx = context.WithValue(ctx, claimsKey, claims)
		ctx = context.WithValue(ctx, loggerKey, log.With("user_id", claims.UserID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestIDMiddleware propagates or assigns X-Request-ID and binds a request
// scoped logger.
func (s *HTTPServer) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(common.RequestIDHeaderName)
		if id == "" {
			var err error
			if id, err = common.MakeRandHexString(8); err != nil {
				id = "unknown"
			}
		}
		w.Header().Set(common.RequestIDHeaderName, id)

		ctx := context.WithValue(r.Context(), loggerKey, s.logger.With("request_id", id))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// responseWriter captures the status code and body size.
type responseWriter struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int
}

func wrap(w http.ResponseWriter) *responseWriter {
	if rw, ok := w.(*responseWriter); ok {
		return rw
	}
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.bytesWritten += n
	return n, err
}

func (s *HTTPServer) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := wrap(w)

		next.ServeHTTP(rw, r)

		loggerFrom(r.Context(), s.logger).Info(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"bytes", rw.bytesWritten,
			"duration", time.Since(start).String(),
		)
	})
}

const corsMaxAge = "3600"

var (
	corsAllowMethods  = strings.Join([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}, ", ")
	corsAllowHeaders  = strings.Join([]string{"Content-Type", common.AuthorizationHeaderName, common.RequestIDHeaderName}, ", ")
	corsExposeHeaders = common.RequestIDHeaderName
)

// corsMiddleware wraps the whole router: preflight requests are answered
// before route matching, since most routes accept a single method.
func (s *HTTPServer) corsMiddleware(next http.Handler) http.Handler {
	anyOrigin := false
	allowed := make(map[string]struct{}, len(s.deps.CORSOrigins))
	for _, o := range s.deps.CORSOrigins {
		if o == "*" {
			anyOrigin = true
		}
		allowed[o] = struct{}{}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			next.ServeHTTP(w, r)
			return
		}

		h := w.Header()
		_, ok := allowed[origin]
		switch {
		case anyOrigin:
			h.Set("Access-Control-Allow-Origin", "*")
		case ok:
			h.Set("Access-Control-Allow-Origin", origin)
			h.Add("Vary", "Origin")
		}
		if anyOrigin || ok {
			h.Set("Access-Control-Allow-Methods", corsAllowMethods)
			h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
			h.Set("Access-Control-Expose-Headers", corsExposeHeaders)
			h.Set("Access-Control-Max-Age", corsMaxAge)
		}

		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
