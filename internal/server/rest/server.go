// Package rest exposes the userkeeper services over HTTP: JSON handlers on a
// gorilla/mux router, the bearer-token gate, request logging and Prometheus
// metrics.
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/userkeeper/internal/logging"
)

const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 30 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 120 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// Deps are the collaborators the HTTP layer needs.
type Deps struct {
	Accounts AccountService
	Users    UserService
	Rights   RightService
	Files    FileService
	Tokens   TokenVerifier
	Metrics  *Metrics

	// VerifyIdentity makes the gate re-resolve the token subject per request.
	VerifyIdentity bool
	MaxUploadBytes int64
	// CORSOrigins are the browser origins allowed cross-origin access; "*"
	// allows any. Empty disables CORS headers.
	CORSOrigins []string
}

type HTTPServer struct {
	address string
	logger  logging.Logger
	deps    Deps
}

func NewHTTPServer(address string, l logging.Logger, d Deps) *HTTPServer {
	if d.Metrics == nil {
		d.Metrics = NewMetrics(nil)
	}
	return &HTTPServer{
		address: address,
		logger:  l.With("module", "http_server"),
		deps:    d,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.serve(ctx, listen)
}

func (s *HTTPServer) serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	done := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		done <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return <-done
}
