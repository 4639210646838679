// Package server wires configuration, storage, services and the HTTP
// transport together and runs them until the process is signalled.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/userkeeper/internal/logging"
	"github.com/dmitrijs2005/userkeeper/internal/server/auth"
	"github.com/dmitrijs2005/userkeeper/internal/server/config"
	"github.com/dmitrijs2005/userkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/userkeeper/internal/server/rest"
	"github.com/dmitrijs2005/userkeeper/internal/server/services"
	"golang.org/x/sync/errgroup"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// openDB is a seam for tests.
var openDB = func(dsn string) (*sql.DB, error) {
	return sql.Open("pgx", dsn)
}

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	httpServer  *rest.HTTPServer
}

// NewApp builds the application from c. The database handle is opened but
// migrations run only in Run.
func NewApp(c *config.Config) (*App, error) {
	return newApp(c, os.Stdout, repomanager.NewPostgresRepositoryManager())
}

func newApp(c *config.Config, out io.Writer, rm repomanager.RepositoryManager) (*App, error) {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := logging.NewJSON(out, level)

	db, err := openDB(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	hasher := auth.NewPasswordHasher(c.BcryptCost)
	tokens := auth.NewTokenIssuer([]byte(c.SecretKey), c.AccessTokenValidityDuration)

	s3 := services.S3Settings{
		User:         c.S3RootUser,
		Password:     c.S3RootPassword,
		Bucket:       c.S3Bucket,
		Region:       c.S3Region,
		BaseEndpoint: c.S3BaseEndpoint,
	}

	hs := rest.NewHTTPServer(c.EndpointAddrHTTP, logger, rest.Deps{
		Accounts:       services.NewAccountService(db, rm, hasher, tokens),
		Users:          services.NewUserService(db, rm, hasher),
		Rights:         services.NewRightService(db, rm),
		Files:          services.NewFileService(db, rm, s3),
		Tokens:         tokens,
		VerifyIdentity: c.VerifyIdentity,
		MaxUploadBytes: c.MaxUploadBytes,
		CORSOrigins:    c.CORSAllowedOrigins,
	})

	return &App{config: c, logger: logger, db: db, repomanager: rm, httpServer: hs}, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case s := <-sigs:
			app.logger.Info(ctx, "Signal received", "signal", s.String())
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

// Run applies migrations and serves until ctx is cancelled or the process
// receives SIGINT, SIGTERM or SIGQUIT. A server that fails to start or dies
// while serving makes Run return its error.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	defer func() {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "db close error", "error", err.Error())
		}
	}()

	if err := app.repomanager.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	app.initSignalHandler(ctx, cancelFunc)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := app.httpServer.Run(gctx); err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		app.logger.Error(context.Background(), "App stopped", "error", err.Error())
		return err
	}

	app.logger.Info(context.Background(), "App stopped")
	return nil
}
