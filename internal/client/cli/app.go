package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/dmitrijs2005/userkeeper/internal/client/client"
	"github.com/dmitrijs2005/userkeeper/internal/client/config"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// apiClient is the part of client.HTTPClient the CLI uses.
type apiClient interface {
	Register(ctx context.Context, req client.RegisterRequest) (*client.Session, error)
	Login(ctx context.Context, name, password string) (*client.Session, error)
	Rights(ctx context.Context, token string) ([]client.Right, error)
	MyRights(ctx context.Context, token string) ([]client.Right, error)
	GrantRight(ctx context.Context, token, name, userID string) (*client.Right, error)
	Ping(ctx context.Context) error
}

type App struct {
	config  *config.Config
	api     apiClient
	session *client.Session
	Mode    Mode
	reader  *bufio.Reader
	out     io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	api, err := client.NewHTTPClient(c.ServerURL, c.RequestTimeout)
	if err != nil {
		return nil, err
	}
	return &App{config: c, api: api, reader: bufio.NewReader(os.Stdin), out: os.Stdout}, nil
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (a *App) isLoggedIn() bool {
	return a.session != nil
}

func (a *App) getStatus() string {
	s := ""
	if a.session != nil {
		s = a.session.User.Name + " "
	}
	s += string(a.Mode)
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Run blocks in the REPL until the user exits or stdin is closed.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fmt.Fprintln(a.out, "Welcome to userkeeper CLI (type 'help' for commands)")

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := a.api.Ping(pctx)
			cancel()

			if err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
