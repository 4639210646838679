package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/userkeeper/internal/client/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	mu sync.Mutex

	registered client.RegisterRequest
	loginName  string
	loginPass  string
	tokens     []string
	grantName  string
	grantUser  string

	rights  []client.Right
	err     error
	pingErr error
}

func (f *fakeAPI) Register(_ context.Context, req client.RegisterRequest) (*client.Session, error) {
	f.registered = req
	if f.err != nil {
		return nil, f.err
	}
	return &client.Session{User: client.User{ID: "u1", Name: req.Name}, Token: "T1"}, nil
}

func (f *fakeAPI) Login(_ context.Context, name, password string) (*client.Session, error) {
	f.loginName, f.loginPass = name, password
	if f.err != nil {
		return nil, f.err
	}
	return &client.Session{User: client.User{ID: "u1", Name: name}, Message: "Login successfully", Token: "T2"}, nil
}

func (f *fakeAPI) Rights(_ context.Context, token string) ([]client.Right, error) {
	f.tokens = append(f.tokens, token)
	return f.rights, f.err
}

func (f *fakeAPI) MyRights(_ context.Context, token string) ([]client.Right, error) {
	f.tokens = append(f.tokens, token)
	return f.rights, f.err
}

func (f *fakeAPI) GrantRight(_ context.Context, token, name, userID string) (*client.Right, error) {
	f.tokens = append(f.tokens, token)
	f.grantName, f.grantUser = name, userID
	if f.err != nil {
		return nil, f.err
	}
	return &client.Right{ID: "r1", Name: name, UserID: userID}, nil
}

func (f *fakeAPI) Ping(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pingErr
}

func newTestApp(api *fakeAPI, input string) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	return &App{api: api, reader: bufio.NewReader(strings.NewReader(input)), out: &out}, &out
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}

func TestRegister(t *testing.T) {
	stubPassword(t, "pw1")
	api := &fakeAPI{}
	app, out := newTestApp(api, "alice\n30\nf\n")

	require.NoError(t, app.Register(context.Background()))

	age := 30
	assert.Equal(t, client.RegisterRequest{Name: "alice", Age: &age, Gender: "f", Password: "pw1"}, api.registered)
	assert.True(t, app.isLoggedIn())
	assert.Equal(t, "T1", app.session.Token)
	assert.Contains(t, out.String(), "Registered as alice (u1)")
}

func TestRegister_BadAgeStopsBeforeRequest(t *testing.T) {
	stubPassword(t, "pw1")
	api := &fakeAPI{}
	app, _ := newTestApp(api, "alice\nold\n")

	assert.Error(t, app.Register(context.Background()))
	assert.Empty(t, api.registered.Name)
	assert.False(t, app.isLoggedIn())
}

func TestLoginAndRights(t *testing.T) {
	stubPassword(t, "pw1")
	api := &fakeAPI{rights: []client.Right{
		{ID: "r1", Name: "admin", UserID: "u1", User: &client.RightOwner{ID: "u1", Name: "alice"}},
	}}
	app, out := newTestApp(api, "alice\n")

	assert.ErrorIs(t, app.Rights(context.Background()), errNotLoggedIn)

	require.NoError(t, app.Login(context.Background()))
	assert.Equal(t, "alice", api.loginName)
	assert.Equal(t, "pw1", api.loginPass)
	assert.Contains(t, out.String(), "Login successfully")
	assert.Equal(t, "(alice )", app.getStatus())

	require.NoError(t, app.Rights(context.Background()))
	require.NoError(t, app.MyRights(context.Background()))
	assert.Equal(t, []string{"T2", "T2"}, api.tokens)
	assert.Contains(t, out.String(), "r1\tadmin\talice")

	require.NoError(t, app.Whoami(context.Background()))
	assert.Contains(t, out.String(), "alice (u1)")

	require.NoError(t, app.Logout(context.Background()))
	assert.False(t, app.isLoggedIn())
}

func TestGrant(t *testing.T) {
	api := &fakeAPI{}
	app, out := newTestApp(api, "admin\n\nviewer\nu2\n")
	app.session = &client.Session{User: client.User{ID: "u1", Name: "alice"}, Token: "T"}

	require.NoError(t, app.Grant(context.Background()))
	assert.Equal(t, "admin", api.grantName)
	assert.Equal(t, "u1", api.grantUser)

	require.NoError(t, app.Grant(context.Background()))
	assert.Equal(t, "viewer", api.grantName)
	assert.Equal(t, "u2", api.grantUser)
	assert.Contains(t, out.String(), "Right viewer granted (r1)")
}

func TestUnauthorizedClearsSession(t *testing.T) {
	api := &fakeAPI{err: client.ErrUnauthorized}
	app, _ := newTestApp(api, "")
	app.session = &client.Session{Token: "stale"}

	err := app.MyRights(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log in again")
	assert.False(t, app.isLoggedIn())
}

func TestLogin_FailureKeepsLoggedOut(t *testing.T) {
	stubPassword(t, "nope")
	api := &fakeAPI{err: &client.APIError{StatusCode: 400, Message: "user or password incorrect"}}
	app, _ := newTestApp(api, "alice\n")

	err := app.Login(context.Background())
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.False(t, app.isLoggedIn())
}

func TestPrintRights_Empty(t *testing.T) {
	app, out := newTestApp(&fakeAPI{}, "")
	app.printRights(nil)
	assert.Equal(t, "No rights\n", out.String())
}

func TestSetMode_LogsOnlyOnChange(t *testing.T) {
	app := &App{}
	var buf bytes.Buffer

	old := log.Default().Writer()
	defer log.SetOutput(old)
	log.SetOutput(&buf)

	app.setMode(ModeOnline)
	assert.Equal(t, ModeOnline, app.Mode)
	assert.NotEmpty(t, buf.String())

	buf.Reset()
	app.setMode(ModeOnline)
	assert.Empty(t, buf.String())
}

func TestStartOnlineStatusWatcher(t *testing.T) {
	old := log.Default().Writer()
	defer log.SetOutput(old)
	log.SetOutput(io.Discard)

	api := &fakeAPI{pingErr: errors.New("down")}
	app := &App{api: api}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.StartOnlineStatusWatcher(ctx, 10*time.Millisecond)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	assert.Equal(t, ModeOffline, app.Mode)
}
