package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/userkeeper/internal/logging"
	"github.com/dmitrijs2005/userkeeper/internal/server/auth"
	"github.com/dmitrijs2005/userkeeper/internal/server/models"
	"github.com/dmitrijs2005/userkeeper/internal/server/repositories/memory"
	"github.com/dmitrijs2005/userkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/userkeeper/internal/server/services"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

type fakeFiles struct {
	UploadFn      func(ctx context.Context, userID string, up services.Upload) (*models.File, error)
	ListFn        func(ctx context.Context) ([]*models.File, error)
	DownloadURLFn func(ctx context.Context, id string) (string, error)
}

func (f *fakeFiles) Upload(ctx context.Context, userID string, up services.Upload) (*models.File, error) {
	return f.UploadFn(ctx, userID, up)
}
func (f *fakeFiles) List(ctx context.Context) ([]*models.File, error) { return f.ListFn(ctx) }
func (f *fakeFiles) DownloadURL(ctx context.Context, id string) (string, error) {
	return f.DownloadURLFn(ctx, id)
}

type fakeRights struct {
	RightService
	ListFn func(ctx context.Context) ([]*models.RightWithUser, error)
}

func (f *fakeRights) List(ctx context.Context) ([]*models.RightWithUser, error) { return f.ListFn(ctx) }

type testEnv struct {
	handler http.Handler
	store   *memory.Store
	tokens  *auth.TokenIssuer
	deps    Deps
}

// newTestEnv wires the real account, user and right services over an
// in-memory store. Overrides may replace any dependency.
func newTestEnv(t *testing.T, override func(d *Deps)) *testEnv {
	t.Helper()

	store := memory.NewStore()
	rm := repomanager.NewInMemoryRepositoryManager(store)
	hasher := auth.NewPasswordHasher(bcrypt.MinCost)
	tokens := auth.NewTokenIssuer([]byte(testSecret), time.Hour)

	d := Deps{
		Accounts:       services.NewAccountService(nil, rm, hasher, tokens),
		Users:          services.NewUserService(nil, rm, hasher),
		Rights:         services.NewRightService(nil, rm),
		Files:          &fakeFiles{},
		Tokens:         tokens,
		MaxUploadBytes: 1 << 20,
	}
	if override != nil {
		override(&d)
	}

	s := NewHTTPServer(":0", logging.Nop(), d)
	return &testEnv{handler: s.Handler(), store: store, tokens: tokens, deps: s.deps}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

// registerUser registers name with password pw and returns the token and id.
func (e *testEnv) registerUser(t *testing.T, name, pw string) (string, string) {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/register", "", map[string]any{"name": name, "password": pw})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var res struct {
		User  models.UserView `json:"user"`
		Token string          `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	return res.Token, res.User.ID
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[messageResponse](t, rec).Message
}

func noopLogger() logging.Logger { return logging.Nop() }
