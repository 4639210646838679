package rest

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/userkeeper/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRights(t *testing.T) {
	env := newTestEnv(t, nil)
	token, aliceID := env.registerUser(t, "alice", "pw1")
	bobToken, bobID := env.registerUser(t, "bob", "pw2")

	rec := env.do(t, http.MethodPost, "/userRight", token, map[string]any{"name": "admin", "user_id": aliceID})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[rightResponse](t, rec)
	require.NotNil(t, created.Right)
	assert.Equal(t, "admin", created.Right.Name)
	assert.Equal(t, aliceID, created.Right.UserID)

	rec = env.do(t, http.MethodPost, "/userRight", token, map[string]any{"name": "viewer", "user_id": bobID})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodGet, "/getRights", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	all := decode[[]models.RightWithUser](t, rec)
	require.Len(t, all, 2)
	owners := map[string]string{}
	for _, r := range all {
		owners[r.Name] = r.User.Name
	}
	assert.Equal(t, map[string]string{"admin": "alice", "viewer": "bob"}, owners)

	rec = env.do(t, http.MethodGet, "/myRights", bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	mine := decode[[]models.Right](t, rec)
	require.Len(t, mine, 1)
	assert.Equal(t, "viewer", mine[0].Name)
}

func TestCreateRight_Errors(t *testing.T) {
	env := newTestEnv(t, nil)
	token, aliceID := env.registerUser(t, "alice", "pw1")

	rec := env.do(t, http.MethodPost, "/userRight", token, map[string]any{
		"name": "admin", "user_id": "00000000-0000-0000-0000-000000000000",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "user with this name not exists", message(t, rec))

	rec = env.do(t, http.MethodPost, "/userRight", token, map[string]any{"user_id": aliceID})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/userRight", token, "not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "malformed JSON body", message(t, rec))
}

func TestListRights_StoreFailureIs500(t *testing.T) {
	env := newTestEnv(t, func(d *Deps) {
		d.Rights = &fakeRights{ListFn: func(context.Context) ([]*models.RightWithUser, error) {
			return nil, errors.New("connection reset")
		}}
	})
	token, _ := env.registerUser(t, "alice", "pw1")

	rec := env.do(t, http.MethodGet, "/getRights", token, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", message(t, rec))
	assert.NotContains(t, rec.Body.String(), "connection reset")
}
