// Package memory is an in-process credential store implementing the users,
// rights and files repositories. It enforces the same constraints as the
// PostgreSQL schema: unique user names, rights and files referencing an
// existing user, and cascade on user delete.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/userkeeper/internal/common"
	"github.com/dmitrijs2005/userkeeper/internal/server/models"
	"github.com/google/uuid"
)

// Store holds all records behind one mutex.
type Store struct {
	mu     sync.RWMutex
	users  map[string]models.User
	byName map[string]string
	rights map[string]models.Right
	files  map[string]models.File
	now    func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:  make(map[string]models.User),
		byName: make(map[string]string),
		rights: make(map[string]models.Right),
		files:  make(map[string]models.File),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) Users() *Users   { return &Users{s: s} }
func (s *Store) Rights() *Rights { return &Rights{s: s} }
func (s *Store) Files() *Files   { return &Files{s: s} }

func copyUser(u models.User) *models.User {
	if u.Age != nil {
		age := *u.Age
		u.Age = &age
	}
	return &u
}

// Users implements users.Repository.
type Users struct{ s *Store }

func (r *Users) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byName[user.Name]; taken {
		return nil, common.ErrDuplicateIdentity
	}

	u := *copyUser(*user)
	u.ID = uuid.NewString()
	u.CreatedAt = s.now()
	u.UpdatedAt = u.CreatedAt
	s.users[u.ID] = u
	s.byName[u.Name] = u.ID
	return copyUser(u), nil
}

func (r *Users) GetByName(ctx context.Context, name string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byName[name]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return copyUser(s.users[id]), nil
}

func (r *Users) GetByID(ctx context.Context, id string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return copyUser(u), nil
}

func (r *Users) List(ctx context.Context) ([]*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, copyUser(u))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// Update rewrites name, age and gender; the stored hash is kept.
func (r *Users) Update(ctx context.Context, user *models.User) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.users[user.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if owner, taken := s.byName[user.Name]; taken && owner != user.ID {
		return nil, common.ErrDuplicateIdentity
	}

	delete(s.byName, cur.Name)
	cur.Name = user.Name
	cur.Age = copyUser(*user).Age
	cur.Gender = user.Gender
	cur.UpdatedAt = s.now()
	s.users[cur.ID] = cur
	s.byName[cur.Name] = cur.ID
	return copyUser(cur), nil
}

// Delete removes the user together with its rights and files.
func (r *Users) Delete(ctx context.Context, id string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	delete(s.users, id)
	delete(s.byName, u.Name)
	for k, v := range s.rights {
		if v.UserID == id {
			delete(s.rights, k)
		}
	}
	for k, v := range s.files {
		if v.UserID == id {
			delete(s.files, k)
		}
	}
	return copyUser(u), nil
}

// Rights implements rights.Repository.
type Rights struct{ s *Store }

func (r *Rights) Create(ctx context.Context, right *models.Right) (*models.Right, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[right.UserID]; !ok {
		return nil, common.ErrIdentityNotFound
	}
	v := models.Right{ID: uuid.NewString(), UserID: right.UserID, Name: right.Name, CreatedAt: s.now()}
	s.rights[v.ID] = v
	return &v, nil
}

func (r *Rights) ListWithUsers(ctx context.Context) ([]*models.RightWithUser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.RightWithUser, 0, len(s.rights))
	for _, v := range sortedRights(s.rights, "") {
		u, ok := s.users[v.UserID]
		if !ok {
			continue
		}
		out = append(out, &models.RightWithUser{Right: *v, User: models.RightOwner{ID: u.ID, Name: u.Name}})
	}
	return out, nil
}

func (r *Rights) ListForUser(ctx context.Context, userID string) ([]*models.Right, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	return sortedRights(s.rights, userID), nil
}

func sortedRights(all map[string]models.Right, userID string) []*models.Right {
	out := make([]*models.Right, 0, len(all))
	for _, v := range all {
		if userID != "" && v.UserID != userID {
			continue
		}
		v := v
		out = append(out, &v)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Files implements files.Repository.
type Files struct{ s *Store }

func (r *Files) Create(ctx context.Context, file *models.File) (*models.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[file.UserID]; !ok {
		return nil, common.ErrIdentityNotFound
	}
	v := *file
	v.ID = uuid.NewString()
	v.CreatedAt = s.now()
	s.files[v.ID] = v
	return &v, nil
}

func (r *Files) List(ctx context.Context) ([]*models.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.File, 0, len(s.files))
	for _, v := range s.files {
		v := v
		out = append(out, &v)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *Files) GetByID(ctx context.Context, id string) (*models.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.files[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &v, nil
}
