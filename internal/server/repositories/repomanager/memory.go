package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/userkeeper/internal/dbx"
	"github.com/dmitrijs2005/userkeeper/internal/server/repositories/files"
	"github.com/dmitrijs2005/userkeeper/internal/server/repositories/memory"
	"github.com/dmitrijs2005/userkeeper/internal/server/repositories/rights"
	"github.com/dmitrijs2005/userkeeper/internal/server/repositories/users"
)

// InMemoryRepositoryManager serves every repository from a single
// memory.Store. The DBTX argument is ignored.
type InMemoryRepositoryManager struct {
	store *memory.Store
}

func NewInMemoryRepositoryManager(store *memory.Store) RepositoryManager {
	if store == nil {
		store = memory.NewStore()
	}
	return &InMemoryRepositoryManager{store: store}
}

func (m *InMemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error {
	return nil
}

func (m *InMemoryRepositoryManager) Users(dbx.DBTX) users.Repository {
	return m.store.Users()
}

func (m *InMemoryRepositoryManager) Rights(dbx.DBTX) rights.Repository {
	return m.store.Rights()
}

func (m *InMemoryRepositoryManager) Files(dbx.DBTX) files.Repository {
	return m.store.Files()
}
