package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/userkeeper/internal/dbx"
	"github.com/dmitrijs2005/userkeeper/internal/server/repositories/files"
	"github.com/dmitrijs2005/userkeeper/internal/server/repositories/rights"
	"github.com/dmitrijs2005/userkeeper/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX so that services can
// use the same code inside and outside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Rights(db dbx.DBTX) rights.Repository
	Files(db dbx.DBTX) files.Repository
}
