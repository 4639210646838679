package files

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/userkeeper/internal/common"
	"github.com/dmitrijs2005/userkeeper/internal/dbx"
	"github.com/dmitrijs2005/userkeeper/internal/server/models"
)

const fileColumns = `id, user_id, file_name, size, mime, storage_key, created_at`

// PostgresRepository implements file metadata storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanFile(s scanner) (*models.File, error) {
	f := &models.File{}
	if err := s.Scan(&f.ID, &f.UserID, &f.FileName, &f.Size, &f.Mime, &f.StorageKey, &f.CreatedAt); err != nil {
		return nil, err
	}
	return f, nil
}

// Create stores a metadata record. The uploader must exist.
func (r *PostgresRepository) Create(ctx context.Context, file *models.File) (*models.File, error) {
	query := `
		INSERT INTO files (user_id, file_name, size, mime, storage_key)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + fileColumns

	created, err := scanFile(r.db.QueryRowContext(ctx, query,
		file.UserID, file.FileName, file.Size, file.Mime, file.StorageKey))
	if err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return nil, common.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return created, nil
}

// List returns all file records, oldest first.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.File, error) {
	query := `SELECT ` + fileColumns + ` FROM files ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select files: %w", err)
	}
	defer rows.Close()

	result := []*models.File{}
	for rows.Next() {
		item, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID returns a single record or common.ErrorNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.File, error) {
	query := `SELECT ` + fileColumns + ` FROM files WHERE id = $1`

	result, err := scanFile(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to select file: %w", err)
	}
	return result, nil
}
