package rights

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/userkeeper/internal/common"
	"github.com/dmitrijs2005/userkeeper/internal/dbx"
	"github.com/dmitrijs2005/userkeeper/internal/server/models"
)

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, right *models.Right) (*models.Right, error) {
	query :=
		`INSERT INTO rights (user_id, name)
		 VALUES ($1, $2)
		 RETURNING id, user_id, name, created_at`

	created := &models.Right{}
	err := r.db.QueryRowContext(ctx, query, right.UserID, right.Name).
		Scan(&created.ID, &created.UserID, &created.Name, &created.CreatedAt)
	if err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return nil, common.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return created, nil
}

// ListWithUsers returns every right joined with its owner. The inner join
// drops any row whose user is gone.
func (r *PostgresRepository) ListWithUsers(ctx context.Context) ([]*models.RightWithUser, error) {
	query :=
		`SELECT r.id, r.user_id, r.name, r.created_at, u.name
		 FROM rights r
		 JOIN users u ON u.id = r.user_id
		 ORDER BY r.created_at, r.id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.RightWithUser{}
	for rows.Next() {
		item := &models.RightWithUser{}
		if err := rows.Scan(&item.ID, &item.UserID, &item.Name, &item.CreatedAt, &item.User.Name); err != nil {
			return nil, fmt.Errorf("scan right: %w", err)
		}
		item.User.ID = item.UserID
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) ListForUser(ctx context.Context, userID string) ([]*models.Right, error) {
	query :=
		`SELECT id, user_id, name, created_at FROM rights
		 WHERE user_id = $1
		 ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Right{}
	for rows.Next() {
		item := &models.Right{}
		if err := rows.Scan(&item.ID, &item.UserID, &item.Name, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan right: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
