package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/praxis-platform/praxis-backend/internal/model"
)

// PermissionRepository reads the fixed permission catalog.
type PermissionRepository struct {
	pool *pgxpool.Pool
}

// NewPermissionRepository creates a new PermissionRepository.
func NewPermissionRepository(pool *pgxpool.Pool) *PermissionRepository {
	return &PermissionRepository{pool: pool}
}

// List retrieves every permission ordered by name.
func (r *PermissionRepository) List(ctx context.Context) ([]model.Permission, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, COALESCE(description, '') FROM permissions ORDER BY name`)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	perms := []model.Permission{}
	for rows.Next() {
		var p model.Permission
		if err := rows.Scan(&p.ID, &p.Name, &p.Description); err != nil {
			return nil, err
		}
		perms = append(perms, p)
	}
	return perms, rows.Err()
}

// CountByIDs reports how many of the given IDs exist. Services compare the
// count against len(ids) to enforce all-or-nothing attachment.
func (r *PermissionRepository) CountByIDs(ctx context.Context, ids []int) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(DISTINCT id) FROM permissions WHERE id = ANY($1)`, ids,
	).Scan(&n)
	return n, translate(err)
}
