package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/praxis-platform/praxis-backend/internal/model"
)

// RoleRepository handles role and role-permission data access.
type RoleRepository struct {
	pool *pgxpool.Pool
}

// NewRoleRepository creates a new RoleRepository.
func NewRoleRepository(pool *pgxpool.Pool) *RoleRepository {
	return &RoleRepository{pool: pool}
}

// GetPermissionNamesByRoleID retrieves the permission names attached to a role.
// This is the join walk behind every authorization check.
func (r *RoleRepository) GetPermissionNamesByRoleID(ctx context.Context, roleID int) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT p.name
		 FROM permissions p
		 JOIN role_permissions rp ON p.id = rp.permission_id
		 WHERE rp.role_id = $1
		 ORDER BY p.name`, roleID,
	)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// GetPermissionsByRoleID retrieves the full permission records for a role.
func (r *RoleRepository) GetPermissionsByRoleID(ctx context.Context, roleID int) ([]model.Permission, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT p.id, p.name, COALESCE(p.description, '')
		 FROM permissions p
		 JOIN role_permissions rp ON p.id = rp.permission_id
		 WHERE rp.role_id = $1
		 ORDER BY p.name`, roleID,
	)
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

// GetByID retrieves a role and its permissions.
func (r *RoleRepository) GetByID(ctx context.Context, id int) (*model.RoleWithPermissions, error) {
	role := &model.Role{ID: id}
	err := r.pool.QueryRow(ctx,
		`SELECT name, COALESCE(description, ''), created_at FROM roles WHERE id = $1`, id,
	).Scan(&role.Name, &role.Description, &role.CreatedAt)
	if err != nil {
		return nil, translate(err)
	}

	perms, err := r.GetPermissionsByRoleID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &model.RoleWithPermissions{Role: role, Permissions: perms}, nil
}

// GetByName retrieves a bare role by its unique name.
func (r *RoleRepository) GetByName(ctx context.Context, name string) (*model.Role, error) {
	role := &model.Role{Name: name}
	err := r.pool.QueryRow(ctx,
		`SELECT id, COALESCE(description, ''), created_at FROM roles WHERE name = $1`, name,
	).Scan(&role.ID, &role.Description, &role.CreatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return role, nil
}

// List retrieves all roles with their permissions.
func (r *RoleRepository) List(ctx context.Context) ([]model.RoleWithPermissions, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, COALESCE(description, ''), created_at FROM roles ORDER BY name`)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var roles []model.RoleWithPermissions
	for rows.Next() {
		var role model.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt); err != nil {
			return nil, err
		}
		roles = append(roles, model.RoleWithPermissions{Role: &role})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Role counts stay small; a per-role query is fine here.
	for i := range roles {
		perms, err := r.GetPermissionsByRoleID(ctx, roles[i].ID)
		if err != nil {
			return nil, err
		}
		roles[i].Permissions = perms
	}
	return roles, nil
}

// Create inserts a role with its initial permission set in one transaction:
// either the role and every link land, or nothing does.
func (r *RoleRepository) Create(ctx context.Context, name, description string, permissionIDs []int) (int, error) {
	var id int
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx,
			`INSERT INTO roles (name, description) VALUES ($1, NULLIF($2, '')) RETURNING id`,
			name, description,
		).Scan(&id); err != nil {
			return err
		}
		return copyRolePermissions(ctx, tx, id, permissionIDs)
	})
	if err != nil {
		return 0, translate(err)
	}
	return id, nil
}

// Update persists a role's name and description.
func (r *RoleRepository) Update(ctx context.Context, id int, name, description string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE roles SET name = $1, description = NULLIF($2, '') WHERE id = $3`,
		name, description, id,
	)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ReplacePermissions deletes every existing role_permissions row for the role
// and recreates the set from permissionIDs, atomically. An empty list clears
// the role without a transiently-empty window being observable.
func (r *RoleRepository) ReplacePermissions(ctx context.Context, roleID int, permissionIDs []int) error {
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`DELETE FROM role_permissions WHERE role_id = $1`, roleID); err != nil {
			return err
		}
		return copyRolePermissions(ctx, tx, roleID, permissionIDs)
	})
	return translate(err)
}

// Delete removes a role. A foreign-key violation surfaces as ErrReferenced;
// callers check user counts first for a friendlier error.
func (r *RoleRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func copyRolePermissions(ctx context.Context, tx pgx.Tx, roleID int, permissionIDs []int) error {
	if len(permissionIDs) == 0 {
		return nil
	}
	_, err := tx.CopyFrom(
		ctx,
		pgx.Identifier{"role_permissions"},
		[]string{"role_id", "permission_id"},
		pgx.CopyFromSlice(len(permissionIDs), func(i int) ([]interface{}, error) {
			return []interface{}{roleID, permissionIDs[i]}, nil
		}),
	)
	return err
}
