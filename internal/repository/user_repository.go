package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/praxis-platform/praxis-backend/internal/model"
)

// UserRepository handles user data access.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `u.id, u.name, u.email, u.password_hash, u.role_id, COALESCE(r.name, ''), u.is_active, u.created_at, u.updated_at`

// GetByID retrieves a user by ID. The role join is LEFT: users may carry no role.
func (r *UserRepository) GetByID(ctx context.Context, id int) (*model.User, error) {
	u := &model.User{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+`
		 FROM users u LEFT JOIN roles r ON u.role_id = r.id
		 WHERE u.id = $1`, id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.RoleID, &u.RoleName, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return u, nil
}

// GetByEmail retrieves a user by their unique email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	u := &model.User{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+`
		 FROM users u LEFT JOIN roles r ON u.role_id = r.id
		 WHERE u.email = $1`, email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.RoleID, &u.RoleName, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return u, nil
}

// List retrieves a paginated page of users with an optional name/email search.
func (r *UserRepository) List(ctx context.Context, page, perPage int, search string) ([]model.User, int, error) {
	offset := (page - 1) * perPage
	pattern := "%" + search + "%"

	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE ($1 = '%%' OR name ILIKE $1 OR email ILIKE $1)`,
		pattern,
	).Scan(&total)
	if err != nil {
		return nil, 0, translate(err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+userColumns+`
		 FROM users u LEFT JOIN roles r ON u.role_id = r.id
		 WHERE ($1 = '%%' OR u.name ILIKE $1 OR u.email ILIKE $1)
		 ORDER BY u.created_at DESC
		 LIMIT $2 OFFSET $3`,
		pattern, perPage, offset,
	)
	if err != nil {
		return nil, 0, translate(err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.RoleID, &u.RoleName, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}

// Create inserts a new user.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash, role_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, is_active, created_at, updated_at`,
		u.Name, u.Email, u.PasswordHash, u.RoleID,
	).Scan(&u.ID, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return translate(err)
}

// Update persists name, email, password hash, and role.
func (r *UserRepository) Update(ctx context.Context, u *model.User) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET name = $1, email = $2, password_hash = $3, role_id = $4, updated_at = NOW()
		 WHERE id = $5`,
		u.Name, u.Email, u.PasswordHash, u.RoleID, u.ID,
	)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateRole reassigns a user's role. The change takes effect on the user's
// next authorization check.
func (r *UserRepository) UpdateRole(ctx context.Context, userID int, roleID *int) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET role_id = $1, updated_at = NOW() WHERE id = $2`,
		roleID, userID,
	)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetActive flips the account's active flag.
func (r *UserRepository) SetActive(ctx context.Context, id int, active bool) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET is_active = $1, updated_at = NOW() WHERE id = $2`,
		active, id,
	)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a user. Referential guards (instructor-led classes) are
// enforced at the service layer before this is called.
func (r *UserRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByRoleID reports how many users currently reference a role.
func (r *UserRepository) CountByRoleID(ctx context.Context, roleID int) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role_id = $1`, roleID).Scan(&n)
	return n, translate(err)
}
