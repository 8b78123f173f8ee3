package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/praxis-platform/praxis-backend/internal/model"
)

// StudentRepository handles student data access.
type StudentRepository struct {
	pool *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{pool: pool}
}

// GetByID retrieves a student by ID.
func (r *StudentRepository) GetByID(ctx context.Context, id int) (*model.Student, error) {
	s := &model.Student{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, email, COALESCE(client_name, ''), created_at, updated_at
		 FROM students WHERE id = $1`, id,
	).Scan(&s.ID, &s.Name, &s.Email, &s.ClientName, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return s, nil
}

// List retrieves a paginated page of students with an optional search.
func (r *StudentRepository) List(ctx context.Context, page, perPage int, search string) ([]model.Student, int, error) {
	offset := (page - 1) * perPage
	pattern := "%" + search + "%"

	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM students WHERE ($1 = '%%' OR name ILIKE $1 OR email ILIKE $1)`,
		pattern,
	).Scan(&total)
	if err != nil {
		return nil, 0, translate(err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, name, email, COALESCE(client_name, ''), created_at, updated_at
		 FROM students
		 WHERE ($1 = '%%' OR name ILIKE $1 OR email ILIKE $1)
		 ORDER BY name
		 LIMIT $2 OFFSET $3`,
		pattern, perPage, offset,
	)
	if err != nil {
		return nil, 0, translate(err)
	}
	defer rows.Close()

	students := []model.Student{}
	for rows.Next() {
		var s model.Student
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.ClientName, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, 0, err
		}
		students = append(students, s)
	}
	return students, total, rows.Err()
}

// Create inserts a new student.
func (r *StudentRepository) Create(ctx context.Context, s *model.Student) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO students (name, email, client_name)
		 VALUES ($1, $2, NULLIF($3, ''))
		 RETURNING id, created_at, updated_at`,
		s.Name, s.Email, s.ClientName,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	return translate(err)
}

// Update persists a student's fields.
func (r *StudentRepository) Update(ctx context.Context, s *model.Student) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE students SET name = $1, email = $2, client_name = NULLIF($3, ''), updated_at = NOW()
		 WHERE id = $4`,
		s.Name, s.Email, s.ClientName, s.ID,
	)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a student.
func (r *StudentRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
