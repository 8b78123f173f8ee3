package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/praxis-platform/praxis-backend/internal/model"
)

// TrainingRepository handles training data access.
type TrainingRepository struct {
	pool *pgxpool.Pool
}

// NewTrainingRepository creates a new TrainingRepository.
func NewTrainingRepository(pool *pgxpool.Pool) *TrainingRepository {
	return &TrainingRepository{pool: pool}
}

// GetByID retrieves a training by ID.
func (r *TrainingRepository) GetByID(ctx context.Context, id int) (*model.Training, error) {
	t := &model.Training{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, COALESCE(description, ''), duration_hours, validity_days, is_active, created_at, updated_at
		 FROM trainings WHERE id = $1`, id,
	).Scan(&t.ID, &t.Title, &t.Description, &t.DurationHours, &t.ValidityDays, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return t, nil
}

// List retrieves a paginated page of trainings with an optional title search.
func (r *TrainingRepository) List(ctx context.Context, page, perPage int, search string) ([]model.Training, int, error) {
	offset := (page - 1) * perPage
	pattern := "%" + search + "%"

	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM trainings WHERE ($1 = '%%' OR title ILIKE $1)`, pattern,
	).Scan(&total)
	if err != nil {
		return nil, 0, translate(err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, title, COALESCE(description, ''), duration_hours, validity_days, is_active, created_at, updated_at
		 FROM trainings
		 WHERE ($1 = '%%' OR title ILIKE $1)
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		pattern, perPage, offset,
	)
	if err != nil {
		return nil, 0, translate(err)
	}
	defer rows.Close()

	trainings := []model.Training{}
	for rows.Next() {
		var t model.Training
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.DurationHours, &t.ValidityDays, &t.IsActive, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, 0, err
		}
		trainings = append(trainings, t)
	}
	return trainings, total, rows.Err()
}

// Create inserts a new training.
func (r *TrainingRepository) Create(ctx context.Context, t *model.Training) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO trainings (title, description, duration_hours, validity_days, is_active)
		 VALUES ($1, NULLIF($2, ''), $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		t.Title, t.Description, t.DurationHours, t.ValidityDays, t.IsActive,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	return translate(err)
}

// Update persists a training's mutable fields.
func (r *TrainingRepository) Update(ctx context.Context, t *model.Training) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE trainings
		 SET title = $1, description = NULLIF($2, ''), duration_hours = $3, validity_days = $4, is_active = $5, updated_at = NOW()
		 WHERE id = $6`,
		t.Title, t.Description, t.DurationHours, t.ValidityDays, t.IsActive, t.ID,
	)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a training. Classes referencing it surface ErrReferenced.
func (r *TrainingRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM trainings WHERE id = $1`, id)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
