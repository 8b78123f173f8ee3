package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/praxis-platform/praxis-backend/internal/model"
)

// CertificateRepository handles certificate data access.
type CertificateRepository struct {
	pool *pgxpool.Pool
}

// NewCertificateRepository creates a new CertificateRepository.
func NewCertificateRepository(pool *pgxpool.Pool) *CertificateRepository {
	return &CertificateRepository{pool: pool}
}

// Create inserts a certificate row.
func (r *CertificateRepository) Create(ctx context.Context, c *model.Certificate) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO certificates (student_id, class_id, issued_at, expires_at)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		c.StudentID, c.ClassID, c.IssuedAt, c.ExpiresAt,
	).Scan(&c.ID)
	return translate(err)
}

// ListByClass retrieves certificates issued for one class.
func (r *CertificateRepository) ListByClass(ctx context.Context, classID int) ([]model.Certificate, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, student_id, class_id, issued_at, expires_at
		 FROM certificates WHERE class_id = $1 ORDER BY issued_at DESC`, classID,
	)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	certs := []model.Certificate{}
	for rows.Next() {
		var c model.Certificate
		if err := rows.Scan(&c.ID, &c.StudentID, &c.ClassID, &c.IssuedAt, &c.ExpiresAt); err != nil {
			return nil, err
		}
		certs = append(certs, c)
	}
	return certs, rows.Err()
}

// ListByStudent retrieves certificates held by one student.
func (r *CertificateRepository) ListByStudent(ctx context.Context, studentID int) ([]model.Certificate, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, student_id, class_id, issued_at, expires_at
		 FROM certificates WHERE student_id = $1 ORDER BY issued_at DESC`, studentID,
	)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	certs := []model.Certificate{}
	for rows.Next() {
		var c model.Certificate
		if err := rows.Scan(&c.ID, &c.StudentID, &c.ClassID, &c.IssuedAt, &c.ExpiresAt); err != nil {
			return nil, err
		}
		certs = append(certs, c)
	}
	return certs, rows.Err()
}
