package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/praxis-platform/praxis-backend/internal/model"
)

// ClassRepository handles class, lesson, roster, and attendance data access.
type ClassRepository struct {
	pool *pgxpool.Pool
}

// NewClassRepository creates a new ClassRepository.
func NewClassRepository(pool *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{pool: pool}
}

const classColumns = `c.id, c.training_id, t.title, c.instructor_id, u.name, c.name, c.starts_at, c.ends_at, c.created_at`

// GetByID retrieves a class by ID.
func (r *ClassRepository) GetByID(ctx context.Context, id int) (*model.Class, error) {
	c := &model.Class{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+classColumns+`
		 FROM classes c
		 JOIN trainings t ON c.training_id = t.id
		 JOIN users u ON c.instructor_id = u.id
		 WHERE c.id = $1`, id,
	).Scan(&c.ID, &c.TrainingID, &c.TrainingTitle, &c.InstructorID, &c.InstructorName, &c.Name, &c.StartsAt, &c.EndsAt, &c.CreatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return c, nil
}

// List retrieves classes, optionally filtered to one instructor (the
// "own classes" scope).
func (r *ClassRepository) List(ctx context.Context, instructorID int) ([]model.Class, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+classColumns+`
		 FROM classes c
		 JOIN trainings t ON c.training_id = t.id
		 JOIN users u ON c.instructor_id = u.id
		 WHERE ($1 = 0 OR c.instructor_id = $1)
		 ORDER BY c.starts_at DESC`, instructorID,
	)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	classes := []model.Class{}
	for rows.Next() {
		var c model.Class
		if err := rows.Scan(&c.ID, &c.TrainingID, &c.TrainingTitle, &c.InstructorID, &c.InstructorName, &c.Name, &c.StartsAt, &c.EndsAt, &c.CreatedAt); err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}

// Create inserts a new class.
func (r *ClassRepository) Create(ctx context.Context, c *model.Class) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO classes (training_id, instructor_id, name, starts_at, ends_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		c.TrainingID, c.InstructorID, c.Name, c.StartsAt, c.EndsAt,
	).Scan(&c.ID, &c.CreatedAt)
	return translate(err)
}

// Update persists a class's name and schedule.
func (r *ClassRepository) Update(ctx context.Context, c *model.Class) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE classes SET name = $1, starts_at = $2, ends_at = $3 WHERE id = $4`,
		c.Name, c.StartsAt, c.EndsAt, c.ID,
	)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a class.
func (r *ClassRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM classes WHERE id = $1`, id)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByInstructorID reports how many classes a user instructs. Used as the
// deletion guard for users.
func (r *ClassRepository) CountByInstructorID(ctx context.Context, userID int) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM classes WHERE instructor_id = $1`, userID,
	).Scan(&n)
	return n, translate(err)
}

// AddStudents enrolls students into a class, ignoring already-enrolled pairs.
func (r *ClassRepository) AddStudents(ctx context.Context, classID int, studentIDs []int) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO class_students (class_id, student_id)
		 SELECT $1, unnest($2::int[])
		 ON CONFLICT DO NOTHING`,
		classID, studentIDs,
	)
	return translate(err)
}

// RemoveStudents unenrolls students from a class.
func (r *ClassRepository) RemoveStudents(ctx context.Context, classID int, studentIDs []int) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM class_students WHERE class_id = $1 AND student_id = ANY($2)`,
		classID, studentIDs,
	)
	return translate(err)
}

// ListStudents retrieves the roster of a class.
func (r *ClassRepository) ListStudents(ctx context.Context, classID int) ([]model.Student, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT s.id, s.name, s.email, COALESCE(s.client_name, ''), s.created_at, s.updated_at
		 FROM students s
		 JOIN class_students cs ON s.id = cs.student_id
		 WHERE cs.class_id = $1
		 ORDER BY s.name`, classID,
	)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	students := []model.Student{}
	for rows.Next() {
		var s model.Student
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.ClientName, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

// CreateLesson adds a lesson to a class.
func (r *ClassRepository) CreateLesson(ctx context.Context, l *model.Lesson) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO lessons (class_id, title, scheduled_at)
		 VALUES ($1, $2, $3) RETURNING id`,
		l.ClassID, l.Title, l.ScheduledAt,
	).Scan(&l.ID)
	return translate(err)
}

// ListLessons retrieves the lessons of a class in schedule order.
func (r *ClassRepository) ListLessons(ctx context.Context, classID int) ([]model.Lesson, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, class_id, title, scheduled_at
		 FROM lessons WHERE class_id = $1 ORDER BY scheduled_at`, classID,
	)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	lessons := []model.Lesson{}
	for rows.Next() {
		var l model.Lesson
		if err := rows.Scan(&l.ID, &l.ClassID, &l.Title, &l.ScheduledAt); err != nil {
			return nil, err
		}
		lessons = append(lessons, l)
	}
	return lessons, rows.Err()
}

// GetLesson retrieves a lesson by ID.
func (r *ClassRepository) GetLesson(ctx context.Context, id int) (*model.Lesson, error) {
	l := &model.Lesson{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, class_id, title, scheduled_at FROM lessons WHERE id = $1`, id,
	).Scan(&l.ID, &l.ClassID, &l.Title, &l.ScheduledAt)
	if err != nil {
		return nil, translate(err)
	}
	return l, nil
}

// SaveAttendance upserts attendance records for a lesson in one round trip.
func (r *ClassRepository) SaveAttendance(ctx context.Context, lessonID int, records []model.Attendance) error {
	batch := &pgx.Batch{}
	for _, rec := range records {
		batch.Queue(
			`INSERT INTO lesson_attendance (lesson_id, student_id, present)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (lesson_id, student_id) DO UPDATE SET present = EXCLUDED.present`,
			lessonID, rec.StudentID, rec.Present,
		)
	}
	return translate(r.pool.SendBatch(ctx, batch).Close())
}

// ListAttendance retrieves attendance for a lesson.
func (r *ClassRepository) ListAttendance(ctx context.Context, lessonID int) ([]model.Attendance, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT lesson_id, student_id, present
		 FROM lesson_attendance WHERE lesson_id = $1 ORDER BY student_id`, lessonID,
	)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	records := []model.Attendance{}
	for rows.Next() {
		var a model.Attendance
		if err := rows.Scan(&a.LessonID, &a.StudentID, &a.Present); err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	return records, rows.Err()
}
