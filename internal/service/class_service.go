package service

import (
	"context"
	"errors"
	"time"

	"github.com/praxis-platform/praxis-backend/internal/model"
	"github.com/praxis-platform/praxis-backend/internal/repository"
)

// ClassService manages classes, their rosters, lessons, attendance, and
// certificate issuance.
type ClassService struct {
	classes      *repository.ClassRepository
	trainings    *repository.TrainingRepository
	users        *repository.UserRepository
	certificates *repository.CertificateRepository
}

// NewClassService creates a new ClassService.
func NewClassService(
	classes *repository.ClassRepository,
	trainings *repository.TrainingRepository,
	users *repository.UserRepository,
	certificates *repository.CertificateRepository,
) *ClassService {
	return &ClassService{classes: classes, trainings: trainings, users: users, certificates: certificates}
}

// Get returns one class.
func (s *ClassService) Get(ctx context.Context, id int) (*model.Class, error) {
	c, err := s.classes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

// List returns classes; instructorID 0 means every class, anything else scopes
// the listing to that instructor.
func (s *ClassService) List(ctx context.Context, instructorID int) ([]model.Class, error) {
	return s.classes.List(ctx, instructorID)
}

// Create schedules a class after confirming the training and instructor exist.
func (s *ClassService) Create(ctx context.Context, req *model.CreateClassRequest) (*model.Class, error) {
	if _, err := s.trainings.GetByID(ctx, req.TrainingID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if _, err := s.users.GetByID(ctx, req.InstructorID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	c := &model.Class{
		TrainingID:   req.TrainingID,
		InstructorID: req.InstructorID,
		Name:         req.Name,
		StartsAt:     req.StartsAt,
		EndsAt:       req.EndsAt,
	}
	if err := s.classes.Create(ctx, c); err != nil {
		if errors.Is(err, repository.ErrReferenced) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.classes.GetByID(ctx, c.ID)
}

// Update persists a class's name and schedule.
func (s *ClassService) Update(ctx context.Context, id int, req *model.UpdateClassRequest) (*model.Class, error) {
	c := &model.Class{ID: id, Name: req.Name, StartsAt: req.StartsAt, EndsAt: req.EndsAt}
	if err := s.classes.Update(ctx, c); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.classes.GetByID(ctx, id)
}

// Delete removes a class together with its roster, lessons, and attendance
// (the schema cascades those).
func (s *ClassService) Delete(ctx context.Context, id int) error {
	if err := s.classes.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// Roster returns the students enrolled in a class.
func (s *ClassService) Roster(ctx context.Context, classID int) ([]model.Student, error) {
	if _, err := s.Get(ctx, classID); err != nil {
		return nil, err
	}
	return s.classes.ListStudents(ctx, classID)
}

// Enroll adds students to a class. Already-enrolled students are skipped
// silently; an unknown student fails the call.
func (s *ClassService) Enroll(ctx context.Context, classID int, studentIDs []int) error {
	if _, err := s.Get(ctx, classID); err != nil {
		return err
	}
	if err := s.classes.AddStudents(ctx, classID, studentIDs); err != nil {
		if errors.Is(err, repository.ErrReferenced) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// Unenroll removes students from a class.
func (s *ClassService) Unenroll(ctx context.Context, classID int, studentIDs []int) error {
	if _, err := s.Get(ctx, classID); err != nil {
		return err
	}
	return s.classes.RemoveStudents(ctx, classID, studentIDs)
}

// Lessons returns a class's lessons in schedule order.
func (s *ClassService) Lessons(ctx context.Context, classID int) ([]model.Lesson, error) {
	if _, err := s.Get(ctx, classID); err != nil {
		return nil, err
	}
	return s.classes.ListLessons(ctx, classID)
}

// AddLesson appends a lesson to a class.
func (s *ClassService) AddLesson(ctx context.Context, classID int, req *model.CreateLessonRequest) (*model.Lesson, error) {
	if _, err := s.Get(ctx, classID); err != nil {
		return nil, err
	}

	l := &model.Lesson{ClassID: classID, Title: req.Title, ScheduledAt: req.ScheduledAt}
	if err := s.classes.CreateLesson(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// SaveAttendance records attendance for one lesson. Every referenced student
// must be on the class roster.
func (s *ClassService) SaveAttendance(ctx context.Context, classID, lessonID int, records []model.Attendance) error {
	lesson, err := s.classes.GetLesson(ctx, lessonID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if lesson.ClassID != classID {
		return ErrLessonNotInClass
	}

	roster, err := s.classes.ListStudents(ctx, classID)
	if err != nil {
		return err
	}
	enrolled := make(map[int]struct{}, len(roster))
	for _, student := range roster {
		enrolled[student.ID] = struct{}{}
	}
	for _, rec := range records {
		if _, ok := enrolled[rec.StudentID]; !ok {
			return ErrNotEnrolled
		}
	}

	return s.classes.SaveAttendance(ctx, lessonID, records)
}

// Attendance returns the recorded attendance for one lesson.
func (s *ClassService) Attendance(ctx context.Context, classID, lessonID int) ([]model.Attendance, error) {
	lesson, err := s.classes.GetLesson(ctx, lessonID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if lesson.ClassID != classID {
		return nil, ErrLessonNotInClass
	}
	return s.classes.ListAttendance(ctx, lessonID)
}

// IssueCertificates issues a certificate to each listed student of the class.
// Expiry derives from the training's validity window when one is set.
func (s *ClassService) IssueCertificates(ctx context.Context, classID int, studentIDs []int) ([]model.Certificate, error) {
	class, err := s.Get(ctx, classID)
	if err != nil {
		return nil, err
	}
	training, err := s.trainings.GetByID(ctx, class.TrainingID)
	if err != nil {
		return nil, err
	}

	roster, err := s.classes.ListStudents(ctx, classID)
	if err != nil {
		return nil, err
	}
	enrolled := make(map[int]struct{}, len(roster))
	for _, student := range roster {
		enrolled[student.ID] = struct{}{}
	}

	now := time.Now()
	var expires *time.Time
	if training.ValidityDays != nil {
		e := now.AddDate(0, 0, *training.ValidityDays)
		expires = &e
	}

	certs := make([]model.Certificate, 0, len(studentIDs))
	for _, studentID := range dedupeInts(studentIDs) {
		if _, ok := enrolled[studentID]; !ok {
			return nil, ErrNotEnrolled
		}
		cert := model.Certificate{
			StudentID: studentID,
			ClassID:   classID,
			IssuedAt:  now,
			ExpiresAt: expires,
		}
		if err := s.certificates.Create(ctx, &cert); err != nil {
			return nil, err
		}
		certs = append(certs, cert)
	}
	return certs, nil
}

// Certificates lists the certificates issued for a class.
func (s *ClassService) Certificates(ctx context.Context, classID int) ([]model.Certificate, error) {
	if _, err := s.Get(ctx, classID); err != nil {
		return nil, err
	}
	return s.certificates.ListByClass(ctx, classID)
}
