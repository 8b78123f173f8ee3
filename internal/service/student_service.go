package service

import (
	"context"
	"errors"

	"github.com/praxis-platform/praxis-backend/internal/model"
	"github.com/praxis-platform/praxis-backend/internal/repository"
)

// StudentService manages student records and their certificate history.
type StudentService struct {
	students     *repository.StudentRepository
	certificates *repository.CertificateRepository
}

// NewStudentService creates a new StudentService.
func NewStudentService(students *repository.StudentRepository, certificates *repository.CertificateRepository) *StudentService {
	return &StudentService{students: students, certificates: certificates}
}

// Get returns one student.
func (s *StudentService) Get(ctx context.Context, id int) (*model.Student, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return student, nil
}

// List returns a page of students with an optional name/email search.
func (s *StudentService) List(ctx context.Context, page, perPage int, search string) ([]model.Student, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return s.students.List(ctx, page, perPage, search)
}

// Create inserts a student record.
func (s *StudentService) Create(ctx context.Context, req *model.CreateStudentRequest) (*model.Student, error) {
	student := &model.Student{
		Name:       req.Name,
		Email:      req.Email,
		ClientName: req.ClientName,
	}
	if err := s.students.Create(ctx, student); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return student, nil
}

// Update applies the supplied fields to an existing student.
func (s *StudentService) Update(ctx context.Context, id int, req *model.UpdateStudentRequest) (*model.Student, error) {
	student, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		student.Name = *req.Name
	}
	if req.Email != nil {
		student.Email = *req.Email
	}
	if req.ClientName != nil {
		student.ClientName = *req.ClientName
	}

	if err := s.students.Update(ctx, student); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return student, nil
}

// Delete removes a student. Enrollments or certificates still referencing the
// record refuse the deletion.
func (s *StudentService) Delete(ctx context.Context, id int) error {
	if err := s.students.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return ErrNotFound
		case errors.Is(err, repository.ErrReferenced):
			return ErrStudentInUse
		}
		return err
	}
	return nil
}

// Certificates lists the certificates a student holds, newest first.
func (s *StudentService) Certificates(ctx context.Context, id int) ([]model.Certificate, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.certificates.ListByStudent(ctx, id)
}
