package service

import (
	"context"
	"errors"

	"github.com/praxis-platform/praxis-backend/internal/model"
	"github.com/praxis-platform/praxis-backend/internal/repository"
)

// TrainingService manages course templates.
type TrainingService struct {
	trainings *repository.TrainingRepository
}

// NewTrainingService creates a new TrainingService.
func NewTrainingService(trainings *repository.TrainingRepository) *TrainingService {
	return &TrainingService{trainings: trainings}
}

// Get returns one training.
func (s *TrainingService) Get(ctx context.Context, id int) (*model.Training, error) {
	t, err := s.trainings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

// List returns a page of trainings with an optional title search.
func (s *TrainingService) List(ctx context.Context, page, perPage int, search string) ([]model.Training, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return s.trainings.List(ctx, page, perPage, search)
}

// Create inserts a training. New trainings default to active unless the
// payload says otherwise.
func (s *TrainingService) Create(ctx context.Context, req *model.CreateTrainingRequest) (*model.Training, error) {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	t := &model.Training{
		Title:         req.Title,
		Description:   req.Description,
		DurationHours: req.DurationHours,
		ValidityDays:  req.ValidityDays,
		IsActive:      active,
	}
	if err := s.trainings.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Patch applies the supplied fields to an existing training.
func (s *TrainingService) Patch(ctx context.Context, id int, req *model.PatchTrainingRequest) (*model.Training, error) {
	t, err := s.trainings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		t.Title = *req.Title
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.DurationHours != nil {
		t.DurationHours = *req.DurationHours
	}
	if req.ValidityDays != nil {
		t.ValidityDays = req.ValidityDays
	}
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}

	if err := s.trainings.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Delete removes a training. One still referenced by classes is refused.
func (s *TrainingService) Delete(ctx context.Context, id int) error {
	if err := s.trainings.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return ErrNotFound
		case errors.Is(err, repository.ErrReferenced):
			return ErrTrainingInUse
		}
		return err
	}
	return nil
}
