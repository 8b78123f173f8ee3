package service

import (
	"context"
	"errors"

	"github.com/praxis-platform/praxis-backend/internal/model"
	"github.com/praxis-platform/praxis-backend/internal/repository"
)

type userStore interface {
	GetByID(ctx context.Context, id int) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, page, perPage int, search string) ([]model.User, int, error)
	Create(ctx context.Context, u *model.User) error
	Update(ctx context.Context, u *model.User) error
	UpdateRole(ctx context.Context, userID int, roleID *int) error
	SetActive(ctx context.Context, id int, active bool) error
	Delete(ctx context.Context, id int) error
}

type instructorClassCounter interface {
	CountByInstructorID(ctx context.Context, instructorID int) (int, error)
}

type passwordHasher interface {
	HashPassword(password string) (string, error)
	CheckPassword(hash, password string) error
	GenerateToken(userID int, roleID *int) (string, error)
}

// UserService covers authentication flows and administrative user management.
type UserService struct {
	users   userStore
	classes instructorClassCounter
	auth    passwordHasher
}

// NewUserService creates a new UserService.
func NewUserService(users userStore, classes instructorClassCounter, auth passwordHasher) *UserService {
	return &UserService{users: users, classes: classes, auth: auth}
}

// SignIn authenticates by email and password. Unknown email and wrong password
// collapse into the same error so the response never confirms which emails
// exist.
func (s *UserService) SignIn(ctx context.Context, req *model.SignInRequest) (*model.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	if err := s.auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.auth.GenerateToken(user.ID, user.RoleID)
	if err != nil {
		return nil, err
	}
	return &model.AuthResponse{User: *user, AccessToken: token}, nil
}

// SignUp registers a new account and signs it in. A taken email is reported
// as a conflict.
func (s *UserService) SignUp(ctx context.Context, req *model.SignUpRequest) (*model.AuthResponse, error) {
	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		RoleID:       req.RoleID,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		if errors.Is(err, repository.ErrReferenced) {
			return nil, ErrRoleNotFound
		}
		return nil, err
	}

	token, err := s.auth.GenerateToken(user.ID, user.RoleID)
	if err != nil {
		return nil, err
	}
	return &model.AuthResponse{User: *user, AccessToken: token}, nil
}

// SelectRole reassigns a user's role and reissues the token so the new role is
// reflected in fresh claims. Authorization checks would pick up the change
// regardless, since they read the user row per request.
func (s *UserService) SelectRole(ctx context.Context, userID, roleID int) (*model.AuthResponse, error) {
	if err := s.users.UpdateRole(ctx, userID, &roleID); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrNotFound
		case errors.Is(err, repository.ErrReferenced):
			return nil, ErrRoleNotFound
		}
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	token, err := s.auth.GenerateToken(user.ID, user.RoleID)
	if err != nil {
		return nil, err
	}
	return &model.AuthResponse{User: *user, AccessToken: token}, nil
}

// Get returns one user.
func (s *UserService) Get(ctx context.Context, id int) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// List returns a page of users with an optional search over name and email.
func (s *UserService) List(ctx context.Context, page, perPage int, search string) ([]model.User, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return s.users.List(ctx, page, perPage, search)
}

// Create is the administrative account creation path.
func (s *UserService) Create(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		RoleID:       req.RoleID,
	}
	if err := s.users.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrEmailTaken
		case errors.Is(err, repository.ErrReferenced):
			return nil, ErrRoleNotFound
		}
		return nil, err
	}
	return user, nil
}

// Update applies the supplied fields to an existing user.
func (s *UserService) Update(ctx context.Context, id int, req *model.UpdateUserRequest) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Password != nil {
		hash, err := s.auth.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if req.RoleID != nil {
		user.RoleID = req.RoleID
	}

	if err := s.users.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrEmailTaken
		case errors.Is(err, repository.ErrReferenced):
			return nil, ErrRoleNotFound
		}
		return nil, err
	}
	return s.users.GetByID(ctx, id)
}

// SetActive enables or disables an account. Disabled accounts fail sign-in.
func (s *UserService) SetActive(ctx context.Context, id int, active bool) error {
	if err := s.users.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// Delete removes a user after checking they instruct no classes.
func (s *UserService) Delete(ctx context.Context, id int) error {
	count, err := s.classes.CountByInstructorID(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrUserHasClasses
	}

	if err := s.users.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return ErrNotFound
		case errors.Is(err, repository.ErrReferenced):
			return ErrUserHasClasses
		}
		return err
	}
	return nil
}
