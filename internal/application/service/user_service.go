package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/sangkips/kwitansi-api/internal/domain/entity"
	"github.com/sangkips/kwitansi-api/internal/domain/enum"
	"github.com/sangkips/kwitansi-api/internal/domain/repository"
	"github.com/sangkips/kwitansi-api/pkg/apperror"
	"github.com/sangkips/kwitansi-api/pkg/pagination"
)

// UserService handles user management operations
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// ListUsersInput represents the input for listing users
type ListUsersInput struct {
	Page    int
	PerPage int
	Search  string
}

// ListUsersOutput represents the output for listing users
type ListUsersOutput struct {
	Users      []entity.User
	Pagination *pagination.Pagination
}

// ListUsers returns a paginated list of users
func (s *UserService) ListUsers(ctx context.Context, input *ListUsersInput) (*ListUsersOutput, error) {
	params := &pagination.PaginationParams{
		Page:    input.Page,
		PerPage: input.PerPage,
	}
	params.Validate()

	users, total, err := s.userRepo.List(ctx, params, input.Search)
	if err != nil {
		return nil, err
	}

	return &ListUsersOutput{
		Users:      users,
		Pagination: pagination.NewPagination(params.Page, params.PerPage, total),
	}, nil
}

// GetUser returns a user by ID
func (s *UserService) GetUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrNotFound
	}
	return user, nil
}

// UpdateUserRoleInput represents the input for changing a user's role
type UpdateUserRoleInput struct {
	ActorID uuid.UUID
	UserID  uuid.UUID
	Role    enum.UserRole
}

// UpdateUserRole changes the role of a user. The last admin cannot be
// demoted.
func (s *UserService) UpdateUserRole(ctx context.Context, input *UpdateUserRoleInput) (*entity.User, error) {
	if !input.Role.IsValid() {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "role", Message: "Role must be admin or bendahara"},
		})
	}

	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrNotFound
	}
	if user.Role == input.Role {
		return user, nil
	}

	if user.IsAdmin() {
		if err := s.ensureAnotherAdmin(ctx); err != nil {
			return nil, err
		}
	}

	user.Role = input.Role
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser soft deletes a user. Admins cannot delete themselves and the
// last admin cannot be deleted.
func (s *UserService) DeleteUser(ctx context.Context, actorID, userID uuid.UUID) error {
	if actorID == userID {
		return apperror.NewBadRequestError("You cannot delete your own account")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.ErrNotFound
	}

	if user.IsAdmin() {
		if err := s.ensureAnotherAdmin(ctx); err != nil {
			return err
		}
	}

	return s.userRepo.Delete(ctx, userID)
}

func (s *UserService) ensureAnotherAdmin(ctx context.Context) error {
	admins, err := s.userRepo.CountAdmins(ctx)
	if err != nil {
		return err
	}
	if admins <= 1 {
		return apperror.NewConflictError("At least one admin account must remain")
	}
	return nil
}
