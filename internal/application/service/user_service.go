package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/nippo-api/internal/domain/entity"
	"github.com/sangkips/nippo-api/internal/domain/enum"
	"github.com/sangkips/nippo-api/internal/domain/repository"
	"github.com/sangkips/nippo-api/pkg/apperror"
	"github.com/sangkips/nippo-api/pkg/pagination"
)

// UserService handles user-related operations
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUserInput represents the create user input
type CreateUserInput struct {
	Email      string
	Name       string
	Role       enum.UserRole
	EmployeeID *string
	Phone      *string
	Department *string
}

// CreateUser registers a new user. Emails are unique.
func (s *UserService) CreateUser(ctx context.Context, input *CreateUserInput) (*entity.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, apperror.NewFieldError("email", "Email is required")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperror.NewFieldError("name", "Name is required")
	}

	role := input.Role
	if role == "" {
		role = enum.UserRoleSales
	}
	if !role.IsValid() {
		return nil, apperror.NewFieldError("role", "Role must be one of ADMIN, MANAGER, SALES")
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Email is already registered")
	}

	user := &entity.User{
		Email:      email,
		Name:       strings.TrimSpace(input.Name),
		Role:       role,
		EmployeeID: input.EmployeeID,
		Phone:      input.Phone,
		Department: input.Department,
		IsActive:   true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// ListUsers lists users with filtering
func (s *UserService) ListUsers(ctx context.Context, params *repository.UserFilterParams) (*pagination.PaginatedResult[entity.User], error) {
	users, total, err := s.userRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(users, pag), nil
}
