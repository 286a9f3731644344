package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/loungecast/loungecast-backend/pkg/config"
	"github.com/loungecast/loungecast-backend/pkg/db/models"
	"github.com/loungecast/loungecast-backend/pkg/enums"
	pkgerrors "github.com/loungecast/loungecast-backend/pkg/errors"
	"github.com/loungecast/loungecast-backend/pkg/security"
)

// CreateInput captures an admin-created account.
type CreateInput struct {
	Username    string
	Password    string
	DisplayName string
	Role        enums.UserRole
}

// userStore is the slice of the repository the admin service needs.
type userStore interface {
	Create(ctx context.Context, dto CreateUserDTO) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	CountByRole(ctx context.Context, role enums.UserRole) (int64, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// ServiceParams groups dependencies for the user admin service.
type ServiceParams struct {
	Repo           userStore
	PasswordConfig config.PasswordConfig
}

// Service manages accounts on the admin surface.
type Service struct {
	repo     userStore
	password config.PasswordConfig
}

// NewService builds a user admin service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	return &Service{repo: params.Repo, password: params.PasswordConfig}, nil
}

// List returns every account, newest first.
func (s *Service) List(ctx context.Context) ([]*UserDTO, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}
	dtos := make([]*UserDTO, 0, len(list))
	for i := range list {
		dtos = append(dtos, FromModel(&list[i]))
	}
	return dtos, nil
}

// Create provisions an account with an explicit role.
func (s *Service) Create(ctx context.Context, input CreateInput) (*UserDTO, error) {
	username := strings.ToLower(strings.TrimSpace(input.Username))
	if username == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username is required")
	}
	if !input.Role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid user role")
	}

	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "username already taken")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup username")
	}

	hash, err := security.HashPassword(input.Password, s.password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "hash password")
	}

	displayName := strings.TrimSpace(input.DisplayName)
	if displayName == "" {
		displayName = username
	}

	user, err := s.repo.Create(ctx, CreateUserDTO{
		Username:     username,
		PasswordHash: hash,
		DisplayName:  displayName,
		Role:         input.Role,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}
	return FromModel(user), nil
}

// UpdateInput carries partial account edits. Nil fields keep their current
// value; Password replaces the stored hash.
type UpdateInput struct {
	DisplayName *string
	Password    *string
	Role        *enums.UserRole
}

// Update edits an account. The last remaining admin cannot be demoted.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*UserDTO, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find user")
	}

	fields := map[string]any{}
	if input.DisplayName != nil {
		displayName := strings.TrimSpace(*input.DisplayName)
		if displayName == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "display name required")
		}
		fields["display_name"] = displayName
	}
	if input.Password != nil {
		hash, err := security.HashPassword(*input.Password, s.password)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "hash password")
		}
		fields["password_hash"] = hash
	}
	if input.Role != nil {
		if !input.Role.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid user role")
		}
		if user.Role == enums.UserRoleAdmin && *input.Role != enums.UserRoleAdmin {
			admins, err := s.repo.CountByRole(ctx, enums.UserRoleAdmin)
			if err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count admins")
			}
			if admins <= 1 {
				return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "cannot demote the last admin")
			}
		}
		fields["role"] = *input.Role
	}
	if len(fields) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}

	ok, err := s.repo.UpdateFields(ctx, id, fields)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload user")
	}
	return FromModel(updated), nil
}

// Delete removes an account. The last remaining admin cannot be deleted.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find user")
	}

	if user.Role == enums.UserRoleAdmin {
		admins, err := s.repo.CountByRole(ctx, enums.UserRoleAdmin)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count admins")
		}
		if admins <= 1 {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "cannot delete the last admin")
		}
	}

	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete user")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	return nil
}
