package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"lendcore.backend/internal/domain/entities"
	domainerrors "lendcore.backend/internal/domain/errors"
	"lendcore.backend/internal/domain/repositories"
	"lendcore.backend/pkg/crypto"
	"lendcore.backend/pkg/utils"
)

// UserUsecase handles profile and account administration
type UserUsecase struct {
	userRepo   repositories.UserRepository
	roleRepo   repositories.RoleRepository
	bcryptCost int
}

// NewUserUsecase creates a new user usecase
func NewUserUsecase(userRepo repositories.UserRepository, roleRepo repositories.RoleRepository, bcryptCost int) *UserUsecase {
	return &UserUsecase{
		userRepo:   userRepo,
		roleRepo:   roleRepo,
		bcryptCost: bcryptCost,
	}
}

// Get gets a user by ID
func (u *UserUsecase) Get(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies the provided profile fields, leaving blank ones
// unchanged. Changing email re-checks uniqueness.
func (u *UserUsecase) UpdateProfile(ctx context.Context, userID uuid.UUID, input *entities.UpdateProfileInput) (*entities.User, error) {
	user, err := u.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Email != "" && input.Email != user.Email {
		if existing, err := u.userRepo.GetByEmail(ctx, input.Email); err == nil && existing.ID != userID {
			return nil, domainerrors.Conflict("an account with this email already exists")
		} else if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
			return nil, err
		}
		user.Email = input.Email
		user.EmailVerified = false
	}
	if input.FullName != "" {
		user.FullName = input.FullName
	}
	if input.PhoneNumber != "" && input.PhoneNumber != user.PhoneNumber {
		user.PhoneNumber = input.PhoneNumber
		user.PhoneVerified = false
	}

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateSecurity toggles the verification flags an admin may set
func (u *UserUsecase) UpdateSecurity(ctx context.Context, userID uuid.UUID, input *entities.UpdateSecurityInput) (*entities.User, error) {
	user, err := u.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.EmailVerified != nil {
		user.EmailVerified = *input.EmailVerified
	}
	if input.PhoneVerified != nil {
		user.PhoneVerified = *input.PhoneVerified
	}

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword verifies the current password before setting a new one
func (u *UserUsecase) ChangePassword(ctx context.Context, userID uuid.UUID, input *entities.ChangePasswordInput) error {
	user, err := u.Get(ctx, userID)
	if err != nil {
		return err
	}

	if !crypto.CheckPassword(input.CurrentPassword, user.PasswordHash) {
		return domainerrors.InvalidCredentials()
	}
	if input.CurrentPassword == input.NewPassword {
		return domainerrors.BadRequest("new password must be different from the current password")
	}

	hash, err := crypto.HashPasswordWithCost(input.NewPassword, u.bcryptCost)
	if err != nil {
		return domainerrors.InternalError(err)
	}
	return u.userRepo.UpdatePassword(ctx, userID, hash)
}

// Delete soft-deletes a user account
func (u *UserUsecase) Delete(ctx context.Context, userID uuid.UUID) error {
	if _, err := u.Get(ctx, userID); err != nil {
		return err
	}
	return u.userRepo.SoftDelete(ctx, userID)
}

// SetActive activates or deactivates a user account
func (u *UserUsecase) SetActive(ctx context.Context, userID uuid.UUID, active bool) error {
	if _, err := u.Get(ctx, userID); err != nil {
		return err
	}
	return u.userRepo.SetActive(ctx, userID, active)
}

// AssignRole moves a user into a named role. The role must exist in the
// role table; the built-in names are seeded at startup.
func (u *UserUsecase) AssignRole(ctx context.Context, userID uuid.UUID, roleName string) (*entities.User, error) {
	if _, err := u.roleRepo.GetByName(ctx, roleName); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("role not found")
		}
		return nil, err
	}

	user, err := u.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Role = roleName
	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// List returns a page of users with the total count
func (u *UserUsecase) List(ctx context.Context, params utils.PaginationParams) ([]*entities.User, *utils.PaginationMeta, error) {
	users, total, err := u.userRepo.List(ctx, params.Limit, params.CalculateOffset())
	if err != nil {
		return nil, nil, err
	}
	meta := utils.CalculateMeta(total, params.Page, params.Limit)
	return users, &meta, nil
}
