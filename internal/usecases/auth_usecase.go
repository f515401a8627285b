package usecases

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"lendcore.backend/internal/domain/entities"
	domainerrors "lendcore.backend/internal/domain/errors"
	"lendcore.backend/internal/domain/repositories"
	"lendcore.backend/internal/infrastructure/email"
	"lendcore.backend/internal/validation"
	"lendcore.backend/pkg/crypto"
	"lendcore.backend/pkg/jwt"
	"lendcore.backend/pkg/logger"
	"lendcore.backend/pkg/utils"
)

// AuthUsecase handles registration and the two-step login flow. Login
// never returns a session token directly; it issues a one-time code that
// must be verified before a token is minted.
type AuthUsecase struct {
	userRepo    repositories.UserRepository
	otpStore    OTPVerifier
	mailer      email.Mailer
	jwtService  *jwt.JWTService
	bcryptCost  int
	frontendURL string
}

// OTPVerifier is the consumed interface over the verification code store
type OTPVerifier interface {
	Store(ctx context.Context, userID uuid.UUID, code string) error
	Verify(ctx context.Context, userID uuid.UUID, code string) (bool, error)
	Invalidate(ctx context.Context, userID uuid.UUID) error
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	userRepo repositories.UserRepository,
	otpStore OTPVerifier,
	mailer email.Mailer,
	jwtService *jwt.JWTService,
	bcryptCost int,
	frontendURL string,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:    userRepo,
		otpStore:    otpStore,
		mailer:      mailer,
		jwtService:  jwtService,
		bcryptCost:  bcryptCost,
		frontendURL: frontendURL,
	}
}

// Register creates a new user account in the user role. The uploaded
// document URLs are produced by the handler before this is called.
func (u *AuthUsecase) Register(ctx context.Context, input *entities.RegisterInput, idImageURL, profileImageURL string) (*entities.User, error) {
	if _, err := u.userRepo.GetByEmail(ctx, input.Email); err == nil {
		return nil, domainerrors.Conflict("an account with this email already exists")
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	dob, err := validation.ParseDate(input.DateOfBirth)
	if err != nil {
		return nil, domainerrors.Validation(map[string]string{"dateOfBirth": "must be a valid date"})
	}

	hash, err := crypto.HashPasswordWithCost(input.Password, u.bcryptCost)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	now := time.Now()
	user := &entities.User{
		ID:               utils.GenerateUUIDv7(),
		Email:            input.Email,
		PasswordHash:     hash,
		Role:             entities.RoleUser,
		FullName:         input.FullName,
		NationalIDNumber: input.NationalIDNumber,
		PhoneNumber:      input.PhoneNumber,
		Address:          input.Address,
		DateOfBirth:      dob,
		Gender:           input.Gender,
		IDImageURL:       idImageURL,
		ProfileImageURL:  profileImageURL,
		IsActive:         true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		// The pre-check can lose a race; the unique index is the backstop.
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("an account with this email already exists")
		}
		return nil, err
	}

	if err := u.sendVerificationCode(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks credentials and issues a fresh verification code. It does
// not return a token; the caller must complete VerifyCode.
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) error {
	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.InvalidCredentials()
		}
		return err
	}

	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return domainerrors.InvalidCredentials()
	}
	if !user.IsActive {
		return domainerrors.Forbidden("account is deactivated")
	}

	return u.sendVerificationCode(ctx, user)
}

// VerifyCode completes login. A correct code is consumed and exchanged
// for a session token; a wrong or expired code leaves nothing issued.
func (u *AuthUsecase) VerifyCode(ctx context.Context, input *entities.VerifyCodeInput) (string, *entities.User, error) {
	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return "", nil, domainerrors.InvalidCredentials()
		}
		return "", nil, err
	}

	ok, err := u.otpStore.Verify(ctx, user.ID, input.VerificationCode)
	if err != nil {
		return "", nil, domainerrors.InternalError(err)
	}
	if !ok {
		return "", nil, domainerrors.BadRequest("invalid or expired verification code")
	}

	token, err := u.jwtService.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", nil, domainerrors.InternalError(err)
	}
	return token, user, nil
}

// ResetPassword emails a short-lived reset link. Unknown emails get the
// same response as known ones so the endpoint cannot be used to probe
// for accounts.
func (u *AuthUsecase) ResetPassword(ctx context.Context, input *entities.ResetPasswordInput) error {
	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil
		}
		return err
	}

	token, err := u.jwtService.GeneratePasswordResetToken(user.ID, user.Email)
	if err != nil {
		return domainerrors.InternalError(err)
	}

	link := u.frontendURL + "/reset-password?token=" + url.QueryEscape(token)
	if err := u.mailer.SendPasswordResetEmail(ctx, user.Email, link); err != nil {
		logger.Error(ctx, "failed to send password reset email", zap.Error(err),
			zap.String("user_id", user.ID.String()))
	}
	return nil
}

// SetNewPassword completes a reset. The new password must differ from
// the current one.
func (u *AuthUsecase) SetNewPassword(ctx context.Context, input *entities.SetNewPasswordInput) error {
	claims, err := u.jwtService.ValidateTokenForPurpose(input.ResetToken, jwt.PurposePasswordReset)
	if err != nil {
		return domainerrors.Unauthorized("invalid or expired reset token")
	}

	user, err := u.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.Unauthorized("invalid or expired reset token")
		}
		return err
	}

	if crypto.CheckPassword(input.NewPassword, user.PasswordHash) {
		return domainerrors.BadRequest("new password must be different from the current password")
	}

	hash, err := crypto.HashPasswordWithCost(input.NewPassword, u.bcryptCost)
	if err != nil {
		return domainerrors.InternalError(err)
	}
	return u.userRepo.UpdatePassword(ctx, user.ID, hash)
}

// sendVerificationCode issues and stores an OTP, then delivers it. A
// generation or storage failure surfaces to the caller: without a
// stored code the login can never complete, so a success response
// would be a lie. Only the mail send is best effort, because a stored
// code can be re-requested.
func (u *AuthUsecase) sendVerificationCode(ctx context.Context, user *entities.User) error {
	code, err := crypto.GenerateOTP()
	if err != nil {
		return domainerrors.InternalError(err)
	}
	if err := u.otpStore.Store(ctx, user.ID, code); err != nil {
		return domainerrors.InternalError(err)
	}
	if err := u.mailer.SendVerificationEmail(ctx, user.Email, code); err != nil {
		logger.Error(ctx, "failed to send verification email", zap.Error(err),
			zap.String("user_id", user.ID.String()))
	}
	return nil
}
