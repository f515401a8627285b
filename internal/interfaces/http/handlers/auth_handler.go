package handlers

import (
	"context"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"lendcore.backend/internal/domain/entities"
	domainerrors "lendcore.backend/internal/domain/errors"
	"lendcore.backend/internal/interfaces/http/response"
	"lendcore.backend/internal/validation"
	"lendcore.backend/pkg/utils"
)

type AuthService interface {
	Register(ctx context.Context, input *entities.RegisterInput, idImageURL, profileImageURL string) (*entities.User, error)
	Login(ctx context.Context, input *entities.LoginInput) error
	VerifyCode(ctx context.Context, input *entities.VerifyCodeInput) (string, *entities.User, error)
	ResetPassword(ctx context.Context, input *entities.ResetPasswordInput) error
	SetNewPassword(ctx context.Context, input *entities.SetNewPasswordInput) error
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authUsecase AuthService
	uploadDir   string
	uploadBase  string
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUsecase AuthService, uploadDir, uploadBase string) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		uploadDir:   uploadDir,
		uploadBase:  uploadBase,
	}
}

// Register registers a new user from a multipart form with ID and
// profile images
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var input entities.RegisterInput
	if err := validation.BindForm(c, &input); err != nil {
		response.Error(c, err)
		return
	}

	idImageURL, err := h.saveUpload(c, "idImage")
	if err != nil {
		response.Error(c, err)
		return
	}
	profileImageURL, err := h.saveUpload(c, "profileImage")
	if err != nil {
		response.Error(c, err)
		return
	}

	user, err := h.authUsecase.Register(c.Request.Context(), &input, idImageURL, profileImageURL)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": "registration successful, check your email for a verification code",
		"user":    user,
	})
}

// Login checks credentials and sends a verification code
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input entities.LoginInput
	if err := validation.BindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}

	if err := h.authUsecase.Login(c.Request.Context(), &input); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "verification code sent",
	})
}

// VerifyCode exchanges a verification code for a session token
// POST /api/v1/auth/verify-code
func (h *AuthHandler) VerifyCode(c *gin.Context) {
	var input entities.VerifyCodeInput
	if err := validation.BindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}

	token, user, err := h.authUsecase.VerifyCode(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"accessToken": token,
		"user":        user,
	})
}

// ResetPassword sends a password reset link
// POST /api/v1/auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var input entities.ResetPasswordInput
	if err := validation.BindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}

	if err := h.authUsecase.ResetPassword(c.Request.Context(), &input); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "if the email exists, a reset link has been sent",
	})
}

// SetNewPassword completes a password reset
// POST /api/v1/auth/set-new-password
func (h *AuthHandler) SetNewPassword(c *gin.Context) {
	var input entities.SetNewPasswordInput
	if err := validation.BindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}

	if err := h.authUsecase.SetNewPassword(c.Request.Context(), &input); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "password updated",
	})
}

// saveUpload stores a required multipart file under a generated name
// and returns its public URL.
func (h *AuthHandler) saveUpload(c *gin.Context, field string) (string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		return "", domainerrors.Validation(map[string]string{field: "file is required"})
	}
	return h.storeFile(c, file)
}

func (h *AuthHandler) storeFile(c *gin.Context, file *multipart.FileHeader) (string, error) {
	name := utils.GenerateUUIDv7().String() + filepath.Ext(file.Filename)
	dst := filepath.Join(h.uploadDir, name)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		return "", domainerrors.InternalError(err)
	}
	return h.uploadBase + "/" + name, nil
}
