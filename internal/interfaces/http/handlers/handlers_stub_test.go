package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"lendcore.backend/internal/domain/entities"
	domainerrors "lendcore.backend/internal/domain/errors"
	"lendcore.backend/internal/interfaces/http/middleware"
	"lendcore.backend/pkg/utils"
)

// withIdentity injects an authenticated caller the way AuthMiddleware
// would after verifying a token.
func withIdentity(userID uuid.UUID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Set(middleware.UserEmailKey, "caller@example.com")
		c.Set(middleware.UserRoleKey, role)
		c.Next()
	}
}

func performJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type loanServiceStub struct {
	applyFn        func(ctx context.Context, input *entities.ApplyLoanInput) (*entities.Loan, error)
	getFn          func(ctx context.Context, loanID uuid.UUID) (*entities.Loan, error)
	listByUserFn   func(ctx context.Context, userID uuid.UUID) ([]*entities.Loan, error)
	updateStatusFn func(ctx context.Context, loanID uuid.UUID, next entities.LoanStatus, comment string) (*entities.Loan, error)
	topUpFn        func(ctx context.Context, input *entities.TopUpLoanInput) (*entities.Loan, error)
	liquidateFn    func(ctx context.Context, loanID uuid.UUID) error
	reportsFn      func(ctx context.Context, start, end time.Time) (*entities.LoanReport, error)
}

func (s *loanServiceStub) Apply(ctx context.Context, input *entities.ApplyLoanInput) (*entities.Loan, error) {
	if s.applyFn != nil {
		return s.applyFn(ctx, input)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *loanServiceStub) Get(ctx context.Context, loanID uuid.UUID) (*entities.Loan, error) {
	if s.getFn != nil {
		return s.getFn(ctx, loanID)
	}
	return nil, domainerrors.NotFound("loan not found")
}

func (s *loanServiceStub) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Loan, error) {
	if s.listByUserFn != nil {
		return s.listByUserFn(ctx, userID)
	}
	return []*entities.Loan{}, nil
}

func (s *loanServiceStub) UpdateStatus(ctx context.Context, loanID uuid.UUID, next entities.LoanStatus, comment string) (*entities.Loan, error) {
	if s.updateStatusFn != nil {
		return s.updateStatusFn(ctx, loanID, next, comment)
	}
	return nil, domainerrors.NotFound("loan not found")
}

func (s *loanServiceStub) TopUp(ctx context.Context, input *entities.TopUpLoanInput) (*entities.Loan, error) {
	if s.topUpFn != nil {
		return s.topUpFn(ctx, input)
	}
	return nil, domainerrors.NotFound("loan not found")
}

func (s *loanServiceStub) Liquidate(ctx context.Context, loanID uuid.UUID) error {
	if s.liquidateFn != nil {
		return s.liquidateFn(ctx, loanID)
	}
	return nil
}

func (s *loanServiceStub) Reports(ctx context.Context, start, end time.Time) (*entities.LoanReport, error) {
	if s.reportsFn != nil {
		return s.reportsFn(ctx, start, end)
	}
	return &entities.LoanReport{StartDate: start, EndDate: end}, nil
}

type paymentServiceStub struct {
	recordFn    func(ctx context.Context, input *entities.RecordPaymentInput) (*entities.Payment, error)
	historyFn   func(ctx context.Context, loanID uuid.UUID) ([]*entities.Payment, error)
	statementFn func(ctx context.Context, loanID uuid.UUID, start, end time.Time) (*entities.Statement, error)
	balanceFn   func(ctx context.Context, loanID uuid.UUID) (decimal.Decimal, error)
}

func (s *paymentServiceStub) Record(ctx context.Context, input *entities.RecordPaymentInput) (*entities.Payment, error) {
	if s.recordFn != nil {
		return s.recordFn(ctx, input)
	}
	return nil, domainerrors.NotFound("loan not found")
}

func (s *paymentServiceStub) History(ctx context.Context, loanID uuid.UUID) ([]*entities.Payment, error) {
	if s.historyFn != nil {
		return s.historyFn(ctx, loanID)
	}
	return []*entities.Payment{}, nil
}

func (s *paymentServiceStub) Statement(ctx context.Context, loanID uuid.UUID, start, end time.Time) (*entities.Statement, error) {
	if s.statementFn != nil {
		return s.statementFn(ctx, loanID, start, end)
	}
	return &entities.Statement{LoanID: loanID}, nil
}

func (s *paymentServiceStub) OutstandingBalance(ctx context.Context, loanID uuid.UUID) (decimal.Decimal, error) {
	if s.balanceFn != nil {
		return s.balanceFn(ctx, loanID)
	}
	return decimal.Zero, nil
}

type authServiceStub struct {
	registerFn       func(ctx context.Context, input *entities.RegisterInput, idImageURL, profileImageURL string) (*entities.User, error)
	loginFn          func(ctx context.Context, input *entities.LoginInput) error
	verifyCodeFn     func(ctx context.Context, input *entities.VerifyCodeInput) (string, *entities.User, error)
	resetPasswordFn  func(ctx context.Context, input *entities.ResetPasswordInput) error
	setNewPasswordFn func(ctx context.Context, input *entities.SetNewPasswordInput) error
}

func (s *authServiceStub) Register(ctx context.Context, input *entities.RegisterInput, idImageURL, profileImageURL string) (*entities.User, error) {
	if s.registerFn != nil {
		return s.registerFn(ctx, input, idImageURL, profileImageURL)
	}
	return &entities.User{ID: uuid.New(), Email: input.Email}, nil
}

func (s *authServiceStub) Login(ctx context.Context, input *entities.LoginInput) error {
	if s.loginFn != nil {
		return s.loginFn(ctx, input)
	}
	return nil
}

func (s *authServiceStub) VerifyCode(ctx context.Context, input *entities.VerifyCodeInput) (string, *entities.User, error) {
	if s.verifyCodeFn != nil {
		return s.verifyCodeFn(ctx, input)
	}
	return "", nil, domainerrors.BadRequest("invalid or expired verification code")
}

func (s *authServiceStub) ResetPassword(ctx context.Context, input *entities.ResetPasswordInput) error {
	if s.resetPasswordFn != nil {
		return s.resetPasswordFn(ctx, input)
	}
	return nil
}

func (s *authServiceStub) SetNewPassword(ctx context.Context, input *entities.SetNewPasswordInput) error {
	if s.setNewPasswordFn != nil {
		return s.setNewPasswordFn(ctx, input)
	}
	return nil
}

type userServiceStub struct {
	getFn            func(ctx context.Context, userID uuid.UUID) (*entities.User, error)
	updateProfileFn  func(ctx context.Context, userID uuid.UUID, input *entities.UpdateProfileInput) (*entities.User, error)
	updateSecurityFn func(ctx context.Context, userID uuid.UUID, input *entities.UpdateSecurityInput) (*entities.User, error)
	changePasswordFn func(ctx context.Context, userID uuid.UUID, input *entities.ChangePasswordInput) error
	deleteFn         func(ctx context.Context, userID uuid.UUID) error
	listFn           func(ctx context.Context, params utils.PaginationParams) ([]*entities.User, *utils.PaginationMeta, error)
	setActiveFn      func(ctx context.Context, userID uuid.UUID, active bool) error
	assignRoleFn     func(ctx context.Context, userID uuid.UUID, roleName string) (*entities.User, error)
}

func (s *userServiceStub) Get(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	if s.getFn != nil {
		return s.getFn(ctx, userID)
	}
	return &entities.User{ID: userID}, nil
}

func (s *userServiceStub) UpdateProfile(ctx context.Context, userID uuid.UUID, input *entities.UpdateProfileInput) (*entities.User, error) {
	if s.updateProfileFn != nil {
		return s.updateProfileFn(ctx, userID, input)
	}
	return &entities.User{ID: userID}, nil
}

func (s *userServiceStub) UpdateSecurity(ctx context.Context, userID uuid.UUID, input *entities.UpdateSecurityInput) (*entities.User, error) {
	if s.updateSecurityFn != nil {
		return s.updateSecurityFn(ctx, userID, input)
	}
	return &entities.User{ID: userID}, nil
}

func (s *userServiceStub) ChangePassword(ctx context.Context, userID uuid.UUID, input *entities.ChangePasswordInput) error {
	if s.changePasswordFn != nil {
		return s.changePasswordFn(ctx, userID, input)
	}
	return nil
}

func (s *userServiceStub) Delete(ctx context.Context, userID uuid.UUID) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, userID)
	}
	return nil
}

func (s *userServiceStub) List(ctx context.Context, params utils.PaginationParams) ([]*entities.User, *utils.PaginationMeta, error) {
	if s.listFn != nil {
		return s.listFn(ctx, params)
	}
	meta := utils.CalculateMeta(0, params.Page, params.Limit)
	return []*entities.User{}, &meta, nil
}

func (s *userServiceStub) SetActive(ctx context.Context, userID uuid.UUID, active bool) error {
	if s.setActiveFn != nil {
		return s.setActiveFn(ctx, userID, active)
	}
	return nil
}

func (s *userServiceStub) AssignRole(ctx context.Context, userID uuid.UUID, roleName string) (*entities.User, error) {
	if s.assignRoleFn != nil {
		return s.assignRoleFn(ctx, userID, roleName)
	}
	return &entities.User{ID: userID, Role: roleName}, nil
}

type roleServiceStub struct {
	createFn func(ctx context.Context, input *entities.CreateRoleInput) (*entities.Role, error)
	listFn   func(ctx context.Context) ([]*entities.Role, error)
	deleteFn func(ctx context.Context, roleID uuid.UUID) error
}

func (s *roleServiceStub) Create(ctx context.Context, input *entities.CreateRoleInput) (*entities.Role, error) {
	if s.createFn != nil {
		return s.createFn(ctx, input)
	}
	return &entities.Role{ID: uuid.New(), Name: input.Name}, nil
}

func (s *roleServiceStub) List(ctx context.Context) ([]*entities.Role, error) {
	if s.listFn != nil {
		return s.listFn(ctx)
	}
	return []*entities.Role{}, nil
}

func (s *roleServiceStub) Delete(ctx context.Context, roleID uuid.UUID) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, roleID)
	}
	return nil
}

type supportServiceStub struct {
	contactFn   func(ctx context.Context, userID uuid.UUID, input *entities.ContactMessageInput) (*entities.SupportChat, error)
	startChatFn func(ctx context.Context, userID uuid.UUID, input *entities.StartChatInput) (*entities.SupportChat, error)
	getChatFn   func(ctx context.Context, chatID uuid.UUID) (*entities.SupportChat, error)
	replyFn     func(ctx context.Context, chatID, senderID uuid.UUID, body string) (*entities.SupportMessage, error)
	messagesFn  func(ctx context.Context, chatID uuid.UUID) ([]*entities.SupportMessage, error)
	deleteFn    func(ctx context.Context, chatID uuid.UUID) error
}

func (s *supportServiceStub) SendContactMessage(ctx context.Context, userID uuid.UUID, input *entities.ContactMessageInput) (*entities.SupportChat, error) {
	if s.contactFn != nil {
		return s.contactFn(ctx, userID, input)
	}
	return &entities.SupportChat{ID: uuid.New(), UserID: userID}, nil
}

func (s *supportServiceStub) StartChat(ctx context.Context, userID uuid.UUID, input *entities.StartChatInput) (*entities.SupportChat, error) {
	if s.startChatFn != nil {
		return s.startChatFn(ctx, userID, input)
	}
	return &entities.SupportChat{ID: uuid.New(), UserID: userID, Subject: input.Subject}, nil
}

func (s *supportServiceStub) GetChat(ctx context.Context, chatID uuid.UUID) (*entities.SupportChat, error) {
	if s.getChatFn != nil {
		return s.getChatFn(ctx, chatID)
	}
	return &entities.SupportChat{ID: chatID}, nil
}

func (s *supportServiceStub) Reply(ctx context.Context, chatID, senderID uuid.UUID, body string) (*entities.SupportMessage, error) {
	if s.replyFn != nil {
		return s.replyFn(ctx, chatID, senderID, body)
	}
	return &entities.SupportMessage{ID: uuid.New(), ChatID: chatID, SenderID: senderID, Body: body}, nil
}

func (s *supportServiceStub) Messages(ctx context.Context, chatID uuid.UUID) ([]*entities.SupportMessage, error) {
	if s.messagesFn != nil {
		return s.messagesFn(ctx, chatID)
	}
	return []*entities.SupportMessage{}, nil
}

func (s *supportServiceStub) DeleteChat(ctx context.Context, chatID uuid.UUID) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, chatID)
	}
	return nil
}
