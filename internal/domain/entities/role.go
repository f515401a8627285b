package entities

import (
	"time"

	"github.com/google/uuid"
)

// Built-in role names. Custom roles created through the admin surface
// have no permissions until added to the permission table.
const (
	RoleAdmin       = "admin"
	RoleLoanOfficer = "loan_officer"
	RoleUser        = "user"
)

// Operation names gated by the access control layer
const (
	OpLoanApply     = "loan:apply"
	OpLoanRead      = "loan:read"
	OpLoanTopUp     = "loan:topup"
	OpLoanLiquidate = "loan:liquidate"
	OpLoanStatus    = "loan:status"
	OpLoanReports   = "loan:reports"
	OpPaymentRecord = "payment:record"
	OpPaymentRead   = "payment:read"
	OpRoleManage    = "role:manage"
	OpUserManage    = "user:manage"
	OpSupportUse    = "support:use"
)

// rolePermissions maps a role name to the set of operations it may invoke
var rolePermissions = map[string]map[string]bool{
	RoleAdmin: {
		OpLoanApply: true, OpLoanRead: true, OpLoanTopUp: true,
		OpLoanLiquidate: true, OpLoanStatus: true, OpLoanReports: true,
		OpPaymentRecord: true, OpPaymentRead: true,
		OpRoleManage: true, OpUserManage: true, OpSupportUse: true,
	},
	RoleLoanOfficer: {
		OpLoanRead: true, OpLoanStatus: true, OpLoanReports: true,
		OpPaymentRead: true, OpSupportUse: true,
	},
	RoleUser: {
		OpLoanApply: true, OpLoanRead: true, OpLoanTopUp: true,
		OpLoanLiquidate: true, OpPaymentRecord: true, OpPaymentRead: true,
		OpSupportUse: true,
	},
}

// CanPerform reports whether a role may invoke an operation.
// Unknown roles have no permissions.
func CanPerform(role, operation string) bool {
	return rolePermissions[role][operation]
}

// Role represents a role entity managed by administrators
type Role struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DeletedAt   *time.Time `json:"-"`
}

// CreateRoleInput represents input for creating a role
type CreateRoleInput struct {
	Name        string `json:"name" validate:"required,min=1"`
	Description string `json:"description" validate:"omitempty,max=255"`
}
