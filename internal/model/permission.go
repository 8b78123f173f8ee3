package model

import "time"

// Permission is an atomic named capability.
type Permission struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// UserPermissions is the self-service permission listing: the account the
// permissions belong to alongside its current permission records.
type UserPermissions struct {
	User        *User        `json:"user"`
	Permissions []Permission `json:"permissions"`
}

// Permission names referenced by route declarations. The full catalog lives in
// PermissionCatalog; these constants exist so the router never carries a typo.
const (
	PermViewUsers   = "VIEW_USERS"
	PermCreateUsers = "CREATE_USERS"
	PermEditUsers   = "EDIT_USERS"
	PermDeleteUsers = "DELETE_USERS"

	PermViewRoles   = "VIEW_ROLES"
	PermCreateRoles = "CREATE_ROLES"
	PermEditRoles   = "EDIT_ROLES"
	PermDeleteRoles = "DELETE_ROLES"

	PermViewTrainings   = "VIEW_TRAININGS"
	PermCreateTrainings = "CREATE_TRAININGS"
	PermEditTrainings   = "EDIT_TRAININGS"
	PermDeleteTrainings = "DELETE_TRAININGS"

	PermViewClasses   = "VIEW_CLASSES"
	PermCreateClasses = "CREATE_CLASSES"
	PermEditClasses   = "EDIT_CLASSES"
	PermDeleteClasses = "DELETE_CLASSES"

	PermViewStudents   = "VIEW_STUDENTS"
	PermCreateStudents = "CREATE_STUDENTS"
	PermEditStudents   = "EDIT_STUDENTS"
	PermDeleteStudents = "DELETE_STUDENTS"

	PermViewCertificates   = "VIEW_CERTIFICATES"
	PermCreateCertificates = "CREATE_CERTIFICATES"

	PermViewDashboard = "VIEW_DASHBOARD"

	PermViewFinancial = "VIEW_FINANCIAL"
	PermEditFinancial = "EDIT_FINANCIAL"
)

// PermissionSeed is a catalog entry used by the seeder.
type PermissionSeed struct {
	Name        string
	Description string
}

// PermissionCatalog is the fixed permission vocabulary. It is configuration
// data: the authorization core treats names opaquely.
var PermissionCatalog = []PermissionSeed{
	{"CREATE_CERTIFICATES", "Create certificates"},
	{"CREATE_CLASSES", "Create classes"},
	{"CREATE_FINANCIAL", "Create financial records"},
	{"CREATE_OWN_CERTIFICATES", "Issue certificates only for trainings taught by the user"},
	{"CREATE_REPORTS", "Create reports"},
	{"CREATE_ROLES", "Create roles"},
	{"CREATE_STUDENTS", "Create students"},
	{"CREATE_TRAININGS", "Create trainings"},
	{"CREATE_USERS", "Create users"},
	{"DELETE_CLASSES", "Delete classes"},
	{"DELETE_FINANCIAL", "Delete financial records"},
	{"DELETE_REPORTS", "Delete reports"},
	{"DELETE_ROLES", "Delete roles"},
	{"DELETE_STUDENTS", "Delete students"},
	{"DELETE_TRAININGS", "Delete trainings"},
	{"DELETE_USERS", "Delete users"},
	{"EDIT_CLASSES", "Edit classes"},
	{"EDIT_FINANCIAL", "Edit financial data"},
	{"EDIT_OWN_CLASSES", "Edit only classes taught by the user"},
	{"EDIT_OWN_TRAININGS", "Edit only trainings taught by the user"},
	{"EDIT_PROFILE", "Edit own profile"},
	{"EDIT_REPORTS", "Edit reports"},
	{"EDIT_ROLES", "Edit roles"},
	{"EDIT_STUDENTS", "Edit students"},
	{"EDIT_TRAININGS", "Edit trainings"},
	{"EDIT_USERS", "Edit users"},
	{"EXPORT_REPORTS", "Export reports"},
	{"GENERATE_FINANCIAL_REPORTS", "Generate financial reports"},
	{"MANAGE_BANK_ACCOUNTS", "Manage bank accounts"},
	{"MANAGE_USERS", "Manage users (full access)"},
	{"SETTLE_ACCOUNTS", "Settle accounts"},
	{"VIEW_ACCOUNTS_PAYABLE", "View accounts payable"},
	{"VIEW_ACCOUNTS_RECEIVABLE", "View accounts receivable"},
	{"VIEW_ANALYTICS", "View analytics"},
	{"VIEW_CASH_FLOW", "View cash flow"},
	{"VIEW_CERTIFICATES", "View certificates"},
	{"VIEW_CLASSES", "View all classes"},
	{"VIEW_DASHBOARD", "View dashboard"},
	{"VIEW_FINANCIAL", "View financial data"},
	{"VIEW_FINANCIAL_REPORTS", "View financial reports"},
	{"VIEW_OWN_CERTIFICATES", "View only certificates for trainings taught by the user"},
	{"VIEW_OWN_CLASSES", "View only classes taught by the user"},
	{"VIEW_OWN_TRAININGS", "View only trainings taught by the user"},
	{"VIEW_PROFILE", "View own profile"},
	{"VIEW_REPORTS", "View reports"},
	{"VIEW_ROLES", "View roles"},
	{"VIEW_STUDENTS", "View students"},
	{"VIEW_TRAININGS", "View all trainings"},
	{"VIEW_USERS", "View users"},
}
