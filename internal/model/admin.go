package model

import "time"

// Role determines an admin's permission set. The set is fixed per role;
// there is no per-admin permission editing.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleBendahara Role = "bendahara"
)

// Permission codes embedded in admin JWTs.
const (
	PermissionStudentsRead      = "students:read"
	PermissionStudentsWrite     = "students:write"
	PermissionPaymentsWrite     = "payments:write"
	PermissionImportWrite       = "import:write"
	PermissionReportsRead       = "reports:read"
	PermissionSettingsRead      = "settings:read"
	PermissionSettingsWrite     = "settings:write"
	PermissionNotificationsRead = "notifications:read"
)

// RolePermissions maps each role to its permission codes. Bendahara (the
// treasurer role) can record money but not change institution settings.
var RolePermissions = map[Role][]string{
	RoleAdmin: {
		PermissionStudentsRead,
		PermissionStudentsWrite,
		PermissionPaymentsWrite,
		PermissionImportWrite,
		PermissionReportsRead,
		PermissionSettingsRead,
		PermissionSettingsWrite,
		PermissionNotificationsRead,
	},
	RoleBendahara: {
		PermissionStudentsRead,
		PermissionPaymentsWrite,
		PermissionReportsRead,
		PermissionSettingsRead,
		PermissionNotificationsRead,
	},
}

// Admin represents a dashboard user account. PasswordHash is empty for
// accounts that only sign in through the hosted identity provider.
type Admin struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	PictureURL   string    `json:"picture_url,omitempty"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AdminLoginRequest is the payload for local email/password authentication.
type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// AuthCallbackRequest carries the authorization code from the hosted
// identity provider's redirect.
type AuthCallbackRequest struct {
	Code string `json:"code" binding:"required"`
}
