package domain

import "time"

// Admin roles.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// ValidRole reports whether role is one of the known admin roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleEditor
}

// Admin is a back-office account. The primary key is the national identity
// number (16-digit numeric string), matching the agency's registry.
type Admin struct {
	AdminID      string    `json:"adminId" dynamodbav:"admin_id"`
	Username     string    `json:"username" dynamodbav:"username"`
	PasswordHash string    `json:"-" dynamodbav:"password_hash"`
	Name         string    `json:"name" dynamodbav:"name"`
	Role         string    `json:"role" dynamodbav:"role"`
	Active       bool      `json:"isActive" dynamodbav:"active"`
	CreatedAt    time.Time `json:"createdAt" dynamodbav:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" dynamodbav:"updated_at"`
}

type RegisterAdminRequest struct {
	AdminID  string `json:"adminId" validate:"required,ktp"`
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Name     string `json:"name" validate:"required"`
	Role     string `json:"role"` // defaults to admin
}

type UpdateAdminRequest struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=64"`
	Name     *string `json:"name"`
	Active   *bool   `json:"isActive"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
