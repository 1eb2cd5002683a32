// Package domain defines the user model of the grievance portal
package domain

import (
	"time"

	"github.com/jansunwai/jansunwai-backend/pkg/permissions"
)

// User represents a portal account. Citizens self-register; admin accounts
// are provisioned out of band.
type User struct {
	ID           string     `json:"id" db:"id"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	Name         string     `json:"name" db:"name"`
	Phone        *string    `json:"phone,omitempty" db:"phone"`
	Role         string     `json:"role" db:"role"`
	State        *string    `json:"state,omitempty" db:"state"`
	District     *string    `json:"district,omitempty" db:"district"`
	// DepartmentCode scopes a department_admin to one department.
	DepartmentCode *string    `json:"department_code,omitempty" db:"department_code"`
	IsActive       bool       `json:"is_active" db:"is_active"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
	LastLoginAt    *time.Time `json:"last_login_at,omitempty" db:"last_login_at"`
}

// IsAdmin reports whether the user can act on grievances beyond their own
func (u *User) IsAdmin() bool {
	return permissions.IsAdmin(u.Role)
}

// Profile is the public view of a user returned by the API
type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     *string   `json:"phone,omitempty"`
	Role      string    `json:"role"`
	State     *string   `json:"state,omitempty"`
	District  *string   `json:"district,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ToProfile strips credentials and account flags
func (u *User) ToProfile() *Profile {
	return &Profile{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Phone:     u.Phone,
		Role:      u.Role,
		State:     u.State,
		District:  u.District,
		CreatedAt: u.CreatedAt,
	}
}
