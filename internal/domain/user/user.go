package user

import (
	"time"

	"veridia/internal/common"
)

type Role string

const (
	RoleApplicant Role = "applicant"
	RoleAdmin     Role = "admin"
)

type User struct {
	ID           common.UUID `json:"id"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	FirstName    string      `json:"first_name"`
	LastName     string      `json:"last_name"`
	Phone        string      `json:"phone"`
	Role         Role        `json:"role"`
	IsActive     bool        `json:"is_active"`
	CreatedAt    time.Time   `json:"created_at"`
}

func (u User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// ProfileUpdate is the mutable surface of a user profile. Email and role
// are deliberately absent.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Phone     *string
}
