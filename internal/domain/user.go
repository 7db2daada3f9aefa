package domain

import (
	"fmt"
	"strings"
	"time"
)

type User struct {
	ID        string
	Email     string
	Name      string
	CreatedAt *time.Time
}

// DisplayName prefers the user's name and falls back to the email.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	return CoalesceStr(u.Name, u.Email, u.ID)
}

// TeamMember is the read-only projection of a user used by assignment pickers.
type TeamMember struct {
	ID    string
	Name  string
	Email string
}

type LoginRequest struct {
	Email    string
	Password string
}

// Validate trims the email and requires both credentials.
func (r *LoginRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	return validateCredentials(r.Email, r.Password)
}

type RegisterRequest struct {
	Email    string
	Password string
	Name     string // optional
}

// Validate trims the email and name and requires both credentials.
func (r *RegisterRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	r.Name = strings.TrimSpace(r.Name)
	return validateCredentials(r.Email, r.Password)
}

func validateCredentials(email, password string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if !strings.Contains(email, "@") {
		return fmt.Errorf("email %q is not valid", email)
	}
	if password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

// AuthResult is the normalized outcome of a successful login.
type AuthResult struct {
	Token string
	User  User
}
