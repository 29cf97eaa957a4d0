//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxUsernameLen = 100
	maxFullnameLen = 255
	// bcrypt ignores input beyond 72 bytes.
	maxPasswordBytes = 72
)

// User is the stored account row. Password holds the bcrypt hash and is never serialized.
type User struct {
	ID        int64     `json:"id"         db:"id"`
	Username  string    `json:"username"   db:"username"`
	Fullname  string    `json:"fullname"   db:"fullname"`
	Password  string    `json:"-"          db:"password"`
	IsAdmin   bool      `json:"is_admin"   db:"is_admin"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// PublicUser is the outward view of a user. It has no password field.
type PublicUser struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Fullname  string    `json:"fullname"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Public projects the user onto its public view.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		Fullname:  u.Fullname,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// PublicUsers projects a slice of users.
func PublicUsers(users []User) []PublicUser {
	out := make([]PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out
}

// CreateUserRequest represents parameters to register a User.
type CreateUserRequest struct {
	Username string `json:"username"`
	Fullname string `json:"fullname"`
	Password string `json:"password"`
	IsAdmin  *bool  `json:"is_admin,omitempty"`
}

// UpdateUserRequest represents parameters to update a User.
type UpdateUserRequest struct {
	Username *string `json:"username,omitempty"`
	Fullname *string `json:"fullname,omitempty"`
	Password *string `json:"password,omitempty"`
	IsAdmin  *bool   `json:"is_admin,omitempty"`
}

// LoginRequest carries username/password credentials.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func validateUsername(v string) error {
	if v == "" {
		return errors.New("username is required and cannot be empty")
	}
	if utf8.RuneCountInString(v) > maxUsernameLen {
		return errors.New("username cannot exceed 100 characters")
	}
	return nil
}

func validateFullname(v string) error {
	if v == "" {
		return errors.New("fullname is required and cannot be empty")
	}
	if utf8.RuneCountInString(v) > maxFullnameLen {
		return errors.New("fullname cannot exceed 255 characters")
	}
	return nil
}

func validatePassword(v string) error {
	if strings.TrimSpace(v) == "" {
		return errors.New("password is required and cannot be empty")
	}
	if len(v) > maxPasswordBytes {
		return errors.New("password cannot exceed 72 bytes")
	}
	return nil
}

// Validate validates CreateUserRequest. Username and fullname are trimmed in place.
func (r *CreateUserRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	r.Fullname = strings.TrimSpace(r.Fullname)
	if err := validateUsername(r.Username); err != nil {
		return err
	}
	if err := validateFullname(r.Fullname); err != nil {
		return err
	}
	return validatePassword(r.Password)
}

// HasUpdates reports whether any field is set in UpdateUserRequest.
func (r *UpdateUserRequest) HasUpdates() bool {
	return r.Username != nil || r.Fullname != nil || r.Password != nil || r.IsAdmin != nil
}

// Validate validates UpdateUserRequest, ensuring at least one field is set and values are sane.
func (r *UpdateUserRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.Username != nil {
		u := strings.TrimSpace(*r.Username)
		if err := validateUsername(u); err != nil {
			return err
		}
		*r.Username = u
	}
	if r.Fullname != nil {
		f := strings.TrimSpace(*r.Fullname)
		if err := validateFullname(f); err != nil {
			return err
		}
		*r.Fullname = f
	}
	if r.Password != nil {
		if err := validatePassword(*r.Password); err != nil {
			return err
		}
	}
	return nil
}

// Validate validates LoginRequest.
func (r *LoginRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	if r.Username == "" {
		return errors.New("username is required")
	}
	if r.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

// ListOptions controls paging for list queries.
type ListOptions struct {
	Limit  int
	Offset int
}
