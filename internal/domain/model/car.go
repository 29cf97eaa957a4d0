//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const maxCarFieldLen = 100

// Car is a vehicle record.
type Car struct {
	ID        int64     `json:"id"         db:"id"`
	Brand     string    `json:"brand"      db:"brand"`
	Model     string    `json:"model"      db:"model"`
	Imported  bool      `json:"imported"   db:"imported"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CreateCarRequest represents parameters to create a Car.
type CreateCarRequest struct {
	Brand    string `json:"brand"`
	Model    string `json:"model"`
	Imported *bool  `json:"imported,omitempty"`
}

// UpdateCarRequest represents parameters to update a Car.
type UpdateCarRequest struct {
	Brand    *string `json:"brand,omitempty"`
	Model    *string `json:"model,omitempty"`
	Imported *bool   `json:"imported,omitempty"`
}

func validateCarField(name, v string) error {
	if v == "" {
		return errors.New(name + " is required and cannot be empty")
	}
	if utf8.RuneCountInString(v) > maxCarFieldLen {
		return errors.New(name + " cannot exceed 100 characters")
	}
	return nil
}

// Validate validates CreateCarRequest.
func (r *CreateCarRequest) Validate() error {
	r.Brand = strings.TrimSpace(r.Brand)
	r.Model = strings.TrimSpace(r.Model)
	if err := validateCarField("brand", r.Brand); err != nil {
		return err
	}
	return validateCarField("model", r.Model)
}

// HasUpdates reports whether any field is set in UpdateCarRequest.
func (r *UpdateCarRequest) HasUpdates() bool {
	return r.Brand != nil || r.Model != nil || r.Imported != nil
}

// Validate validates UpdateCarRequest.
func (r *UpdateCarRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.Brand != nil {
		b := strings.TrimSpace(*r.Brand)
		if err := validateCarField("brand", b); err != nil {
			return err
		}
		*r.Brand = b
	}
	if r.Model != nil {
		m := strings.TrimSpace(*r.Model)
		if err := validateCarField("model", m); err != nil {
			return err
		}
		*r.Model = m
	}
	return nil
}
