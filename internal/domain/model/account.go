//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	apperrors "github.com/nazmul162001/educonnect/internal/errors"
)

const (
	// MinPasswordLen is the minimum accepted password length.
	MinPasswordLen = 6
	// MaxPasswordBytes is the longest password bcrypt accepts.
	MaxPasswordBytes = 72
	maxNameLen       = 120
	maxFieldLen      = 255
)

// Stable client-facing messages for account operations.
const (
	MsgRegisterFieldsRequired = "Name, email, and password are required"
	MsgPasswordTooShort       = "Password must be at least 6 characters"
	MsgNewPasswordTooShort    = "New password must be at least 6 characters"
	MsgInvalidEmail           = "Invalid email format"
	MsgLoginFieldsRequired    = "Email and password are required"
	MsgEmailRequired          = "Email is required"
	MsgNameRequired           = "Name cannot be empty"
	MsgNameTooLong            = "Name is too long"
	MsgFieldTooLong           = "Field value is too long"
	MsgPasswordTooLong        = "Password must be at most 72 bytes"
)

// ValidEmail reports whether s parses as a single bare address.
func ValidEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s && strings.Contains(s, "@")
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Normalize trims whitespace from name and email.
func (r *RegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
}

// Validate checks required fields, email format and password length.
func (r *RegisterRequest) Validate() error {
	if r.Name == "" || r.Email == "" || r.Password == "" {
		return apperrors.Validation(MsgRegisterFieldsRequired)
	}
	if utf8.RuneCountInString(r.Name) > maxNameLen {
		return apperrors.ValidationField("name", MsgNameTooLong)
	}
	if !ValidEmail(r.Email) {
		return apperrors.ValidationField("email", MsgInvalidEmail)
	}
	if len(r.Password) < MinPasswordLen {
		return apperrors.ValidationField("password", MsgPasswordTooShort)
	}
	if len(r.Password) > MaxPasswordBytes {
		return apperrors.ValidationField("password", MsgPasswordTooLong)
	}
	return nil
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks that both fields are present.
func (r *LoginRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	if r.Email == "" || r.Password == "" {
		return apperrors.Validation(MsgLoginFieldsRequired)
	}
	return nil
}

// ResetPasswordRequest is the body of POST /auth/reset-password.
// With only Email set it is the verification step; with all three it performs the change.
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	OldPassword string `json:"oldPassword,omitempty"`
	NewPassword string `json:"newPassword,omitempty"`
}

// IsVerifyStep reports whether the request only asks to verify the email.
func (r *ResetPasswordRequest) IsVerifyStep() bool {
	return r.OldPassword == "" && r.NewPassword == ""
}

// Validate checks the fields required by the requested step.
func (r *ResetPasswordRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	if r.Email == "" {
		return apperrors.Validation(MsgEmailRequired)
	}
	if r.IsVerifyStep() {
		return nil
	}
	if r.OldPassword == "" || r.NewPassword == "" {
		return apperrors.Validation("Email, current password, and new password are required")
	}
	if len(r.NewPassword) < MinPasswordLen {
		return apperrors.ValidationField("newPassword", MsgNewPasswordTooShort)
	}
	if len(r.NewPassword) > MaxPasswordBytes {
		return apperrors.ValidationField("newPassword", MsgPasswordTooLong)
	}
	return nil
}

// UpdateProfileRequest is the body of PUT /auth/update-profile.
// Nil fields are left unchanged.
type UpdateProfileRequest struct {
	Name           *string `json:"name,omitempty"`
	Email          *string `json:"email,omitempty"`
	Image          *string `json:"image,omitempty"`
	Street         *string `json:"street,omitempty"`
	City           *string `json:"city,omitempty"`
	State          *string `json:"state,omitempty"`
	ZipCode        *string `json:"zipCode,omitempty"`
	Country        *string `json:"country,omitempty"`
	University     *string `json:"university,omitempty"`
	Major          *string `json:"major,omitempty"`
	GraduationYear *string `json:"graduationYear,omitempty"`
	GPA            *string `json:"gpa,omitempty"`
}

// Normalize trims every supplied field.
func (r *UpdateProfileRequest) Normalize() {
	for _, f := range r.fields() {
		if *f.value != nil {
			trimmed := strings.TrimSpace(**f.value)
			*f.value = &trimmed
		}
	}
}

// Validate checks email format and field lengths.
func (r *UpdateProfileRequest) Validate() error {
	if r.Email != nil && !ValidEmail(*r.Email) {
		return apperrors.ValidationField("email", MsgInvalidEmail)
	}
	if r.Name != nil {
		switch {
		case *r.Name == "":
			return apperrors.ValidationField("name", MsgNameRequired)
		case utf8.RuneCountInString(*r.Name) > maxNameLen:
			return apperrors.ValidationField("name", MsgNameTooLong)
		}
	}
	for _, f := range r.fields() {
		if *f.value != nil && utf8.RuneCountInString(**f.value) > maxFieldLen {
			return apperrors.ValidationField(f.column, MsgFieldTooLong)
		}
	}
	return nil
}

// Empty reports whether no field was supplied.
func (r *UpdateProfileRequest) Empty() bool {
	for _, f := range r.fields() {
		if *f.value != nil {
			return false
		}
	}
	return true
}

// ProfileField pairs a column name with a supplied value.
type ProfileField struct {
	Column string
	Value  string
}

// Changes returns the supplied fields in a stable column order.
func (r *UpdateProfileRequest) Changes() []ProfileField {
	fields := r.fields()
	out := make([]ProfileField, 0, len(fields))
	for _, f := range fields {
		if *f.value != nil {
			out = append(out, ProfileField{Column: f.column, Value: **f.value})
		}
	}
	return out
}

type profileFieldRef struct {
	column string
	value  **string
}

func (r *UpdateProfileRequest) fields() []profileFieldRef {
	return []profileFieldRef{
		{"name", &r.Name},
		{"email", &r.Email},
		{"image", &r.Image},
		{"street", &r.Street},
		{"city", &r.City},
		{"state", &r.State},
		{"zip_code", &r.ZipCode},
		{"country", &r.Country},
		{"university", &r.University},
		{"major", &r.Major},
		{"graduation_year", &r.GraduationYear},
		{"gpa", &r.GPA},
	}
}
