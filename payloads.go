package accounts

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// RegisterPayload carries the registration form fields plus the staged media
// paths produced by the upload middleware.
type RegisterPayload struct {
	Username       string `form:"username" json:"username"`
	FullName       string `form:"full_name" json:"full_name"`
	Email          string `form:"email" json:"email"`
	Password       string `form:"password" json:"password"`
	AvatarPath     string `form:"avatar" json:"avatar"`
	CoverImagePath string `form:"cover_image" json:"cover_image"`
}

// Normalized trims every field; a value that is blank after trimming counts
// as missing.
func (r RegisterPayload) Normalized() RegisterPayload {
	r.Username = strings.TrimSpace(r.Username)
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = strings.TrimSpace(r.Email)
	r.Password = strings.TrimSpace(r.Password)
	r.AvatarPath = strings.TrimSpace(r.AvatarPath)
	r.CoverImagePath = strings.TrimSpace(r.CoverImagePath)
	return r
}

// Validate will run validation rules
func (r RegisterPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.FullName, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.AvatarPath, validation.Required),
	)
}

// LoginPayload requires both identifiers. This mirrors the product decision
// that login presents handle and email together, not either-or.
type LoginPayload struct {
	Username string `form:"username" json:"username"`
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Normalized trims all fields, password included, so a credential that was
// trimmed at registration matches the same raw input at login.
func (r LoginPayload) Normalized() LoginPayload {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)
	r.Password = strings.TrimSpace(r.Password)
	return r
}

// Validate will run validation rules
func (r LoginPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// ChangePasswordPayload carries the credential rotation fields.
type ChangePasswordPayload struct {
	OldPassword string `form:"old_password" json:"old_password"`
	NewPassword string `form:"new_password" json:"new_password"`
}

// Validate will run validation rules
func (r ChangePasswordPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.OldPassword, validation.Required),
		validation.Field(&r.NewPassword, validation.Required, validation.Length(1, 100)),
	)
}
