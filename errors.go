package accounts

import (
	"strings"

	"github.com/goliatone/go-errors"
)

// Text codes surfaced to the transport layer next to the error category.
const (
	TextCodeInvalidCreds     = "INVALID_CREDENTIALS"
	TextCodeEmptyPassword    = "EMPTY_PASSWORD"
	TextCodeDuplicateAccount = "DUPLICATE_ACCOUNT"
	TextCodeAccountNotFound  = "ACCOUNT_NOT_FOUND"
	TextCodeChannelNotFound  = "CHANNEL_NOT_FOUND"
	TextCodeTokenExpired     = "TOKEN_EXPIRED"
	TextCodeTokenMalformed   = "TOKEN_MALFORMED"
	TextCodeSessionRevoked   = "SESSION_REVOKED"
	TextCodeUploadFailed     = "UPLOAD_FAILED"
)

// ErrIdentityNotFound is the error we return for non found accounts
var ErrIdentityNotFound = errors.New("identity not found", errors.CategoryNotFound).
	WithTextCode(TextCodeAccountNotFound)

// ErrChannelNotFound is returned when a channel handle resolves to no user
var ErrChannelNotFound = errors.New("channel not found", errors.CategoryNotFound).
	WithTextCode(TextCodeChannelNotFound)

// ErrMismatchedHashAndPassword is returned on any credential mismatch
var ErrMismatchedHashAndPassword = errors.New("the credentials provided are invalid", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCreds)

// ErrNoEmptyString rejects empty passwords before they reach bcrypt
var ErrNoEmptyString = errors.New("value must not be an empty string", errors.CategoryValidation).
	WithTextCode(TextCodeEmptyPassword)

// ErrDuplicateAccount is returned when the username or email is taken
var ErrDuplicateAccount = errors.New("an account with that username or email already exists", errors.CategoryConflict).
	WithTextCode(TextCodeDuplicateAccount)

// ErrTokenExpired is returned for tokens past their expiry
var ErrTokenExpired = errors.New("token is expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired)

// ErrTokenMalformed is returned for tokens that fail parsing or signature checks
var ErrTokenMalformed = errors.New("token is malformed", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed)

// ErrSessionRevoked is returned when a presented refresh token no longer
// matches the value stored on the user record: the session was superseded by
// a newer login, rotated away, or cleared by logout.
var ErrSessionRevoked = errors.New("refresh token does not match the active session", errors.CategoryAuth).
	WithTextCode(TextCodeSessionRevoked)

// ErrUploadFailed is returned when required media cannot be uploaded
var ErrUploadFailed = errors.New("media upload failed", errors.CategoryOperation).
	WithTextCode(TextCodeUploadFailed)

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTokenExpired) {
		return true
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTokenMalformed) {
		return true
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}
