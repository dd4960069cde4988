package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrInternal            = errors.New("internal error")
	ErrNotFound            = errors.New("not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrAlreadyExists       = errors.New("already exists")
	ErrInvalidToken        = errors.New("invalid token")
	ErrMissingRefreshToken = errors.New("refresh token required")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrForbidden           = errors.New("forbidden")
	ErrPremiumRequired     = errors.New("premium required")
	ErrTooManyAttempts     = errors.New("too many attempts")

	// field encryption
	ErrMissingEncryptionKey = errors.New("encryption key is not configured")
	ErrInvalidEnvelope      = errors.New("invalid encrypted data format")
	ErrDecryptionFailed     = errors.New("decryption failed")
)

// FieldError describes one rejected input field.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationError carries per-field details and unwraps to ErrInvalidArgument.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Path+": "+f.Message)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidArgument, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidArgument
}

func NewValidation(fields ...FieldError) error {
	return &ValidationError{Fields: fields}
}

func NewInvalidArgument(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, msg)
}

func WrapInternal(err error, context string) error {
	return fmt.Errorf("%w: %s: %v", ErrInternal, context, err)
}

// Fields returns validation details if err carries any.
func Fields(err error) []FieldError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Fields
	}
	return nil
}

func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

func IsInternal(err error) bool {
	return errors.Is(err, ErrInternal)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsUserNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}

func IsInvalidCredentials(err error) bool {
	return errors.Is(err, ErrInvalidCredentials)
}

func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

func IsInvalidToken(err error) bool {
	return errors.Is(err, ErrInvalidToken)
}

func IsMissingRefreshToken(err error) bool {
	return errors.Is(err, ErrMissingRefreshToken)
}

func IsInvalidRefreshToken(err error) bool {
	return errors.Is(err, ErrInvalidRefreshToken)
}

func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

func IsPremiumRequired(err error) bool {
	return errors.Is(err, ErrPremiumRequired)
}

func IsTooManyAttempts(err error) bool {
	return errors.Is(err, ErrTooManyAttempts)
}
