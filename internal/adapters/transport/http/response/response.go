// Package response renders the {success, data|error} JSON envelope.
package response

import (
	"github.com/Miraines/bankr/api-service/internal/domain/auth/errors"
	"github.com/Miraines/bankr/api-service/internal/domain/pagination"
	"github.com/gin-gonic/gin"
)

const (
	CodeValidation          = "VALIDATION_ERROR"
	CodeUserExists          = "USER_EXISTS"
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeMissingRefreshToken = "MISSING_REFRESH_TOKEN"
	CodeInvalidRefreshToken = "INVALID_REFRESH_TOKEN"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeForbidden           = "FORBIDDEN"
	CodePremiumRequired     = "PREMIUM_REQUIRED"
	CodeUserNotFound        = "USER_NOT_FOUND"
	CodeNotFound            = "NOT_FOUND"
	CodeTooManyAttempts     = "TOO_MANY_ATTEMPTS"
	CodeRateLimited         = "RATE_LIMITED"
	CodeInternal            = "INTERNAL_ERROR"
)

type ErrorBody struct {
	Message string              `json:"message"`
	Code    string              `json:"code"`
	Details []errors.FieldError `json:"details,omitempty"`
}

type Envelope struct {
	Success bool             `json:"success"`
	Data    any              `json:"data,omitempty"`
	Meta    *pagination.Meta `json:"meta,omitempty"`
	Error   *ErrorBody       `json:"error,omitempty"`
}

func OK(c *gin.Context, status int, data any) {
	c.JSON(status, Envelope{Success: true, Data: data})
}

func Page(c *gin.Context, data any, meta pagination.Meta) {
	c.JSON(200, Envelope{Success: true, Data: data, Meta: &meta})
}

// Fail aborts the chain with an error envelope.
func Fail(c *gin.Context, status int, code, message string, details ...errors.FieldError) {
	c.AbortWithStatusJSON(status, Envelope{
		Success: false,
		Error:   &ErrorBody{Message: message, Code: code, Details: details},
	})
}
