package handler

import (
	"errors"
	"net/http"

	"github.com/Miraines/bankr/api-service/internal/adapters/transport/http/response"
	customErrors "github.com/Miraines/bankr/api-service/internal/domain/auth/errors"
	"github.com/gin-gonic/gin"
)

type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

// Порядок важен: ErrUserNotFound проверяется раньше ErrNotFound.
var errorTable = []errorMapping{
	{customErrors.ErrInvalidArgument, http.StatusBadRequest, response.CodeValidation, "Validation failed"},
	{customErrors.ErrAlreadyExists, http.StatusConflict, response.CodeUserExists, "User with this email already exists"},
	{customErrors.ErrInvalidCredentials, http.StatusUnauthorized, response.CodeInvalidCredentials, "Invalid email or password"},
	{customErrors.ErrMissingRefreshToken, http.StatusBadRequest, response.CodeMissingRefreshToken, "Refresh token required"},
	{customErrors.ErrInvalidRefreshToken, http.StatusUnauthorized, response.CodeInvalidRefreshToken, "Invalid or expired refresh token"},
	{customErrors.ErrInvalidToken, http.StatusUnauthorized, response.CodeUnauthorized, "Invalid or expired token"},
	{customErrors.ErrForbidden, http.StatusForbidden, response.CodeForbidden, "You do not have permission to access this resource"},
	{customErrors.ErrPremiumRequired, http.StatusForbidden, response.CodePremiumRequired, "This feature requires a Premium subscription"},
	{customErrors.ErrUserNotFound, http.StatusNotFound, response.CodeUserNotFound, "User not found"},
	{customErrors.ErrNotFound, http.StatusNotFound, response.CodeNotFound, "Resource not found"},
	{customErrors.ErrTooManyAttempts, http.StatusTooManyRequests, response.CodeTooManyAttempts, "Too many login attempts, try again later"},
}

// handleError пишет конверт ошибки. Внутренняя причина уходит в c.Errors и в лог, но не в тело ответа.
func handleError(c *gin.Context, err error) {
	for _, m := range errorTable {
		if !errors.Is(err, m.target) {
			continue
		}
		if m.status == http.StatusUnauthorized {
			_ = c.Error(err)
		}
		response.Fail(c, m.status, m.code, m.message, customErrors.Fields(err)...)
		return
	}
	_ = c.Error(err)
	response.Fail(c, http.StatusInternalServerError, response.CodeInternal, "Internal server error")
}

// badBody answers 400 for an unparseable body and keeps the decoder error for the request log.
func badBody(c *gin.Context, err error) {
	_ = c.Error(err)
	handleError(c, customErrors.NewValidation(customErrors.FieldError{Path: "body", Message: "Malformed request body"}))
}

func invalidParam(name string) error {
	return customErrors.NewValidation(customErrors.FieldError{Path: name, Message: "Invalid " + name})
}
