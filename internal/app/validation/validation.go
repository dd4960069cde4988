package validation

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	customErrors "github.com/Miraines/bankr/api-service/internal/domain/auth/errors"
	"github.com/Miraines/bankr/api-service/internal/domain/transaction"
	"github.com/go-playground/validator/v10"
)

const passwordRuleMessage = "Password must be at least 8 characters and contain an uppercase letter, a lowercase letter and a number"

// MaxPasswordBytes is the bcrypt input limit; it is counted in bytes, not runes.
const MaxPasswordBytes = 72

// New returns a validator with the project rules registered and JSON field names in errors.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("strongpwd", func(fl validator.FieldLevel) bool {
		return StrongPassword(fl.Field().String())
	})
	_ = v.RegisterValidation("pwdbytes", func(fl validator.FieldLevel) bool {
		return PasswordFits(fl.Field().String())
	})
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return slices.Contains(transaction.Categories, fl.Field().String())
	})
	return v
}

func StrongPassword(pwd string) bool {
	if utf8.RuneCountInString(pwd) < 8 {
		return false
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range pwd {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasUpper && hasLower && hasDigit
}

// PasswordFits reports whether pwd can be hashed without truncation.
func PasswordFits(pwd string) bool {
	return len(pwd) <= MaxPasswordBytes
}

// ToError converts validator output into a ValidationError with per-field details.
func ToError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return customErrors.NewInvalidArgument(err.Error())
	}
	fields := make([]customErrors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, customErrors.FieldError{
			Path:    fieldPath(fe),
			Message: message(fe),
		})
	}
	return customErrors.NewValidation(fields...)
}

func fieldPath(fe validator.FieldError) string {
	// "RegisterDTO.email" -> "email"
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Required"
	case "email":
		return "Invalid email address"
	case "strongpwd":
		return passwordRuleMessage
	case "pwdbytes":
		return fmt.Sprintf("Must be at most %d bytes", MaxPasswordBytes)
	case "category":
		return "Invalid category"
	case "oneof":
		return "Must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "gt":
		return "Must be positive"
	case "min":
		if numeric(fe.Kind()) {
			return "Must be at least " + fe.Param()
		}
		return fmt.Sprintf("Must be at least %s characters", fe.Param())
	case "max":
		if numeric(fe.Kind()) {
			return "Must be at most " + fe.Param()
		}
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	case "uuid4", "uuid":
		return "Invalid id"
	}
	return "Invalid value"
}

func numeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
