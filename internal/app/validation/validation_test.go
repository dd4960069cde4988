package validation

import (
	"strings"
	"testing"

	customErrors "github.com/Miraines/bankr/api-service/internal/domain/auth/errors"
	"github.com/stretchr/testify/require"
)

func TestStrongPassword(t *testing.T) {
	cases := map[string]bool{
		"Secret123":    true,
		"Пароль1Aa":    true,
		"short1A":      false,
		"alllower1":    false,
		"ALLUPPER1":    false,
		"NoDigitsHere": false,
		"":             false,
	}
	for pwd, want := range cases {
		require.Equal(t, want, StrongPassword(pwd), pwd)
	}
}

type sample struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,strongpwd"`
	Category string `json:"category" validate:"omitempty,category"`
	Kind     string `json:"type" validate:"omitempty,oneof=INCOME EXPENSE"`
}

func TestToError_FieldDetails(t *testing.T) {
	v := New()

	err := v.Struct(sample{Email: "not-an-email", Password: "weak", Category: "NOPE", Kind: "GIFT"})
	require.Error(t, err)

	verr := ToError(err)
	require.True(t, customErrors.IsInvalidArgument(verr))

	fields := customErrors.Fields(verr)
	require.Len(t, fields, 4)

	byPath := map[string]string{}
	for _, f := range fields {
		byPath[f.Path] = f.Message
	}
	require.Equal(t, "Invalid email address", byPath["email"])
	require.Equal(t, passwordRuleMessage, byPath["password"])
	require.Equal(t, "Invalid category", byPath["category"])
	require.Equal(t, "Must be one of: INCOME, EXPENSE", byPath["type"])
}

func TestPasswordFits(t *testing.T) {
	require.True(t, PasswordFits(strings.Repeat("a", MaxPasswordBytes)))
	require.False(t, PasswordFits(strings.Repeat("a", MaxPasswordBytes+1)))
	// кириллица: 2 байта на руну
	require.False(t, PasswordFits("Aa1"+strings.Repeat("ж", 35)))

	type reg struct {
		Password string `json:"password" validate:"required,strongpwd,pwdbytes"`
	}
	err := New().Struct(reg{Password: "Abcd1234" + strings.Repeat("é", 40)})
	require.Error(t, err)
	fields := customErrors.Fields(ToError(err))
	require.Len(t, fields, 1)
	require.Equal(t, "Must be at most 72 bytes", fields[0].Message)
}

func TestValid(t *testing.T) {
	require.NoError(t, New().Struct(sample{Email: "a@b.com", Password: "Secret123", Category: "FOOD"}))
}
