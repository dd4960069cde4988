package dto

import (
	"time"

	"github.com/Miraines/bankr/api-service/internal/domain/auth/model"
	"github.com/Miraines/bankr/api-service/internal/domain/transaction"
	"github.com/google/uuid"
)

type RegisterDTO struct {
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,strongpwd,pwdbytes"`
	FirstName string `json:"firstName" validate:"omitempty,max=100"`
	LastName  string `json:"lastName" validate:"omitempty,max=100"`
}

type LoginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	// ClientIP заполняет хендлер из адреса соединения, не из тела.
	ClientIP string `json:"-"`
}

type RefreshDTO struct {
	RefreshToken string `json:"refreshToken"`
}

type UpdateProfileDTO struct {
	FirstName *string `json:"firstName" validate:"omitempty,min=1,max=100"`
	LastName  *string `json:"lastName" validate:"omitempty,min=1,max=100"`
}

type AdminUpdateUserDTO struct {
	Role     *string `json:"role" validate:"omitempty,oneof=FREE PREMIUM ADMIN"`
	IsActive *bool   `json:"isActive"`
}

type CreateTransactionDTO struct {
	Type        string     `json:"type" validate:"required,oneof=INCOME EXPENSE TRANSFER"`
	Category    string     `json:"category" validate:"required,category"`
	Amount      float64    `json:"amount" validate:"required,gt=0"`
	Description string     `json:"description" validate:"max=500"`
	Merchant    string     `json:"merchant" validate:"max=255"`
	Date        *time.Time `json:"date"`
	Notes       string     `json:"notes" validate:"max=2000"`
	IsRecurring bool       `json:"isRecurring"`
}

type UpdateTransactionDTO struct {
	Type        *string    `json:"type" validate:"omitempty,oneof=INCOME EXPENSE TRANSFER"`
	Category    *string    `json:"category" validate:"omitempty,category"`
	Amount      *float64   `json:"amount" validate:"omitempty,gt=0"`
	Description *string    `json:"description" validate:"omitempty,max=500"`
	Merchant    *string    `json:"merchant" validate:"omitempty,max=255"`
	Date        *time.Time `json:"date"`
	Notes       *string    `json:"notes" validate:"omitempty,max=2000"`
	IsRecurring *bool      `json:"isRecurring"`
}

type TransactionQuery struct {
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
	Type     string `form:"type" validate:"omitempty,oneof=INCOME EXPENSE TRANSFER"`
	Category string `form:"category" validate:"omitempty,category"`
	Month    string `form:"month"`
	Year     int    `form:"year" validate:"omitempty,min=1970,max=9999"`
}

type PageQuery struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

// ---- responses ----

type UserResponse struct {
	ID            uuid.UUID  `json:"id"`
	Email         string     `json:"email"`
	FirstName     string     `json:"firstName"`
	LastName      string     `json:"lastName"`
	Role          model.Role `json:"role"`
	EmailVerified bool       `json:"emailVerified"`
	IsActive      bool       `json:"isActive"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func NewUserResponse(u model.User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Role:          u.Role,
		EmailVerified: u.EmailVerified,
		IsActive:      u.IsActive,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

type SessionResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

func NewSessionResponse(s model.Session) SessionResponse {
	return SessionResponse{
		User:         NewUserResponse(s.User),
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
	}
}

type AccessTokenResponse struct {
	AccessToken string `json:"accessToken"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type TransactionResponse struct {
	ID          uuid.UUID        `json:"id"`
	UserID      uuid.UUID        `json:"userId"`
	Type        transaction.Type `json:"type"`
	Category    string           `json:"category"`
	Amount      float64          `json:"amount"`
	Description string           `json:"description"`
	Merchant    string           `json:"merchant"`
	Date        time.Time        `json:"date"`
	Notes       string           `json:"notes"`
	IsRecurring bool             `json:"isRecurring"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

func NewTransactionResponse(t transaction.Decrypted) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		UserID:      t.UserID,
		Type:        t.Type,
		Category:    t.Category,
		Amount:      t.Amount,
		Description: t.Description,
		Merchant:    t.Merchant,
		Date:        t.Date,
		Notes:       t.Notes,
		IsRecurring: t.IsRecurring,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
