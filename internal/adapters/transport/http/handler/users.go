package handler

import (
	"net/http"

	"github.com/Miraines/bankr/api-service/internal/adapters/transport/http/dto"
	"github.com/Miraines/bankr/api-service/internal/adapters/transport/http/middleware"
	"github.com/Miraines/bankr/api-service/internal/adapters/transport/http/response"
	customErrors "github.com/Miraines/bankr/api-service/internal/domain/auth/errors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.NewUserResponse(u))
	}
	response.OK(c, http.StatusOK, out)
}

func (h *Handler) AdminUpdateUser(c *gin.Context) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		handleError(c, customErrors.ErrInvalidToken)
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handleError(c, invalidParam("id"))
		return
	}
	var in dto.AdminUpdateUserDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		badBody(c, err)
		return
	}
	u, err := h.users.AdminUpdate(c.Request.Context(), p.ID, id, in)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, http.StatusOK, dto.NewUserResponse(u))
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		handleError(c, customErrors.ErrInvalidToken)
		return
	}
	var in dto.UpdateProfileDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		badBody(c, err)
		return
	}
	u, err := h.users.UpdateProfile(c.Request.Context(), p.ID, in)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, http.StatusOK, dto.NewUserResponse(u))
}

func (h *Handler) DeleteAccount(c *gin.Context) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		handleError(c, customErrors.ErrInvalidToken)
		return
	}
	if err := h.users.Delete(c.Request.Context(), p.ID); err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, http.StatusOK, dto.MessageResponse{Message: "Account deleted successfully"})
}
