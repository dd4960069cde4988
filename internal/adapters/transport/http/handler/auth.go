package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/Miraines/bankr/api-service/internal/adapters/transport/http/dto"
	"github.com/Miraines/bankr/api-service/internal/adapters/transport/http/middleware"
	"github.com/Miraines/bankr/api-service/internal/adapters/transport/http/response"
	customErrors "github.com/Miraines/bankr/api-service/internal/domain/auth/errors"
	"github.com/gin-gonic/gin"
)

func (h *Handler) Register(c *gin.Context) {
	var in dto.RegisterDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		badBody(c, err)
		return
	}
	s, err := h.auth.Register(c.Request.Context(), in)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, http.StatusCreated, dto.NewSessionResponse(s))
}

func (h *Handler) Login(c *gin.Context) {
	var in dto.LoginDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		badBody(c, err)
		return
	}
	in.ClientIP = c.RemoteIP()
	s, err := h.auth.Login(c.Request.Context(), in)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, http.StatusOK, dto.NewSessionResponse(s))
}

func (h *Handler) Refresh(c *gin.Context) {
	var in dto.RefreshDTO
	// пустое или битое тело = токена нет; причину оставляем для лога
	if err := c.ShouldBindJSON(&in); err != nil && !errors.Is(err, io.EOF) {
		_ = c.Error(err)
	}
	g, err := h.auth.Refresh(c.Request.Context(), in)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, http.StatusOK, dto.AccessTokenResponse{AccessToken: g.AccessToken})
}

func (h *Handler) Logout(c *gin.Context) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		handleError(c, customErrors.ErrInvalidToken)
		return
	}
	if err := h.auth.Logout(c.Request.Context(), p.ID); err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, http.StatusOK, dto.MessageResponse{Message: "Logged out successfully"})
}

func (h *Handler) Me(c *gin.Context) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		handleError(c, customErrors.ErrInvalidToken)
		return
	}
	u, err := h.auth.Me(c.Request.Context(), p.ID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, http.StatusOK, dto.NewUserResponse(u))
}
