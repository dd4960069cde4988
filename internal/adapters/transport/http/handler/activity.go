package handler

import (
	"github.com/Miraines/bankr/api-service/internal/adapters/transport/http/dto"
	"github.com/Miraines/bankr/api-service/internal/adapters/transport/http/middleware"
	"github.com/Miraines/bankr/api-service/internal/adapters/transport/http/response"
	customErrors "github.com/Miraines/bankr/api-service/internal/domain/auth/errors"
	"github.com/Miraines/bankr/api-service/internal/domain/pagination"
	"github.com/gin-gonic/gin"
)

func (h *Handler) ListActivity(c *gin.Context) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		handleError(c, customErrors.ErrInvalidToken)
		return
	}
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		handleError(c, invalidParam("query"))
		return
	}
	logs, meta, err := h.activity.List(c.Request.Context(), p.ID, pagination.Page{Page: q.Page, Limit: q.Limit})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Page(c, logs, meta)
}
