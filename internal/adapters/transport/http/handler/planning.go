package handler

import (
	"net/http"

	"github.com/Miraines/bankr/api-service/internal/adapters/transport/http/dto"
	"github.com/Miraines/bankr/api-service/internal/adapters/transport/http/middleware"
	"github.com/Miraines/bankr/api-service/internal/adapters/transport/http/response"
	planningsvc "github.com/Miraines/bankr/api-service/internal/app/planning/service"
	customErrors "github.com/Miraines/bankr/api-service/internal/domain/auth/errors"
	"github.com/Miraines/bankr/api-service/internal/domain/pagination"
	"github.com/Miraines/bankr/api-service/internal/domain/planning"
	"github.com/gin-gonic/gin"
)

// Resource is the owner-scoped CRUD surface of one planning kind.
type Resource interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

type resource[T planning.Record[T], C, U any] struct {
	h   *Handler
	svc planningsvc.Service[T, C, U]
	// deleted is the confirmation message, e.g. "Budget deleted successfully".
	deleted string
}

func newResource[T planning.Record[T], C, U any](h *Handler, svc planningsvc.Service[T, C, U], label string) Resource {
	return &resource[T, C, U]{h: h, svc: svc, deleted: label + " deleted successfully"}
}

func (r *resource[T, C, U]) List(c *gin.Context) {
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
	recs, meta, err := r.svc.List(c.Request.Context(), p.ID, pagination.Page{Page: q.Page, Limit: q.Limit})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Page(c, recs, meta)
}

func (r *resource[T, C, U]) Get(c *gin.Context) {
	owner, id, ok := r.h.ownerAndID(c)
	if !ok {
		return
	}
	rec, err := r.svc.Get(c.Request.Context(), owner, id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, http.StatusOK, rec)
}

func (r *resource[T, C, U]) Create(c *gin.Context) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		handleError(c, customErrors.ErrInvalidToken)
		return
	}
	var in C
	if err := c.ShouldBindJSON(&in); err != nil {
		badBody(c, err)
		return
	}
	rec, err := r.svc.Create(c.Request.Context(), p.ID, in)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, http.StatusCreated, rec)
}

func (r *resource[T, C, U]) Update(c *gin.Context) {
	owner, id, ok := r.h.ownerAndID(c)
	if !ok {
		return
	}
	var in U
	if err := c.ShouldBindJSON(&in); err != nil {
		badBody(c, err)
		return
	}
	rec, err := r.svc.Update(c.Request.Context(), owner, id, in)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, http.StatusOK, rec)
}

func (r *resource[T, C, U]) Delete(c *gin.Context) {
	owner, id, ok := r.h.ownerAndID(c)
	if !ok {
		return
	}
	if err := r.svc.Delete(c.Request.Context(), owner, id); err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, http.StatusOK, dto.MessageResponse{Message: r.deleted})
}
