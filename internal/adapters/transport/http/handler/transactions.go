package handler

import (
	"bytes"
	"net/http"

	"github.com/Miraines/bankr/api-service/internal/adapters/transport/http/dto"
	"github.com/Miraines/bankr/api-service/internal/adapters/transport/http/middleware"
	"github.com/Miraines/bankr/api-service/internal/adapters/transport/http/response"
	customErrors "github.com/Miraines/bankr/api-service/internal/domain/auth/errors"
	"github.com/Miraines/bankr/api-service/internal/domain/transaction"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) ListTransactions(c *gin.Context) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		handleError(c, customErrors.ErrInvalidToken)
		return
	}
	var q dto.TransactionQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		handleError(c, invalidParam("query"))
		return
	}
	txs, meta, err := h.transactions.List(c.Request.Context(), p.ID, q)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Page(c, toResponses(txs), meta)
}

func (h *Handler) GetTransaction(c *gin.Context) {
	p, id, ok := h.ownerAndID(c)
	if !ok {
		return
	}
	tx, err := h.transactions.Get(c.Request.Context(), p, id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, http.StatusOK, dto.NewTransactionResponse(tx))
}

func (h *Handler) CreateTransaction(c *gin.Context) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		handleError(c, customErrors.ErrInvalidToken)
		return
	}
	var in dto.CreateTransactionDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		badBody(c, err)
		return
	}
	tx, err := h.transactions.Create(c.Request.Context(), p.ID, in)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, http.StatusCreated, dto.NewTransactionResponse(tx))
}

func (h *Handler) UpdateTransaction(c *gin.Context) {
	p, id, ok := h.ownerAndID(c)
	if !ok {
		return
	}
	var in dto.UpdateTransactionDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		badBody(c, err)
		return
	}
	tx, err := h.transactions.Update(c.Request.Context(), p, id, in)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, http.StatusOK, dto.NewTransactionResponse(tx))
}

func (h *Handler) DeleteTransaction(c *gin.Context) {
	p, id, ok := h.ownerAndID(c)
	if !ok {
		return
	}
	if err := h.transactions.Delete(c.Request.Context(), p, id); err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, http.StatusOK, dto.MessageResponse{Message: "Transaction deleted successfully"})
}

func (h *Handler) TransactionSummary(c *gin.Context) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		handleError(c, customErrors.ErrInvalidToken)
		return
	}
	sum, err := h.transactions.Summary(c.Request.Context(), p.ID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, http.StatusOK, sum)
}

// ExportTransactions отдаёт CSV целиком: ошибка расшифровки не должна оборвать уже начатый ответ.
func (h *Handler) ExportTransactions(c *gin.Context) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		handleError(c, customErrors.ErrInvalidToken)
		return
	}
	var q dto.TransactionQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		handleError(c, invalidParam("query"))
		return
	}
	var buf bytes.Buffer
	if err := h.transactions.Export(c.Request.Context(), p.ID, q, &buf); err != nil {
		handleError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="transactions.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (h *Handler) ownerAndID(c *gin.Context) (owner, id uuid.UUID, ok bool) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		handleError(c, customErrors.ErrInvalidToken)
		return uuid.Nil, uuid.Nil, false
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handleError(c, invalidParam("id"))
		return uuid.Nil, uuid.Nil, false
	}
	return p.ID, id, true
}

func toResponses(txs []transaction.Decrypted) []dto.TransactionResponse {
	out := make([]dto.TransactionResponse, 0, len(txs))
	for _, t := range txs {
		out = append(out, dto.NewTransactionResponse(t))
	}
	return out
}
