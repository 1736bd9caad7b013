package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"library-backend/internal/domains/exemplary"
	"library-backend/internal/shared/response"
)

type ExemplaryHandler struct {
	service exemplary.Service
}

func NewExemplaryHandler(svc exemplary.Service) *ExemplaryHandler {
	return &ExemplaryHandler{service: svc}
}

// Create - POST /v1/books/:id/exemplaries
func (h *ExemplaryHandler) Create(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UUID format")
		return
	}

	var req exemplary.CreateExemplaryRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	e, err := h.service.Create(c.Request.Context(), bookID, &req)
	if err != nil {
		response.ErrorResponse(c, exemplary.ToHTTPStatus(err), exemplary.ToErrorCode(err), err.Error())
		return
	}

	response.Success(c, http.StatusCreated, e)
}

// CreateBatch - POST /v1/books/:id/exemplaries/batch
func (h *ExemplaryHandler) CreateBatch(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UUID format")
		return
	}

	var req exemplary.CreateBatchRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	exemplaries, err := h.service.CreateBatch(c.Request.Context(), bookID, &req)
	if err != nil {
		response.ErrorResponse(c, exemplary.ToHTTPStatus(err), exemplary.ToErrorCode(err), err.Error())
		return
	}

	response.Success(c, http.StatusCreated, exemplaries)
}

// GetByID - GET /v1/exemplaries/:id
func (h *ExemplaryHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UUID format")
		return
	}

	e, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.ErrorResponse(c, exemplary.ToHTTPStatus(err), exemplary.ToErrorCode(err), err.Error())
		return
	}

	response.Success(c, http.StatusOK, e)
}

// GetAll - GET /v1/books/:id/exemplaries
func (h *ExemplaryHandler) GetAll(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UUID format")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	exemplaries, total, err := h.service.GetAll(c.Request.Context(), exemplary.Filter{
		BookID: &bookID,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		response.ErrorResponse(c, exemplary.ToHTTPStatus(err), exemplary.ToErrorCode(err), err.Error())
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, exemplaries, &response.Meta{
		Limit: limit,
		Total: total,
	})
}

// Update - PUT /v1/exemplaries/:id
func (h *ExemplaryHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UUID format")
		return
	}

	var req exemplary.UpdateExemplaryRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	e, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.ErrorResponse(c, exemplary.ToHTTPStatus(err), exemplary.ToErrorCode(err), err.Error())
		return
	}

	response.Success(c, http.StatusOK, e)
}

// Delete - DELETE /v1/exemplaries/:id
func (h *ExemplaryHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UUID format")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.ErrorResponse(c, exemplary.ToHTTPStatus(err), exemplary.ToErrorCode(err), err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}
