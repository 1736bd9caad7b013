package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"library-backend/internal/domains/editor"
	"library-backend/internal/shared/response"
)

type EditorHandler struct {
	service editor.Service
}

func NewEditorHandler(svc editor.Service) *EditorHandler {
	return &EditorHandler{service: svc}
}

// Create - POST /v1/editors
func (h *EditorHandler) Create(c *gin.Context) {
	var req editor.CreateEditorRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	e, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		response.ErrorResponse(c, editor.ToHTTPStatus(err), editor.ToErrorCode(err), err.Error())
		return
	}

	response.Success(c, http.StatusCreated, e)
}

// GetByID - GET /v1/editors/:id (detail view with derived counts)
func (h *EditorHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UUID format")
		return
	}

	detail, err := h.service.GetDetails(c.Request.Context(), id)
	if err != nil {
		response.ErrorResponse(c, editor.ToHTTPStatus(err), editor.ToErrorCode(err), err.Error())
		return
	}

	response.Success(c, http.StatusOK, detail)
}

// GetAll - GET /v1/editors
func (h *EditorHandler) GetAll(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	editors, total, err := h.service.GetAll(c.Request.Context(), editor.Filter{
		Search: c.Query("search"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		response.ErrorResponse(c, editor.ToHTTPStatus(err), editor.ToErrorCode(err), err.Error())
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, editors, &response.Meta{
		Limit: limit,
		Total: total,
	})
}

// Update - PUT /v1/editors/:id
func (h *EditorHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UUID format")
		return
	}

	var req editor.UpdateEditorRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	e, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.ErrorResponse(c, editor.ToHTTPStatus(err), editor.ToErrorCode(err), err.Error())
		return
	}

	response.Success(c, http.StatusOK, e)
}

// Delete - DELETE /v1/editors/:id
func (h *EditorHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UUID format")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.ErrorResponse(c, editor.ToHTTPStatus(err), editor.ToErrorCode(err), err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}
