package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"library-backend/internal/domains/genre"
	"library-backend/internal/shared/response"
)

type GenreHandler struct {
	service genre.Service
}

func NewGenreHandler(svc genre.Service) *GenreHandler {
	return &GenreHandler{service: svc}
}

// Create - POST /v1/genres
func (h *GenreHandler) Create(c *gin.Context) {
	var req genre.CreateGenreRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	g, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		response.ErrorResponse(c, genre.ToHTTPStatus(err), genre.ToErrorCode(err), err.Error())
		return
	}

	response.Success(c, http.StatusCreated, g)
}

// GetByID - GET /v1/genres/:id
func (h *GenreHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UUID format")
		return
	}

	g, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.ErrorResponse(c, genre.ToHTTPStatus(err), genre.ToErrorCode(err), err.Error())
		return
	}

	response.Success(c, http.StatusOK, g)
}

// GetAll - GET /v1/genres
func (h *GenreHandler) GetAll(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	genres, total, err := h.service.GetAll(c.Request.Context(), genre.Filter{
		Search: c.Query("search"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		response.ErrorResponse(c, genre.ToHTTPStatus(err), genre.ToErrorCode(err), err.Error())
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, genres, &response.Meta{
		Limit: limit,
		Total: total,
	})
}

// Update - PUT /v1/genres/:id
func (h *GenreHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UUID format")
		return
	}

	var req genre.UpdateGenreRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	g, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.ErrorResponse(c, genre.ToHTTPStatus(err), genre.ToErrorCode(err), err.Error())
		return
	}

	response.Success(c, http.StatusOK, g)
}

// Delete - DELETE /v1/genres/:id
func (h *GenreHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UUID format")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.ErrorResponse(c, genre.ToHTTPStatus(err), genre.ToErrorCode(err), err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}
