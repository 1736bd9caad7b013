package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"library-backend/internal/domains/fusion"
	"library-backend/internal/shared/response"
)

type FusionHandler struct {
	service fusion.Service
}

func NewFusionHandler(svc fusion.Service) *FusionHandler {
	return &FusionHandler{service: svc}
}

// Start - POST /v1/fusion
func (h *FusionHandler) Start(c *gin.Context) {
	var req fusion.StartFusionRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	session, err := h.service.Start(c.Request.Context(), req.CandidateIDs)
	if err != nil {
		response.ErrorResponse(c, fusion.ToHTTPStatus(err), fusion.ToErrorCode(err), err.Error())
		return
	}

	response.Success(c, http.StatusCreated, session)
}

// ChooseMaster - POST /v1/fusion/:id/master
func (h *FusionHandler) ChooseMaster(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UUID format")
		return
	}

	var req fusion.ChooseMasterRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	session, err := h.service.ChooseMaster(id, req.Master)
	if err != nil {
		response.ErrorResponse(c, fusion.ToHTTPStatus(err), fusion.ToErrorCode(err), err.Error())
		return
	}

	response.Success(c, http.StatusOK, session)
}

// Fuse - POST /v1/fusion/:id/fuse
func (h *FusionHandler) Fuse(c *gin.Context) {
	h.applyTransition(c, func(id uuid.UUID) (*fusion.Session, error) {
		return h.service.Fuse(id)
	})
}

// Confirm - POST /v1/fusion/:id/confirm
func (h *FusionHandler) Confirm(c *gin.Context) {
	h.applyTransition(c, func(id uuid.UUID) (*fusion.Session, error) {
		return h.service.Confirm(c.Request.Context(), id)
	})
}

// Cancel - POST /v1/fusion/:id/cancel
func (h *FusionHandler) Cancel(c *gin.Context) {
	h.applyTransition(c, func(id uuid.UUID) (*fusion.Session, error) {
		return h.service.Cancel(id)
	})
}

func (h *FusionHandler) applyTransition(c *gin.Context, fn func(uuid.UUID) (*fusion.Session, error)) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UUID format")
		return
	}

	session, err := fn(id)
	if err != nil {
		response.ErrorResponse(c, fusion.ToHTTPStatus(err), fusion.ToErrorCode(err), err.Error())
		return
	}

	response.Success(c, http.StatusOK, session)
}
