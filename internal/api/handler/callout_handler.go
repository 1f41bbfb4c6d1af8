package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"turnout/backend/internal/dto"
	"turnout/backend/internal/service"
	"turnout/backend/pkg/response"
)

// CalloutHandler serves the callout lifecycle.
type CalloutHandler struct {
	calloutSvc service.CalloutService
}

// NewCalloutHandler creates a CalloutHandler.
func NewCalloutHandler(calloutSvc service.CalloutService) *CalloutHandler {
	return &CalloutHandler{calloutSvc: calloutSvc}
}

// ListActive returns the client bootstrap payload: every active callout
// with its board, the year count, and the last submitted callout.
// GET /api/v1/callouts/active
func (h *CalloutHandler) ListActive(c *gin.Context) {
	brigadeID, ok := MustGetBrigadeID(c)
	if !ok {
		return
	}

	result, err := h.calloutSvc.ListActive(c.Request.Context(), brigadeID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Create opens a callout, resumes an active one with the same ICAD, or
// signals already-submitted.
// POST /api/v1/callouts
func (h *CalloutHandler) Create(c *gin.Context) {
	brigadeID, ok := MustGetBrigadeID(c)
	if !ok {
		return
	}

	var req dto.CreateCalloutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	result, err := h.calloutSvc.Create(c.Request.Context(), brigadeID, &req)
	if err != nil {
		h.handleCalloutError(c, err)
		return
	}

	if result.AlreadySubmitted || result.Resumed {
		response.OK(c, result)
		return
	}
	response.Created(c, result)
}

// Update edits an active callout.
// PUT /api/v1/callouts/:id
func (h *CalloutHandler) Update(c *gin.Context) {
	brigadeID, ok := MustGetBrigadeID(c)
	if !ok {
		return
	}

	var req dto.UpdateCalloutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	result, err := h.calloutSvc.Update(c.Request.Context(), brigadeID, c.Param("id"), &req)
	if err != nil {
		h.handleCalloutError(c, err)
		return
	}

	response.OK(c, result)
}

// Submit finalizes a callout; terminal for edits.
// POST /api/v1/callouts/:id/submit
func (h *CalloutHandler) Submit(c *gin.Context) {
	brigadeID, ok := MustGetBrigadeID(c)
	if !ok {
		return
	}

	var req dto.SubmitCalloutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	result, err := h.calloutSvc.Submit(c.Request.Context(), brigadeID, c.Param("id"), &req)
	if err != nil {
		h.handleCalloutError(c, err)
		return
	}

	response.OK(c, result)
}

// CopyLast seeds the callout from the last submitted muster or call.
// POST /api/v1/callouts/:id/copy-last
func (h *CalloutHandler) CopyLast(c *gin.Context) {
	brigadeID, ok := MustGetBrigadeID(c)
	if !ok {
		return
	}

	var req dto.CopyLastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	result, err := h.calloutSvc.CopyLast(c.Request.Context(), brigadeID, c.Param("id"), &req)
	if err != nil {
		h.handleCalloutError(c, err)
		return
	}

	response.OK(c, result)
}

func (h *CalloutHandler) handleCalloutError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCalloutNotFound):
		response.NotFound(c, 12001, "callout not found")
	case errors.Is(err, service.ErrCalloutNotActive):
		response.Forbidden(c, 12002, "callout is no longer modifiable")
	case errors.Is(err, service.ErrInvalidIcad):
		response.BadRequest(c, 12003, "ICAD number must start with F or be \"muster\"")
	case errors.Is(err, service.ErrIcadInUse):
		response.BadRequest(c, 12004, "another active callout already uses this ICAD number")
	case errors.Is(err, service.ErrNoSourceCallout):
		response.NotFound(c, 12005, "no previous submitted callout to copy from")
	default:
		response.InternalError(c)
	}
}
