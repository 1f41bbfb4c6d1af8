package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"turnout/backend/internal/dto"
	"turnout/backend/internal/service"
	"turnout/backend/pkg/response"
)

// AttendanceHandler serves attendance mutations.
type AttendanceHandler struct {
	attendanceSvc service.AttendanceService
}

// NewAttendanceHandler creates an AttendanceHandler.
func NewAttendanceHandler(attendanceSvc service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceSvc: attendanceSvc}
}

// Assign places a member on a position or marks leave/absent.
// A lost occupancy race answers 409 with the winner's board attached so
// the client reconciles without surfacing an error.
// POST /api/v1/callouts/:id/attendance
func (h *AttendanceHandler) Assign(c *gin.Context) {
	brigadeID, ok := MustGetBrigadeID(c)
	if !ok {
		return
	}

	var req dto.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	board, err := h.attendanceSvc.Assign(c.Request.Context(), brigadeID, c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, service.ErrSlotTaken) {
			response.Conflict(c, 13001, "position already occupied", board)
			return
		}
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, board)
}

// Remove unassigns an attendance record.
// DELETE /api/v1/attendance/:id
func (h *AttendanceHandler) Remove(c *gin.Context) {
	brigadeID, ok := MustGetBrigadeID(c)
	if !ok {
		return
	}

	board, err := h.attendanceSvc.Remove(c.Request.Context(), brigadeID, c.Param("id"))
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, board)
}

// Move relocates an attendance record to another position in one
// transaction.
// POST /api/v1/callouts/:id/move
func (h *AttendanceHandler) Move(c *gin.Context) {
	brigadeID, ok := MustGetBrigadeID(c)
	if !ok {
		return
	}

	var req dto.MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	board, err := h.attendanceSvc.Move(c.Request.Context(), brigadeID, c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, service.ErrSlotTaken) {
			response.Conflict(c, 13001, "position already occupied", board)
			return
		}
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, board)
}

// Board returns the current grouped snapshot for a callout.
// GET /api/v1/callouts/:id/board
func (h *AttendanceHandler) Board(c *gin.Context) {
	brigadeID, ok := MustGetBrigadeID(c)
	if !ok {
		return
	}

	board, err := h.attendanceSvc.Board(c.Request.Context(), brigadeID, c.Param("id"))
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, board)
}

func (h *AttendanceHandler) handleAttendanceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCalloutNotFound):
		response.NotFound(c, 12001, "callout not found")
	case errors.Is(err, service.ErrCalloutNotActive):
		response.Forbidden(c, 12002, "callout is no longer modifiable")
	case errors.Is(err, service.ErrMemberInvalid):
		response.NotFound(c, 13002, "member not found in this brigade")
	case errors.Is(err, service.ErrTruckPositionInvalid):
		response.NotFound(c, 13003, "invalid truck or position")
	case errors.Is(err, service.ErrAttendanceNotFound):
		response.NotFound(c, 13004, "attendance record not found")
	default:
		response.InternalError(c)
	}
}
