package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"turnout/backend/internal/dto"
	"turnout/backend/internal/service"
	"turnout/backend/pkg/response"
)

// TruckHandler serves fleet administration.
type TruckHandler struct {
	truckSvc service.TruckService
}

// NewTruckHandler creates a TruckHandler.
func NewTruckHandler(truckSvc service.TruckService) *TruckHandler {
	return &TruckHandler{truckSvc: truckSvc}
}

// ListTrucks lists the brigade fleet with positions.
// GET /api/v1/trucks
func (h *TruckHandler) ListTrucks(c *gin.Context) {
	brigadeID, ok := MustGetBrigadeID(c)
	if !ok {
		return
	}

	trucks, err := h.truckSvc.List(c.Request.Context(), brigadeID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": trucks})
}

// CreateTruck adds a truck at the end of the display order.
// POST /api/v1/trucks
func (h *TruckHandler) CreateTruck(c *gin.Context) {
	brigadeID, ok := MustGetBrigadeID(c)
	if !ok {
		return
	}

	var req dto.CreateTruckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	truck, err := h.truckSvc.Create(c.Request.Context(), brigadeID, &req)
	if err != nil {
		h.handleTruckError(c, err)
		return
	}

	response.Created(c, truck)
}

// UpdateTruck edits a truck.
// PUT /api/v1/trucks/:id
func (h *TruckHandler) UpdateTruck(c *gin.Context) {
	brigadeID, ok := MustGetBrigadeID(c)
	if !ok {
		return
	}

	var req dto.UpdateTruckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	truck, err := h.truckSvc.Update(c.Request.Context(), brigadeID, c.Param("id"), &req)
	if err != nil {
		h.handleTruckError(c, err)
		return
	}

	response.OK(c, truck)
}

// DeleteTruck removes a truck and its positions.
// DELETE /api/v1/trucks/:id
func (h *TruckHandler) DeleteTruck(c *gin.Context) {
	brigadeID, ok := MustGetBrigadeID(c)
	if !ok {
		return
	}

	if err := h.truckSvc.Delete(c.Request.Context(), brigadeID, c.Param("id")); err != nil {
		h.handleTruckError(c, err)
		return
	}

	response.OK(c, nil)
}

// ReorderTrucks rewrites the fleet display order.
// PUT /api/v1/trucks/reorder
func (h *TruckHandler) ReorderTrucks(c *gin.Context) {
	brigadeID, ok := MustGetBrigadeID(c)
	if !ok {
		return
	}

	var req dto.ReorderTrucksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	trucks, err := h.truckSvc.Reorder(c.Request.Context(), brigadeID, &req)
	if err != nil {
		h.handleTruckError(c, err)
		return
	}

	response.OK(c, gin.H{"list": trucks})
}

// CreatePosition adds a position to a truck.
// POST /api/v1/trucks/:id/positions
func (h *TruckHandler) CreatePosition(c *gin.Context) {
	brigadeID, ok := MustGetBrigadeID(c)
	if !ok {
		return
	}

	var req dto.CreatePositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	truck, err := h.truckSvc.CreatePosition(c.Request.Context(), brigadeID, c.Param("id"), &req)
	if err != nil {
		h.handleTruckError(c, err)
		return
	}

	response.Created(c, truck)
}

// UpdatePosition edits a position.
// PUT /api/v1/positions/:id
func (h *TruckHandler) UpdatePosition(c *gin.Context) {
	brigadeID, ok := MustGetBrigadeID(c)
	if !ok {
		return
	}

	var req dto.UpdatePositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	truck, err := h.truckSvc.UpdatePosition(c.Request.Context(), brigadeID, c.Param("id"), &req)
	if err != nil {
		h.handleTruckError(c, err)
		return
	}

	response.OK(c, truck)
}

// DeletePosition removes a position.
// DELETE /api/v1/positions/:id
func (h *TruckHandler) DeletePosition(c *gin.Context) {
	brigadeID, ok := MustGetBrigadeID(c)
	if !ok {
		return
	}

	if err := h.truckSvc.DeletePosition(c.Request.Context(), brigadeID, c.Param("id")); err != nil {
		h.handleTruckError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *TruckHandler) handleTruckError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTruckNotFound):
		response.NotFound(c, 15001, "truck not found")
	case errors.Is(err, service.ErrPositionNotFound):
		response.NotFound(c, 15002, "position not found")
	default:
		response.InternalError(c)
	}
}
