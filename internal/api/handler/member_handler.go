package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"turnout/backend/internal/dto"
	"turnout/backend/internal/service"
	"turnout/backend/pkg/response"
)

// MemberHandler serves member administration.
type MemberHandler struct {
	memberSvc service.MemberService
}

// NewMemberHandler creates a MemberHandler.
func NewMemberHandler(memberSvc service.MemberService) *MemberHandler {
	return &MemberHandler{memberSvc: memberSvc}
}

// ListMembers lists the brigade roster.
// GET /api/v1/members
func (h *MemberHandler) ListMembers(c *gin.Context) {
	brigadeID, ok := MustGetBrigadeID(c)
	if !ok {
		return
	}

	var req dto.MemberListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	members, err := h.memberSvc.List(c.Request.Context(), brigadeID, &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": members})
}

// CreateMember adds a member.
// POST /api/v1/members
func (h *MemberHandler) CreateMember(c *gin.Context) {
	brigadeID, ok := MustGetBrigadeID(c)
	if !ok {
		return
	}

	var req dto.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	member, err := h.memberSvc.Create(c.Request.Context(), brigadeID, &req)
	if err != nil {
		h.handleMemberError(c, err)
		return
	}

	response.Created(c, member)
}

// UpdateMember edits a member.
// PUT /api/v1/members/:id
func (h *MemberHandler) UpdateMember(c *gin.Context) {
	brigadeID, ok := MustGetBrigadeID(c)
	if !ok {
		return
	}

	var req dto.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	member, err := h.memberSvc.Update(c.Request.Context(), brigadeID, c.Param("id"), &req)
	if err != nil {
		h.handleMemberError(c, err)
		return
	}

	response.OK(c, member)
}

// DeactivateMember soft-retires a member.
// DELETE /api/v1/members/:id
func (h *MemberHandler) DeactivateMember(c *gin.Context) {
	brigadeID, ok := MustGetBrigadeID(c)
	if !ok {
		return
	}

	if err := h.memberSvc.Deactivate(c.Request.Context(), brigadeID, c.Param("id")); err != nil {
		h.handleMemberError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *MemberHandler) handleMemberError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMemberNotFound):
		response.NotFound(c, 14001, "member not found")
	default:
		response.InternalError(c)
	}
}
