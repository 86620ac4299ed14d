package handlers

import (
	"net/http"

	"gymflow/models"
	"gymflow/services/member"

	"github.com/gin-gonic/gin"
)

type MemberHandler struct {
	MemberService member.MemberService
}

func NewMemberHandler(svc member.MemberService) *MemberHandler {
	return &MemberHandler{MemberService: svc}
}

// CreateMemberHandler handles POST /api/members.
func (h *MemberHandler) CreateMemberHandler(c *gin.Context) {
	var req models.MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	m, err := h.MemberService.CreateMember(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (h *MemberHandler) ListMembersHandler(c *gin.Context) {
	members, err := h.MemberService.ListMembers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}

func (h *MemberHandler) GetMemberHandler(c *gin.Context) {
	m, err := h.MemberService.GetMember(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// UpdateMemberHandler handles PUT /api/members/:id.
func (h *MemberHandler) UpdateMemberHandler(c *gin.Context) {
	var req models.MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	m, err := h.MemberService.UpdateMember(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// DeleteMemberHandler handles DELETE /api/members/:id. The member's bookings go with it.
func (h *MemberHandler) DeleteMemberHandler(c *gin.Context) {
	if err := h.MemberService.DeleteMember(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
