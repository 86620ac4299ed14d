package handlers

import (
	"net/http"

	"gymflow/models"
	"gymflow/services/class"

	"github.com/gin-gonic/gin"
)

type ClassHandler struct {
	ClassService class.ClassService
}

func NewClassHandler(svc class.ClassService) *ClassHandler {
	return &ClassHandler{ClassService: svc}
}

// CreateClassHandler handles POST /api/classes.
func (h *ClassHandler) CreateClassHandler(c *gin.Context) {
	var req models.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	dto, err := h.ClassService.CreateClass(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto)
}

// ListClassesHandler handles GET /api/classes.
func (h *ClassHandler) ListClassesHandler(c *gin.Context) {
	classes, err := h.ClassService.ListClasses(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, classes)
}

// GetClassHandler handles GET /api/classes/:id.
func (h *ClassHandler) GetClassHandler(c *gin.Context) {
	dto, err := h.ClassService.GetClass(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

// UpdateClassHandler handles PUT /api/classes/:id.
func (h *ClassHandler) UpdateClassHandler(c *gin.Context) {
	var req models.UpdateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	dto, err := h.ClassService.UpdateClass(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

// UpdateClassWithSessionsHandler handles PUT /api/classes/:id/with-sessions.
func (h *ClassHandler) UpdateClassWithSessionsHandler(c *gin.Context) {
	var req models.UpdateClassWithSessionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	dto, err := h.ClassService.UpdateClassWithSessions(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

// DeleteClassHandler handles DELETE /api/classes/:id.
func (h *ClassHandler) DeleteClassHandler(c *gin.Context) {
	if err := h.ClassService.DeleteClass(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ClassHandler) ListSessionsHandler(c *gin.Context) {
	sessions, err := h.ClassService.ListSessions(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}

func (h *ClassHandler) GetSessionHandler(c *gin.Context) {
	dto, err := h.ClassService.GetSession(c.Request.Context(), c.Param("id"), c.Param("sessionId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

// AddSessionsHandler handles POST /api/classes/:id/sessions with a recurrence body.
func (h *ClassHandler) AddSessionsHandler(c *gin.Context) {
	var req models.Recurrence
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	sessions, err := h.ClassService.AddSessions(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sessions)
}

// UpdateSessionHandler handles PUT /api/classes/:id/sessions/:sessionId.
func (h *ClassHandler) UpdateSessionHandler(c *gin.Context) {
	var req models.UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	dto, err := h.ClassService.UpdateSession(c.Request.Context(), c.Param("id"), c.Param("sessionId"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

// DeleteSessionHandler handles DELETE /api/classes/:id/sessions/:sessionId.
func (h *ClassHandler) DeleteSessionHandler(c *gin.Context) {
	if err := h.ClassService.DeleteSession(c.Request.Context(), c.Param("id"), c.Param("sessionId")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
